package backend

const (
	// Event log catalog
	endpointLogs = "/logs/" // GET

	// Default properties of one event log
	endpointLogProperties = "/log_props/%s" // GET

	// Encoding of an event log into a zip archive
	endpointEncodeEventLog = "/encode_event_log/" // POST

	// Redirects followed for GET requests (the backend redirects trailing slashes)
	maxRedirects = 3
)
