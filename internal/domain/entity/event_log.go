package entity

// LogProperties is the property record the backend keeps for one event log.
// Field names follow the backend's JSON contract.
type LogProperties struct {
	// Fixed, log specific fields
	CaseName                 string `json:"case_name"`
	ConceptName              string `json:"concept_name"`
	TimestampName            string `json:"timestamp_name"`
	DateFormat               string `json:"date_format"`
	TimeSinceCaseStartColumn string `json:"time_since_case_start_column"`
	TimeSinceLastEventColumn string `json:"time_since_last_event_column"`
	DayInWeekColumn          string `json:"day_in_week_column"`
	SecondsInDayColumn       string `json:"seconds_in_day_column"`
	WindowSize               string `json:"window_size"`

	// User editable fields
	MinSuffixSize       int      `json:"min_suffix_size"`
	TrainValidationSize float64  `json:"train_validation_size"`
	TestValidationSize  float64  `json:"test_validation_size"`
	CategoricalColumns  []string `json:"categorical_columns"`
	ContinuousColumns   []string `json:"continuous_columns"`

	ContinuousPositiveColumns []string `json:"continuous_positive_columns"`
}

// Clone returns a deep copy so callers never share column slices
func (p LogProperties) Clone() LogProperties {
	out := p
	out.CategoricalColumns = cloneStrings(p.CategoricalColumns)
	out.ContinuousColumns = cloneStrings(p.ContinuousColumns)
	out.ContinuousPositiveColumns = cloneStrings(p.ContinuousPositiveColumns)
	return out
}

// EncodeRequest is the body of an encoding request
type EncodeRequest struct {
	EventLogName       string        `json:"event_log_name"`
	EventLogProperties LogProperties `json:"event_log_properties"`
}

// ArtifactName is the file name offered for the encoded archive of a log
func ArtifactName(logName string) string {
	return logName + "_encoded.zip"
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
