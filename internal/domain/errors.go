package domain

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Predefined domain errors
var (
	// ErrNotFound the event log does not exist on the backend
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput malformed request or unknown field
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotSelected no event log has been selected yet
	ErrNotSelected = errors.New("no event log selected")
	// ErrInvalidParameters at least one parameter check reports an error
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrBusy an encoding request is already in flight
	ErrBusy = errors.New("encoding in progress")
	// ErrEncodingFailed the backend rejected or failed the encoding request
	ErrEncodingFailed = errors.New("encoding failed")
	// ErrBackendUnavailable the backend could not be reached
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrInternal Internal error
	ErrInternal = errors.New("internal error")
)

// DomainError carries a stable code, a message safe to show to the user
// and the underlying cause.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface (used for logs)
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the message shown to the user, without internal details
func (e *DomainError) UserMessage() string {
	return e.Message
}

// Unwrap returns the wrapped error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(resourceType, name string) error {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s '%s' not found", resourceType, name),
		Err:     ErrNotFound,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string) error {
	return &DomainError{
		Code:    "INVALID_INPUT",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// NewNotSelectedError is returned by a submission without a selected log
func NewNotSelectedError() error {
	return &DomainError{
		Code:    "NOT_SELECTED",
		Message: "Please select an event log.",
		Err:     ErrNotSelected,
	}
}

// NewInvalidParametersError is returned by a submission while checks fail
func NewInvalidParametersError() error {
	return &DomainError{
		Code:    "INVALID_PARAMETERS",
		Message: "Please fix the highlighted errors before submitting.",
		Err:     ErrInvalidParameters,
	}
}

// NewBusyError is returned by a submission while another one runs
func NewBusyError() error {
	return &DomainError{
		Code:    "BUSY",
		Message: "An encoding request is already running.",
		Err:     ErrBusy,
	}
}

// NewEncodingFailedError wraps a failed encoding round trip
func NewEncodingFailedError(cause error) error {
	return &DomainError{
		Code:    "ENCODING_FAILED",
		Message: "Error during processing.",
		Err:     errors.Mark(errors.Wrap(cause, "encode event log"), ErrEncodingFailed),
	}
}

// NewBackendUnavailableError wraps a transport failure towards the backend
func NewBackendUnavailableError(cause error) error {
	return &DomainError{
		Code:    "BACKEND_UNAVAILABLE",
		Message: "The encoding backend is not reachable.",
		Err:     errors.Mark(errors.Wrap(cause, "contact backend"), ErrBackendUnavailable),
	}
}

// NewInternalError creates an internal error
func NewInternalError(err error) error {
	return &DomainError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Err:     errors.Mark(err, ErrInternal),
	}
}

// UserMessage returns the user-facing message of err, or a generic one for
// errors that are not domain errors.
func UserMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.UserMessage()
	}
	return "an error occurred"
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotSelected reports whether err is a missing-selection error
func IsNotSelected(err error) bool {
	return errors.Is(err, ErrNotSelected)
}

// IsInvalidParameters reports whether err is a failed-checks error
func IsInvalidParameters(err error) bool {
	return errors.Is(err, ErrInvalidParameters)
}

// IsBusy reports whether err is a busy error
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsEncodingFailed reports whether err is an encoding failure
func IsEncodingFailed(err error) bool {
	return errors.Is(err, ErrEncodingFailed)
}

// IsBackendUnavailable reports whether err is a transport failure
func IsBackendUnavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}

// IsInternalError reports whether err is an internal error
func IsInternalError(err error) bool {
	return errors.Is(err, ErrInternal)
}
