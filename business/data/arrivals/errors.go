package arrivals

import "fmt"

// ArgumentError reports invalid user input describing a Query.
type ArgumentError struct {
	Argument string
	Value    string
	Err      error
}

func (e *ArgumentError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s %q", e.Argument, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Argument, e.Value, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// TransportError reports that the arrivals API could not be reached or did not answer successfully.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("retrieving arrivals from %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports an arrivals payload that is not JSON or is missing required fields.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing arrivals payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotificationError reports a failure of the SMS sender.
type NotificationError struct {
	Destination string
	Err         error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("sending arrivals to %s: %v", e.Destination, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
