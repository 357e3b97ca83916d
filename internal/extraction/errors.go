package extraction

import "fmt"

// TransportError means the vision capability was unreachable, timed out,
// or refused the request. The session is never mutated on a transport
// failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("extraction transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedError means the capability answered, but the reply could not be
// parsed into the expected label fields.
type MalformedError struct {
	Response string
	Err      error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed extraction response: %v", e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// LowConfidenceError means the model reported it could not confidently
// read the label.
type LowConfidenceError struct {
	Response string
}

func (e *LowConfidenceError) Error() string {
	return "model could not confidently read the label"
}
