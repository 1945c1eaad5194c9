package parser

import "fmt"

// ErrMalformedBlueprint indicates blueprint input that could not be parsed.
// ID is 0 when the failure happened before a blueprint header was read.
type ErrMalformedBlueprint struct {
	ID     int
	Reason string
	Err    error
}

func (e *ErrMalformedBlueprint) Error() string {
	msg := "malformed blueprint"
	if e.ID > 0 {
		msg = fmt.Sprintf("malformed blueprint %d", e.ID)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", msg, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", msg, e.Reason)
}

func (e *ErrMalformedBlueprint) Unwrap() error {
	return e.Err
}
