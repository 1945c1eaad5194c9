package blueprint

import (
	"errors"
	"fmt"
)

// ErrNoBlueprints is returned when an evaluation is requested over an empty list
var ErrNoBlueprints = errors.New("no blueprints to evaluate")

// ErrInvalidBlueprint indicates a blueprint that cannot be evaluated
type ErrInvalidBlueprint struct {
	ID     int
	Reason string
}

func (e *ErrInvalidBlueprint) Error() string {
	return fmt.Sprintf("invalid blueprint %d: %s", e.ID, e.Reason)
}

// ErrInvalidLimit indicates a blueprint limit the mode cannot honour
type ErrInvalidLimit struct {
	Mode  Mode
	Limit int
}

func (e *ErrInvalidLimit) Error() string {
	return fmt.Sprintf("invalid blueprint limit %d for %s mode", e.Limit, e.Mode)
}

// ErrUnknownMode indicates an evaluation mode name that is not recognized
type ErrUnknownMode struct {
	Name string
}

func (e *ErrUnknownMode) Error() string {
	return fmt.Sprintf("unknown evaluation mode %q (expected %q or %q)", e.Name, ModeQualitySum, ModeTopProduct)
}

// ErrRunNotFound indicates an evaluation run could not be found
type ErrRunNotFound struct {
	ID string
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("evaluation run not found: %s", e.ID)
}
