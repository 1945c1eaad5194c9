package input

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingSession is returned when no session token is configured
var ErrMissingSession = errors.New("no session token configured (set BP_INPUT_SESSION)")

// ErrInvalidPuzzle indicates a year/day pair that has no puzzle
type ErrInvalidPuzzle struct {
	Year int
	Day  int
}

func (e *ErrInvalidPuzzle) Error() string {
	return fmt.Sprintf("no puzzle for year %d day %d", e.Year, e.Day)
}

// ErrRequestFailed is a non-retryable HTTP failure
type ErrRequestFailed struct {
	StatusCode int
	Body       string
}

func (e *ErrRequestFailed) Error() string {
	return fmt.Sprintf("input request failed (status %d): %s", e.StatusCode, e.Body)
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	reason     string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}
