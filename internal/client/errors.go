package client

import (
	"errors"
	"fmt"
)

// ErrAnalysisInFlight is returned when Analyze is called while a
// previous request is still pending. Overlapping requests are rejected
// rather than queued or cancelled.
var ErrAnalysisInFlight = errors.New("analysis request already in flight")

// NetworkError covers transport failures and non-success HTTP statuses.
type NetworkError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError means the service answered but the body was not the
// expected shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MissingFieldError is returned by ToCSV when a model block is absent
// from the result. The chart path tolerates gaps; the export path does
// not.
type MissingFieldError struct {
	Model string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("result has no %s block", e.Model)
}
