package youtube

import (
	"errors"
	"fmt"
)

// ErrTubeSearch is the root of every error produced by this package.
// Transport errors returned by a Fetcher are passed through untouched and do
// not match it.
var ErrTubeSearch = errors.New("tubesearch")

// DataExtractionError reports a violated mandatory expectation: a required
// embedded blob or identifier is missing, or a terminated page was continued.
type DataExtractionError struct {
	Op     string
	Reason string
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("%s: data extraction: %s", e.Op, e.Reason)
}

func (e *DataExtractionError) Unwrap() error { return ErrTubeSearch }

func extractionErr(op, format string, args ...any) error {
	return &DataExtractionError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// IsDataExtraction reports whether err is (or wraps) a DataExtractionError.
func IsDataExtraction(err error) bool {
	var de *DataExtractionError
	return errors.As(err, &de)
}
