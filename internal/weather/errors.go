package weather

import (
	"errors"
	"fmt"
)

// ErrFetch is wrapped by every failure coming out of this package.
var ErrFetch = errors.New("weather fetch failed")

// ErrMissingKey means no API key was configured.
var ErrMissingKey = fmt.Errorf("%w: no api key configured", ErrFetch)

// FetchError describes a failed request to the weather API.
type FetchError struct {
	Query      string
	StatusCode int    // 0 when no response arrived
	Code       int    // API error code, when the body carried one
	Message    string // API error message, when the body carried one
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("weather %q: %s (status %d, code %d)", e.Query, e.Message, e.StatusCode, e.Code)
	case e.StatusCode != 0 && e.Err == nil:
		return fmt.Sprintf("weather %q: unexpected status %d", e.Query, e.StatusCode)
	default:
		return fmt.Sprintf("weather %q: %v", e.Query, e.Err)
	}
}

func (e *FetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFetch, e.Err}
	}
	return []error{ErrFetch}
}
