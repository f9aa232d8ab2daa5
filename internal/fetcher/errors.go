package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsuccessful is returned when the envelope's success flag is falsy.
	ErrUnsuccessful = errors.New("envelope not successful")
	// ErrMalformed wraps body or payload decoding failures.
	ErrMalformed = errors.New("malformed payload")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.Code, e.URL)
}
