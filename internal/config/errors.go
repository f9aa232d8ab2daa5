package config

import (
	"errors"
	"fmt"
)

// ErrMissingAPIBase is returned when the API origin resolves to an empty string.
var ErrMissingAPIBase = errors.New("api_base is empty")

// ErrInvalid is wrapped by errors for out-of-range settings.
var ErrInvalid = errors.New("invalid config value")

func invalid(key, value string) error {
	return fmt.Errorf("%w: %s=%s", ErrInvalid, key, value)
}
