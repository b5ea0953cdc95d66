// Package loader fetches the events, people and locations collections from their static sources.
package loader

import (
	"errors"
	"fmt"
)

// Resource names.
const (
	ResourceEvents    = "events"
	ResourcePeople    = "people"
	ResourceLocations = "locations"
)

// Causes wrapped by FetchError.
var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrBodyTooLarge     = errors.New("response body exceeds limit")
	ErrNotArray         = errors.New("payload is not a JSON array")
	ErrMalformedRecord  = errors.New("malformed record")
)

// FetchError reports a failed bulk load of one resource.
type FetchError struct {
	Err      error
	Resource string
	Source   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load %s from %s: %v", e.Resource, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is, or wraps, a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError

	return errors.As(err, &fe)
}
