package geotag

import (
	"errors"
	"fmt"
)

// Kind classifies a resolution failure for status mapping.
type Kind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown Kind = iota
	// KindInvalidCoordinates is a coordinate-shaped query that failed validation.
	KindInvalidCoordinates
	// KindServiceUnavailable is a transport-level geocoding failure.
	KindServiceUnavailable
	// KindNoResults is a query the geocoder could not resolve to any usable location.
	KindNoResults
)

// Error is a classified resolution failure. Message is the user-facing
// detail text; Err carries the underlying cause when there is one.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsInvalidCoordinates(err error) bool {
	return kindOf(err) == KindInvalidCoordinates
}

func IsServiceUnavailable(err error) bool {
	return kindOf(err) == KindServiceUnavailable
}

func IsNoResults(err error) bool {
	return kindOf(err) == KindNoResults
}

func kindOf(err error) Kind {
	var resErr *Error
	if errors.As(err, &resErr) {
		return resErr.Kind
	}
	return KindUnknown
}
