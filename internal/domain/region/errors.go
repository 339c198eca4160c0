package region

import "errors"

var (
	// ErrResolutionUnavailable means the reference set is empty or could not be loaded.
	// Callers degrade by omitting region names; it is not a request failure.
	ErrResolutionUnavailable = errors.New("region resolution unavailable")
)
