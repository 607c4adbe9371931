package types

import "errors"

// Domain specific errors shared across services.
var (
	ErrNotFound       = errors.New("requested item not found")
	ErrConflict       = errors.New("item already exists or conflict")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidFeature = errors.New("feature value outside the trained vocabulary")
)
