package models

import "errors"

// Domain specific errors for authentication, authorization and catalog access.
var (
	ErrNotFound         = errors.New("requested item not found")
	ErrConflict         = errors.New("item already exists or conflict")
	ErrUnauthenticated  = errors.New("authentication required or invalid credentials")
	ErrForbidden        = errors.New("action forbidden")
	ErrBadRequest       = errors.New("bad request")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrIntegrity        = errors.New("more than one row matched where exactly one was expected")
)
