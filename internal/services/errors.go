package services

import "errors"

// Domain outcomes returned by the services. Match them with errors.Is; any
// other error is an internal failure.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrUnauthenticated = errors.New("unauthenticated")
)
