package services

import "errors"

var (
	// ErrNotFound marks an unknown resume, platform or application, or
	// one that does not belong to the requesting user.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated marks a request without a resolvable user.
	ErrUnauthenticated = errors.New("unauthenticated")
)
