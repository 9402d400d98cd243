package domain

import "errors"

var (
	// ErrUnavailable signals that the backing service never became reachable.
	ErrUnavailable = errors.New("service unavailable")
	// ErrNotFound signals a missing remote resource.
	ErrNotFound = errors.New("not found")
	// ErrRejected signals that the server refused a request with a non-success status.
	ErrRejected = errors.New("server rejected request")
	// ErrInvalidSpec signals an invalid collection specification.
	ErrInvalidSpec = errors.New("invalid collection spec")
)
