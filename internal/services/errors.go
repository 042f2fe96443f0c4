package services

import "errors"

// Sentinel errors shared by the services. Handlers map these onto HTTP
// statuses; anything unrecognized becomes a 500.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("permission denied")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrPersistence         = errors.New("persistence failure")
	ErrInvalidSignature    = errors.New("invalid payment signature")
)
