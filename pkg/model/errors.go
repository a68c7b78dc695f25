package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is terminal: the entity does not exist upstream or in the
	// reference tables. Callers must not retry.
	ErrNotFound = errors.New("resource not found")

	// ErrUpstreamUnavailable covers transport failures and non-2xx upstream
	// answers other than 404. Resolution may be retried.
	ErrUpstreamUnavailable = errors.New("upstream api unavailable")

	ErrReferenceLoad = errors.New("reference tables failed to load")

	ErrInvalidInvalidation = errors.New("invalid invalidation request")
)

var (
	ErrWrongGeneration = fmt.Errorf("%w: selected resource does not exist in the current generation", ErrNotFound)

	ErrUnauthorized = fmt.Errorf("%w: token mismatch", ErrInvalidInvalidation)
)
