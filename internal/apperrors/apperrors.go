package apperrors

import "errors"

// Sentinel errors shared by services and handlers. Handlers map these to
// HTTP status codes; services wrap them with context via fmt.Errorf and %w
// so errors.Is still matches.
var (
	// ErrNotFound covers a missing or inactive user, business or favourite.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict covers duplicate favourites and duplicate emails.
	ErrConflict = errors.New("resource already exists")
	// ErrValidation covers malformed or missing required fields.
	ErrValidation = errors.New("invalid input")
	// ErrForbidden covers operations on a business the caller does not own.
	ErrForbidden = errors.New("operation not allowed")
	// ErrUpstream covers failed document-store or object-storage calls.
	ErrUpstream = errors.New("upstream storage failure")
	// ErrTransform covers image decode/encode failures in the pipeline.
	ErrTransform = errors.New("image transform failure")
)
