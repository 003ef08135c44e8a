package services

import "errors"

// ErrRateLimited is returned when a client fingerprint exceeds the submission
// rate limit. Surfaced to the caller as a generic too-many-requests kind with
// no detail on remaining quota.
var ErrRateLimited = errors.New("too many requests")

// ErrNotFound is returned when a referenced entity does not exist
var ErrNotFound = errors.New("not found")

// ErrInvalidStatus is returned when an admin sends a status outside the lead
// status enum
var ErrInvalidStatus = errors.New("invalid lead status")

// StorageError wraps a failed primary-entity write. The wrapped error carries
// full storage detail for operator logs; Error() stays user-safe.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface without leaking storage detail
func (e *StorageError) Error() string {
	return "storage error: " + e.Op
}

// Unwrap exposes the underlying storage error for logging
func (e *StorageError) Unwrap() error {
	return e.Err
}
