package core

import "errors"

// Common errors.
var (
	ErrReadOnly          = errors.New("repository is in read-only mode")
	ErrMissingID         = errors.New("record has no ID")
	ErrNotFound          = errors.New("record not found")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrStorageFailure    = errors.New("storage failure")

	ErrInvalidRequest    = errors.New("invalid generation request")
	ErrRemoteUnavailable = errors.New("remote generator unavailable")
	ErrRemoteCallFailed  = errors.New("remote generation failed")

	ErrInvalidFormat    = errors.New("invalid backup format")
	ErrNoCompatibleData = errors.New("no compatible data found")
)

// IsCollection reports whether name is one of the managed collections.
func IsCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}
