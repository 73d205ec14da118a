package matching

import "errors"

var (
	// ErrProfileNotFound means the requesting user has no stored profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrMatchNotFound means no Match Record exists for the pair.
	ErrMatchNotFound = errors.New("match does not exist")
	// ErrStoreFailure wraps any persistence error surfaced by the engine.
	ErrStoreFailure = errors.New("store failure")
	// ErrSelfMatch rejects pairing a user with themselves.
	ErrSelfMatch = errors.New("cannot match a user with themselves")
)
