package session

import "errors"

var (
	ErrSessionNotFound = errors.New("study session not found")
	ErrNotCreator      = errors.New("only the session creator can do this")
	ErrSessionClosed   = errors.New("study session is not open")
	ErrAlreadyJoined   = errors.New("already joined this session")
	ErrInvalidSession  = errors.New("invalid study session")
)
