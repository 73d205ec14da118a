package request

import "errors"

var (
	ErrRequestNotFound    = errors.New("match request not found")
	ErrSelfRequest        = errors.New("cannot send a request to yourself")
	ErrTargetNotFound     = errors.New("target user not found")
	ErrSessionUnavailable = errors.New("study session is not open")
	ErrDuplicateRequest   = errors.New("a pending request already exists for this session")
	ErrNotTarget          = errors.New("only the target can respond to this request")
	ErrAlreadyResponded   = errors.New("request has already been answered")
	ErrInvalidAction      = errors.New("action must be accept or decline")
)
