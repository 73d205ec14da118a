package chat

import "errors"

var (
	ErrChatNotFound = errors.New("chat not found")
	ErrNotMember    = errors.New("not a member of this chat")
	ErrEmptyMessage = errors.New("message text is required")
	ErrSelfChat     = errors.New("cannot open a chat with yourself")
)
