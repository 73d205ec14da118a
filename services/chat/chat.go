package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	chatRepo "studybuddy/database/repository/chat"
	"studybuddy/models"

	"go.uber.org/zap"
)

const maxPreviewLen = 80

func (s *DefaultChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultChatService) ListChats(ctx context.Context, uid string) ([]models.Chat, error) {
	return s.Repo.ListByMember(ctx, uid)
}

func (s *DefaultChatService) ListMessages(ctx context.Context, chatID, uid string) ([]models.Message, error) {
	if _, err := s.memberChat(ctx, chatID, uid); err != nil {
		return nil, err
	}
	return s.Repo.ListMessages(ctx, chatID)
}

// SendMessage appends a message, bumps the chat and pushes to the other members.
func (s *DefaultChatService) SendMessage(ctx context.Context, chatID, uid, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	c, err := s.memberChat(ctx, chatID, uid)
	if err != nil {
		return nil, err
	}
	msg := &models.Message{
		ChatID:    chatID,
		SenderUID: uid,
		Text:      text,
		Timestamp: s.now(),
	}
	if _, err := s.Repo.AddMessage(ctx, msg); err != nil {
		if errors.Is(err, chatRepo.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}

	if s.Notifier != nil {
		for _, member := range c.Members {
			if member == uid {
				continue
			}
			err := s.Notifier.NotifyUser(ctx, member, "New message", preview(text),
				map[string]string{"type": "chat_message", "chatId": chatID})
			if err != nil && s.Logger != nil {
				s.Logger.Warn("Push notification failed", zap.String("uid", member), zap.Error(err))
			}
		}
	}
	return msg, nil
}

func (s *DefaultChatService) LeaveChat(ctx context.Context, chatID, uid string) error {
	if _, err := s.memberChat(ctx, chatID, uid); err != nil {
		return err
	}
	if err := s.Repo.RemoveMember(ctx, chatID, uid, s.now()); err != nil {
		if errors.Is(err, chatRepo.ErrNotFound) {
			return ErrChatNotFound
		}
		return err
	}
	return nil
}

// EnsureChatRoom returns the chat both users already share or creates one.
func (s *DefaultChatService) EnsureChatRoom(ctx context.Context, a, b, sessionID string) (*models.Chat, error) {
	if a == b {
		return nil, ErrSelfChat
	}
	existing, err := s.Repo.FindByMembers(ctx, a, b)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	now := s.now()
	c := &models.Chat{
		Members:   []string{a, b},
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *DefaultChatService) memberChat(ctx context.Context, chatID, uid string) (*models.Chat, error) {
	c, err := s.Repo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrChatNotFound
	}
	if !c.HasMember(uid) {
		return nil, ErrNotMember
	}
	return c, nil
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= maxPreviewLen {
		return text
	}
	return string(r[:maxPreviewLen]) + "…"
}
