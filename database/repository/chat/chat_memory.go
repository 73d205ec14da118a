package chatRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"studybuddy/models"

	"github.com/google/uuid"
)

type MemoryChatRepo struct {
	mu       sync.RWMutex
	chats    map[string]models.Chat
	messages map[string][]models.Message
}

func NewMemoryChatRepo() *MemoryChatRepo {
	return &MemoryChatRepo{
		chats:    make(map[string]models.Chat),
		messages: make(map[string][]models.Message),
	}
}

func (r *MemoryChatRepo) Create(_ context.Context, chat *models.Chat) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chat.ID == "" {
		chat.ID = uuid.NewString()
	}
	c := *chat
	c.Members = append([]string(nil), chat.Members...)
	r.chats[c.ID] = c
	return c.ID, nil
}

func (r *MemoryChatRepo) GetByID(_ context.Context, id string) (*models.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.chats[id]
	if !ok {
		return nil, nil
	}
	c.Members = append([]string(nil), c.Members...)
	return &c, nil
}

func (r *MemoryChatRepo) ListByMember(_ context.Context, uid string) ([]models.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Chat{}
	for _, c := range r.chats {
		if c.HasMember(uid) {
			c.Members = append([]string(nil), c.Members...)
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryChatRepo) FindByMembers(ctx context.Context, a, b string) (*models.Chat, error) {
	chats, _ := r.ListByMember(ctx, a)
	for _, c := range chats {
		if c.HasMember(b) {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryChatRepo) RemoveMember(_ context.Context, id, uid string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[id]
	if !ok {
		return ErrNotFound
	}
	members := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		if m != uid {
			members = append(members, m)
		}
	}
	c.Members = members
	c.UpdatedAt = at
	r.chats[id] = c
	return nil
}

func (r *MemoryChatRepo) AddMessage(_ context.Context, msg *models.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[msg.ChatID]
	if !ok {
		return "", ErrNotFound
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	r.messages[msg.ChatID] = append(r.messages[msg.ChatID], *msg)
	c.UpdatedAt = msg.Timestamp
	r.chats[msg.ChatID] = c
	return msg.ID, nil
}

func (r *MemoryChatRepo) ListMessages(_ context.Context, chatID string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]models.Message{}, r.messages[chatID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
