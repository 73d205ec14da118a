package requestRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"studybuddy/models"

	"github.com/google/uuid"
)

type MemoryRequestRepo struct {
	mu       sync.RWMutex
	requests map[string]models.MatchRequest
}

func NewMemoryRequestRepo() *MemoryRequestRepo {
	return &MemoryRequestRepo{requests: make(map[string]models.MatchRequest)}
}

func (r *MemoryRequestRepo) Create(_ context.Context, req *models.MatchRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	r.requests[req.ID] = *req
	return req.ID, nil
}

func (r *MemoryRequestRepo) GetByID(_ context.Context, id string) (*models.MatchRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (r *MemoryRequestRepo) ListPendingForTarget(_ context.Context, uid string) ([]models.MatchRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.MatchRequest{}
	for _, req := range r.requests {
		if req.TargetUID == uid && req.Status == models.RequestPending {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRequestRepo) FindPending(_ context.Context, requesterUID, targetUID, sessionID string) (*models.MatchRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, req := range r.requests {
		if req.RequesterUID == requesterUID && req.TargetUID == targetUID && req.SessionID == sessionID && req.Status == models.RequestPending {
			found := req
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryRequestRepo) SetStatus(_ context.Context, id, status string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return ErrNotFound
	}
	req.Status = status
	req.RespondedAt = &at
	r.requests[id] = req
	return nil
}
