package sessionRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"studybuddy/models"

	"github.com/google/uuid"
)

type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]models.StudySession
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{sessions: make(map[string]models.StudySession)}
}

func (r *MemorySessionRepo) Create(_ context.Context, s *models.StudySession) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	r.sessions[s.ID] = clone(*s)
	return s.ID, nil
}

func (r *MemorySessionRepo) GetByID(_ context.Context, id string) (*models.StudySession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	s = clone(s)
	return &s, nil
}

func (r *MemorySessionRepo) ListOpen(_ context.Context) ([]models.StudySession, error) {
	return r.filter(func(s models.StudySession) bool { return s.Status == models.SessionOpen }), nil
}

func (r *MemorySessionRepo) ListByCreator(_ context.Context, uid string) ([]models.StudySession, error) {
	return r.filter(func(s models.StudySession) bool { return s.CreatorUID == uid }), nil
}

func (r *MemorySessionRepo) ListOpenByCourse(_ context.Context, course string) ([]models.StudySession, error) {
	return r.filter(func(s models.StudySession) bool {
		return s.Course == course && s.Status == models.SessionOpen
	}), nil
}

func (r *MemorySessionRepo) AddParticipant(_ context.Context, id, uid string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if !s.HasParticipant(uid) {
		s.Participants = append(s.Participants, uid)
	}
	s.UpdatedAt = at
	r.sessions[id] = s
	return nil
}

func (r *MemorySessionRepo) Update(_ context.Context, id string, patch models.SessionPatch, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return ErrNotFound
	}
	patch.Apply(&s)
	s.UpdatedAt = at
	r.sessions[id] = clone(s)
	return nil
}

func (r *MemorySessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// filter returns matching sessions newest first, ties by id.
func (r *MemorySessionRepo) filter(keep func(models.StudySession) bool) []models.StudySession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.StudySession{}
	for _, s := range r.sessions {
		if keep(s) {
			out = append(out, clone(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func clone(s models.StudySession) models.StudySession {
	s.Availability = append([]string(nil), s.Availability...)
	s.Participants = append([]string(nil), s.Participants...)
	return s
}
