package matchRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"studybuddy/models"
)

type MemoryMatchRepo struct {
	mu      sync.RWMutex
	matches map[string]models.Match
}

func NewMemoryMatchRepo() *MemoryMatchRepo {
	return &MemoryMatchRepo{matches: make(map[string]models.Match)}
}

func (r *MemoryMatchRepo) Get(_ context.Context, id string) (*models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, nil
	}
	m = clone(m)
	return &m, nil
}

func (r *MemoryMatchRepo) Upsert(_ context.Context, id string, users []string, score int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.matches[id]
	m.MatchID = id
	m.Users = append([]string(nil), users...)
	m.Score = score
	m.UpdatedAt = at
	r.matches[id] = m
	return nil
}

func (r *MemoryMatchRepo) Confirm(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return ErrNotFound
	}
	m.Confirmed = true
	m.ConfirmedAt = &at
	r.matches[id] = m
	return nil
}

// ListByUser returns records ordered by id.
func (r *MemoryMatchRepo) ListByUser(_ context.Context, uid string) ([]models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Match
	for _, m := range r.matches {
		for _, u := range m.Users {
			if u == uid {
				out = append(out, clone(m))
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out, nil
}

// Len reports how many records are stored.
func (r *MemoryMatchRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}

func clone(m models.Match) models.Match {
	m.Users = append([]string(nil), m.Users...)
	if m.ConfirmedAt != nil {
		at := *m.ConfirmedAt
		m.ConfirmedAt = &at
	}
	return m
}
