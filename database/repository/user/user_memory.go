package userRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"studybuddy/models"
)

// MemoryUserRepo keeps profiles in process memory. Used for local runs and tests.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]models.User)}
}

func (r *MemoryUserRepo) GetByID(_ context.Context, uid string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[uid]
	if !ok {
		return nil, nil
	}
	u = clone(u)
	return &u, nil
}

// GetAll returns profiles ordered by uid.
func (r *MemoryUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

func (r *MemoryUserRepo) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.UID] = clone(*user)
	return nil
}

func (r *MemoryUserRepo) Update(_ context.Context, uid string, patch models.UserPatch, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return ErrNotFound
	}
	patch.Apply(&u)
	u.UpdatedAt = at
	r.users[uid] = clone(u)
	return nil
}

func (r *MemoryUserRepo) Delete(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, uid)
	return nil
}

func clone(u models.User) models.User {
	u.StudyPreferences = append([]string(nil), u.StudyPreferences...)
	u.Availability = append([]string(nil), u.Availability...)
	return u
}
