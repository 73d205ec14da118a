package userRepo

import (
	"context"
	"errors"
	"time"

	"studybuddy/models"
)

// ErrNotFound is returned by writes that target a missing profile.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for profile data access.
// Reads return (nil, nil) when the profile does not exist.
type UserRepository interface {
	// GetByID retrieves a profile by uid.
	GetByID(ctx context.Context, uid string) (*models.User, error)
	// GetAll retrieves every stored profile.
	GetAll(ctx context.Context) ([]models.User, error)
	// Save writes the whole profile, creating it when absent.
	Save(ctx context.Context, user *models.User) error
	// Update applies a partial update and stamps updatedAt.
	Update(ctx context.Context, uid string, patch models.UserPatch, at time.Time) error
	// Delete removes a profile.
	Delete(ctx context.Context, uid string) error
}
