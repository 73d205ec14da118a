package user

import (
	"context"
	"io"
	"time"

	userRepo "studybuddy/database/repository/user"
	"studybuddy/models"
	"studybuddy/services/identity"
	"studybuddy/services/storage"

	"go.uber.org/zap"
)

// SignUpRequest creates both the auth account and the profile.
type SignUpRequest struct {
	Email            string   `json:"email" binding:"required,email"`
	Password         string   `json:"password" binding:"required,min=6"`
	Name             string   `json:"name" binding:"required"`
	Major            string   `json:"major" binding:"required"`
	StudyPreferences []string `json:"studyPreferences"`
	Availability     []string `json:"availability" binding:"omitempty,dive,slot"`
}

// ProfileInput creates or merges the caller's own profile.
type ProfileInput struct {
	Name             string   `json:"name" binding:"required"`
	Major            string   `json:"major" binding:"required"`
	StudyPreferences []string `json:"studyPreferences"`
	Availability     []string `json:"availability" binding:"omitempty,dive,slot"`
	PhotoURL         string   `json:"photoUrl"`
}

// RefreshScheduler queues a recommendation recompute after profile changes.
type RefreshScheduler interface {
	ScheduleRefresh(ctx context.Context, uid string) error
}

type UserService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*models.User, error)
	Login(ctx context.Context, idToken string) (*models.User, error)
	Logout(ctx context.Context, uid, idToken string) error
	GetProfile(ctx context.Context, uid string) (*models.User, error)
	SaveProfile(ctx context.Context, uid, email string, in ProfileInput) (*models.User, error)
	UpdateProfile(ctx context.Context, uid string, patch models.UserPatch) (*models.User, error)
	UploadPhoto(ctx context.Context, uid string, file io.Reader) (*models.User, error)
}

// DefaultUserService is the production implementation. Storage and
// Refresher are optional.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Identity  identity.Provider
	Storage   storage.StorageService
	Refresher RefreshScheduler
	Logger    *zap.Logger
	Now       func() time.Time
}
