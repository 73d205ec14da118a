package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	userRepo "studybuddy/database/repository/user"
	"studybuddy/models"
	"studybuddy/services/availability"
	"studybuddy/services/storage"

	"go.uber.org/zap"
)

func (s *DefaultUserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// SignUp creates the auth account, then the profile document keyed by its uid.
func (s *DefaultUserService) SignUp(ctx context.Context, req SignUpRequest) (*models.User, error) {
	if err := validateAvailability(req.Availability); err != nil {
		return nil, err
	}
	uid, err := s.Identity.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}
	now := s.now()
	u := &models.User{
		UID:              uid,
		Name:             strings.TrimSpace(req.Name),
		Email:            req.Email,
		Major:            strings.TrimSpace(req.Major),
		StudyPreferences: nonNil(req.StudyPreferences),
		Availability:     nonNil(req.Availability),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Repo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create profile for %s: %w", uid, err)
	}
	s.scheduleRefresh(ctx, uid)
	return u, nil
}

// Login verifies an ID token and returns the matching profile.
func (s *DefaultUserService) Login(ctx context.Context, idToken string) (*models.User, error) {
	tok, err := s.Identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, tok.UID)
}

type tokenForgetter interface {
	Forget(ctx context.Context, idToken string) error
}

// Logout revokes the user's refresh tokens and drops the cached ID token.
func (s *DefaultUserService) Logout(ctx context.Context, uid, idToken string) error {
	if err := s.Identity.RevokeRefreshTokens(ctx, uid); err != nil {
		return err
	}
	if f, ok := s.Identity.(tokenForgetter); ok && idToken != "" {
		if err := f.Forget(ctx, idToken); err != nil {
			s.logger().Warn("Failed to evict cached token", zap.String("uid", uid), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultUserService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrProfileNotFound
	}
	return u, nil
}

// SaveProfile creates the caller's profile or merges into an existing one,
// keeping createdAt, email and the device token.
func (s *DefaultUserService) SaveProfile(ctx context.Context, uid, email string, in ProfileInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Major) == "" {
		return nil, fmt.Errorf("%w: name and major are required", ErrInvalidProfile)
	}
	if err := validateAvailability(in.Availability); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	now := s.now()
	u := existing
	if u == nil {
		u = &models.User{UID: uid, Email: email, CreatedAt: now}
	}
	u.Name = strings.TrimSpace(in.Name)
	u.Major = strings.TrimSpace(in.Major)
	u.StudyPreferences = nonNil(in.StudyPreferences)
	u.Availability = nonNil(in.Availability)
	if in.PhotoURL != "" {
		u.PhotoURL = in.PhotoURL
	}
	if u.Email == "" {
		u.Email = email
	}
	u.UpdatedAt = now
	if err := s.Repo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save profile for %s: %w", uid, err)
	}
	s.scheduleRefresh(ctx, uid)
	return u, nil
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, uid string, patch models.UserPatch) (*models.User, error) {
	if patch.Empty() {
		return nil, ErrEmptyUpdate
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be blank", ErrInvalidProfile)
	}
	if patch.Major != nil && strings.TrimSpace(*patch.Major) == "" {
		return nil, fmt.Errorf("%w: major cannot be blank", ErrInvalidProfile)
	}
	if patch.Availability != nil {
		if err := validateAvailability(*patch.Availability); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Update(ctx, uid, patch, s.now()); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if affectsMatching(patch) {
		s.scheduleRefresh(ctx, uid)
	}
	return s.GetProfile(ctx, uid)
}

// UploadPhoto stores the image and points the profile at it.
func (s *DefaultUserService) UploadPhoto(ctx context.Context, uid string, file io.Reader) (*models.User, error) {
	if s.Storage == nil {
		return nil, storage.ErrStorageUnavailable
	}
	if _, err := s.GetProfile(ctx, uid); err != nil {
		return nil, err
	}
	url, err := s.Storage.UploadProfilePhoto(ctx, uid, file)
	if err != nil {
		return nil, err
	}
	return s.UpdateProfile(ctx, uid, models.UserPatch{PhotoURL: &url})
}

func (s *DefaultUserService) scheduleRefresh(ctx context.Context, uid string) {
	if s.Refresher == nil {
		return
	}
	if err := s.Refresher.ScheduleRefresh(ctx, uid); err != nil {
		s.logger().Warn("Failed to schedule recommendation refresh", zap.String("uid", uid), zap.Error(err))
	}
}

func affectsMatching(p models.UserPatch) bool {
	return p.Major != nil || p.StudyPreferences != nil || p.Availability != nil
}

func validateAvailability(raw []string) error {
	if _, err := availability.ParseSchedule(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
