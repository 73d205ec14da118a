package sessionRepo

import (
	"context"
	"errors"
	"time"

	"studybuddy/models"
)

var ErrNotFound = errors.New("session not found")

// SessionRepository persists study sessions.
type SessionRepository interface {
	// Create stores a new session and returns its id.
	Create(ctx context.Context, s *models.StudySession) (string, error)
	// GetByID returns the session or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.StudySession, error)
	// ListOpen returns open sessions, newest first.
	ListOpen(ctx context.Context) ([]models.StudySession, error)
	// ListByCreator returns sessions created by uid, newest first.
	ListByCreator(ctx context.Context, uid string) ([]models.StudySession, error)
	// ListOpenByCourse returns open sessions for a course, newest first.
	ListOpenByCourse(ctx context.Context, course string) ([]models.StudySession, error)
	// AddParticipant appends uid to participants if missing.
	AddParticipant(ctx context.Context, id, uid string, at time.Time) error
	// Update applies a partial update and stamps updatedAt.
	Update(ctx context.Context, id string, patch models.SessionPatch, at time.Time) error
	Delete(ctx context.Context, id string) error
}
