package session

import (
	"context"
	"time"

	sessionRepo "studybuddy/database/repository/session"
	"studybuddy/models"
	"studybuddy/services/availability"
)

// CreateSessionInput is the body of a new session.
type CreateSessionInput struct {
	Course       string   `json:"course" binding:"required"`
	Availability []string `json:"availability" binding:"required,min=1,dive,slot"`
	Notes        string   `json:"notes"`
}

// SessionMatch is another open session of the same course with the times
// both sessions share.
type SessionMatch struct {
	Session models.StudySession `json:"session"`
	Overlap []availability.Slot `json:"overlap"`
}

type SessionService interface {
	CreateSession(ctx context.Context, uid string, in CreateSessionInput) (*models.StudySession, error)
	GetSession(ctx context.Context, id string) (*models.StudySession, error)
	ListOpen(ctx context.Context) ([]models.StudySession, error)
	ListMine(ctx context.Context, uid string) ([]models.StudySession, error)
	JoinSession(ctx context.Context, id, uid string) (*models.StudySession, error)
	UpdateSession(ctx context.Context, id, uid string, patch models.SessionPatch) (*models.StudySession, error)
	DeleteSession(ctx context.Context, id, uid string) error
	FindMatches(ctx context.Context, id, uid string) ([]SessionMatch, error)
	MarkMatched(ctx context.Context, id string) error
}

type DefaultSessionService struct {
	Repo sessionRepo.SessionRepository
	Now  func() time.Time
}
