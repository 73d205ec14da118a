package requestRepo

import (
	"context"
	"errors"
	"time"

	"studybuddy/models"
)

var ErrNotFound = errors.New("match request not found")

// RequestRepository persists match requests.
type RequestRepository interface {
	Create(ctx context.Context, req *models.MatchRequest) (string, error)
	// GetByID returns the request or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.MatchRequest, error)
	// ListPendingForTarget returns pending requests addressed to uid, oldest first.
	ListPendingForTarget(ctx context.Context, uid string) ([]models.MatchRequest, error)
	// FindPending returns a pending request from requester to target on a session, or (nil, nil).
	FindPending(ctx context.Context, requesterUID, targetUID, sessionID string) (*models.MatchRequest, error)
	// SetStatus records a response.
	SetStatus(ctx context.Context, id, status string, at time.Time) error
}
