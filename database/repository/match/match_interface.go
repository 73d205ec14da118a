package matchRepo

import (
	"context"
	"errors"
	"time"

	"studybuddy/models"
)

var ErrNotFound = errors.New("match not found")

// MatchRepository persists Match Records keyed by canonical pair id.
type MatchRepository interface {
	// Get returns the record or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*models.Match, error)
	// Upsert writes users, score and updatedAt. An existing confirmed flag is
	// left untouched; a new record starts unconfirmed.
	Upsert(ctx context.Context, id string, users []string, score int, at time.Time) error
	// Confirm sets confirmed and stamps confirmedAt. Missing records yield ErrNotFound.
	Confirm(ctx context.Context, id string, at time.Time) error
	// ListByUser returns every record the user belongs to.
	ListByUser(ctx context.Context, uid string) ([]models.Match, error)
}
