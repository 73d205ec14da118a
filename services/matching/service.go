package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	matchRepo "studybuddy/database/repository/match"
	"studybuddy/models"
	"studybuddy/services/availability"

	"go.uber.org/zap"
)

// ProfileStore is the read side of the profile collection the engine needs.
// GetAll is the single place the full candidate pool is loaded.
type ProfileStore interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
}

// MatchStore persists Match Records.
type MatchStore interface {
	Get(ctx context.Context, id string) (*models.Match, error)
	Upsert(ctx context.Context, id string, users []string, score int, at time.Time) error
	Confirm(ctx context.Context, id string, at time.Time) error
	ListByUser(ctx context.Context, uid string) ([]models.Match, error)
}

// Recommendation is one ranked candidate for the requester.
// AvailabilityMalformed marks a candidate whose stored availability could not
// be parsed; its score carries no overlap bonus.
type Recommendation struct {
	MatchID               string            `json:"matchId"`
	Score                 int               `json:"score"`
	User                  models.PublicUser `json:"user"`
	AvailabilityMalformed bool              `json:"availabilityMalformed,omitempty"`
}

// MatchingService ranks study partners and manages Match Records.
type MatchingService interface {
	GenerateRecommendations(ctx context.Context, uid string) ([]Recommendation, error)
	ConfirmMatch(ctx context.Context, uidA, uidB string) (*models.Match, error)
	ListMatches(ctx context.Context, uid string) ([]models.Match, error)
	SuggestTimes(ctx context.Context, uidA, uidB string) ([]availability.Slot, error)
}

// DefaultMatchingService is the production implementation.
type DefaultMatchingService struct {
	Profiles ProfileStore
	Matches  MatchStore
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultMatchingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultMatchingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// GenerateRecommendations scores every other user against uid, upserts a
// Match Record for each positive score and returns them ranked by score
// descending, ties by ascending candidate uid. Upserts run in order; the
// first store failure stops the scan and earlier upserts stay committed.
func (s *DefaultMatchingService) GenerateRecommendations(ctx context.Context, uid string) ([]Recommendation, error) {
	log := s.logger().With(zap.String("uid", uid))

	me, err := s.Profiles.GetByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: load profile %s: %w", ErrStoreFailure, uid, err)
	}
	if me == nil {
		return nil, ErrProfileNotFound
	}
	mine, err := ProfileFromUser(*me)
	if err != nil {
		return nil, err
	}

	pool, err := s.Profiles.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load candidates: %w", ErrStoreFailure, err)
	}

	recs := []Recommendation{}
	malformed := 0
	for _, candidate := range pool {
		if candidate.UID == uid {
			continue
		}
		theirs, err := ProfileFromUser(candidate)
		badAvailability := err != nil
		if badAvailability {
			malformed++
			log.Warn("Candidate availability is malformed, scoring without overlap",
				zap.String("candidate", candidate.UID), zap.Error(err))
			theirs = profileWithoutAvailability(candidate)
		}
		score := Score(mine, theirs)
		if score <= 0 {
			continue
		}
		id := CanonicalMatchID(uid, candidate.UID)
		if err := s.Matches.Upsert(ctx, id, canonicalPair(uid, candidate.UID), score, s.now()); err != nil {
			return nil, fmt.Errorf("%w: upsert match %s: %w", ErrStoreFailure, id, err)
		}
		recs = append(recs, Recommendation{
			MatchID:               id,
			Score:                 score,
			User:                  candidate.Public(),
			AvailabilityMalformed: badAvailability,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].User.UID < recs[j].User.UID
	})
	log.Debug("Generated recommendations", zap.Int("candidates", len(pool)),
		zap.Int("matches", len(recs)), zap.Int("malformed", malformed))
	return recs, nil
}

// ConfirmMatch marks the pair's Match Record confirmed. Confirming again
// re-stamps confirmedAt.
func (s *DefaultMatchingService) ConfirmMatch(ctx context.Context, uidA, uidB string) (*models.Match, error) {
	if uidA == uidB {
		return nil, ErrSelfMatch
	}
	id := CanonicalMatchID(uidA, uidB)
	existing, err := s.Matches.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: load match %s: %w", ErrStoreFailure, id, err)
	}
	if existing == nil {
		return nil, ErrMatchNotFound
	}

	at := s.now()
	if err := s.Matches.Confirm(ctx, id, at); err != nil {
		if errors.Is(err, matchRepo.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("%w: confirm match %s: %w", ErrStoreFailure, id, err)
	}
	existing.Confirmed = true
	existing.ConfirmedAt = &at
	return existing, nil
}

// ListMatches returns the caller's Match Records, best score first.
func (s *DefaultMatchingService) ListMatches(ctx context.Context, uid string) ([]models.Match, error) {
	matches, err := s.Matches.ListByUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: list matches for %s: %w", ErrStoreFailure, uid, err)
	}
	if matches == nil {
		matches = []models.Match{}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].MatchID < matches[j].MatchID
	})
	return matches, nil
}

// SuggestTimes returns the overlapping sub-intervals of two users' availability.
func (s *DefaultMatchingService) SuggestTimes(ctx context.Context, uidA, uidB string) ([]availability.Slot, error) {
	a, err := s.loadProfile(ctx, uidA)
	if err != nil {
		return nil, err
	}
	b, err := s.loadProfile(ctx, uidB)
	if err != nil {
		return nil, err
	}
	return availability.OverlapSlots(a.Availability, b.Availability), nil
}

func (s *DefaultMatchingService) loadProfile(ctx context.Context, uid string) (Profile, error) {
	u, err := s.Profiles.GetByID(ctx, uid)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: load profile %s: %w", ErrStoreFailure, uid, err)
	}
	if u == nil {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, uid)
	}
	return ProfileFromUser(*u)
}
