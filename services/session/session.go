package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	sessionRepo "studybuddy/database/repository/session"
	"studybuddy/models"
	"studybuddy/services/availability"
)

func (s *DefaultSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultSessionService) CreateSession(ctx context.Context, uid string, in CreateSessionInput) (*models.StudySession, error) {
	course := strings.TrimSpace(in.Course)
	if course == "" {
		return nil, fmt.Errorf("%w: course is required", ErrInvalidSession)
	}
	if len(in.Availability) == 0 {
		return nil, fmt.Errorf("%w: availability is required", ErrInvalidSession)
	}
	if _, err := availability.ParseSchedule(in.Availability); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	now := s.now()
	sess := &models.StudySession{
		CreatorUID:   uid,
		Course:       course,
		Availability: in.Availability,
		Notes:        in.Notes,
		Participants: []string{uid},
		Status:       models.SessionOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.Repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *DefaultSessionService) GetSession(ctx context.Context, id string) (*models.StudySession, error) {
	sess, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *DefaultSessionService) ListOpen(ctx context.Context) ([]models.StudySession, error) {
	return s.Repo.ListOpen(ctx)
}

func (s *DefaultSessionService) ListMine(ctx context.Context, uid string) ([]models.StudySession, error) {
	return s.Repo.ListByCreator(ctx, uid)
}

func (s *DefaultSessionService) JoinSession(ctx context.Context, id, uid string) (*models.StudySession, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.SessionOpen {
		return nil, ErrSessionClosed
	}
	if sess.HasParticipant(uid) {
		return nil, ErrAlreadyJoined
	}
	if err := s.Repo.AddParticipant(ctx, id, uid, s.now()); err != nil {
		return nil, mapNotFound(err)
	}
	return s.GetSession(ctx, id)
}

func (s *DefaultSessionService) UpdateSession(ctx context.Context, id, uid string, patch models.SessionPatch) (*models.StudySession, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidSession)
	}
	if patch.Course != nil && strings.TrimSpace(*patch.Course) == "" {
		return nil, fmt.Errorf("%w: course cannot be blank", ErrInvalidSession)
	}
	if patch.Availability != nil {
		if len(*patch.Availability) == 0 {
			return nil, fmt.Errorf("%w: availability cannot be empty", ErrInvalidSession)
		}
		if _, err := availability.ParseSchedule(*patch.Availability); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
		}
	}
	if patch.Status != nil && !validStatus(*patch.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidSession, *patch.Status)
	}
	if _, err := s.ownedSession(ctx, id, uid); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, id, patch, s.now()); err != nil {
		return nil, mapNotFound(err)
	}
	return s.GetSession(ctx, id)
}

func (s *DefaultSessionService) DeleteSession(ctx context.Context, id, uid string) error {
	if _, err := s.ownedSession(ctx, id, uid); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// FindMatches lists other users' open sessions for the same course, most
// shared time first, then by id.
func (s *DefaultSessionService) FindMatches(ctx context.Context, id, uid string) ([]SessionMatch, error) {
	mine, err := s.ownedSession(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	mySchedule, err := availability.ParseSchedule(mine.Availability)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	candidates, err := s.Repo.ListOpenByCourse(ctx, mine.Course)
	if err != nil {
		return nil, err
	}
	out := []SessionMatch{}
	for _, c := range candidates {
		if c.ID == mine.ID || c.CreatorUID == uid {
			continue
		}
		theirs, err := availability.ParseSchedule(c.Availability)
		if err != nil {
			continue
		}
		out = append(out, SessionMatch{Session: c, Overlap: availability.OverlapSlots(mySchedule, theirs)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].Overlap) != len(out[j].Overlap) {
			return len(out[i].Overlap) > len(out[j].Overlap)
		}
		return out[i].Session.ID < out[j].Session.ID
	})
	return out, nil
}

// MarkMatched closes a session to new joiners once a request was accepted.
func (s *DefaultSessionService) MarkMatched(ctx context.Context, id string) error {
	status := models.SessionMatched
	if err := s.Repo.Update(ctx, id, models.SessionPatch{Status: &status}, s.now()); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *DefaultSessionService) ownedSession(ctx context.Context, id, uid string) (*models.StudySession, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.CreatorUID != uid {
		return nil, ErrNotCreator
	}
	return sess, nil
}

func validStatus(status string) bool {
	switch status {
	case models.SessionOpen, models.SessionMatched, models.SessionClosed:
		return true
	}
	return false
}

func mapNotFound(err error) error {
	if errors.Is(err, sessionRepo.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
