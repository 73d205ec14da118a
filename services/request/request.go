package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	requestRepo "studybuddy/database/repository/request"
	"studybuddy/models"

	"go.uber.org/zap"
)

func (s *DefaultRequestService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultRequestService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultRequestService) SendRequest(ctx context.Context, requesterUID string, in SendRequestInput) (*models.MatchRequest, error) {
	if in.TargetUID == requesterUID {
		return nil, ErrSelfRequest
	}
	target, err := s.Users.GetByID(ctx, in.TargetUID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrTargetNotFound
	}
	sess, err := s.Sessions.GetByID(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Status != models.SessionOpen {
		return nil, ErrSessionUnavailable
	}
	dup, err := s.Repo.FindPending(ctx, requesterUID, in.TargetUID, in.SessionID)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, ErrDuplicateRequest
	}

	req := &models.MatchRequest{
		RequesterUID: requesterUID,
		TargetUID:    in.TargetUID,
		SessionID:    in.SessionID,
		Status:       models.RequestPending,
		CreatedAt:    s.now(),
	}
	if _, err := s.Repo.Create(ctx, req); err != nil {
		return nil, err
	}
	s.notify(ctx, in.TargetUID, "New study request", "Someone wants to study "+sess.Course+" with you",
		map[string]string{"type": "match_request", "requestId": req.ID})
	return req, nil
}

func (s *DefaultRequestService) ListIncoming(ctx context.Context, uid string) ([]models.MatchRequest, error) {
	return s.Repo.ListPendingForTarget(ctx, uid)
}

// Respond records the target's answer. Accepting marks the session matched
// and opens a chat between requester and target.
func (s *DefaultRequestService) Respond(ctx context.Context, id, uid, action string) (*RespondResult, error) {
	if action != ActionAccept && action != ActionDecline {
		return nil, ErrInvalidAction
	}
	req, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.TargetUID != uid {
		return nil, ErrNotTarget
	}
	if req.Status != models.RequestPending {
		return nil, ErrAlreadyResponded
	}

	result := &RespondResult{Request: req}
	status := models.RequestDeclined
	if action == ActionAccept {
		status = models.RequestAccepted
		// The request stays pending until the session and chat are in place.
		if err := s.Closer.MarkMatched(ctx, req.SessionID); err != nil {
			return nil, fmt.Errorf("failed to close session %s: %w", req.SessionID, err)
		}
		chat, err := s.Chats.EnsureChatRoom(ctx, req.TargetUID, req.RequesterUID, req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to open chat: %w", err)
		}
		result.Chat = chat
	}

	at := s.now()
	if err := s.Repo.SetStatus(ctx, id, status, at); err != nil {
		if errors.Is(err, requestRepo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	req.Status = status
	req.RespondedAt = &at

	if result.Chat != nil {
		s.notify(ctx, req.RequesterUID, "Request accepted", "Your study request was accepted",
			map[string]string{"type": "request_accepted", "chatId": result.Chat.ID})
	}
	return result, nil
}

func (s *DefaultRequestService) notify(ctx context.Context, uid, title, body string, data map[string]string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyUser(ctx, uid, title, body, data); err != nil {
		s.logger().Warn("Push notification failed", zap.String("uid", uid), zap.Error(err))
	}
}
