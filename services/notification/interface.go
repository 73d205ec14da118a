package notification

import (
	"context"
	"fmt"

	"studybuddy/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends push notifications to users.
type NotificationService interface {
	NotifyUser(ctx context.Context, uid, title, body string, data map[string]string) error
}

// Sender is the subset of *messaging.Client used here.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// ProfileLookup resolves a user's FCM token.
type ProfileLookup interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
}

// DefaultNotificationService pushes through FCM. A nil Sender disables pushes.
type DefaultNotificationService struct {
	Users  ProfileLookup
	Sender Sender
	Logger *zap.Logger
}

// NotifyUser looks up the user's FCM token and sends a push. Users without a
// token are skipped silently.
func (s *DefaultNotificationService) NotifyUser(ctx context.Context, uid, title, body string, data map[string]string) error {
	if s.Sender == nil {
		return nil
	}
	u, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		return fmt.Errorf("NotifyUser: could not load user %s: %w", uid, err)
	}
	if u == nil || u.FCMToken == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
	id, err := s.Sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("NotifyUser: failed to send FCM message: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Debug("Push sent", zap.String("uid", uid), zap.String("messageId", id))
	}
	return nil
}
