package notification

import (
	"context"
	"errors"
	"testing"

	userRepo "studybuddy/database/repository/user"
	"studybuddy/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*messaging.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.sent = append(r.sent, m)
	return "projects/test/messages/1", nil
}

func TestNotifyUser(t *testing.T) {
	ctx := context.Background()
	users := userRepo.NewMemoryUserRepo()
	require.NoError(t, users.Save(ctx, &models.User{UID: "alice", FCMToken: "fcm-alice"}))
	require.NoError(t, users.Save(ctx, &models.User{UID: "bob"}))

	sender := &recordingSender{}
	svc := &DefaultNotificationService{Users: users, Sender: sender}

	require.NoError(t, svc.NotifyUser(ctx, "alice", "New match", "Bob confirmed", map[string]string{"type": "match"}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "fcm-alice", sender.sent[0].Token)
	assert.Equal(t, "New match", sender.sent[0].Notification.Title)
	assert.Equal(t, "match", sender.sent[0].Data["type"])

	require.NoError(t, svc.NotifyUser(ctx, "bob", "t", "b", nil))
	require.NoError(t, svc.NotifyUser(ctx, "ghost", "t", "b", nil))
	assert.Len(t, sender.sent, 1)

	sender.err = errors.New("unavailable")
	assert.Error(t, svc.NotifyUser(ctx, "alice", "t", "b", nil))
}

func TestNotifyUserDisabled(t *testing.T) {
	svc := &DefaultNotificationService{Users: userRepo.NewMemoryUserRepo()}
	assert.NoError(t, svc.NotifyUser(context.Background(), "alice", "t", "b", nil))
}
