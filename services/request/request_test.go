package request

import (
	"context"
	"errors"
	"testing"
	"time"

	chatRepo "studybuddy/database/repository/chat"
	requestRepo "studybuddy/database/repository/request"
	sessionRepo "studybuddy/database/repository/session"
	userRepo "studybuddy/database/repository/user"
	"studybuddy/models"
	"studybuddy/services/chat"
	"studybuddy/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pushed struct {
	uid  string
	kind string
}

type fakeNotifier struct {
	sent []pushed
	err  error
}

func (f *fakeNotifier) NotifyUser(_ context.Context, uid, _, _ string, data map[string]string) error {
	f.sent = append(f.sent, pushed{uid: uid, kind: data["type"]})
	return f.err
}

type fixture struct {
	svc      *DefaultRequestService
	sessions *session.DefaultSessionService
	chats    *chat.DefaultChatService
	notifier *fakeNotifier
	openID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	users := userRepo.NewMemoryUserRepo()
	for _, uid := range []string{"alice", "bob", "charlie"} {
		require.NoError(t, users.Save(ctx, &models.User{UID: uid, Name: uid}))
	}
	sessRepo := sessionRepo.NewMemorySessionRepo()
	sessions := &session.DefaultSessionService{Repo: sessRepo, Now: now}
	chats := &chat.DefaultChatService{Repo: chatRepo.NewMemoryChatRepo(), Now: now}
	notifier := &fakeNotifier{}

	open, err := sessions.CreateSession(ctx, "alice", session.CreateSessionInput{
		Course:       "CS101",
		Availability: []string{"Mon 14:00-16:00"},
	})
	require.NoError(t, err)

	return &fixture{
		svc: &DefaultRequestService{
			Repo:     requestRepo.NewMemoryRequestRepo(),
			Sessions: sessRepo,
			Users:    users,
			Closer:   sessions,
			Chats:    chats,
			Notifier: notifier,
			Now:      now,
		},
		sessions: sessions,
		chats:    chats,
		notifier: notifier,
		openID:   open.ID,
	}
}

func TestSendRequestValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SendRequest(ctx, "bob", SendRequestInput{TargetUID: "bob", SessionID: f.openID})
	assert.ErrorIs(t, err, ErrSelfRequest)

	_, err = f.svc.SendRequest(ctx, "bob", SendRequestInput{TargetUID: "ghost", SessionID: f.openID})
	assert.ErrorIs(t, err, ErrTargetNotFound)

	_, err = f.svc.SendRequest(ctx, "bob", SendRequestInput{TargetUID: "alice", SessionID: "missing"})
	assert.ErrorIs(t, err, ErrSessionUnavailable)

	req, err := f.svc.SendRequest(ctx, "bob", SendRequestInput{TargetUID: "alice", SessionID: f.openID})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, []pushed{{uid: "alice", kind: "match_request"}}, f.notifier.sent)

	_, err = f.svc.SendRequest(ctx, "bob", SendRequestInput{TargetUID: "alice", SessionID: f.openID})
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	// A different target for the same session is not a duplicate.
	_, err = f.svc.SendRequest(ctx, "bob", SendRequestInput{TargetUID: "charlie", SessionID: f.openID})
	assert.NoError(t, err)
}

func TestListIncomingOldestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.SendRequest(ctx, "bob", SendRequestInput{TargetUID: "alice", SessionID: f.openID})
	require.NoError(t, err)
	second, err := f.svc.SendRequest(ctx, "charlie", SendRequestInput{TargetUID: "alice", SessionID: f.openID})
	require.NoError(t, err)

	incoming, err := f.svc.ListIncoming(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	assert.Equal(t, first.ID, incoming[0].ID)
	assert.Equal(t, second.ID, incoming[1].ID)

	none, err := f.svc.ListIncoming(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRespondAcceptOpensChat(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req, err := f.svc.SendRequest(ctx, "bob", SendRequestInput{TargetUID: "alice", SessionID: f.openID})
	require.NoError(t, err)

	_, err = f.svc.Respond(ctx, req.ID, "bob", ActionAccept)
	assert.ErrorIs(t, err, ErrNotTarget)
	_, err = f.svc.Respond(ctx, req.ID, "alice", "maybe")
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = f.svc.Respond(ctx, "missing", "alice", ActionAccept)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	res, err := f.svc.Respond(ctx, req.ID, "alice", ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, res.Request.Status)
	require.NotNil(t, res.Request.RespondedAt)
	require.NotNil(t, res.Chat)
	assert.ElementsMatch(t, []string{"alice", "bob"}, res.Chat.Members)
	assert.Equal(t, f.openID, res.Chat.SessionID)

	sess, err := f.sessions.GetSession(ctx, f.openID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionMatched, sess.Status)

	chats, err := f.chats.ListChats(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, chats, 1)
	assert.Contains(t, f.notifier.sent, pushed{uid: "bob", kind: "request_accepted"})

	_, err = f.svc.Respond(ctx, req.ID, "alice", ActionDecline)
	assert.ErrorIs(t, err, ErrAlreadyResponded)

	incoming, err := f.svc.ListIncoming(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, incoming)
}

func TestRespondDeclineLeavesSessionOpen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.notifier.err = errors.New("fcm down")

	req, err := f.svc.SendRequest(ctx, "bob", SendRequestInput{TargetUID: "alice", SessionID: f.openID})
	require.NoError(t, err)

	res, err := f.svc.Respond(ctx, req.ID, "alice", ActionDecline)
	require.NoError(t, err)
	assert.Equal(t, models.RequestDeclined, res.Request.Status)
	assert.Nil(t, res.Chat)

	sess, err := f.sessions.GetSession(ctx, f.openID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionOpen, sess.Status)

	chats, err := f.chats.ListChats(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, chats)
}

type flakyChats struct {
	ChatOpener
	fail bool
}

func (f *flakyChats) EnsureChatRoom(ctx context.Context, a, b, sessionID string) (*models.Chat, error) {
	if f.fail {
		return nil, errors.New("chat store unavailable")
	}
	return f.ChatOpener.EnsureChatRoom(ctx, a, b, sessionID)
}

func TestRespondAcceptCanBeRetried(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	chats := &flakyChats{ChatOpener: f.chats, fail: true}
	f.svc.Chats = chats

	req, err := f.svc.SendRequest(ctx, "bob", SendRequestInput{TargetUID: "alice", SessionID: f.openID})
	require.NoError(t, err)

	_, err = f.svc.Respond(ctx, req.ID, "alice", ActionAccept)
	require.Error(t, err)

	incoming, err := f.svc.ListIncoming(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, incoming, 1, "a failed accept leaves the request pending")
	assert.Empty(t, f.notifier.sent)

	chats.fail = false
	res, err := f.svc.Respond(ctx, req.ID, "alice", ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, res.Request.Status)
	require.NotNil(t, res.Chat)

	sess, err := f.sessions.GetSession(ctx, f.openID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionMatched, sess.Status)
	all, err := f.chats.ListChats(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
