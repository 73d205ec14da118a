package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studybuddy/database/repository"
	"studybuddy/handlers"
	"studybuddy/models"
	"studybuddy/routes"
	"studybuddy/services/chat"
	"studybuddy/services/identity"
	"studybuddy/services/matching"
	"studybuddy/services/request"
	"studybuddy/services/session"
	"studybuddy/services/user"
	"studybuddy/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	stores   *repository.Stores
	identity *identity.StaticProvider
	storage  *fakeStorage
}

type fakeStorage struct{ uploads int }

func (f *fakeStorage) UploadProfilePhoto(_ context.Context, uid string, file io.Reader) (string, error) {
	f.uploads++
	_, _ = io.Copy(io.Discard, file)
	return "https://cdn.example.com/" + uid + ".jpg", nil
}

func (f *fakeStorage) DeleteProfilePhoto(context.Context, string) error { return nil }

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
	utils.RegisterValidators()

	stores := repository.NewMemoryStores()
	provider := identity.NewStaticProvider()
	photos := &fakeStorage{}
	metrics := utils.NewCollector(utils.MetricsNamespace)

	userService := &user.DefaultUserService{Repo: stores.Users, Identity: provider, Storage: photos}
	matcher := &matching.DefaultMatchingService{Profiles: stores.Users, Matches: stores.Matches}
	sessions := &session.DefaultSessionService{Repo: stores.Sessions}
	chats := &chat.DefaultChatService{Repo: stores.Chats}
	requests := &request.DefaultRequestService{
		Repo:     stores.Requests,
		Sessions: stores.Sessions,
		Users:    stores.Users,
		Closer:   sessions,
		Chats:    chats,
	}

	hb := handlers.NewHandlerBundle(provider, metrics,
		handlers.NewAuthHandler(userService),
		handlers.NewUserHandler(userService),
		handlers.NewMatchHandler(matcher, chats, nil, metrics),
		handlers.NewSessionHandler(sessions),
		handlers.NewRequestHandler(requests, metrics),
		handlers.NewChatHandler(chats, metrics),
	)
	r := gin.New()
	r.Use(utils.ErrorHandler())
	routes.RegisterRoutes(r, hb)
	return &testServer{t: t, router: r, stores: stores, identity: provider, storage: photos}
}

func (s *testServer) seed(users ...models.User) {
	s.t.Helper()
	for i := range users {
		require.NoError(s.t, s.stores.Users.Save(context.Background(), &users[i]))
		s.identity.Register(users[i].UID, users[i].UID+"@example.com")
	}
}

func (s *testServer) do(method, path, uid string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+identity.TokenFor(uid))
	}
	return s.serve(req)
}

func (s *testServer) serve(req *http.Request) (int, envelope) {
	s.t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func seedUsers() []models.User {
	return []models.User{
		{UID: "alice", Name: "Alice", Major: "CS", StudyPreferences: []string{"quiet", "group"},
			Availability: []string{"Mon 14:00-16:00", "Wed 10:00-12:00"}},
		{UID: "bob", Name: "Bob", Major: "CS", StudyPreferences: []string{"group"},
			Availability: []string{"Mon 15:00-17:00", "Thu 09:00-11:00"}},
		{UID: "charlie", Name: "Charlie", Major: "Math", StudyPreferences: []string{"quiet"},
			Availability: []string{"Tue 10:00-12:00", "Wed 14:00-16:00"}},
	}
}

func TestRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/users/me", "/api/matches/recommendations", "/api/sessions", "/api/chats"} {
		code, _ := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
	code, _ := s.do(http.MethodGet, "/api/users/me", "stranger", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSignUpLoginLogout(t *testing.T) {
	s := newTestServer(t)
	body := map[string]interface{}{
		"email":            "dana@example.com",
		"password":         "secret1",
		"name":             "Dana",
		"major":            "Physics",
		"studyPreferences": []string{"quiet"},
		"availability":     []string{"Fri 09:00-11:00"},
	}
	code, env := s.do(http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, code, env.Error)
	created := decode[models.User](t, env)
	assert.Equal(t, "Dana", created.Name)
	require.NotEmpty(t, created.UID)

	code, _ = s.do(http.MethodPost, "/api/auth/signup", "", body)
	assert.Equal(t, http.StatusConflict, code)

	body["email"] = "eve@example.com"
	body["availability"] = []string{"Fri 11:00-09:00"}
	code, _ = s.do(http.MethodPost, "/api/auth/signup", "", body)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"idToken": identity.TokenFor(created.UID)})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, created.UID, decode[models.User](t, env).UID)

	code, _ = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"idToken": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/api/auth/logout", created.UID, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/api/users/me", created.UID, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestProfileEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.identity.Register("frank", "frank@example.com")

	code, _ := s.do(http.MethodGet, "/api/users/me", "frank", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(http.MethodPut, "/api/users/me", "frank", map[string]string{"name": "Frank"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env := s.do(http.MethodPost, "/api/users", "frank", map[string]interface{}{
		"name": "Frank", "major": "CS", "availability": []string{"Mon 09:00-10:00"},
	})
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "frank@example.com", decode[models.User](t, env).Email)

	code, env = s.do(http.MethodPut, "/api/users/me", "frank", map[string]interface{}{"major": "Math"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Math", decode[models.User](t, env).Major)

	code, _ = s.do(http.MethodPut, "/api/users/me", "frank", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = s.do(http.MethodPut, "/api/users/me", "frank", map[string]interface{}{"availability": []string{"someday"}})
	assert.Equal(t, http.StatusBadRequest, code)

	s.seed(seedUsers()...)
	code, env = s.do(http.MethodGet, "/api/users/bob", "frank", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), "email")
	assert.Equal(t, "Bob", decode[models.PublicUser](t, env).Name)
}

func TestUploadPhoto(t *testing.T) {
	s := newTestServer(t)
	s.seed(seedUsers()...)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", "me.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users/me/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+identity.TokenFor("alice"))
	code, env := s.serve(req)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "https://cdn.example.com/alice.jpg", decode[models.User](t, env).PhotoURL)
	assert.Equal(t, 1, s.storage.uploads)
}

func TestRecommendationsAndConfirm(t *testing.T) {
	s := newTestServer(t)
	s.seed(seedUsers()...)
	s.identity.Register("nobody", "nobody@example.com")

	code, env := s.do(http.MethodGet, "/api/matches/recommendations", "alice", nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	recs := decode[[]matching.Recommendation](t, env)
	require.Len(t, recs, 2)
	assert.Equal(t, "bob", recs[0].User.UID)
	assert.Equal(t, 60, recs[0].Score)
	assert.Equal(t, "charlie", recs[1].User.UID)
	assert.Equal(t, 10, recs[1].Score)

	code, _ = s.do(http.MethodGet, "/api/matches/recommendations", "nobody", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodPost, "/api/matches/confirm", "bob", map[string]string{"uid": "nobody"})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(http.MethodPost, "/api/matches/confirm", "bob", map[string]string{"uid": "bob"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, "/api/matches/confirm", "bob", map[string]string{"uid": "alice"})
	require.Equal(t, http.StatusOK, code, env.Error)
	confirmed := decode[struct {
		Match models.Match `json:"match"`
		Chat  models.Chat  `json:"chat"`
	}](t, env)
	assert.True(t, confirmed.Match.Confirmed)
	assert.Equal(t, "alice_bob", confirmed.Match.MatchID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, confirmed.Chat.Members)

	code, env = s.do(http.MethodGet, "/api/matches", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	matches := decode[[]models.Match](t, env)
	require.Len(t, matches, 2)
	assert.True(t, matches[0].Confirmed)

	code, env = s.do(http.MethodGet, "/api/matches/overlap/bob", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"day":"Mon","start":"15:00","end":"16:00"}]`, string(env.Data))
}

func TestSessionRequestChatFlow(t *testing.T) {
	s := newTestServer(t)
	s.seed(seedUsers()...)

	code, _ := s.do(http.MethodPost, "/api/sessions", "alice", map[string]interface{}{
		"course": "CS101", "availability": []string{"Mon 25:00-26:00"},
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := s.do(http.MethodPost, "/api/sessions", "alice", map[string]interface{}{
		"course": "CS101", "availability": []string{"Mon 14:00-16:00"}, "notes": "midterm prep",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	aliceSession := decode[models.StudySession](t, env)

	code, env = s.do(http.MethodPost, "/api/sessions", "charlie", map[string]interface{}{
		"course": "CS101", "availability": []string{"Mon 15:00-17:00"},
	})
	require.Equal(t, http.StatusCreated, code)
	charlieSession := decode[models.StudySession](t, env)

	code, env = s.do(http.MethodGet, "/api/sessions/"+aliceSession.ID+"/matches", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	sm := decode[[]session.SessionMatch](t, env)
	require.Len(t, sm, 1)
	assert.Equal(t, charlieSession.ID, sm[0].Session.ID)
	code, _ = s.do(http.MethodGet, "/api/sessions/"+aliceSession.ID+"/matches", "bob", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPatch, "/api/sessions/"+aliceSession.ID, "bob", map[string]string{"notes": "mine now"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/api/sessions/"+aliceSession.ID+"/join", "bob", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, "/api/sessions/"+aliceSession.ID+"/join", "bob", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(http.MethodPost, "/api/requests", "bob", map[string]string{"targetUid": "alice", "sessionId": aliceSession.ID})
	require.Equal(t, http.StatusCreated, code, env.Error)
	req := decode[models.MatchRequest](t, env)
	code, _ = s.do(http.MethodPost, "/api/requests", "bob", map[string]string{"targetUid": "alice", "sessionId": aliceSession.ID})
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(http.MethodGet, "/api/requests/incoming", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.MatchRequest](t, env), 1)

	code, _ = s.do(http.MethodPost, "/api/requests/"+req.ID+"/respond", "bob", map[string]string{"action": "accept"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodPost, "/api/requests/"+req.ID+"/respond", "alice", map[string]string{"action": "maybe"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, "/api/requests/"+req.ID+"/respond", "alice", map[string]string{"action": "accept"})
	require.Equal(t, http.StatusOK, code, env.Error)
	res := decode[request.RespondResult](t, env)
	require.NotNil(t, res.Chat)
	chatID := res.Chat.ID

	code, _ = s.do(http.MethodPost, "/api/requests/"+req.ID+"/respond", "alice", map[string]string{"action": "decline"})
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(http.MethodGet, "/api/sessions/"+aliceSession.ID, "bob", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.SessionMatched, decode[models.StudySession](t, env).Status)

	code, _ = s.do(http.MethodPost, "/api/chats/"+chatID+"/messages", "bob", map[string]string{"text": "see you monday"})
	assert.Equal(t, http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, "/api/chats/"+chatID+"/messages", "charlie", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodPost, "/api/chats/"+chatID+"/messages", "bob", map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/chats/"+chatID+"/messages", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	msgs := decode[[]models.Message](t, env)
	require.Len(t, msgs, 1)
	assert.Equal(t, "see you monday", msgs[0].Text)

	code, _ = s.do(http.MethodDelete, "/api/chats/"+chatID, "bob", nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodGet, "/api/chats", "bob", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]models.Chat](t, env))

	code, _ = s.do(http.MethodDelete, "/api/sessions/"+charlieSession.ID, "alice", nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodDelete, "/api/sessions/"+charlieSession.ID, "charlie", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/api/sessions/"+charlieSession.ID, "charlie", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	code, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "studybuddy_http_requests_total")
}
