package handlers

import (
	"studybuddy/middleware"
	"studybuddy/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers and what the router needs to
// protect and observe them.
type HandlerBundle struct {
	Verifier middleware.TokenVerifier
	Metrics  *utils.Collector
	Health   gin.HandlerFunc

	// Auth endpoints
	SignUpHandler gin.HandlerFunc
	LoginHandler  gin.HandlerFunc
	LogoutHandler gin.HandlerFunc

	// User endpoints
	GetMeHandler       gin.HandlerFunc
	SaveProfileHandler gin.HandlerFunc
	UpdateMeHandler    gin.HandlerFunc
	GetUserHandler     gin.HandlerFunc
	UploadPhotoHandler gin.HandlerFunc

	// Match endpoints
	RecommendationsHandler gin.HandlerFunc
	ConfirmMatchHandler    gin.HandlerFunc
	ListMatchesHandler     gin.HandlerFunc
	OverlapHandler         gin.HandlerFunc

	// Study session endpoints
	CreateSessionHandler  gin.HandlerFunc
	ListOpenHandler       gin.HandlerFunc
	ListMineHandler       gin.HandlerFunc
	GetSessionHandler     gin.HandlerFunc
	JoinSessionHandler    gin.HandlerFunc
	UpdateSessionHandler  gin.HandlerFunc
	DeleteSessionHandler  gin.HandlerFunc
	SessionMatchesHandler gin.HandlerFunc

	// Match request endpoints
	SendRequestHandler gin.HandlerFunc
	IncomingHandler    gin.HandlerFunc
	RespondHandler     gin.HandlerFunc

	// Chat endpoints
	ListChatsHandler    gin.HandlerFunc
	ListMessagesHandler gin.HandlerFunc
	SendMessageHandler  gin.HandlerFunc
	LeaveChatHandler    gin.HandlerFunc
}

// NewHandlerBundle wires each handler's methods into the bundle.
func NewHandlerBundle(verifier middleware.TokenVerifier, metrics *utils.Collector,
	ah *AuthHandler, uh *UserHandler, mh *MatchHandler, sh *SessionHandler, rh *RequestHandler, ch *ChatHandler) *HandlerBundle {
	return &HandlerBundle{
		Verifier: verifier,
		Metrics:  metrics,
		Health:   HealthHandler,

		SignUpHandler: ah.SignUpHandler,
		LoginHandler:  ah.LoginHandler,
		LogoutHandler: ah.LogoutHandler,

		GetMeHandler:       uh.GetMeHandler,
		SaveProfileHandler: uh.SaveProfileHandler,
		UpdateMeHandler:    uh.UpdateMeHandler,
		GetUserHandler:     uh.GetUserHandler,
		UploadPhotoHandler: uh.UploadPhotoHandler,

		RecommendationsHandler: mh.RecommendationsHandler,
		ConfirmMatchHandler:    mh.ConfirmHandler,
		ListMatchesHandler:     mh.ListMatchesHandler,
		OverlapHandler:         mh.OverlapHandler,

		CreateSessionHandler:  sh.CreateSessionHandler,
		ListOpenHandler:       sh.ListOpenHandler,
		ListMineHandler:       sh.ListMineHandler,
		GetSessionHandler:     sh.GetSessionHandler,
		JoinSessionHandler:    sh.JoinSessionHandler,
		UpdateSessionHandler:  sh.UpdateSessionHandler,
		DeleteSessionHandler:  sh.DeleteSessionHandler,
		SessionMatchesHandler: sh.SessionMatchesHandler,

		SendRequestHandler: rh.SendRequestHandler,
		IncomingHandler:    rh.IncomingHandler,
		RespondHandler:     rh.RespondHandler,

		ListChatsHandler:    ch.ListChatsHandler,
		ListMessagesHandler: ch.ListMessagesHandler,
		SendMessageHandler:  ch.SendMessageHandler,
		LeaveChatHandler:    ch.LeaveChatHandler,
	}
}
