package routes

import (
	"time"

	"studybuddy/handlers"
	"studybuddy/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup, login and logout.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.SignUpHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/logout", middleware.FirebaseAuth(hb.Verifier), hb.LogoutHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.FirebaseAuth(hb.Verifier))
	{
		api.POST("", hb.SaveProfileHandler)
		api.GET("/me", hb.GetMeHandler)
		api.PUT("/me", hb.UpdateMeHandler)
		api.POST("/me/photo", hb.UploadPhotoHandler)
		api.GET("/:uid", hb.GetUserHandler)
	}
}

// RegisterMatchRoutes registers recommendation and confirmation endpoints.
func RegisterMatchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/matches")
	api.Use(middleware.FirebaseAuth(hb.Verifier))
	{
		api.GET("", hb.ListMatchesHandler)
		api.GET("/recommendations", hb.RecommendationsHandler)
		api.POST("/confirm", hb.ConfirmMatchHandler)
		api.GET("/overlap/:uid", hb.OverlapHandler)
	}
}

// RegisterSessionRoutes registers study session endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	api.Use(middleware.FirebaseAuth(hb.Verifier))
	{
		api.POST("", hb.CreateSessionHandler)
		api.GET("", hb.ListOpenHandler)
		api.GET("/mine", hb.ListMineHandler)
		api.GET("/:id", hb.GetSessionHandler)
		api.PATCH("/:id", hb.UpdateSessionHandler)
		api.DELETE("/:id", hb.DeleteSessionHandler)
		api.POST("/:id/join", hb.JoinSessionHandler)
		api.GET("/:id/matches", hb.SessionMatchesHandler)
	}
}

// RegisterRequestRoutes registers match request endpoints.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	api.Use(middleware.FirebaseAuth(hb.Verifier))
	{
		api.POST("", hb.SendRequestHandler)
		api.GET("/incoming", hb.IncomingHandler)
		api.POST("/:id/respond", hb.RespondHandler)
	}
}

// RegisterChatRoutes registers chat endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chats")
	api.Use(middleware.FirebaseAuth(hb.Verifier))
	{
		api.GET("", hb.ListChatsHandler)
		api.GET("/:id/messages", hb.ListMessagesHandler)
		api.POST("/:id/messages", hb.SendMessageHandler)
		api.DELETE("/:id", hb.LeaveChatHandler)
	}
}

// RegisterOpsRoutes registers /health and, when metrics are on, /metrics.
func RegisterOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
	if hb.Metrics != nil {
		r.GET("/metrics", hb.Metrics.Handler())
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if hb.Metrics != nil {
		r.Use(middleware.Metrics(hb.Metrics))
	}

	RegisterOpsRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterMatchRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterRequestRoutes(r, hb)
	RegisterChatRoutes(r, hb)
}
