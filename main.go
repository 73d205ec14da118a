package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"studybuddy/config"
	"studybuddy/cron"
	"studybuddy/database"
	"studybuddy/database/repository"
	"studybuddy/handlers"
	"studybuddy/middleware"
	"studybuddy/routes"
	"studybuddy/services/chat"
	"studybuddy/services/identity"
	"studybuddy/services/matching"
	"studybuddy/services/notification"
	"studybuddy/services/request"
	"studybuddy/services/session"
	"studybuddy/services/tasks"
	"studybuddy/services/user"
	"studybuddy/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()
	utils.RegisterValidators()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var fb *utils.FirebaseClients
	if cfg.NeedsFirebase() || cfg.NotificationsEnabled {
		var err error
		fb, err = utils.InitFirebase(ctx, cfg)
		if err != nil {
			if cfg.NeedsFirebase() {
				logger.Fatal("main: failed to initialize firebase", zap.Error(err))
			}
			logger.Warn("main: firebase unavailable, push notifications disabled", zap.Error(err))
		}
	}
	defer fb.Close()

	healthChecks := map[string]utils.HealthCheck{}

	// repositories.
	var stores *repository.Stores
	var mongoClient *mongo.Client
	switch cfg.DBDriver {
	case config.DriverFirestore:
		stores = repository.NewFirestoreStores(fb.Firestore)
		healthChecks["firestore"] = func(ctx context.Context) error {
			_, err := fb.Firestore.Collection(database.UsersCollection).Limit(1).Documents(ctx).GetAll()
			return err
		}
	case config.DriverMongo:
		var err error
		mongoClient, err = database.ConnectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("main: mongo connection failed", zap.Error(err))
		}
		defer mongoClient.Disconnect(context.Background())
		stores, err = repository.NewMongoStores(ctx, mongoClient.Database(cfg.DatabaseName))
		if err != nil {
			logger.Fatal("main: failed to prepare mongo collections", zap.Error(err))
		}
		healthChecks["mongo"] = func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }
	default:
		logger.Warn("main: using in-memory storage; data is lost on restart")
		stores = repository.NewMemoryStores()
	}

	// identity.
	var provider identity.Provider
	if cfg.AuthDriver == config.AuthFirebase {
		provider = identity.NewFirebaseProvider(fb.Auth)
	} else {
		logger.Warn("main: static auth enabled; tokens are token-<uid>")
		provider = identity.NewStaticProvider()
	}
	var verifier middleware.TokenVerifier = provider
	if authCache := utils.InitAuthCache(cfg, logger); authCache != nil {
		defer authCache.Close()
		cached := identity.NewCachedProvider(provider, authCache, cfg.AuthCacheTTL, logger)
		provider, verifier = cached, cached
		healthChecks["redis"] = func(ctx context.Context) error { return authCache.Ping(ctx).Err() }
	}

	// supporting services.
	notifier := &notification.DefaultNotificationService{Users: stores.Users, Logger: logger}
	if fb != nil && fb.Messaging != nil {
		notifier.Sender = fb.Messaging
	}
	photoStorage, err := utils.Cloudinary(cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize cloudinary storage service", zap.Error(err))
	}
	metrics := utils.NewCollector(utils.MetricsNamespace)

	var queue *asynq.Client
	if cfg.WorkerEnabled {
		queue = asynq.NewClient(cron.RedisOpt(cfg))
		defer queue.Close()
	}

	// domain services.
	userService := &user.DefaultUserService{
		Repo:     stores.Users,
		Identity: provider,
		Storage:  photoStorage,
		Logger:   logger,
	}
	if queue != nil {
		userService.Refresher = &tasks.Enqueuer{Client: queue}
	}
	matcher := &matching.DefaultMatchingService{
		Profiles: stores.Users,
		Matches:  stores.Matches,
		Logger:   logger,
	}
	sessionService := &session.DefaultSessionService{Repo: stores.Sessions}
	chatService := &chat.DefaultChatService{Repo: stores.Chats, Notifier: notifier, Logger: logger}
	requestService := &request.DefaultRequestService{
		Repo:     stores.Requests,
		Sessions: stores.Sessions,
		Users:    stores.Users,
		Closer:   sessionService,
		Chats:    chatService,
		Notifier: notifier,
		Logger:   logger,
	}

	handlerBundle := handlers.NewHandlerBundle(verifier, metrics,
		handlers.NewAuthHandler(userService),
		handlers.NewUserHandler(userService),
		handlers.NewMatchHandler(matcher, chatService, notifier, metrics),
		handlers.NewSessionHandler(sessionService),
		handlers.NewRequestHandler(requestService, metrics),
		handlers.NewChatHandler(chatService, metrics),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, cfg.RateLimitBurst))
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(ctx, healthChecks, utils.HealthCheckInterval, logger)

	var worker *asynq.Server
	if cfg.WorkerEnabled {
		worker = cron.StartRefreshWorker(ctx, cfg, matcher, logger, metrics)
	}

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}
	logger.Sugar().Infof("Starting server on %s (db=%s, auth=%s)...", srv.Addr, cfg.DBDriver, cfg.AuthDriver)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), utils.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	logger.Info("main: server stopped gracefully")
}
