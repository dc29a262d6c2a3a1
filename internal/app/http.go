package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/prateek4576/mytodoapp/internal/auth"
	authhandler "github.com/prateek4576/mytodoapp/internal/auth/handler"
	"github.com/prateek4576/mytodoapp/internal/auth/password"
	"github.com/prateek4576/mytodoapp/internal/auth/provider"
	"github.com/prateek4576/mytodoapp/internal/auth/provider/google"
	"github.com/prateek4576/mytodoapp/internal/auth/resolver"
	"github.com/prateek4576/mytodoapp/internal/config"
	"github.com/prateek4576/mytodoapp/internal/logger"
	"github.com/prateek4576/mytodoapp/internal/middleware"
	"github.com/prateek4576/mytodoapp/internal/session"
	taskhandler "github.com/prateek4576/mytodoapp/internal/task/handler"
	taskpostgres "github.com/prateek4576/mytodoapp/internal/task/postgres"
	userpostgres "github.com/prateek4576/mytodoapp/internal/user/postgres"
)

func setupHTTP(ctx context.Context, cfg *config.Config, log *logger.Logger) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	userStore := userpostgres.NewStore(infra.DB)
	taskStore := taskpostgres.NewStore(infra.DB)
	sessionStore := session.NewRedisStore(infra.Redis.Client)

	serializer := auth.NewSerializer(userStore)
	passwordStrategy := password.NewStrategy(userStore, log)
	identityResolver := resolver.NewStoreResolver(userStore, log)

	googleProvider, err := google.New(
		ctx,
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		cfg.Google.RedirectURL,
		log,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(googleProvider)

	authHandler := authhandler.NewHandler(
		passwordStrategy,
		registry,
		identityResolver,
		serializer,
		sessionStore,
		userStore,
		log,
	)

	taskHandler := taskhandler.NewHandler(taskStore, log)

	gate := middleware.NewSessionGate(sessionStore, serializer, log)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/public", "./web/public")

	// the serializer runs on every request carrying a session token
	router.Use(gate.Identify())

	// ----------------------------
	// Public routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected routes
	// ----------------------------

	protected := router.Group("/")
	protected.Use(gate.RequireAuth())
	taskHandler.RegisterRoutes(protected)

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
