package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "lll-backend/docs"
	usercache "lll-backend/internal/cache/redis"
	"lll-backend/internal/common/config"
	"lll-backend/internal/common/logger"
	"lll-backend/internal/common/middleware"
	"lll-backend/internal/common/session"
	notifyhttp "lll-backend/internal/features/notify/delivery/http"
	notifyservice "lll-backend/internal/features/notify/service"
	userhttp "lll-backend/internal/features/user/delivery/http"
	userrepo "lll-backend/internal/features/user/repository/postgres"
	userservice "lll-backend/internal/features/user/service"
	"lll-backend/internal/platform/postgres"
	redisplatform "lll-backend/internal/platform/redis"
	"lll-backend/internal/platform/telegram"
)

// @title           LLL Mini App API
// @version         1.0
// @description     Backend for the LLL Telegram mini application: launch-payload authentication, wallet linking and bot notifications.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("lll-backend", false)
		logger.Fatal().Err(err).Msg("config load failed")
	}

	logger.Init("lll-backend", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("starting lll-backend")

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres open failed")
	}
	defer postgres.Close(db)
	logger.Info().Msg("database connection established")

	// Redis is optional: without it profile reads always hit postgres.
	var cache *usercache.UserCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisplatform.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis open failed")
		}
		defer rdb.Close()
		cache = usercache.NewUserCache(rdb, 5*time.Minute)
		logger.Info().Msg("user cache enabled")
	}

	sessions, err := session.NewManager(cfg.Session.Secret, cfg.Session.MaxAge, !cfg.Debug)
	if err != nil {
		logger.Fatal().Err(err).Msg("session manager init failed")
	}

	userRepository := userrepo.NewPostgresRepository(db)
	verifier := userservice.NewVerifier(cfg.Telegram.BotToken, cfg.Telegram.AuthExpiry)
	userSvc := userservice.NewUserService(userRepository, verifier, cache)

	tgClient := telegram.NewClient(cfg.Telegram.BotToken)
	userDirectory := usercache.NewDirectory(userRepository, cache)
	notifySvc := notifyservice.NewService(userDirectory, tgClient, cfg.Notify.WebhookSecret, cfg.Telegram.BotUsername)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Session(sessions))

	userhttp.NewUserHandler(userSvc, sessions).RegisterRoutes(v1)
	notifyhttp.NewNotifyHandler(notifySvc).RegisterRoutes(v1)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "lll-backend",
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}
