package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/access"
	"github.com/linkup-social/linkup/internal/api"
	"github.com/linkup-social/linkup/internal/cache"
	"github.com/linkup-social/linkup/internal/config"
	"github.com/linkup-social/linkup/internal/db"
	"github.com/linkup-social/linkup/internal/events"
	"github.com/linkup-social/linkup/internal/observ"
	"github.com/linkup-social/linkup/internal/repository"
	"github.com/linkup-social/linkup/internal/repository/memory"
	"github.com/linkup-social/linkup/internal/repository/postgres"
	redisrepo "github.com/linkup-social/linkup/internal/repository/redis"
	"github.com/linkup-social/linkup/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Store wiring. Startup has no parent deadline, so Background() is
	// the right root context for the connection pools.
	var (
		profileRepo    repository.ProfileRepository
		connectionRepo repository.ConnectionRepository
		messageRepo    repository.MessageRepository
		callRepo       repository.CallRepository
		credentialRepo repository.CredentialRepository
		healthCheck    = func(ctx context.Context) error { return nil }
	)

	switch cfg.Store {
	case config.StorePostgres:
		database, err := db.New(context.Background(), cfg.DatabaseURL, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer database.Close()
		if err := database.Migrate(context.Background()); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		pool := database.Pool()
		profileRepo = postgres.NewProfileStore(pool)
		connectionRepo = postgres.NewConnectionStore(pool)
		messageRepo = postgres.NewMessageStore(pool)
		credentialRepo = postgres.NewCredentialStore(pool)
		healthCheck = database.Health

	default:
		profileRepo = memory.NewProfileStore()
		connectionRepo = memory.NewConnectionStore()
		messageRepo = memory.NewMessageStore()
		credentialRepo = memory.NewCredentialStore()
	}

	// Call state is transient. It lives in Redis when configured (so
	// replicas share it and it survives restarts), in memory otherwise.
	if cfg.RedisURL != "" {
		client, err := cache.New(context.Background(), cfg.RedisURL, logger)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer client.Close()
		callRepo = redisrepo.NewCallStore(client)
	} else {
		callRepo = memory.NewCallStore()
	}

	guard := access.NewGuard(profileRepo, connectionRepo)
	hub := events.NewHub()

	profileSvc := service.NewProfileService(profileRepo, guard, logger)
	connectionSvc := service.NewConnectionService(connectionRepo, guard, hub, logger)
	messageSvc := service.NewMessageService(messageRepo, guard, hub, logger)
	callSvc := service.NewCallService(callRepo, guard, hub, logger)

	router := api.NewRouter(cfg.JWTSecret, api.Handlers{
		Auth:       api.NewAuthHandler(credentialRepo, cfg.JWTSecret, logger),
		Profile:    api.NewProfileHandler(profileSvc, logger),
		Connection: api.NewConnectionHandler(connectionSvc, logger),
		Message:    api.NewMessageHandler(messageSvc, logger),
		Call:       api.NewCallHandler(callSvc, logger),
		WS:         api.NewWSHandler(hub, logger),
		HealthCheck: func(c *gin.Context) {
			if err := healthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok", "store": cfg.Store})
		},
	}, logger)

	logger.Info("starting LinkUp",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("store", cfg.Store),
	)
	return router.Run(":" + cfg.Port)
}
