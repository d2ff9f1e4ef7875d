package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/adapters/event"
	httpAdapter "github.com/gayathrinuthana/portfolio-api/adapters/http"
	"github.com/gayathrinuthana/portfolio-api/adapters/media_storage"
	"github.com/gayathrinuthana/portfolio-api/adapters/persistence"
	authUC "github.com/gayathrinuthana/portfolio-api/internal/application/usecase/auth"
	portfolioUC "github.com/gayathrinuthana/portfolio-api/internal/application/usecase/portfolio"
	"github.com/gayathrinuthana/portfolio-api/internal/config"
	"github.com/gayathrinuthana/portfolio-api/internal/realtime"
	"github.com/gayathrinuthana/portfolio-api/pkg/auth"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
	"github.com/gayathrinuthana/portfolio-api/pkg/tracing"
)

func main() {
	fmt.Println("Start Portfolio API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	if cfg.Jaeger.Enabled {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
		if err != nil {
			appLogger.Fatal("cannot init tracer provider", err)
		}
		defer tracing.Shutdown(tp, appLogger)
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)
	assetRepo := persistence.NewPostgresAssetRepo(dbPool, appLogger)
	tokenStore := persistence.NewRedisTokenDenylist(redisClient)

	// The mirror is the canonical read path. Seed it with everything the
	// durable store currently holds so partial updates have a base to merge
	// against from the first request on.
	seed, err := portfolioRepo.ListAll(ctx)
	if err != nil {
		appLogger.Fatal("cannot load portfolios for mirror seed", err)
	}
	mirror := persistence.NewMemoryMirror(seed)
	appLogger.Info("portfolio mirror seeded", zap.Int("documents", mirror.Len()))

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot initialize uploader", err)
	}

	// Realtime hub
	hub := realtime.NewHub(realtime.Config{
		AdminOwner:     cfg.Sync.SourceOwner,
		CustomerOwners: cfg.Sync.TargetOwners,
	}, appLogger)
	go func() {
		if err := hub.Run(ctx); err != nil && err != context.Canceled {
			appLogger.Error("realtime hub stopped", err)
		}
	}()

	syncer := portfolioUC.NewSyncCoordinator(cfg.Sync.SourceOwner, cfg.Sync.TargetOwners, mirror, appLogger)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger)
	profileUseCase := authUC.NewProfileUseCase(userRepo)
	logoutUseCase := authUC.NewLogoutUseCase(tokenStore, appLogger)

	createPortfolioUseCase := portfolioUC.NewCreatePortfolioUseCase(portfolioRepo, mirror, hub, appLogger)
	getPortfolioUseCase := portfolioUC.NewGetPortfolioUseCase(mirror, portfolioRepo)
	updatePortfolioUseCase := portfolioUC.NewUpdatePortfolioUseCase(mirror, syncer, hub, kafkaClient, appLogger)
	deletePortfolioUseCase := portfolioUC.NewDeletePortfolioUseCase(portfolioRepo, hub)
	uploadAssetUseCase := portfolioUC.NewUploadAssetUseCase(mirror, uploader, assetRepo, hub, kafkaClient, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, registerUseCase, profileUseCase, logoutUseCase, appLogger)
	portfolioHandler := httpAdapter.NewPortfolioHandler(
		createPortfolioUseCase,
		getPortfolioUseCase,
		updatePortfolioUseCase,
		deletePortfolioUseCase,
		uploadAssetUseCase,
		assetRepo,
		appLogger,
	)
	wsHandler := httpAdapter.NewWSHandler(hub, cfg.WS.AllowedOrigins, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc, tokenStore, appLogger)

	router := httpAdapter.NewRouter(authHandler, portfolioHandler, wsHandler, authMiddleware, appLogger)

	appLogger.Info("server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
