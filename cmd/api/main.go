package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"flechazo/internal/config"
	"flechazo/internal/db"
	"flechazo/internal/email"
	apihttp "flechazo/internal/http"
	"flechazo/internal/llm"
	"flechazo/internal/repository"
	"flechazo/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	traitRepo := repository.NewPgTraitRepository(pool)
	matchRepo := repository.NewPgMatchRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	notificationRepo := repository.NewPgNotificationRepository(pool)
	simulationRepo := repository.NewPgSimulationRepository(pool)

	var llmClient llm.LLMClient
	if cfg.LLMAPIKey != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, zap.NewStdLog(logger))
	} else {
		logger.Warn("llm api key not configured, avatar simulations will fail")
		llmClient = &llm.MockClient{Err: service.ErrSimulationDisabled}
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	simLimiter := service.NewSimulationRateLimiter(time.Hour, cfg.AvatarSimMaxPerHour)
	var tokenStore service.RefreshTokenStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			simLimiter = service.NewRedisSimulationRateLimiter(redisClient, time.Hour, cfg.AvatarSimMaxPerHour)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	notificationSvc := service.NewNotificationService(notificationRepo)
	userSvc := service.NewUserService(logger, userRepo)
	matchSvc := service.NewMatchService(logger, userRepo, profileRepo, traitRepo, matchRepo, notificationSvc, emailSender)
	messageSvc := service.NewMessageService(logger, messageRepo, matchRepo, notificationSvc)
	compatSvc := service.NewCompatibilityService(logger, profileRepo, traitRepo, simulationRepo)
	avatarSvc := service.NewAvatarService(
		logger,
		cfg.AvatarSimEnabled,
		llmClient,
		profileRepo,
		traitRepo,
		matchRepo,
		messageRepo,
		simulationRepo,
		notificationSvc,
		simLimiter,
	)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	profileHandler := apihttp.NewProfileHandler(logger, profileRepo, traitRepo)
	matchHandler := apihttp.NewMatchHandler(logger, matchSvc)
	messageHandler := apihttp.NewMessageHandler(logger, messageSvc)
	notificationHandler := apihttp.NewNotificationHandler(logger, notificationSvc)
	simulationHandler := apihttp.NewSimulationHandler(logger, avatarSvc, simulationRepo)
	compatHandler := apihttp.NewCompatibilityHandler(logger, compatSvc)
	router := apihttp.NewRouter(logger, jwtSvc, userHandler, profileHandler, matchHandler, messageHandler, notificationHandler, simulationHandler, compatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
