package main

import (
	"context"
	"log"

	"whisper-chat/config"
	"whisper-chat/internal/handler"
	"whisper-chat/internal/mailer"
	"whisper-chat/internal/otp"
	"whisper-chat/internal/redis"
	"whisper-chat/internal/relay"
	"whisper-chat/internal/repository"
	"whisper-chat/internal/server"
	"whisper-chat/internal/services"
	"whisper-chat/internal/storage"
	"whisper-chat/pkg/database"
	"whisper-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(l)

	// Connect to Database
	database.Connect(cfg)
	defer database.Close()

	if err := database.ApplyMigrations("migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	userRepo := repository.NewUserRepository(database.Pool)
	messageRepo := repository.NewMessageRepository(database.Pool)

	mailService := buildMailer(cfg, l)
	otpStore := otp.NewRedisStore(redisClient)

	otpService := services.NewOTPService(otpStore, mailService)
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	messageService := services.NewMessageService(messageRepo)

	var storageClient *storage.Client
	if cfg.S3Bucket != "" {
		var err error
		storageClient, err = storage.NewClient(context.Background(), storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 client: %v", err)
		}
	}
	uploadService := services.NewUploadService(storageClient)

	hub := relay.NewHub()
	relayService := relay.NewService(messageRepo, redis.NewPublisher(redisClient), l)
	bridge := relay.NewBridge(redis.NewSubscriber(redisClient), hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx)
	go func() {
		if err := bridge.Run(ctx); err != nil {
			l.Errorf("relay bridge stopped: %s", err)
		}
	}()

	limiter := redis.NewRateLimiter(redisClient, redis.DefaultRateLimitConfig())

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:    handler.NewAuthHandler(otpService, authService),
		User:    handler.NewUserHandler(userService, uploadService),
		Message: handler.NewMessageHandler(messageService),
		Relay:   relay.NewHandler(authService, relayService, hub, l),
	}, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

func buildMailer(cfg *config.Config, l *logger.Logger) mailer.Service {
	switch cfg.MailProvider {
	case "mailersend":
		return mailer.NewMailer(cfg.MailerSendAPIKey, cfg.MailFromName, cfg.MailFromEmail)
	case "smtp":
		return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFromEmail, cfg.SMTPUser, cfg.SMTPPassword)
	default:
		return mailer.NewDevMailer(l)
	}
}
