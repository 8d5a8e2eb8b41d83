package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"whisper-chat/config"
	"whisper-chat/internal/handler"
	"whisper-chat/internal/middleware"
	"whisper-chat/internal/redis"
	"whisper-chat/internal/relay"
	"whisper-chat/internal/transport/httpdto"
	"whisper-chat/pkg/database"
	"whisper-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Message *handler.MessageHandler
	Relay   *relay.Handler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware(s.config.AllowedOrigin))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.MessageResponse{Message: "pong"})
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.MessageResponse{Message: err.Error()})
			return
		}
		c.JSON(http.StatusOK, httpdto.MessageResponse{Message: "healthy"})
	})

	sendOTP := []gin.HandlerFunc{handlers.Auth.SendOTP}
	login := []gin.HandlerFunc{handlers.Auth.Login}
	if limiter != nil {
		sendOTP = []gin.HandlerFunc{middleware.OTPRateLimitMiddleware(limiter), handlers.Auth.SendOTP}
		login = []gin.HandlerFunc{middleware.AuthRateLimitMiddleware(limiter), handlers.Auth.Login}
	}

	s.engine.POST("/send-otp", sendOTP...)
	s.engine.POST("/verify-otp", handlers.Auth.VerifyOTP)
	s.engine.POST("/createaccount", handlers.Auth.CreateAccount)
	s.engine.POST("/login", login...)
	s.engine.POST("/decode", handlers.Auth.Decode)

	s.engine.GET("/search-users", handlers.User.SearchUsers)
	s.engine.POST("/upload-photo", handlers.User.UploadPhoto)
	s.engine.GET("/messages/:userId/:receiverId", handlers.Message.GetConversation)

	s.engine.GET("/ws", handlers.Relay.Connect)
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
