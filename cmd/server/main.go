package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	_ "researchops/docs" // swagger docs

	"researchops/internal/ai"
	"researchops/internal/auth"
	"researchops/internal/config"
	"researchops/internal/db"
	"researchops/internal/handler"
	"researchops/internal/model"
	"researchops/internal/notify"
	"researchops/internal/repository"
	"researchops/internal/router"
	"researchops/internal/service"
)

// @title Research Q&A API
// @version 1.0
// @description User registration and login, AI-answered research questions, and realtime notification fan-out.
// @host localhost:8000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logrus.New()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Research{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	researchRepo := repository.NewResearchRepository(gormDB)

	// Initialize external collaborators
	jwtService := auth.NewJWTService(cfg.SecretKey)
	gateway := ai.NewClient(cfg.OpenAIEndpoint, cfg.OpenAIKey, cfg.OpenAIDeployment, cfg.OpenAIAPIVersion, log)
	publisher := notify.NewPublisher(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RelayAppKey, cfg.RelayAppSecret, log)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	researchService := service.NewResearchService(researchRepo, userRepo, gateway, publisher)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, publisher)
	userHandler := handler.NewUserHandler(userService)
	researchHandler := handler.NewResearchHandler(researchService)
	healthHandler := handler.NewHealthHandler(gormDB, publisher)

	// Register routes
	router.Register(
		e,
		jwtService,
		userRepo,
		authHandler,
		userHandler,
		researchHandler,
		healthHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
