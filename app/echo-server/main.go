package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orchidMatch/app/echo-server/router"
	"orchidMatch/business/catalog"
	"orchidMatch/business/grower"
	"orchidMatch/business/popularity"
	"orchidMatch/business/reco"
	userService "orchidMatch/business/user"
	"orchidMatch/internal/middleware"
	"orchidMatch/internal/repository/notification"
	psqlRepo "orchidMatch/internal/repository/postgres"
	redisRepo "orchidMatch/internal/repository/redis"
	"orchidMatch/internal/rest"
	"orchidMatch/pkg/config"
	"orchidMatch/pkg/database"
	redisdb "orchidMatch/pkg/database/redis"
	"orchidMatch/pkg/logger"
	"orchidMatch/pkg/metrics"
	"orchidMatch/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting OrchidMatch", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	orchidRepo := psqlRepo.NewOrchidRepository(db)
	profileRepo := psqlRepo.NewGrowerProfileRepository(db)
	popularityRepo := psqlRepo.NewPopularityRepository(db)
	recoConfigRepo := psqlRepo.NewRecoConfigRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	historyRepo := redisRepo.NewHistoryRepository(redisClient)
	featureCache := redisRepo.NewFeatureCache(redisClient, time.Duration(cfg.Reco.CacheTTLHours)*time.Hour)

	// Init service
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	catalogService := catalog.NewCatalogService(orchidRepo)
	profileService := grower.NewProfileService(profileRepo, validate)
	popularityService := popularity.NewService(popularityRepo)

	recoCfg := reco.DefaultConfig()
	recoCfg.Workers = cfg.Reco.Workers
	recoCfg.HistoryWindow = cfg.Reco.HistoryWindow
	recoService, err := reco.NewService(orchidRepo, profileRepo, popularityRepo, historyRepo, featureCache, recoConfigRepo, recoCfg)
	if err != nil {
		logger.Fatal("Failed to build recommendation service", "error", err)
	}

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	orchidHandler := rest.NewOrchidHandler(catalogService)
	profileHandler := rest.NewProfileHandler(profileService)
	recoHandler := rest.NewRecoHandler(recoService)
	recoAdminHandler := rest.NewRecoAdminHandler(recoConfigRepo, popularityService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupOrchidRoutes(api, orchidHandler, authRequired, adminOnly)
	router.SetupProfileRoutes(api, profileHandler, authRequired)
	router.SetupRecoRoutes(api, recoHandler, authRequired)
	router.SetupRecoAdminRoutes(api, recoAdminHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
