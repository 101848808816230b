package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/applylikeprince/backend/internal/audit"
	"github.com/applylikeprince/backend/internal/automation"
	"github.com/applylikeprince/backend/internal/config"
	"github.com/applylikeprince/backend/internal/database"
	"github.com/applylikeprince/backend/internal/handlers"
	"github.com/applylikeprince/backend/internal/logger"
	"github.com/applylikeprince/backend/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config: ", err)
	}

	zlog, err := logger.New(cfg.Development)
	if err != nil {
		log.Fatal("init logger: ", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	zlog.Info("database connection established")

	// Core services.
	auditStore := audit.NewStore(db, zlog)
	platformService := services.NewPlatformService(db, zlog)
	if err := platformService.SeedDefaults(); err != nil {
		zlog.Fatal("platform seeding failed", zap.Error(err))
	}

	aiService, err := services.NewAIService(cfg.GeminiAPIKey, zlog)
	if err != nil {
		zlog.Fatal("ai client init failed", zap.Error(err))
	}

	userService := services.NewUserService(db, cfg.JWTSecret, cfg.JWTExpiry, zlog)
	resumeService := services.NewResumeService(db, aiService, cfg.UploadDir, zlog)

	pool := automation.NewChromePool(cfg.DriverPoolSize, cfg.Headless, zlog)
	registry := automation.NewRegistry(zlog)
	automationService := automation.NewService(db, pool, registry, auditStore, zlog)

	applicationService := services.NewApplicationService(
		db, platformService, resumeService, aiService, automationService, auditStore, zlog)

	// Handlers.
	authHandler := handlers.NewAuthHandler(userService)
	resumeHandler := handlers.NewResumeHandler(resumeService, aiService)
	platformHandler := handlers.NewPlatformHandler(platformService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)

	// Router.
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		authed := api.Group("", handlers.AuthRequired(userService))
		{
			authed.GET("/users/me", authHandler.Profile)
			authed.PUT("/users/me", authHandler.UpdateProfile)

			authed.GET("/platforms", platformHandler.List)

			authed.POST("/resumes", resumeHandler.Upload)
			authed.GET("/resumes", resumeHandler.List)
			authed.GET("/resumes/:id", resumeHandler.Get)
			authed.DELETE("/resumes/:id", resumeHandler.Delete)
			authed.PATCH("/resumes/:id/primary", resumeHandler.SetPrimary)
			authed.POST("/resumes/:id/optimize", resumeHandler.Optimize)

			authed.POST("/applications/apply", applicationHandler.Apply)
			authed.GET("/applications", applicationHandler.History)
			authed.GET("/applications/recent", applicationHandler.Recent)
			authed.GET("/applications/stats", applicationHandler.Stats)
			authed.GET("/applications/:id", applicationHandler.GetByID)
			authed.GET("/applications/:id/logs", applicationHandler.AuditTrail)
			authed.PATCH("/applications/:id/status", applicationHandler.UpdateStatus)
		}
	}

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server failed to start", zap.Error(err))
	}
}
