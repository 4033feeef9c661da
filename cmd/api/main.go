package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openrecruit/ats-backend/internal/config"
	"github.com/openrecruit/ats-backend/internal/database"
	"github.com/openrecruit/ats-backend/internal/handlers"
	"github.com/openrecruit/ats-backend/internal/services"
)

func main() {
	// 1. Configuration (.env + environment)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// 2. Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	// 3. Database Connection + Migrations
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	// 4. Core Services
	candidateService := services.NewCandidateService(db, logger)
	jobService := services.NewJobService(db, logger)
	applicationService := services.NewApplicationService(db, logger)
	statusService := services.NewStatusService(db, logger)
	statsService := services.NewStatsService(db, logger)

	var emailService services.EmailNotifier
	if cfg.EmailMock || cfg.SMTPHost == "" {
		emailService = services.NewMockEmailService(logger)
	} else {
		emailService = services.NewSMTPEmailService(logger, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	}

	// 5. Handlers
	applicationHandler := handlers.NewApplicationHandler(applicationService, statusService, statsService, emailService, logger)
	candidateHandler := handlers.NewCandidateHandler(candidateService)
	jobHandler := handlers.NewJobHandler(jobService)

	// 6. Router & CORS
	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 7. Routes
	r.GET("/health", handlers.HealthCheck(db))

	api := r.Group("/api/v1")
	{
		// Candidate Routes
		api.POST("/candidates", candidateHandler.CreateCandidate)
		api.GET("/candidates", candidateHandler.ListCandidates)
		api.GET("/candidates/:id", candidateHandler.GetCandidate)
		api.PATCH("/candidates/:id", candidateHandler.UpdateCandidate)
		api.DELETE("/candidates/:id", candidateHandler.DeleteCandidate)

		// Job Routes
		api.POST("/jobs", jobHandler.CreateJob)
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.PATCH("/jobs/:id", jobHandler.UpdateJob)
		api.DELETE("/jobs/:id", jobHandler.DeleteJob)

		// Application Routes
		api.POST("/applications", applicationHandler.CreateApplication)
		api.GET("/applications", applicationHandler.ListApplications)
		api.GET("/applications/stats/advanced", applicationHandler.AdvancedStats)
		api.GET("/applications/statuses/:status/transitions", applicationHandler.AllowedTransitions)
		api.GET("/applications/:id", applicationHandler.GetApplication)
		api.PATCH("/applications/:id/status", applicationHandler.UpdateStatus)
		api.DELETE("/applications/:id", applicationHandler.DeleteApplication)
	}

	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}
