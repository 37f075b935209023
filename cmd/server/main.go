package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/acme-dashboard/internal/auth"
	"github.com/yukikurage/acme-dashboard/internal/config"
	"github.com/yukikurage/acme-dashboard/internal/constants"
	"github.com/yukikurage/acme-dashboard/internal/database"
	"github.com/yukikurage/acme-dashboard/internal/handlers"
	"github.com/yukikurage/acme-dashboard/internal/logger"
	"github.com/yukikurage/acme-dashboard/internal/middleware"
	"github.com/yukikurage/acme-dashboard/internal/repository"
	"github.com/yukikurage/acme-dashboard/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	// Run migrations
	if err := database.MigrateDatabase(db, log); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.ErrorLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // username (empty for default user)
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalw("failed to create Redis store", "error", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS)
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	dashboardRepo := repository.NewDashboardRepository(db, log)
	invoiceRepo := repository.NewInvoiceRepository(db, log)
	customerRepo := repository.NewCustomerRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)
	companyRepo := repository.NewCompanyRepository(db, log)
	projectRepo := repository.NewProjectRepository(db, log)
	taskRepo := repository.NewTaskRepository(db, log)
	invitationRepo := repository.NewInvitationRepository(db, log)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		log.Infow("OPENAI_API_KEY not set, task suggestions disabled")
	}

	signer := auth.NewInvitationSigner(cfg.InvitationSecret, cfg.InvitationTTL)

	authService := services.NewAuthService(userRepo, log)
	invoiceService := services.NewInvoiceService(dashboardRepo, invoiceRepo, customerRepo)
	companyService := services.NewCompanyService(companyRepo, userRepo, invitationRepo, signer)
	workspaceService := services.NewWorkspaceService(projectRepo, taskRepo, companyRepo, aiService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Acme Dashboard API is running",
		})
	})

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:           handlers.NewAuthHandler(authService),
		Invoices:       handlers.NewInvoiceHandler(invoiceService),
		Companies:      handlers.NewCompanyHandler(companyService),
		Workspace:      handlers.NewWorkspaceHandler(workspaceService),
		CompanyService: companyService,
	})

	// Start server
	log.Infow("server starting", "port", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalw("failed to start server", "error", err)
	}
}
