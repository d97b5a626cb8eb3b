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

	_ "github.com/jvmatch/partnermatch/docs" // swagger docs

	"github.com/jvmatch/partnermatch/internal/config"
	"github.com/jvmatch/partnermatch/internal/platform/auth"
	httpPlatform "github.com/jvmatch/partnermatch/internal/platform/http"
	"github.com/jvmatch/partnermatch/internal/platform/logger"
	"github.com/jvmatch/partnermatch/internal/platform/oracle"
	"github.com/jvmatch/partnermatch/internal/platform/postgres"
	"github.com/jvmatch/partnermatch/internal/platform/redis"
	"github.com/jvmatch/partnermatch/internal/platform/storage"

	authHandler "github.com/jvmatch/partnermatch/modules/auth/handler"
	authRepo "github.com/jvmatch/partnermatch/modules/auth/repository"
	authService "github.com/jvmatch/partnermatch/modules/auth/service"
	userRepo "github.com/jvmatch/partnermatch/modules/users/repository"

	profileHandler "github.com/jvmatch/partnermatch/modules/profiles/handler"
	profileRepo "github.com/jvmatch/partnermatch/modules/profiles/repository"
	profileService "github.com/jvmatch/partnermatch/modules/profiles/service"

	intakeHandler "github.com/jvmatch/partnermatch/modules/intakes/handler"
	intakeRepo "github.com/jvmatch/partnermatch/modules/intakes/repository"
	intakeService "github.com/jvmatch/partnermatch/modules/intakes/service"

	taxonomyRepo "github.com/jvmatch/partnermatch/modules/taxonomy/repository"

	directoryRepo "github.com/jvmatch/partnermatch/modules/directory/repository"

	resolverHandler "github.com/jvmatch/partnermatch/modules/resolver/handler"
	resolverRepo "github.com/jvmatch/partnermatch/modules/resolver/repository"
	resolverService "github.com/jvmatch/partnermatch/modules/resolver/service"

	assemblerService "github.com/jvmatch/partnermatch/modules/assembler/service"

	scoringService "github.com/jvmatch/partnermatch/modules/scoring/service"

	fairnessService "github.com/jvmatch/partnermatch/modules/fairness/service"

	matchesHandler "github.com/jvmatch/partnermatch/modules/matches/handler"
	matchesRepo "github.com/jvmatch/partnermatch/modules/matches/repository"
	matchesService "github.com/jvmatch/partnermatch/modules/matches/service"

	cycleHandler "github.com/jvmatch/partnermatch/modules/cycle/handler"
	cycleModel "github.com/jvmatch/partnermatch/modules/cycle/model"
	cycleRepo "github.com/jvmatch/partnermatch/modules/cycle/repository"
	cycleService "github.com/jvmatch/partnermatch/modules/cycle/service"

	reminderRepo "github.com/jvmatch/partnermatch/modules/reminders/repository"

	commentHandler "github.com/jvmatch/partnermatch/modules/comments/handler"
	commentRepo "github.com/jvmatch/partnermatch/modules/comments/repository"
	commentService "github.com/jvmatch/partnermatch/modules/comments/service"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title PartnerMatch API
// @version 1.0
// @description Reciprocal joint-venture partner-matching platform: directory/profile intake, entity resolution, feature assembly, scoring, fairness filtering, and cycle orchestration.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@partnermatch.example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @x-extension-openapi {"example": "value on a json format"}

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting PartnerMatch API server",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize Sentry error reporting (no-op if SENTRY_DSN is unset)
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Server.Env,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
		}); err != nil {
			logger.Warn("Failed to initialize Sentry, error reporting disabled", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
			logger.Info("Sentry error reporting initialized")
		}
	}

	ctx := context.Background()

	// Initialize PostgreSQL
	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()
	logger.Info("Connected to PostgreSQL")

	// Run database migrations (MANDATORY: must run before HTTP server starts)
	migrationsPath := "./migrations"
	if err := postgres.RunMigrations(ctx, cfg.Database, logger, migrationsPath); err != nil {
		logger.Fatal("Failed to run database migrations",
			zap.Error(err),
			zap.String("migrations_path", migrationsPath),
		)
	}

	// Initialize Redis
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	// Initialize S3 client (optional - gracefully handle missing config)
	var s3Client *storage.S3Client
	if cfg.S3.Endpoint != "" && cfg.S3.Bucket != "" {
		s3Client, err = storage.NewS3Client(cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, intake evidence uploads will be disabled", zap.Error(err))
		} else {
			logger.Info("S3 client initialized", zap.String("bucket", cfg.S3.Bucket))
		}
	} else {
		logger.Info("S3 configuration not provided, intake evidence uploads will be disabled")
	}

	// Initialize the semantic-similarity oracle only when an Anthropic key is
	// set; without one sim stays nil and scoringService.Scorer uses the
	// Jaccard proxy for every pair.
	var sim oracle.Oracle
	if cfg.Oracle.AnthropicAPIKey != "" {
		sim = oracle.NewAnthropicOracle(cfg.Oracle.AnthropicAPIKey, redisClient, logger, cfg.Oracle.Model, cfg.Oracle.BatchSize, cfg.Oracle.CacheTTL)
		logger.Info("Semantic-similarity oracle initialized", zap.String("model", cfg.Oracle.Model))
	} else {
		logger.Info("ANTHROPIC_API_KEY not provided, scoring will fall back to the Jaccard proxy for every pair")
	}

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpPlatform.SentryMiddleware())
	router.Use(httpPlatform.RequestIDMiddleware())
	router.Use(httpPlatform.LoggerMiddleware(logger))
	router.Use(httpPlatform.CORSMiddleware())

	// Swagger documentation (available in development)
	if cfg.Server.Env != "production" {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger UI available at /swagger/index.html")
	}

	// Health check endpoint
	router.GET("/health", healthCheckHandler(ctx, pgClient, redisClient))

	// Ping endpoint
	router.GET("/ping", pingHandler)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Auth middleware
	authMiddleware := auth.AuthMiddleware(jwtManager)

	// Initialize repositories
	userRepository := userRepo.NewUserRepository(pgClient.Pool)
	tokenRepository := authRepo.NewRefreshTokenRepository(pgClient.Pool)
	profileRepository := profileRepo.NewProfileRepository(pgClient.Pool)
	intakeRepository := intakeRepo.NewIntakeRepository(pgClient.Pool)
	taxonomyRepository := taxonomyRepo.NewTaxonomyRepository(pgClient.Pool)
	directoryRepository := directoryRepo.NewDirectoryRepository(pgClient.Pool)
	reviewRepository := resolverRepo.NewReviewRepository(pgClient.Pool)
	suggestionRepository := matchesRepo.NewSuggestionRepository(pgClient.Pool)
	commentRepository := commentRepo.NewCommentRepository(pgClient.Pool)
	reminderRepository := reminderRepo.NewReminderRepository(pgClient.Pool)
	cycleReportRepository := cycleRepo.NewCycleReportRepository(pgClient.Pool)
	presetRepository := cycleRepo.NewPresetRepository(pgClient.Pool)

	// Initialize pipeline stage services (spec §2: Resolver -> Assembler ->
	// Scorer -> Fairness Filter, composed behind the Cycle orchestrator).
	entityResolver := resolverService.NewEntityResolver(profileRepository, reviewRepository, directoryRepository, time.Now)
	reviewQueueSvc := resolverService.NewQueueService(reviewRepository, time.Now)
	featureAssembler := assemblerService.NewFeatureAssembler(profileRepository, intakeRepository, taxonomyRepository, time.Now)
	scorer := scoringService.NewScorer(sim, scoringService.Config{
		IntentFallbackThreshold: cfg.Matching.IntentFallbackThreshold,
		SemanticMatchThreshold:  cfg.Matching.SemanticMatchThreshold,
		OracleEnabled:           cfg.Matching.OracleEnabled && sim != nil,
	}, time.Now)
	fairnessFilter := fairnessService.NewFilter(cfg.Matching.PopularityCap)
	suggestionSvc := matchesService.NewSuggestionService(suggestionRepository, time.Now)
	persisterAdapter := &cycleService.SuggestionPersisterAdapter{Inner: suggestionSvc}

	orchestrator := cycleService.NewOrchestrator(
		directoryRepository,
		entityResolver,
		featureAssembler,
		scorer,
		fairnessFilter,
		persisterAdapter,
		reminderRepository,
		cycleReportRepository,
		time.Now,
	)
	defaultCycleCfg := cycleModel.CycleConfig{
		TopK:                    cfg.Matching.TopK,
		PopularityCap:           cfg.Matching.PopularityCap,
		ExpiryDays:              cfg.Matching.ExpiryDays,
		IntentFallbackThreshold: cfg.Matching.IntentFallbackThreshold,
		SemanticMatchThreshold:  cfg.Matching.SemanticMatchThreshold,
		OracleEnabled:           cfg.Matching.OracleEnabled,
	}

	// Initialize the rest of the services
	authSvc := authService.NewAuthService(
		userRepository,
		tokenRepository,
		jwtManager,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	profileSvc := profileService.NewProfileService(profileRepository)
	intakeSvc := intakeService.NewIntakeService(intakeRepository, s3Client, time.Now)
	commentSvc := commentService.NewCommentService(commentRepository)

	// Initialize handlers
	authHdl := authHandler.NewAuthHandler(authSvc)
	profileHdl := profileHandler.NewProfileHandler(profileSvc)
	intakeHdl := intakeHandler.NewIntakeHandler(intakeSvc)
	matchesHdl := matchesHandler.NewSuggestionHandler(suggestionSvc)
	cycleHdl := cycleHandler.NewCycleHandler(orchestrator, cycleReportRepository, presetRepository, defaultCycleCfg)
	reviewHdl := resolverHandler.NewReviewHandler(reviewQueueSvc)
	commentHdl := commentHandler.NewCommentHandler(commentSvc)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Register module routes
		authHdl.RegisterRoutes(v1)
		profileHdl.RegisterRoutes(v1, authMiddleware)
		intakeHdl.RegisterRoutes(v1)
		matchesHdl.RegisterRoutes(v1)
		cycleHdl.RegisterRoutes(v1)
		reviewHdl.RegisterRoutes(v1, authMiddleware)
		commentHdl.RegisterRoutes(v1, authMiddleware)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// healthCheckHandler godoc
// @Summary Health Check
// @Description Check the health status of the application and its dependencies
// @Tags system
// @Produce json
// @Success 200 {object} http.HealthResponse
// @Router /health [get]
func healthCheckHandler(ctx context.Context, pgClient *postgres.Client, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := make(map[string]string)

		// Check PostgreSQL
		if err := pgClient.Health(ctx); err != nil {
			services["postgres"] = "down"
		} else {
			services["postgres"] = "up"
		}

		// Check Redis
		if err := redisClient.Health(ctx); err != nil {
			services["redis"] = "down"
		} else {
			services["redis"] = "up"
		}

		httpPlatform.RespondWithHealth(c, services)
	}
}

// pingHandler godoc
// @Summary Ping
// @Description Simple ping endpoint to check if the API is responding
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
