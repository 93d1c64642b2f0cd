package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brightsteps/brightsteps-backend/internal/config"
	"github.com/brightsteps/brightsteps-backend/internal/db"
	"github.com/brightsteps/brightsteps-backend/internal/handlers"
	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/middleware"
	"github.com/brightsteps/brightsteps-backend/internal/observability"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/server"
	"github.com/brightsteps/brightsteps-backend/internal/services"
	"github.com/brightsteps/brightsteps-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := utils.GetEnv("PORT", "5000", log)
	mediaDir := utils.GetEnv("MEDIA_DIR", "./media", log)
	debugRoutes := utils.GetEnv("DEBUG_ROUTES", "true", log) == "true"

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "brightsteps",
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(ctx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Goals
	goalTable, err := config.LoadGoalTable()
	if err != nil {
		log.Fatal("Could not load goal table", "error", err)
	}

	// Database
	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err = databaseService.AutoMigrateAll(); err != nil {
		log.Fatal("Database migration failed", "error", err)
	}
	theDB := databaseService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	parentRepo := repos.NewParentRepo(theDB, log)
	userRepo := repos.NewUserRepo(theDB, log)
	babyRepo := repos.NewBabyRepo(theDB, log)
	areaRepo := repos.NewAreaRepo(theDB, log)
	areaActivityRepo := repos.NewAreaActivityRepo(theDB, log)
	completionRepo := repos.NewCompletionRepo(theDB, log)
	challengeRepo := repos.NewChallengeRepo(theDB, log)
	challengeActivityRepo := repos.NewChallengeActivityRepo(theDB, log)
	enrollmentRepo := repos.NewEnrollmentRepo(theDB, log)
	assessmentRepo := repos.NewAssessmentRepo(theDB, log)
	personalizedRepo := repos.NewPersonalizedActivityRepo(theDB, log)

	// Services
	log.Info("Setting up Services from main...")
	aiClient, err := services.NewAnthropicClient(log)
	if err != nil {
		log.Error("Could not init AnthropicClient", "error", err)
		os.Exit(1)
	}
	generationService := services.NewGenerationService(log, aiClient, goalTable)
	contentService := services.NewContentService(theDB, log, generationService, areaRepo, areaActivityRepo, challengeRepo, challengeActivityRepo)
	parentService := services.NewParentService(theDB, log, parentRepo)
	profileService := services.NewProfileService(theDB, log, babyRepo, goalTable)
	completionService := services.NewCompletionService(theDB, log, completionRepo)
	challengeService := services.NewChallengeService(theDB, log, challengeRepo, enrollmentRepo)
	assessmentService := services.NewAssessmentService(theDB, log, generationService, assessmentRepo, personalizedRepo)
	accountService := services.NewAccountService(theDB, log, userRepo)
	sessionService := services.NewSessionService(log)
	nowPlayingService := services.NewNowPlayingService(time.Now().UnixNano())
	avatarService, err := services.NewAvatarService(theDB, log, babyRepo)
	if err != nil {
		log.Error("Could not init AvatarService", "error", err)
		os.Exit(1)
	}

	// Handlers
	log.Info("Setting up Handlers from main...")
	entryHandler := handlers.NewEntryHandler(log, parentService, profileService, sessionService)
	onboardingHandler := handlers.NewOnboardingHandler(log, profileService, avatarService, sessionService, goalTable)
	generateHandler := handlers.NewGenerateHandler(log, contentService)
	homeHandler := handlers.NewHomeHandler(log, areaRepo, challengeService, completionService, nowPlayingService)
	activityHandler := handlers.NewActivityHandler(log, areaRepo, areaActivityRepo, contentService, completionService)
	completionHandler := handlers.NewCompletionHandler(log, areaActivityRepo, areaRepo, completionService)
	challengeHandler := handlers.NewChallengeHandler(log, challengeService, contentService)
	assessmentHandler := handlers.NewAssessmentHandler(log, assessmentService)
	accountHandler := handlers.NewAccountHandler(log, accountService, parentService, sessionService)
	debugHandler := handlers.NewDebugHandler(nowPlayingService, areaRepo)

	// Middleware
	sessionMiddleware := middleware.NewSessionMiddleware(log, sessionService, parentService, profileService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		MediaDir:          mediaDir,
		DebugRoutes:       debugRoutes,
		EntryHandler:      entryHandler,
		OnboardingHandler: onboardingHandler,
		GenerateHandler:   generateHandler,
		HomeHandler:       homeHandler,
		ActivityHandler:   activityHandler,
		CompletionHandler: completionHandler,
		ChallengeHandler:  challengeHandler,
		AssessmentHandler: assessmentHandler,
		AccountHandler:    accountHandler,
		DebugHandler:      debugHandler,
		SessionMiddleware: sessionMiddleware,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
