package server

import (
	"embed"
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/brightsteps/brightsteps-backend/internal/handlers"
	"github.com/brightsteps/brightsteps-backend/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

type RouterConfig struct {
	MediaDir          string
	DebugRoutes       bool
	EntryHandler      *handlers.EntryHandler
	OnboardingHandler *handlers.OnboardingHandler
	GenerateHandler   *handlers.GenerateHandler
	HomeHandler       *handlers.HomeHandler
	ActivityHandler   *handlers.ActivityHandler
	CompletionHandler *handlers.CompletionHandler
	ChallengeHandler  *handlers.ChallengeHandler
	AssessmentHandler *handlers.AssessmentHandler
	AccountHandler    *handlers.AccountHandler
	DebugHandler      *handlers.DebugHandler
	SessionMiddleware *middleware.SessionMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("brightsteps"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))
	router.Static("/media", cfg.MediaDir)

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/", cfg.EntryHandler.Root)
	router.POST("/parent-entry", cfg.EntryHandler.ParentEntry)
	router.GET("/logout", cfg.EntryHandler.Logout)
	router.GET("/coming-soon", cfg.EntryHandler.ComingSoon)
	router.POST("/api/register", cfg.AccountHandler.Register)
	router.POST("/api/login", cfg.AccountHandler.Login)

	// ===============
	// || Parent    ||
	// ===============
	parent := router.Group("/")
	parent.Use(cfg.SessionMiddleware.RequireParent())
	parent.GET("/create-profile", cfg.OnboardingHandler.CreateProfilePage)
	parent.POST("/create-profile", cfg.OnboardingHandler.CreateProfile)
	parent.GET("/select-goals", cfg.OnboardingHandler.SelectGoalsPage)
	parent.POST("/select-goals", cfg.OnboardingHandler.SelectGoals)
	parent.GET("/switch-profile/:babyUUID", cfg.OnboardingHandler.SwitchProfile)

	// ===============
	// || Profile   ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.SessionMiddleware.RequireProfile())
	protected.GET("/loading", cfg.OnboardingHandler.Loading)
	protected.GET("/home", cfg.HomeHandler.Home)
	protected.GET("/activities/:areaID", cfg.ActivityHandler.Activities)
	protected.GET("/activity/:activityID", cfg.ActivityHandler.Activity)
	protected.GET("/timer/:activityID", cfg.ActivityHandler.Timer)
	protected.GET("/challenge/:challengeID", cfg.ChallengeHandler.Challenge)
	protected.POST("/api/generate-content", cfg.GenerateHandler.GenerateContent)
	protected.POST("/api/mark-task-complete/:activityID", cfg.CompletionHandler.MarkTaskComplete)
	protected.POST("/api/enroll-challenge/:challengeID", cfg.ChallengeHandler.EnrollChallenge)
	protected.POST("/api/profile-avatar", cfg.OnboardingHandler.UploadAvatar)
	protected.GET("/api/assessment-questions", cfg.AssessmentHandler.Questions)
	protected.POST("/api/assessment", cfg.AssessmentHandler.SaveAssessment)
	protected.GET("/api/personalized-activities", cfg.AssessmentHandler.PersonalizedActivities)

	// ===============
	// || Debug     ||
	// ===============
	if cfg.DebugRoutes {
		debug := router.Group("/debug")
		debug.GET("/now-playing", cfg.DebugHandler.NowPlaying)
		debug.GET("/now-playing/refresh", cfg.DebugHandler.RefreshNowPlaying)
		debug.GET("/now-playing/set/:number", cfg.DebugHandler.SetNowPlaying)
		debug.GET("/area-now-playing", cfg.DebugHandler.AreaNowPlaying)
		debug.GET("/area-now-playing/refresh", cfg.SessionMiddleware.RequireProfile(), cfg.DebugHandler.RefreshAreaNowPlaying)
	}

	return router
}
