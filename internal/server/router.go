package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/selahapp/selah-backend/internal/handlers"
	"github.com/selahapp/selah-backend/internal/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "selah-backend"

type RouterConfig struct {
	AuthMiddleware         *middleware.AuthMiddleware
	ActivityHandler        *handlers.ActivityHandler
	PrayerHandler          *handlers.PrayerHandler
	MoodHandler            *handlers.MoodHandler
	NoteHandler            *handlers.NoteHandler
	VerseHandler           *handlers.VerseHandler
	DevotionalHandler      *handlers.DevotionalHandler
	RecommendationHandler  *handlers.RecommendationHandler
	FlourishingHandler     *handlers.FlourishingHandler
	PersonalizationHandler *handlers.PersonalizationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Tracing
	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.AttachTraceContext())

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	// Activity log
	api.POST("/activities", cfg.ActivityHandler.LogEvent)
	api.GET("/activities", cfg.ActivityHandler.ListEvents)
	// Prayers
	api.POST("/prayers", cfg.PrayerHandler.Create)
	api.GET("/prayers", cfg.PrayerHandler.List)
	api.POST("/prayers/:id/answered", cfg.PrayerHandler.MarkAnswered)
	// Moods
	api.POST("/moods", cfg.MoodHandler.Create)
	api.GET("/moods", cfg.MoodHandler.List)
	// Notes
	api.POST("/notes", cfg.NoteHandler.Create)
	api.GET("/notes", cfg.NoteHandler.List)
	api.PUT("/notes/:id", cfg.NoteHandler.Update)
	api.DELETE("/notes/:id", cfg.NoteHandler.Delete)
	// Daily verse
	api.POST("/verses/generate", cfg.PersonalizationHandler.GenerateBibleVerse)
	api.GET("/verses/latest", cfg.VerseHandler.GetLatest)
	api.GET("/verses", cfg.VerseHandler.List)
	api.POST("/verses/:id/read", cfg.VerseHandler.MarkRead)
	api.PUT("/verses/:id/notes", cfg.VerseHandler.SaveNotes)
	// Devotionals
	api.POST("/devotionals/generate", cfg.PersonalizationHandler.GenerateDevotional)
	api.GET("/devotionals/latest", cfg.DevotionalHandler.GetLatest)
	api.GET("/devotionals", cfg.DevotionalHandler.List)
	api.POST("/devotionals/:id/read", cfg.DevotionalHandler.MarkRead)
	// Recommendations
	api.POST("/videos/generate", cfg.PersonalizationHandler.GenerateVideos)
	api.GET("/videos", cfg.RecommendationHandler.ListVideos)
	api.POST("/songs/generate", cfg.PersonalizationHandler.GenerateSongs)
	api.GET("/songs", cfg.RecommendationHandler.ListSongs)
	api.POST("/sermons/generate", cfg.PersonalizationHandler.GenerateSermons)
	api.GET("/sermons", cfg.RecommendationHandler.ListSermons)
	api.POST("/resources/generate", cfg.PersonalizationHandler.GenerateResources)
	api.GET("/resources", cfg.RecommendationHandler.ListResources)
	// Flourishing
	api.POST("/flourishing/generate", cfg.PersonalizationHandler.GenerateFlourishingScore)
	api.GET("/flourishing/latest", cfg.FlourishingHandler.GetLatest)
	api.GET("/flourishing/history", cfg.FlourishingHandler.History)
	// Run ledger
	api.GET("/personalization/:engine/latest-run", cfg.PersonalizationHandler.GetLatestRun)

	return router
}
