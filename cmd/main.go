package main

import (
	"context"
	"fmt"
	redisclient "github.com/selahapp/selah-backend/internal/clients/redis"
	"github.com/selahapp/selah-backend/internal/db"
	"github.com/selahapp/selah-backend/internal/handlers"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/middleware"
	"github.com/selahapp/selah-backend/internal/observability"
	"github.com/selahapp/selah-backend/internal/repos"
	"github.com/selahapp/selah-backend/internal/server"
	"github.com/selahapp/selah-backend/internal/services"
	"github.com/selahapp/selah-backend/internal/utils"
	"os"
	"time"
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
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	flourishingIntervalHours := utils.GetEnvAsInt("FLOURISHING_INTERVAL_HOURS", 24, log)

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "selah-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	activityEventRepo := repos.NewActivityEventRepo(thePG, log)
	runRepo := repos.NewPersonalizationRunRepo(thePG, log)
	prayerRepo := repos.NewPrayerRepo(thePG, log)
	moodRepo := repos.NewMoodRepo(thePG, log)
	noteRepo := repos.NewNoteRepo(thePG, log)
	verseRepo := repos.NewBibleVerseRepo(thePG, log)
	devotionalRepo := repos.NewDevotionalRepo(thePG, log)
	videoRepo := repos.NewVideoRepo(thePG, log)
	songRepo := repos.NewSongRepo(thePG, log)
	sermonRepo := repos.NewSermonRepo(thePG, log)
	resourceRepo := repos.NewResourceRepo(thePG, log)
	flourishingRepo := repos.NewFlourishingScoreRepo(thePG, log)

	// Redis run lock (optional; generation proceeds unguarded when absent)
	var runLocker redisclient.RunLocker
	runLocker, err = redisclient.NewRunLocker(log)
	if err != nil {
		log.Warn("Could not init RunLocker, generation runs unguarded", "error", err)
		runLocker = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	aiClient, err := services.NewAIClientFromEnv(log)
	if err != nil {
		log.Error("Could not init AI client", "error", err)
		os.Exit(1)
	}
	scriptureClient := services.NewScriptureClient(log)
	activityService := services.NewActivityService(thePG, log, activityEventRepo)
	authService := services.NewAuthService(log, jwtSecretKey)
	prayerService := services.NewPrayerService(thePG, log, prayerRepo, activityService)
	moodService := services.NewMoodService(thePG, log, moodRepo, activityService)
	noteService := services.NewNoteService(thePG, log, noteRepo, activityService)
	verseService := services.NewVerseService(thePG, log, verseRepo, activityService)
	devotionalService := services.NewDevotionalService(thePG, log, devotionalRepo, activityService)
	recommendationService := services.NewRecommendationService(thePG, log, videoRepo, songRepo, sermonRepo, resourceRepo)
	flourishingService := services.NewFlourishingService(thePG, log, flourishingRepo)
	personalizationService := services.NewPersonalizationService(
		thePG,
		log,
		aiClient,
		scriptureClient,
		activityService,
		runLocker,
		runRepo,
		verseRepo,
		devotionalRepo,
		videoRepo,
		songRepo,
		sermonRepo,
		resourceRepo,
		flourishingRepo,
	)
	flourishingJob := services.NewFlourishingJob(
		thePG,
		log,
		userRepo,
		runRepo,
		personalizationService,
		time.Duration(flourishingIntervalHours)*time.Hour,
	)
	flourishingJob.Start(context.Background())

	// Handlers
	log.Info("Setting up handlers from main...")
	activityHandler := handlers.NewActivityHandler(log, activityService)
	prayerHandler := handlers.NewPrayerHandler(log, prayerService)
	moodHandler := handlers.NewMoodHandler(log, moodService)
	noteHandler := handlers.NewNoteHandler(log, noteService)
	verseHandler := handlers.NewVerseHandler(log, verseService)
	devotionalHandler := handlers.NewDevotionalHandler(log, devotionalService)
	recommendationHandler := handlers.NewRecommendationHandler(log, recommendationService)
	flourishingHandler := handlers.NewFlourishingHandler(log, flourishingService)
	personalizationHandler := handlers.NewPersonalizationHandler(log, personalizationService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:         authMiddleware,
		ActivityHandler:        activityHandler,
		PrayerHandler:          prayerHandler,
		MoodHandler:            moodHandler,
		NoteHandler:            noteHandler,
		VerseHandler:           verseHandler,
		DevotionalHandler:      devotionalHandler,
		RecommendationHandler:  recommendationHandler,
		FlourishingHandler:     flourishingHandler,
		PersonalizationHandler: personalizationHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
