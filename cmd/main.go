package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_course_keep/internal/cache"
	"go_course_keep/internal/config"
	"go_course_keep/internal/handlers"
	"go_course_keep/internal/middleware"
	"go_course_keep/internal/repository"
	"go_course_keep/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// データベース接続 (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// Redis接続 (下書きスロット・クイズセッション)
	redisCache, err := cache.New(context.Background(), config.Cfg.Cache.URL)
	if err != nil {
		slog.Error("Error initializing cache", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisCache.Close(); err != nil {
			slog.Error("Error closing cache connection", slog.Any("error", err))
		}
	}()

	// Dependency Injection
	userRepo := repository.NewGormUserRepository()
	tokenRepo := repository.NewGormTokenRepository()
	courseRepo := repository.NewGormCourseRepository()
	lessonRepo := repository.NewGormLessonRepository()
	draftRepo := repository.NewGormDraftRepository()
	quizRepo := repository.NewGormQuizRepository()
	enrollmentRepo := repository.NewGormEnrollmentRepository()

	draftSlots := service.NewRedisDraftSlotStore(redisCache, time.Duration(config.Cfg.Draft.LocalTTLHours)*time.Hour)
	quizSessions := service.NewRedisQuizSessionStore(redisCache)

	mailer := service.NewMailer(&config.Cfg)
	authService := service.NewAuthService(db, userRepo, tokenRepo, mailer, &config.Cfg)
	draftService := service.NewDraftService(db, draftRepo, draftSlots, time.Duration(config.Cfg.Draft.DebounceMs)*time.Millisecond)
	syncService := service.NewSyncService(db, lessonRepo, time.Duration(config.Cfg.Sync.SaveTimeoutSeconds)*time.Second)
	courseService := service.NewCourseService(db, &config.Cfg, courseRepo, lessonRepo, syncService, draftService)
	quizService := service.NewQuizService(db, quizRepo, lessonRepo, enrollmentRepo, quizSessions)
	enrollmentService := service.NewEnrollmentService(db, enrollmentRepo, courseRepo)

	authHandler := handlers.NewAuthHandler(authService, logger)
	courseHandler := handlers.NewCourseHandler(courseService, logger)
	draftHandler := handlers.NewDraftHandler(draftService, logger)
	lessonHandler := handlers.NewLessonHandler(syncService, logger)
	quizHandler := handlers.NewQuizHandler(quizService, logger)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService, logger)
	overviewHandler := handlers.NewOverviewHandler(&config.Cfg, logger)

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	}
	r.Use(cors.New(corsOptions).Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.DeviceContextMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/register", authHandler.Register)
		r.Get("/auth/verify", authHandler.Verify)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/auth/reset-password", authHandler.ResetPassword)

		r.Get("/courses", courseHandler.GetCourses)
		r.Get("/courses/{course_id}", courseHandler.GetCourse)
		r.Get("/courses/slug/{slug}", courseHandler.GetCourseBySlug)
		r.Get("/overview", overviewHandler.GetOverview)

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			if config.Cfg.Auth.Enabled {
				slog.Info("Applying JWT authentication middleware")
				r.Use(middleware.JWTAuthMiddleware(&config.Cfg))
			} else {
				slog.Warn("Auth disabled: applying dev user context middleware")
				r.Use(middleware.DevUserContextMiddleware)
			}

			r.Get("/auth/me", authHandler.GetMe)

			// Course authoring
			r.Post("/courses", courseHandler.PostCourse)
			r.Patch("/courses/{course_id}", courseHandler.PatchCourse)
			r.Post("/courses/{course_id}/publish", courseHandler.PublishCourse)
			r.Post("/courses/{course_id}/delete", courseHandler.DeleteCourse)
			r.Get("/courses/{course_id}/lessons", courseHandler.GetCourseLessons)
			r.Put("/courses/{course_id}/lessons", lessonHandler.PutLessons)

			// Lesson
			r.Post("/lessons/{lesson_id}/delete", lessonHandler.DeleteLesson)
			r.Post("/lessons/{lesson_id}/quiz", quizHandler.PostQuiz)

			// Quiz runtime
			r.Route("/lessons/{lesson_id}/quiz-session", func(r chi.Router) {
				r.Get("/", quizHandler.GetQuizState)
				r.Post("/select", quizHandler.PostSelectOption)
				r.Post("/submit", quizHandler.PostSubmitAnswer)
				r.Get("/can-advance", quizHandler.GetCanAdvance)
			})

			// Draft
			r.Route("/drafts/course", func(r chi.Router) {
				r.Put("/", draftHandler.PutDraft)
				r.Get("/", draftHandler.GetDraft)
				r.Get("/presence", draftHandler.GetDraftPresence)
				r.Delete("/", draftHandler.DeleteDraft)
			})

			// Enrollment
			r.Post("/enrollments", enrollmentHandler.PostEnrollment)
			r.Get("/enrollments", enrollmentHandler.GetEnrollments)
			r.Get("/courses/{course_id}/progress", enrollmentHandler.GetProgress)
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := redisCache.HealthCheck(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping cache", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
