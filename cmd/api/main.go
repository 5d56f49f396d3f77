// Package main is the entrypoint for the SmartPathAI API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/cache"
	"github.com/umeshgupta05/SmartPathAI/internal/config"
	"github.com/umeshgupta05/SmartPathAI/internal/genai"
	"github.com/umeshgupta05/SmartPathAI/internal/handler"
	"github.com/umeshgupta05/SmartPathAI/internal/middleware"
	"github.com/umeshgupta05/SmartPathAI/internal/repository"
	"github.com/umeshgupta05/SmartPathAI/internal/server"
	"github.com/umeshgupta05/SmartPathAI/internal/service"
)

func main() {
	ctx := context.Background()

	// Load .env in development; missing file is fine.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	if cfg.MigrateOnStart {
		if err := repo.Migrate(ctx); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("schema migrations applied")
	}

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Initialize Gemini client
	generator, err := genai.NewClient(genai.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to create Gemini client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(repo, cacheClient, tokens, logger)
	recService := service.NewRecommendationService(repo, repo, generator, cacheClient, logger)
	progressService := service.NewProgressService(repo, repo, repo, repo, recService, cacheClient, logger)
	quizService := service.NewQuizService(repo, repo, repo, repo, generator, cacheClient, logger)
	chatService := service.NewChatService(generator, logger)

	// Initialize handlers
	h := handler.New(userService, recService, progressService, quizService, chatService, logger)
	healthHandler := handler.NewHealthHandler(repo, cacheClient)

	// Setup router
	r := setupRouter(h, healthHandler, tokens, repo, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Registered first, closed last: connections outlive in-flight requests.
	srv.OnShutdown("oracle", func(ctx context.Context) error {
		return repo.Close()
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"model", cfg.GeminiModel,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	tokens *auth.TokenManager,
	repo *repository.Repository,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment(),
	}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root info endpoint
	r.Get("/", h.Hello)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger: logger,
		Tokens: tokens,
		Users:  repo,
		Cache:  cacheClient,
	}

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:      logger,
		Limiter:     cacheClient,
		APIEnabled:  cfg.RateLimitAPIEnabled,
		APIRPM:      cfg.RateLimitAPIRPM,
		APIBurst:    cfg.RateLimitAPIBurst,
		AuthEnabled: cfg.RateLimitAuthEnabled,
		AuthRPS:     cfg.RateLimitAuthRPS,
		AuthBurst:   cfg.RateLimitAuthBurst,
	}

	r.Route("/api", func(r chi.Router) {
		// Signup/login with IP-based rate limiting (no auth required)
		r.With(middleware.RateLimitIP(rateLimitCfg)).Post("/auth", h.Auth)

		// Everything else requires a bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Use(middleware.RateLimitUser(rateLimitCfg))

			r.Get("/dashboard", h.Dashboard)
			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)
			r.Get("/performance", h.Performance)

			r.Get("/recommend_courses", h.RecommendCourses)
			r.Get("/user_progress", h.UserProgress)
			r.Post("/mark_completed", h.MarkCompleted)
			r.Get("/learning_path", h.LearningPath)

			r.Get("/recommend_certifications", h.RecommendCertifications)
			r.Get("/earned_certifications", h.EarnedCertifications)
			r.Post("/mark_certification_completed", h.MarkCertificationCompleted)

			r.Get("/generate_quiz", h.GenerateQuiz)
			r.Post("/check_answers", h.CheckAnswers)

			r.Post("/chatbot", h.Chatbot)
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
