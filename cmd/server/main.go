package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelasfokus/fokus-backend/internal/config"
	"github.com/kelasfokus/fokus-backend/internal/database"
	"github.com/kelasfokus/fokus-backend/internal/handler"
	"github.com/kelasfokus/fokus-backend/internal/logger"
	"github.com/kelasfokus/fokus-backend/internal/repository"
	"github.com/kelasfokus/fokus-backend/internal/router"
	"github.com/kelasfokus/fokus-backend/internal/service"
	"github.com/kelasfokus/fokus-backend/internal/validator"
	"github.com/kelasfokus/fokus-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Fokus Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	voucherRepo := repository.NewVoucherRepository(pool)
	resultRepo := repository.NewResultRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, rdb)
	entitlementService := service.NewEntitlementService(userRepo, rdb, log)
	courseService := service.NewCourseService(courseRepo)
	materialService := service.NewMaterialService(materialRepo)
	questionService := service.NewQuestionService(questionRepo)
	voucherService := service.NewVoucherService(voucherRepo, entitlementService, pool, log)
	userService := service.NewUserService(userRepo, entitlementService)

	resultQueue := worker.NewResultQueue(rdb, log)
	examService, err := service.NewExamService(cfg, courseRepo, questionRepo, entitlementService, resultRepo, resultQueue, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize exam service")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Course:    handler.NewCourseHandler(courseService, materialService),
		Exam:      handler.NewExamHandler(examService),
		Voucher:   handler.NewVoucherHandler(voucherService),
		Admin:     handler.NewAdminHandler(courseService, materialService, questionService),
		AdminUser: handler.NewAdminUserHandler(userService, voucherService),
		WS:        handler.NewWSHandler(examService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	resultWorker := worker.NewResultWorker(pool, rdb, log)
	go resultWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the result worker and let the queue drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
