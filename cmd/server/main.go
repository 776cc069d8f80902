package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/juraijvu/learnms/internal/api"
	"github.com/juraijvu/learnms/internal/app"
	"github.com/juraijvu/learnms/internal/config"
	"github.com/juraijvu/learnms/internal/notify"
	"github.com/juraijvu/learnms/internal/repository"
	"github.com/juraijvu/learnms/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting LearnMS server",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := connectDB(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)

	var mailer notify.Mailer
	if cfg.SendgridKey != "" {
		mailer = notify.NewSendgridMailer(cfg.SendgridKey, cfg.MailFromName, cfg.MailFromEmail)
	} else {
		mailer = notify.NewConsoleMailer(logger)
	}

	userSvc := service.NewUserService(userRepo, logger)
	courseSvc := service.NewCourseService(courseRepo, activityRepo, logger)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, userRepo, activityRepo, logger)
	scheduleSvc := service.NewScheduleService(scheduleRepo, userRepo, courseRepo, activityRepo, mailer, logger)

	sweeper := app.NewSweeper(activityRepo, cfg.ActivityRetention, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	server := api.NewServer(&api.Options{
		Addr:        cfg.HTTPAddr,
		Auth:        userSvc,
		Users:       userSvc,
		Courses:     courseSvc,
		Enrollments: enrollmentSvc,
		Schedules:   scheduleSvc,
		Logger:      logger,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		logger.Fatal("HTTP server failed", zap.Error(err))
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("Failed to stop server cleanly", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// connectDB opens the pool and pings it with exponential backoff, so the
// server survives the database coming up slightly after it.
func connectDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(pool.Ping(ctx))
	})
	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
