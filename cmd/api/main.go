package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crewtrack/crewtrack-backend-go/internal/config"
	appHTTP "github.com/crewtrack/crewtrack-backend-go/internal/handler/http"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/database"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/jwt"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/sse"
	"github.com/crewtrack/crewtrack-backend-go/internal/repository/postgresql"
	authService "github.com/crewtrack/crewtrack-backend-go/internal/service/auth"
	documentService "github.com/crewtrack/crewtrack-backend-go/internal/service/document"
	notificationService "github.com/crewtrack/crewtrack-backend-go/internal/service/notification"
	timesheetService "github.com/crewtrack/crewtrack-backend-go/internal/service/timesheet"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLogLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "crewtrack-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(dsn); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	attestationRepo := postgresql.NewAttestationRepository(db)
	artifactRepo := postgresql.NewArtifactRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	dispatcher := notificationService.NewDispatcher(notificationRepo, userRepo, hub, logger, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
	})

	renderer := documentService.NewMarotoRenderer()
	authSvc := authService.NewAuthService(userRepo, jwtService)
	timesheetSvc := timesheetService.NewTimesheetService(
		db,
		timesheetRepo,
		shiftRepo,
		attestationRepo,
		artifactRepo,
		renderer,
		dispatcher,
		cfg.App.OrgName,
		cfg.Document.MaxSignatureBytes,
		cfg.Document.GenerationTimeout,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc, cfg.Document.MaxSignatureBytes)
	notificationHandler := appHTTP.NewNotificationHandler(dispatcher, jwtService)

	router := appHTTP.NewRouter(
		logger,
		jwtService,
		authHandler,
		timesheetHandler,
		notificationHandler,
		cfg.App.FrontendURL,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	// flush queued notifications before the pool closes
	dispatcher.Stop()
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
