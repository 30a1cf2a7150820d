// Package server initializes and runs the application server: it opens the
// database, applies migrations, wires the service layer and starts the HTTP
// server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/alexkarev/taskboard/internal/logging"
	"github.com/alexkarev/taskboard/internal/server/config"
	"github.com/alexkarev/taskboard/internal/server/mail"
	"github.com/alexkarev/taskboard/internal/server/repositories/repomanager"
	"github.com/alexkarev/taskboard/internal/server/services"

	hs "github.com/alexkarev/taskboard/internal/server/http"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler *hs.Handler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	mailer, err := mail.NewClient(cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFromAddress, cfg.EmailDisabled)
	if err != nil {
		return nil, fmt.Errorf("mail client error: %w", err)
	}
	if !mailer.IsEnabled() {
		logger.Warn(ctx, "outbound email disabled, verification emails will not be sent")
	}

	authService := services.NewAuthService(db, m, mailer, logger, cfg)
	userService := services.NewUserService(db, m)
	taskService := services.NewTaskService(db, m)
	projectService := services.NewProjectService(db, m)

	handler := hs.NewHandler(authService, userService, taskService, projectService, logger, cfg)

	return &App{config: cfg, logger: logger, db: db, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := hs.NewServer(app.config.EndpointAddr, app.handler, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
}
