// Package server wires the portal together: database, services, the gRPC
// API, the ops HTTP server and the job scheduler, and runs them until a
// shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/citizenportal/internal/logging"
	"github.com/dmitrijs2005/citizenportal/internal/navigation"
	"github.com/dmitrijs2005/citizenportal/internal/server/config"
	"github.com/dmitrijs2005/citizenportal/internal/server/httpapi"
	"github.com/dmitrijs2005/citizenportal/internal/server/jobs"
	"github.com/dmitrijs2005/citizenportal/internal/server/notify"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/citizenportal/internal/server/services"

	gs "github.com/dmitrijs2005/citizenportal/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	grpcServer *gs.GRPCServer
	opsServer  *httpapi.Server
	scheduler  *jobs.Scheduler
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func newSender(c *config.Config, l logging.Logger) notify.Sender {
	if c.NotificationSender == config.SenderSMTP {
		return notify.NewSMTPSender(c.SMTPHost, c.SMTPPort, c.SMTPUser, c.SMTPPassword, c.SMTPFrom)
	}
	return notify.NewLogSender(l)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	accounts := services.NewAccountService(db, rm)
	notifications := services.NewNotificationService(db, rm, newSender(c, logger), logger)
	users := services.NewUserService(db, rm, c)
	votes := services.NewVoteService(db, rm)
	nav := services.NewNavigationService(db, rm, navigation.NewResolver(c.Pages, c.MainPage))

	grpcServer, err := gs.NewGRPCServer(c, logger, gs.Services{
		Users:       users,
		Ledger:      services.NewLedgerService(db, rm, accounts),
		Votes:       votes,
		Requests:    services.NewRequestService(db, rm, notifications),
		Marketplace: services.NewMarketplaceService(db, rm, accounts),
		Documents:   services.NewDocumentService(db, rm, c),
		Navigation:  nav,
		Settings:    services.NewSettingsService(c),
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	scheduler, err := jobs.NewScheduler(c, logger, votes, notifications, users)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		grpcServer: grpcServer,
		opsServer:  httpapi.NewServer(c.OpsAddr, logger, db, nav),
		scheduler:  scheduler,
	}, nil
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

// Run blocks until a signal arrives or a server fails, then stops every
// component and closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := app.grpcServer.Run(ctx); err != nil {
			app.logger.Error(ctx, "gRPC server failed", "error", err)
			cancelFunc()
		}
	}()
	go func() {
		defer wg.Done()
		if err := app.opsServer.Run(ctx); err != nil {
			app.logger.Error(ctx, "ops HTTP server failed", "error", err)
			cancelFunc()
		}
	}()
	go func() {
		defer wg.Done()
		app.scheduler.Run(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
