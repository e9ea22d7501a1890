// Package server wires the forum server together: database, migrations,
// services, the gRPC endpoint and the ops HTTP endpoint. It handles graceful
// shutdown and periodically purges expired refresh tokens.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/logging"
	"github.com/dmitrijs2005/gophforum/internal/server/config"
	"github.com/dmitrijs2005/gophforum/internal/server/metrics"
	"github.com/dmitrijs2005/gophforum/internal/server/ops"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophforum/internal/server/services"

	gs "github.com/dmitrijs2005/gophforum/internal/server/grpc"
)

const purgeInterval = time.Hour

// runner is one long-running component of the app.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	grpcServer  runner
	opsServer   runner
}

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	m := metrics.New()
	us := services.NewUserService(db, rm, c)
	fs := services.NewForumService(db, rm, c, services.NewBannerSigner(c))
	ms := services.NewModerationService(db, rm, c)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: us,
		grpcServer:  gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, fs, ms, m, c.SecretKey),
		opsServer:   ops.NewServer(c.EndpointAddrOps, logger, db, m.Handler()),
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

// start runs r and cancels the whole app when it fails.
func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "component failed", "component", name, "error", err)
		cancelFunc()
	}
}

// purgeTokens deletes expired refresh tokens every interval until ctx ends.
func (app *App) purgeTokens(ctx context.Context, interval time.Duration, purge func(context.Context, time.Time) (int64, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := purge(ctx, now)
			if err != nil {
				app.logger.Warn(ctx, "refresh token purge failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Debug(ctx, "purged refresh tokens", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)
	app.runComponents(ctx)

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	app.logger.Info(context.Background(), "App stopped")
}

// runComponents blocks until ctx is cancelled or a component fails.
func (app *App) runComponents(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc", app.grpcServer)
	}()
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "ops", app.opsServer)
	}()

	if app.userService != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.purgeTokens(ctx, purgeInterval, app.userService.PurgeExpiredTokens)
		}()
	}

	wg.Wait()
}
