package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/client/client"
	"github.com/dmitrijs2005/gophforum/internal/client/config"
	"github.com/dmitrijs2005/gophforum/internal/client/forms"
	"github.com/dmitrijs2005/gophforum/internal/client/output"
	"github.com/dmitrijs2005/gophforum/internal/client/services"
	"github.com/dmitrijs2005/gophforum/internal/client/session"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/i18n"
	"github.com/dmitrijs2005/gophforum/internal/logging"
	"github.com/dmitrijs2005/gophforum/internal/rooterror"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	auth      services.AuthService
	forum     services.ForumService
	store     io.Closer
	catalog   *i18n.Catalog
	resolver  *rooterror.Resolver
	formatter output.Formatter
	reader    *bufio.Reader
	out       io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local session, connects to the server and resumes the
// stored session if there is one.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger := logging.NewText(os.Stderr, c.LogLevel)

	catalog, err := i18n.Load(c.LocaleFile)
	if err != nil {
		return nil, err
	}

	store, err := session.Open(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening session database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		store.Close()
		return nil, err
	}
	apiClient.OnTokenRefresh(func(access, refresh string) {
		if err := store.SaveTokens(context.Background(), access, refresh); err != nil {
			logger.Error(context.Background(), "error saving refreshed tokens", "error", err)
		}
	})

	a := &App{
		config:    c,
		logger:    logger,
		auth:      services.NewAuthService(apiClient, store),
		forum:     services.NewForumService(apiClient),
		store:     store,
		catalog:   catalog,
		resolver:  rooterror.NewResolver(catalog),
		formatter: output.NewFormatter(c.OutputFormat),
		reader:    bufio.NewReader(in),
		out:       out,
		mode:      ModeOffline,
	}

	if _, err := a.auth.Restore(ctx); err != nil {
		logger.Warn(ctx, "stored session could not be restored", "error", err)
	}
	return a, nil
}

// Close releases the connection and the session database.
func (a *App) Close() error {
	var err error
	if a.auth != nil {
		err = a.auth.Close()
	}
	if a.store != nil {
		if cerr := a.store.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (a *App) t(id, fallback string) string {
	return a.catalog.T(id, fallback)
}

// newForm returns a form whose messages cover every known error code.
func (a *App) newForm() *forms.Form {
	resolver := a.resolver
	if resolver == nil {
		resolver = rooterror.NewResolver(a.catalog)
	}
	return forms.New(resolver, a.catalog.Messages(fielderrors.Codes...))
}

func (a *App) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed && a.logger != nil {
		a.logger.Info(ctx, "switched mode", "mode", mode)
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.auth.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.currentUser(); u != nil {
		s = u.Name + " "
	}
	s += string(a.Mode())
	return fmt.Sprintf("(%s)", s)
}

func (a *App) currentUser() *session.User {
	if a.auth == nil {
		return nil
	}
	return a.auth.Current()
}

// Run starts the watcher and the REPL, blocking until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn(a.t("welcome", "Welcome to gophforum (type 'help' for commands)"))
	runREPL(ctx, a, a.getStatus, a.reader)
}
