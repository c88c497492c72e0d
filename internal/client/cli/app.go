package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/tenacious-integration/deskctl/internal/client/client"
	"github.com/tenacious-integration/deskctl/internal/client/config"
	"github.com/tenacious-integration/deskctl/internal/client/forms"
	"github.com/tenacious-integration/deskctl/internal/client/render"
	"github.com/tenacious-integration/deskctl/internal/client/rpc"
	"github.com/tenacious-integration/deskctl/internal/client/services"
	"github.com/tenacious-integration/deskctl/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService services.AuthService
	formService services.FormService
	reader      *bufio.Reader
	out         io.Writer

	mu       sync.Mutex
	userName string
	mode     Mode
}

// NewApp opens the local cache and wires the services for the site in c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "dsn", c.CacheDSN, "error", err)
		return nil, err
	}
	repos := client.NewRepositories(db)

	gw, err := rpc.NewHTTPGateway(c.SiteURL, logger, rpc.WithTimeout(c.RequestTimeout))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	apiClient := client.NewFrappeClient(gw)

	as := services.NewAuthService(apiClient, db)
	fs := services.NewFormService(apiClient, forms.NewRegistry(apiClient, logger), repos.Snapshots,
		render.NewTextPresenter(os.Stdout), logger)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		authService: as,
		formService: fs,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		a.formService.Wait()
		_ = a.authService.Close(ctx)
		_ = a.db.Close()
	}()
	a.Root(ctx)
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	a.formService.SetOnline(mode == ModeOnline)
	if changed {
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode when reachability changes. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				a.logger.Debug(ctx, "ping failed", "error", err)
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
