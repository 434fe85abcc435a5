package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edcasillas/globalstats/internal/client/client"
	"github.com/edcasillas/globalstats/internal/client/config"
	"github.com/edcasillas/globalstats/internal/client/identity"
	"github.com/edcasillas/globalstats/internal/client/repositories/metadata"
	"github.com/edcasillas/globalstats/internal/client/services"
	"github.com/edcasillas/globalstats/internal/logging"
	"github.com/edcasillas/globalstats/internal/netx"

	_ "modernc.org/sqlite"
)

type App struct {
	stats    services.StatisticsService
	boards   services.LeaderboardService
	logger   logging.Logger
	registry prometheus.Gatherer
	out      io.Writer
	db       *sql.DB
}

// NewApp opens the local store and builds the services for cfg. The caller
// must Close the App.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	registry := prometheus.NewRegistry()
	transport, err := netx.NewHTTPTransport(cfg.BaseURL,
		netx.WithTimeout(cfg.RequestTimeout),
		netx.WithMetrics(netx.NewMetrics(registry)),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	api := client.NewHTTPClient(transport,
		client.Credentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret},
		client.WithLogger(logger),
	)
	ids := identity.NewStore(metadata.NewSQLiteRepository(db))
	session := services.NewSession(api, ids, logger)

	return &App{
		stats:    services.NewStatisticsService(session, cfg.DefaultUsername),
		boards:   services.NewLeaderboardService(session),
		logger:   logger,
		registry: registry,
		out:      os.Stdout,
		db:       db,
	}, nil
}

// Close releases the local store.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run starts the REPL on stdin and blocks until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "globalstats CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status(ctx), bufio.NewScanner(os.Stdin))
}

// status renders the prompt suffix from the remembered identity.
func (a *App) status(ctx context.Context) func() string {
	return func() string {
		name, err := a.stats.UserName(ctx)
		if err != nil || name == "" {
			return "(new player)"
		}
		return fmt.Sprintf("(%s)", name)
	}
}

// PromptCredentials asks for whatever credentials cfg is missing.
func PromptCredentials(cfg *config.Config, in *bufio.Reader, w io.Writer) error {
	if cfg.ClientID == "" {
		id, err := GetSimpleText(in, "Client id", w)
		if err != nil {
			return err
		}
		cfg.ClientID = id
	}
	if cfg.ClientSecret == "" {
		secret, err := GetSecret(w, "Client secret")
		if err != nil {
			return err
		}
		cfg.ClientSecret = secret
	}
	return nil
}
