package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyago/citychat-server/internal/config"
	"github.com/voyago/citychat-server/internal/core"
	"github.com/voyago/citychat-server/internal/moderation"
	"github.com/voyago/citychat-server/internal/notify"
	"github.com/voyago/citychat-server/internal/store"
	"github.com/voyago/citychat-server/internal/store/sqlite"
	transporthttp "github.com/voyago/citychat-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	logger.Info().Str("db_path", cfg.DatabasePath).Msg("database initialized")

	filter, err := moderation.NewWordFilter(cfg.Moderation.Words, '*')
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("init word filter: %w", err)
	}

	policy := moderation.Policy{
		WarnThreshold: cfg.Moderation.WarnThreshold,
		MuteThreshold: cfg.Moderation.MuteThreshold,
		MuteDuration:  cfg.Moderation.MuteDuration,
	}

	hub := core.NewHub(core.HubOptions{
		Store:        st,
		Notifier:     notify.NewLogNotifier(logger),
		Filter:       filter,
		Policy:       policy,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logger,
	})

	server := transporthttp.NewServer(hub, st, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		store:           st,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes database and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
