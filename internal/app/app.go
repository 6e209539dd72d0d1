package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/five82/appdeck/internal/catalog"
	"github.com/five82/appdeck/internal/config"
	"github.com/five82/appdeck/internal/fetch"
	"github.com/five82/appdeck/internal/logging"
	"github.com/five82/appdeck/internal/prefs"
	"github.com/five82/appdeck/internal/state"
	"github.com/five82/appdeck/internal/ui"
)

// Options configure the appdeck application.
type Options struct {
	ConfigPath   string
	PrefsPath    string        // empty uses default ~/.config/appdeck/prefs.toml
	RefreshEvery time.Duration // replaces refresh_interval when SetRefresh is true
	SetRefresh   bool          // RefreshEvery was given explicitly; zero disables refresh
	Once         bool          // fetch once, print, exit
	Stdout       io.Writer
}

// Run boots appdeck until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	client, err := catalog.NewClient(cfg.BaseURL,
		catalog.WithEndpoint(cfg.Endpoint),
		catalog.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}
	log.WithFields(logrus.Fields{
		"base_url": client.BaseURL(),
		"endpoint": cfg.Endpoint,
		"once":     opts.Once,
	}).Info("appdeck starting")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	ctrl := fetch.New(ctx, catalog.NewRepository(client), store, fetch.WithLogger(log))
	defer ctrl.Close()

	if opts.Once {
		ctrl.Wait()
		snap := store.Snapshot()
		// An interrupted fetch never completes; its outcome is unknown.
		if err := ctx.Err(); err != nil || snap.Loading {
			if err == nil {
				err = context.Canceled
			}
			return fmt.Errorf("fetch apps: %w", err)
		}
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return writeList(out, snap, client.BaseURL())
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return RunRefresher(gctx, ctrl, cfg.RefreshInterval)
	})
	g.Go(func() error {
		defer cancel()
		return ui.Run(ui.Options{
			Context:    gctx,
			Store:      store,
			Fetcher:    ctrl,
			BaseURL:    client.BaseURL(),
			LogPath:    cfg.LogFile,
			ThemeName:  userPrefs.Theme,
			ShowImages: userPrefs.ShowImages,
			PrefsPath:  opts.PrefsPath,
		})
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("appdeck stopped")
		return err
	}
	log.Info("appdeck stopped")
	return nil
}

// applyOverrides layers command-line values over the loaded config.
func applyOverrides(cfg *config.Config, opts Options) error {
	if opts.SetRefresh {
		cfg.RefreshInterval = opts.RefreshEvery
	}
	return cfg.Validate()
}
