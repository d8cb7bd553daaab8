package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/columns"
	"github.com/MrSnakeDoc/shelf/internal/config"
	"github.com/MrSnakeDoc/shelf/internal/feedback"
	"github.com/MrSnakeDoc/shelf/internal/httpserver"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/library"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/render"
	"github.com/MrSnakeDoc/shelf/internal/scheduler"
	"github.com/MrSnakeDoc/shelf/internal/sources/catalogapi"
	"github.com/MrSnakeDoc/shelf/internal/sources/seedfile"
	"github.com/MrSnakeDoc/shelf/internal/store"
	"github.com/MrSnakeDoc/shelf/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	kv       store.KV
	remote   *catalogapi.Client
	reloader *scheduler.CatalogReloader
	sweeper  *scheduler.FeedbackSweeper
}

// New wires the board. It fails when the configured store cannot be opened:
// without it no change would survive a restart.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)

	kv, err := openStore(ctx, cfg, log.Named("store"))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}

	fb := feedback.New(kv, log.Named("feedback"))
	lib := library.New(kv, log.Named("library"))

	view := render.NewBoard()
	feed := render.NewFeed(render.DefaultFeedSize)
	board := columns.NewBoard(
		columns.New(ctx, kv, fb,
			columns.WithRenderer(view),
			columns.WithNotifier(feed),
			columns.WithLogger(log.Named("columns")),
		),
		lib,
	)
	log.Info("board restored", logger.Int("books", len(board.AllBookIDs())))

	opts := catalog.Options{CacheTTL: cfg.CatalogCacheTTL}
	var remote *catalogapi.Client
	if cfg.CatalogURL != "" {
		remote = catalogapi.NewClient(cfg.CatalogURL, cfg.CatalogTimeout)
		opts.Remote = remote
		log.Info("remote catalog configured", logger.String("url", remote.URL()))
	}
	if cfg.CatalogFile != "" {
		seed := seedfile.NewLoader(cfg.CatalogFile)
		opts.Seed = seed
		log.Info("seed catalog configured", logger.String("file", seed.Path()))
	}
	if opts.Remote == nil && opts.Seed == nil {
		log.Warn("no catalog source configured, only your own books can be browsed")
	}
	svc := catalog.NewService(index.NewCatalogIndex(), lib, board, kv, log.Named("catalog"), opts)

	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewCatalogReloader(svc, log.Named("catalog"), cfg.CatalogReloadInterval, reloadTrigger)
	sweeper := scheduler.NewFeedbackSweeper(fb, board, lib, log.Named("sweeper"), cfg.GCInterval)

	d := deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		StoreBackend:  cfg.Store,
		KV:            kv,
		Board:         board,
		Catalog:       svc,
		Searcher:      catalog.NewSearcher(svc),
		Feedback:      fb,
		View:          view,
		Feed:          feed,
		ReloadTrigger: reloadTrigger,
	}

	return &App{
		cfg:      cfg,
		logger:   log,
		server:   httpserver.New(cfg, log, d),
		kv:       kv,
		remote:   remote,
		reloader: reloader,
		sweeper:  sweeper,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("🚀 starting shelf",
		logger.String("build", version.String()),
		logger.String("addr", a.cfg.ListenPort),
		logger.String("store", a.cfg.Store))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.reloader.Start(ctx)
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.CatalogReloadInterval))

	a.sweeper.Start(ctx)
	a.logger.Info("feedback sweeper started",
		logger.Duration("interval", a.cfg.GCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ shutting down gracefully")
	case runErr = <-errCh:
	}

	a.reloader.Stop()
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if a.remote != nil {
		_ = a.remote.Close()
	}
	if err := a.kv.Close(); err != nil {
		a.logger.Warn("failed to close store", logger.Error(err))
	} else {
		a.logger.Info("✅ store closed cleanly")
	}

	_ = a.logger.Sync()
	return runErr
}
