package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sarisari-pos/config"
	"sarisari-pos/internal/backend"
	"sarisari-pos/internal/cart"
	"sarisari-pos/internal/catalog"
	"sarisari-pos/internal/category"
	"sarisari-pos/internal/checkout"
	"sarisari-pos/internal/database"
	"sarisari-pos/internal/events"
	"sarisari-pos/internal/gateway/handlers"
	"sarisari-pos/internal/logger"
	"sarisari-pos/internal/session"
	"sarisari-pos/internal/shell"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("terminal stopped with error", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	if cfg.Shell.BackendCmd != "" {
		proc, err := shell.StartBackend(context.Background(), cfg.Shell.BackendCmd, cfg.Shell.BackendDir, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := proc.Stop(shutdownTimeout); err != nil {
				log.Warn("failed to stop backend", zap.Error(err))
			}
		}()
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		client, err := config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, continuing without it", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
		} else {
			rdb = client
			defer rdb.Close()
		}
	}

	bus := events.NewBus()
	if rdb != nil {
		if err := events.NewRedisForwarder(rdb, cfg.Terminal.ID, log).Attach(bus); err != nil {
			return err
		}
	}

	var store session.TokenStore = session.NewMemoryStore()
	if cfg.Session.Store == "redis" {
		if rdb == nil {
			log.Warn("SESSION_STORE=redis but redis is not available, using memory")
		} else {
			store = session.NewRedisStore(rdb, cfg.Session.TokenKey, 0)
		}
	}
	sess := session.New(store, log)

	api, err := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout,
		backend.WithTokenSource(sess),
		backend.WithLogger(log),
	)
	if err != nil {
		return err
	}

	var cache catalog.Cache
	if rdb != nil {
		cache = catalog.NewRedisCache(rdb, cfg.Catalog.CacheTTL)
	}
	cat := catalog.New(api, cache, log)
	if err := cat.Refresh(ctx); err != nil {
		log.Warn("starting with an incomplete catalog", zap.Error(err))
	}

	var journal *database.Journal
	if cfg.Journal.DSN != "" {
		db, err := database.NewConnection(cfg.Journal.DSN)
		if err != nil {
			log.Warn("receipt journal disabled", zap.Error(err))
		} else if err := database.MigrateJournalDB(db); err != nil {
			log.Warn("receipt journal disabled", zap.Error(err))
		} else {
			journal = database.NewJournal(db, cfg.Terminal.ID)
		}
	}

	shoppingCart := cart.New(cat.Product, bus)
	opts := checkout.Options{
		Methods:   cfg.Terminal.PaymentMethods,
		Timeout:   cfg.Terminal.CheckoutTimeout,
		Publisher: bus,
		Log:       log,
	}
	// a nil *Journal must not reach the interface
	if journal != nil {
		opts.Journal = journal
	}
	orch := checkout.New(shoppingCart, api, sess, opts)

	refresher := catalog.NewRefresher(cat, func() bool {
		return orch.State() == checkout.Idle && shoppingCart.IsEmpty()
	}, 30*time.Second, log)
	if err := refresher.Start(cfg.Catalog.RefreshSpec); err != nil {
		return err
	}
	defer refresher.Stop()

	deps := handlers.Dependencies{
		Catalog:  cat,
		Resolver: category.NewResolver(cfg.Backend.StaticBaseURL),
		Cart:     shoppingCart,
		Checkout: orch,
		History:  api,
		Session:  sess,
		Auth:     api,
		Log:      log,
	}
	if journal != nil {
		deps.Journal = journal
	}

	router, err := newRouter(cfg, api, handlers.NewTerminalHTTPHandler(deps), log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Terminal.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("terminal listening", zap.String("addr", cfg.Terminal.Addr), zap.String("backend", api.BaseURL()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
