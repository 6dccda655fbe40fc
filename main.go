package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gastroguide/config"
	"gastroguide/dao"
	"gastroguide/internal/logger"
	"gastroguide/internal/notify"
	"gastroguide/route"
	"gastroguide/service"
	"gastroguide/service/generators"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: ./config/config.yaml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "gastroguide: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting", map[string]interface{}{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	intents, err := config.LoadIntents(cfg.Intents.RulesFile)
	if err != nil {
		return err
	}
	log.Info("intent rules loaded", map[string]interface{}{"count": len(intents.Intents)})

	store, err := openBookingStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, closeSessions, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	notifier, err := notify.NewEmailNotifier(ctx, notify.Config{
		Enabled:   cfg.Notifications.EmailEnabled,
		DevMode:   cfg.Notifications.DevMode,
		FromEmail: cfg.Notifications.FromEmail,
		Region:    cfg.Notifications.AWSRegion,
	}, cfg.Restaurant, log)
	if err != nil {
		return err
	}

	deps := generators.NewDeps(store, store)
	deps.Restaurant = cfg.Restaurant

	classifier := service.NewIntentClassifier(intents.Intents, log)
	chatSvc := service.NewChatService(sessions, classifier, service.DefaultGenerators(), deps, cfg.Session.MaxRetries, log)
	bookingSvc := service.NewBookingService(store, notifier, log)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	route.Register(r, route.Services{
		Chat:       chatSvc,
		Bookings:   bookingSvc,
		Restaurant: cfg.Restaurant,
		Logger:     log,
	})

	srv := &http.Server{Addr: cfg.Server.Address, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openBookingStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*dao.SQLStore, error) {
	var (
		store *dao.SQLStore
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		p := cfg.Database.Postgres
		store, err = dao.NewPostgres(p.DSN(), p.MaxConnections, p.MaxIdle, log)
	default:
		store, err = dao.NewSQLite(cfg.Database.SQLitePath, log)
	}
	if err != nil {
		return nil, err
	}

	if err := store.InitSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	if cfg.Database.Seed {
		if err := store.Seed(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}

func openSessionStore(ctx context.Context, cfg *config.Config, log logger.Logger) (service.SessionStore, func(), error) {
	if cfg.Session.Backend == config.SessionBackendBolt {
		store, err := dao.NewBoltStore(cfg.Session.BoltPath, cfg.Session.TTL, log)
		if err != nil {
			return nil, nil, err
		}
		return store, closer(store, log), nil
	}

	r := cfg.Session.Redis
	store := dao.NewRedisStore(r.Address, r.Password, r.DB, cfg.Session.TTL, log)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("connect redis at %s: %w", r.Address, err)
	}
	return store, closer(store, log), nil
}

func closer(c io.Closer, log logger.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.WithError(err).Warn("close failed", nil)
		}
	}
}
