package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mem "vet-practice-management/internal/adapters/storage/memory"
	"vet-practice-management/internal/adapters/storage/postgres"
	"vet-practice-management/internal/adapters/storage/redis"
	"vet-practice-management/internal/adapters/storage/sqlite"
	"vet-practice-management/internal/docs"
	"vet-practice-management/internal/domain/billing"
	"vet-practice-management/internal/domain/session"
	"vet-practice-management/internal/middleware"
	"vet-practice-management/internal/platform/config"
	"vet-practice-management/internal/platform/logger"
	"vet-practice-management/internal/platform/metrics"
	"vet-practice-management/internal/router"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	calc := billing.NewCalculator(cfg.TaxRate)
	store := mem.New(mem.Options{Calculator: &calc, Location: cfg.Location})
	if cfg.SeedData {
		if err := store.Seed(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info("store seeded", logger.Fields{"customers": store.Counts().Customers})
	}

	slots, closeSlots, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSlots()

	secret := cfg.SessionSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn("SESSION_SECRET not set, using a random one (sessions die on restart)", nil)
	}
	sessions, err := session.NewService(
		session.DefaultUsers(),
		slots,
		session.NewTokens(secret, cfg.SessionTTL),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return fmt.Errorf("sessions: %w", err)
	}

	m := metrics.New("vet", func() map[string]int {
		c := store.Counts()
		return map[string]int{
			"customers":        c.Customers,
			"pets":             c.Pets,
			"appointments":     c.Appointments,
			"medical_records":  c.MedicalRecords,
			"invoices":         c.Invoices,
			"pending_invoices": c.PendingInvoices,
		}
	})

	limiter := middleware.NewRateLimiter(cfg.LoginRateRPS, cfg.LoginRateBurst)
	go limiter.Run(ctx)

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Store:        store,
			Sessions:     sessions,
			Location:     cfg.Location,
			Logger:       log,
			Metrics:      m,
			LoginLimiter: limiter,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{
			"addr":            cfg.Addr(),
			"session_backend": string(cfg.SessionBackend),
			"tz":              cfg.Location.String(),
		})
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// openSessionStore elige dónde vive el slot de sesión según SESSION_BACKEND.
func openSessionStore(ctx context.Context, cfg config.Config, log logger.Logger) (session.Store, func(), error) {
	noop := func() {}

	switch cfg.SessionBackend {
	case config.SessionSQLite:
		repo, err := sqlite.Open(ctx, cfg.SessionSQLitePath)
		if err != nil {
			return nil, noop, err
		}
		go janitor(ctx, repo, log)
		return repo, func() { _ = repo.Close() }, nil

	case config.SessionPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseDSN, postgres.DefaultPool)
		if err != nil {
			return nil, noop, err
		}
		repo := postgres.NewSessionsRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		go janitor(ctx, repo, log)
		return repo, func() { _ = db.Close() }, nil

	case config.SessionRedis:
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, noop, err
		}
		return redis.NewSessionsRepo(client), func() { _ = client.Close() }, nil

	default:
		return mem.NewSessionStore(), noop, nil
	}
}

// janitor borra slots vencidos cada 10 minutos.
func janitor(ctx context.Context, p purger, log logger.Logger) {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				log.Error("purge sessions", logger.Fields{"error": err})
				continue
			}
			if n > 0 {
				log.Debug("purged sessions", logger.Fields{"count": n})
			}
		}
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
