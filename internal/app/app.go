// Package app wires configuration, storage, services and transport into a
// running library backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/libris-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/libris-backend/internal/adapter/postgres/audit"
	bookrepo "github.com/heartmarshall/libris-backend/internal/adapter/postgres/book"
	finerepo "github.com/heartmarshall/libris-backend/internal/adapter/postgres/fine"
	loanrepo "github.com/heartmarshall/libris-backend/internal/adapter/postgres/loan"
	userrepo "github.com/heartmarshall/libris-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/libris-backend/internal/auth"
	"github.com/heartmarshall/libris-backend/internal/config"
	"github.com/heartmarshall/libris-backend/internal/service/catalog"
	"github.com/heartmarshall/libris-backend/internal/service/fine"
	"github.com/heartmarshall/libris-backend/internal/service/lending"
	"github.com/heartmarshall/libris-backend/internal/service/member"
	"github.com/heartmarshall/libris-backend/internal/transport/middleware"
	"github.com/heartmarshall/libris-backend/internal/transport/rest"
	"github.com/heartmarshall/libris-backend/internal/validation"
)

// App holds the wired services over one connection pool.
type App struct {
	cfg   *config.Config
	log   *slog.Logger
	pool  *pgxpool.Pool
	clock clockwork.Clock

	Catalog *catalog.Service
	Members *member.Service
	Lending *lending.Service
	Fines   *fine.Service
}

// New wires repositories and services over pool. The caller owns the pool.
func New(cfg *config.Config, log *slog.Logger, pool *pgxpool.Pool, clock clockwork.Clock) *App {
	tx := postgres.NewTxManager(pool)

	books := bookrepo.New(pool)
	users := userrepo.New(pool)
	loans := loanrepo.New(pool)
	fines := finerepo.New(pool)
	audit := auditrepo.New(pool)

	fineSvc := fine.NewService(log, fines, loans, audit, tx, clock, cfg.Fines.PerDayRate)

	return &App{
		cfg:     cfg,
		log:     log,
		pool:    pool,
		clock:   clock,
		Catalog: catalog.NewService(log, books, loans, audit, tx),
		Members: member.NewService(log, users, audit, tx),
		Fines:   fineSvc,
		Lending: lending.NewService(log, lending.Deps{
			Books:   books,
			Users:   users,
			Loans:   loans,
			Fines:   fines,
			Sweeper: fineSvc,
			Audit:   audit,
			Tx:      tx,
		}, clock, cfg.Lending.LoanPeriod()),
	}
}

// Sweeper returns the periodic overdue sweeper configured from fines.*.
func (a *App) Sweeper() *fine.Sweeper {
	return fine.NewSweeper(a.log, a.Fines, a.clock,
		a.cfg.Fines.SweepInterval, a.cfg.Fines.SweepTimeout, a.cfg.Fines.SweepOnStart)
}

// Handler builds the HTTP surface. sweeper feeds the health report and may
// be nil. The returned stop func releases the rate limiter.
func (a *App) Handler(sweeper *fine.Sweeper) (http.Handler, func()) {
	v := validation.New()
	dev := a.cfg.App.IsDevelopment()

	health := rest.NewHealthHandler(a.pool, a.clock, BuildVersion())
	if sweeper != nil {
		health.WithSweeper(sweeper)
	}

	var limiter *middleware.RateLimiter
	stop := func() {}
	if a.cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(a.cfg.RateLimit.RequestsPerSecond, a.cfg.RateLimit.Burst, a.cfg.RateLimit.IdleTTL)
		stop = limiter.Stop
	}

	handler := rest.NewRouter(rest.RouterDeps{
		Books:       rest.NewBookHandler(a.Catalog, v, a.clock, a.log, dev),
		Users:       rest.NewUserHandler(a.Members, v, a.log, dev),
		Loans:       rest.NewLoanHandler(a.Lending, v, a.log, dev),
		Fines:       rest.NewFineHandler(a.Fines, v, a.log, dev),
		Health:      health,
		Tokens:      auth.NewJWTManager(a.cfg.Auth.JWTSecret, a.cfg.Auth.JWTIssuer, a.clock),
		RateLimiter: limiter,
		Auth:        a.cfg.Auth,
		CORS:        a.cfg.CORS,
		Logger:      a.log,
	})
	return handler, stop
}

// Serve runs the HTTP server and the fine sweeper until ctx is cancelled,
// then shuts the server down within server.shutdown_timeout.
func (a *App) Serve(ctx context.Context) error {
	sweeper := a.Sweeper()
	handler, stop := a.Handler(sweeper)
	defer stop()

	srv := &http.Server{
		Addr:              serverAddr(a.cfg.Server),
		Handler:           handler,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: a.cfg.Server.ReadTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
		IdleTimeout:       a.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sweeper.Run(gctx)
	})

	g.Go(func() error {
		a.log.InfoContext(gctx, "http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down http server", slog.Duration("timeout", a.cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Run opens the database, optionally migrates it and serves until ctx ends.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger, migrate bool) error {
	log.InfoContext(ctx, "starting libris",
		slog.String("version", BuildVersion()),
		slog.String("env", cfg.App.Env),
		slog.Bool("auth_enforced", cfg.Auth.Enforce),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if migrate {
		if err := MigrateUp(ctx, pool, log); err != nil {
			return err
		}
	}

	return New(cfg, log, pool, clockwork.NewRealClock()).Serve(ctx)
}

// MigrateUp applies pending migrations.
func MigrateUp(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	m, err := postgres.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer m.Close()

	n, err := m.Up(ctx)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "migrations applied", slog.Int("count", n))
	return nil
}

func serverAddr(cfg config.ServerConfig) string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}
