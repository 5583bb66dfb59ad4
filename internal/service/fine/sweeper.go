package fine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

type sweepRunner interface {
	Sweep(ctx context.Context, userID *uuid.UUID) (domain.SweepResult, error)
}

// Sweeper runs the overdue sweep on a fixed interval until its context ends.
type Sweeper struct {
	runner   sweepRunner
	clock    clockwork.Clock
	interval time.Duration
	timeout  time.Duration
	onStart  bool
	log      *slog.Logger

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
}

// LastRun reports when the latest scheduled sweep finished and its error.
// A zero time means no sweep has completed yet.
func (s *Sweeper) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}

// NewSweeper creates a periodic sweeper. When onStart is set the first sweep
// runs immediately instead of after one interval.
func NewSweeper(log *slog.Logger, runner sweepRunner, clock clockwork.Clock, interval, timeout time.Duration, onStart bool) *Sweeper {
	return &Sweeper{
		runner:   runner,
		clock:    clock,
		interval: interval,
		timeout:  timeout,
		onStart:  onStart,
		log:      log.With("component", "fine_sweeper"),
	}
}

// Run blocks until ctx is cancelled. It always returns nil.
func (s *Sweeper) Run(ctx context.Context) error {
	s.log.InfoContext(ctx, "fine sweeper started",
		slog.Duration("interval", s.interval),
		slog.Bool("on_start", s.onStart),
	)

	if s.onStart {
		s.runOnce(ctx)
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.InfoContext(context.WithoutCancel(ctx), "fine sweeper stopped")
			return nil
		case <-ticker.Chan():
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.runner.Sweep(runCtx, nil)
	if err != nil {
		s.log.ErrorContext(ctx, "scheduled sweep failed", slog.String("error", err.Error()))
	}

	s.mu.Lock()
	s.lastRun = s.clock.Now()
	s.lastErr = err
	s.mu.Unlock()
}
