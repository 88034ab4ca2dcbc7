package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Purger removes records that are no longer valid and reports how many.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Sweeper runs a Purger on a fixed interval until shut down.
type Sweeper interface {
	Start(ctx context.Context)
	Shutdown()
}

type Config struct {
	Interval time.Duration
	Logger   logrus.FieldLogger
}

type sweeper struct {
	cfg    Config
	purger Purger

	wg     sync.WaitGroup
	mu     sync.Mutex
	cancel context.CancelFunc
}

func New(cfg Config, purger Purger) Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &sweeper{
		cfg:    cfg,
		purger: purger,
	}
}

// Start sweeps once immediately and then on every tick. Calling Start on a
// running sweeper is a no-op.
func (s *sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
	s.cfg.Logger.Infof("session sweeper started, interval %s", s.cfg.Interval)
}

func (s *sweeper) Shutdown() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.cfg.Logger.Info("session sweeper stopped")
}

func (s *sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *sweeper) sweep(ctx context.Context) {
	purged, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.cfg.Logger.WithError(err).Warn("purge expired sessions")
		}
		return
	}
	if purged > 0 {
		s.cfg.Logger.WithField("count", purged).Info("purged expired sessions")
	}
}
