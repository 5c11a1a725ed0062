package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/session"
)

// sweepInterval is how often expired sessions are dropped
const sweepInterval = time.Minute

// SessionSweeper periodically drops expired admin sessions
type SessionSweeper struct {
	store    *session.Store
	interval time.Duration
	logger   zerolog.Logger
	done     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewSessionSweeper creates a new SessionSweeper
func NewSessionSweeper(store *session.Store, logger zerolog.Logger) *SessionSweeper {
	ctx, cancel := context.WithCancel(context.Background())

	return &SessionSweeper{
		store:    store,
		interval: sweepInterval,
		logger:   logger.With().Str("component", "session_sweeper").Logger(),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the sweep loop
func (s *SessionSweeper) Start() {
	s.logger.Info().Dur("interval", s.interval).Msg("Starting session sweeper...")

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if removed := s.store.Sweep(); removed > 0 {
					s.logger.Debug().Int("removed", removed).Msg("Expired sessions dropped")
				}
			}
		}
	}()
}

// Stop stops the sweep loop and waits for it to exit
func (s *SessionSweeper) Stop() {
	s.logger.Info().Msg("Stopping session sweeper...")
	s.cancel()
	<-s.done
	s.logger.Info().Msg("Session sweeper stopped successfully")
}
