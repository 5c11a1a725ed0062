// Package workers contains background workers for the search domain
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/catalog-search-bot/internal/infrastructure/metrics"
)

// deleteTimeout bounds a single delete call
const deleteTimeout = 30 * time.Second

// MessageDeleter removes a message from a chat
type MessageDeleter interface {
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// DeletionScheduler deletes messages once after a delay.
// Deletions still pending on Stop are dropped and logged.
type DeletionScheduler struct {
	mu      sync.RWMutex
	deleter MessageDeleter

	metrics *metrics.Metrics
	logger  zerolog.Logger
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewDeletionScheduler creates a new DeletionScheduler. The deleter is attached later with SetDeleter.
func NewDeletionScheduler(m *metrics.Metrics, logger zerolog.Logger) *DeletionScheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &DeletionScheduler{
		metrics: m,
		logger:  logger.With().Str("component", "deletion_scheduler").Logger(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetDeleter sets the MessageDeleter after construction
func (s *DeletionScheduler) SetDeleter(deleter MessageDeleter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleter = deleter
}

// ScheduleDeletion deletes messageID in chatID after the delay. It never blocks.
func (s *DeletionScheduler) ScheduleDeletion(chatID int64, messageID int, after time.Duration) {
	if s.ctx.Err() != nil {
		s.logger.Warn().Int64("chat_id", chatID).Int("message_id", messageID).Msg("Scheduler stopped, deletion dropped")
		return
	}

	s.metrics.DeletionScheduled()
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer s.metrics.DeletionDone()

		timer := time.NewTimer(after)
		defer timer.Stop()

		select {
		case <-s.ctx.Done():
			s.logger.Info().Int64("chat_id", chatID).Int("message_id", messageID).Msg("Pending deletion dropped on shutdown")
			return
		case <-timer.C:
		}

		s.delete(chatID, messageID)
	}()

	s.logger.Debug().
		Int64("chat_id", chatID).
		Int("message_id", messageID).
		Dur("after", after).
		Msg("Deletion scheduled")
}

func (s *DeletionScheduler) delete(chatID int64, messageID int) {
	s.mu.RLock()
	deleter := s.deleter
	s.mu.RUnlock()

	if deleter == nil {
		s.logger.Error().Int64("chat_id", chatID).Int("message_id", messageID).Msg("Message deleter is not set")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
	defer cancel()

	if err := deleter.DeleteMessage(ctx, chatID, messageID); err != nil {
		s.logger.Warn().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("Scheduled deletion failed")
		s.metrics.RecordDeliveryFailure("auto_delete")
		return
	}

	s.logger.Debug().Int64("chat_id", chatID).Int("message_id", messageID).Msg("Message auto deleted")
}

// Stop drops pending deletions and waits for running ones
func (s *DeletionScheduler) Stop() {
	s.logger.Info().Msg("Stopping deletion scheduler...")
	s.cancel()
	s.wg.Wait()
	s.logger.Info().Msg("Deletion scheduler stopped successfully")
}
