package workers

import (
	"context"

	"go.uber.org/fx"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/deps"
)

// Module provides workers for fx dependency injection
var Module = fx.Module("search-workers",
	fx.Provide(
		NewDeletionScheduler,
		func(s *DeletionScheduler) deps.DeletionScheduler { return s },
		NewSessionSweeper,
	),
	fx.Invoke(registerDeletionSchedulerLifecycle),
	fx.Invoke(registerSessionSweeperLifecycle),
)

// registerDeletionSchedulerLifecycle stops the scheduler on shutdown
func registerDeletionSchedulerLifecycle(lc fx.Lifecycle, scheduler *DeletionScheduler) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

// registerSessionSweeperLifecycle registers session sweeper lifecycle hooks
func registerSessionSweeperLifecycle(lc fx.Lifecycle, sweeper *SessionSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
