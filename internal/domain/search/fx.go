// Package search contains the catalog search domain module
package search

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	telegramDelivery "github.com/Conte777/catalog-search-bot/internal/domain/search/delivery/telegram"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/repository/postgres"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/session"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/usecase/business"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/workers"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure/telegram"
)

// Module provides search domain components for fx dependency injection
var Module = fx.Module("search",
	// Repository
	fx.Provide(
		postgres.NewSettingsRepository,
		postgres.NewPostRepository,
		postgres.NewUserRepository,
		postgres.NewRequestRepository,
	),

	// UseCase
	fx.Provide(
		business.NewSettings,
		business.NewAccessGate,
		session.NewStore,
		business.NewUseCase,
	),

	// Delivery - Telegram (needs raw bot from infrastructure)
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Workers
	workers.Module,

	// Wire cyclic dependency and register routes
	fx.Invoke(wireAndRegister),
)

// provideTelegramHandlers creates Telegram handlers with raw bot
func provideTelegramHandlers(uc *business.UseCase, bot *telegram.Bot, logger zerolog.Logger) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, bot.Raw(), logger.With().Str("component", "telegram-handlers").Logger())
}

// wireAndRegister resolves cyclic dependencies and registers routes
func wireAndRegister(
	lc fx.Lifecycle,
	uc *business.UseCase,
	gate *business.AccessGate,
	scheduler *workers.DeletionScheduler,
	handlers *telegramDelivery.Handlers,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
) {
	// Handlers implements deps.Messenger and deps.MembershipChecker
	// This resolves the cyclic dependency: UseCase -> Messenger <- Handlers -> UseCase
	uc.SetSender(handlers)
	gate.SetChecker(handlers)
	scheduler.SetDeleter(handlers)

	router.RegisterRoutes(bot.Raw())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			router.RegisterCommands(ctx, bot.Raw())
			return nil
		},
	})
}
