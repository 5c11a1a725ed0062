// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/catalog-search-bot/config"
	"github.com/Conte777/catalog-search-bot/internal/domain"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, metrics, database, telegram bot, http)
		infrastructure.Module,

		// Domain (catalog search)
		domain.Module,
	)
}
