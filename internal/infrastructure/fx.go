// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/Conte777/catalog-search-bot/internal/infrastructure/database"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure/http"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure/logger"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure/metrics"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure/telegram"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	database.Module,
	telegram.Module,
	http.Module,
)
