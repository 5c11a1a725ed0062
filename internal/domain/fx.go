// Package domain contains all domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/Conte777/catalog-search-bot/internal/domain/search"
)

// Module aggregates all domain modules for fx dependency injection
var Module = fx.Module("domain",
	search.Module,
)
