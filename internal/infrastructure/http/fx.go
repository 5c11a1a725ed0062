// Package http provides the operational HTTP server
package http

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Conte777/catalog-search-bot/config"
	httpDelivery "github.com/Conte777/catalog-search-bot/internal/delivery/http"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure/http/server"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure/telegram"
)

// Module provides HTTP server for fx DI
var Module = fx.Module("http",
	fx.Provide(NewServerFx),
	fx.Invoke(func(*server.Server) {}),
)

// NewServerFx creates HTTP server with lifecycle hooks for fx DI
func NewServerFx(
	lc fx.Lifecycle,
	serviceCfg *config.ServiceConfig,
	db *gorm.DB,
	bot *telegram.Bot,
	logger zerolog.Logger,
) (*server.Server, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	srv := server.NewServer(serviceCfg.Name, serviceCfg.Port, logger)

	srv.RegisterMetrics()
	srv.RegisterHealth(httpDelivery.NewHealthHandler(sqlDB, bot, logger))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv, nil
}
