// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"fmt"
	"sync/atomic"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// Bot wraps the Telegram bot for infrastructure layer
type Bot struct {
	bot     *tgbot.Bot
	running atomic.Bool
	logger  zerolog.Logger
}

// NewBot creates a new Telegram bot wrapper
func NewBot(token string, logger zerolog.Logger, opts ...tgbot.Option) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	b := &Bot{logger: logger.With().Str("component", "telegram-bot").Logger()}

	opts = append([]tgbot.Option{tgbot.WithDefaultHandler(b.defaultHandler)}, opts...)

	bot, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.bot = bot

	b.logger.Info().Msg("Telegram bot created successfully")

	return b, nil
}

// Raw returns the underlying telegram bot for handler registration
func (b *Bot) Raw() *tgbot.Bot {
	return b.bot
}

// Start starts the bot (blocking call)
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info().Msg("Starting Telegram bot...")
	b.running.Store(true)
	b.bot.Start(ctx)
	b.running.Store(false)
	b.logger.Info().Msg("Telegram bot stopped")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	b.logger.Info().Msg("Stopping Telegram bot...")
	return nil
}

// IsHealthy reports whether the update loop is running
func (b *Bot) IsHealthy() bool {
	return b.running.Load()
}

// defaultHandler drops updates no route matched
func (b *Bot) defaultHandler(_ context.Context, _ *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	b.logger.Debug().
		Int64("chat_id", update.Message.Chat.ID).
		Str("text", update.Message.Text).
		Msg("Unhandled update")
}
