package telegram

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/consts"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers all update handlers on the bot
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	commands := map[string]tgbot.HandlerFunc{
		consts.CommandStart.Name:          r.handlers.HandleStart,
		consts.CommandStatus.Name:         r.handlers.HandleStatus,
		consts.CommandSetMode.Name:        r.handlers.HandleSetMode,
		consts.CommandAutoDelete.Name:     r.handlers.HandleAutoDelete,
		consts.CommandSetNRFImage.Name:    r.handlers.HandleSetNRFImage,
		consts.CommandSetPrivateLink.Name: r.handlers.HandleSetPrivateLink,
		consts.CommandBroadcast.Name:      r.handlers.HandleBroadcast,
		consts.CommandCancel.Name:         r.handlers.HandleCancel,
		consts.CommandAddDB.Name:          r.handlers.HandleAddDB,
		consts.CommandRemoveDB.Name:       r.handlers.HandleRemoveDB,
	}
	for name, handler := range commands {
		bot.RegisterHandlerMatchFunc(matchCommand(name), handler)
	}

	// Plain text is a search query, or input for an admin session
	bot.RegisterHandlerMatchFunc(isSearchText, r.handlers.HandleText)

	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackRequest, tgbot.MatchTypePrefix, r.handlers.HandleRequestCallback)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackDateSearch, tgbot.MatchTypePrefix, r.handlers.HandleDateCallback)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackReply, tgbot.MatchTypePrefix, r.handlers.HandleReplyCallback)

	bot.RegisterHandlerMatchFunc(isChannelPost, r.handlers.HandleChannelPost)

	r.logger.Info().Int("commands", len(commands)).Msg("All Telegram handlers registered successfully")
}

// RegisterCommands publishes the command menu
func (r *Router) RegisterCommands(ctx context.Context, bot *tgbot.Bot) {
	all := append(append([]consts.Command{}, consts.UserCommands...), consts.AdminCommands...)

	menu := make([]models.BotCommand, 0, len(all))
	for _, cmd := range all {
		menu = append(menu, models.BotCommand{Command: cmd.Name, Description: cmd.Description})
	}

	if _, err := bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{Commands: menu}); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to register bot command menu")
		return
	}
	r.logger.Info().Int("commands", len(menu)).Msg("Bot command menu registered")
}

// matchCommand matches "/name", "/name args" and "/name@bot args"
func matchCommand(name string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		return commandName(update.Message.Text) == name
	}
}

func isSearchText(update *models.Update) bool {
	if update.Message == nil {
		return false
	}
	text := strings.TrimSpace(update.Message.Text)
	return text != "" && !strings.HasPrefix(text, "/")
}

func isChannelPost(update *models.Update) bool {
	return update.ChannelPost != nil
}

// commandName extracts "name" from "/name@bot args"; empty for non-commands
func commandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name)
}
