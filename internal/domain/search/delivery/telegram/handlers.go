// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/consts"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/usecase/business"
	pkgerrors "github.com/Conte777/catalog-search-bot/pkg/errors"
)

// Constants for Telegram API
const (
	MaxMessageLength = 4096
	MaxCaptionLength = 1024
	RequestTimeout   = 30 * time.Second
)

// Handlers contains Telegram update handlers
// Implements deps.Messenger and deps.MembershipChecker interfaces
type Handlers struct {
	uc     *business.UseCase
	bot    *tgbot.Bot
	logger zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *business.UseCase, bot *tgbot.Bot, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:     uc,
		bot:    bot,
		logger: logger,
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	sender := senderFrom(msg.From)

	h.logCommand(sender.UserID, "/start", "processing")

	resp, err := h.uc.HandleStart(ctx, &dto.StartCommandRequest{Sender: sender})
	if err != nil {
		h.replyError(ctx, msg.Chat.ID, sender.UserID, "/start", err)
		return
	}

	h.sendResponse(ctx, msg.Chat.ID, resp.Message)
	h.logCommand(sender.UserID, "/start", "success")
}

// HandleStatus handles /status command
func (h *Handlers) HandleStatus(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.handleAdminCommand(ctx, update, "/status", h.uc.Status)
}

// HandleSetMode handles /setmode command
func (h *Handlers) HandleSetMode(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.handleAdminCommand(ctx, update, "/setmode", h.uc.SetMode)
}

// HandleAutoDelete handles /autodelete command
func (h *Handlers) HandleAutoDelete(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.handleAdminCommand(ctx, update, "/autodelete", h.uc.AutoDelete)
}

// HandleSetNRFImage handles /setnrfimage command
func (h *Handlers) HandleSetNRFImage(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.handleAdminCommand(ctx, update, "/setnrfimage", h.uc.SetNRFImage)
}

// HandleSetPrivateLink handles /setprivatelink command
func (h *Handlers) HandleSetPrivateLink(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.handleAdminCommand(ctx, update, "/setprivatelink", h.uc.SetPrivateLink)
}

// HandleAddDB handles /adddb command
func (h *Handlers) HandleAddDB(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.handleAdminCommand(ctx, update, "/adddb", h.uc.AddDB)
}

// HandleRemoveDB handles /removedb command
func (h *Handlers) HandleRemoveDB(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.handleAdminCommand(ctx, update, "/removedb", h.uc.RemoveDB)
}

// HandleCancel handles /cancel command
func (h *Handlers) HandleCancel(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.handleAdminCommand(ctx, update, "/cancel", h.uc.Cancel)
}

// HandleBroadcast handles /broadcast command. Text after the command keeps its line breaks.
func (h *Handlers) HandleBroadcast(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	var args []string
	if payload := commandPayload(msg.Text); payload != "" {
		args = []string{payload}
	}

	h.runAdminCommand(ctx, msg, "/broadcast", args, h.uc.StartBroadcast)
}

// HandleText handles plain text: a pending admin session first, a search otherwise
func (h *Handlers) HandleText(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	sender := senderFrom(msg.From)
	chatID := msg.Chat.ID

	resp, handled, err := h.uc.HandleAdminText(ctx, &dto.AdminTextRequest{
		AdminID: sender.UserID,
		ChatID:  chatID,
		Text:    msg.Text,
	})
	if handled {
		if err != nil {
			h.replyError(ctx, chatID, sender.UserID, "session", err)
			return
		}
		h.sendResponse(ctx, chatID, resp.Message)
		h.logCommand(sender.UserID, "session", "success")
		return
	}

	outcome, err := h.uc.HandleQuery(ctx, &dto.SearchRequest{
		Sender:    sender,
		ChatID:    chatID,
		MessageID: msg.ID,
		Query:     msg.Text,
	})
	if err != nil {
		h.replyError(ctx, chatID, sender.UserID, "search", err)
		return
	}

	h.logger.Debug().
		Int64("user_id", sender.UserID).
		Str("outcome", string(outcome.Kind)).
		Int("results", len(outcome.Results)).
		Msg("Search handled")
}

// HandleRequestCallback handles the "Request Admin to Add" button
func (h *Handlers) HandleRequestCallback(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}
	sender := senderFrom(&cq.From)

	prompt := cq.Message.Message
	if prompt == nil {
		h.answer(ctx, cq.ID, consts.MsgInternalError, true)
		return
	}

	query := strings.TrimPrefix(cq.Data, consts.CallbackRequest)
	if query == "" {
		query = business.QueryFromPrompt(promptText(prompt))
	}

	_, err := h.uc.HandleEscalation(ctx, &dto.EscalationRequest{
		Sender:          sender,
		ChatID:          prompt.Chat.ID,
		PromptMessageID: prompt.ID,
		PromptHasPhoto:  len(prompt.Photo) > 0,
		Query:           query,
	})
	if err != nil {
		h.logError(sender.UserID, "request", err)
		h.answer(ctx, cq.ID, userMessage(err), true)
		return
	}

	h.answer(ctx, cq.ID, "", false)
	h.logCommand(sender.UserID, "request", "success")
}

// HandleDateCallback handles the "Search by Release Date" button
func (h *Handlers) HandleDateCallback(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}

	resp := h.uc.HandleDateSearch(ctx, cq.From.ID, strings.TrimPrefix(cq.Data, consts.CallbackDateSearch))
	h.answer(ctx, cq.ID, resp.Message, true)
}

// HandleReplyCallback handles the "Reply to User" button on an admin notification
func (h *Handlers) HandleReplyCallback(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}
	adminID := cq.From.ID

	resp, err := h.uc.StartReply(ctx, &dto.ReplyStartRequest{
		AdminID:   adminID,
		ChatID:    adminID,
		RequestID: strings.TrimPrefix(cq.Data, consts.CallbackReply),
	})
	if err != nil {
		h.logError(adminID, "reply", err)
		h.answer(ctx, cq.ID, userMessage(err), true)
		return
	}

	h.answer(ctx, cq.ID, "", false)
	h.sendResponse(ctx, adminID, resp.Message)
}

// HandleChannelPost mirrors posts of the database channel into the catalog
func (h *Handlers) HandleChannelPost(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	post := update.ChannelPost
	if post == nil {
		return
	}

	req := &dto.ChannelPostRequest{
		ChannelID: post.Chat.ID,
		MessageID: post.ID,
		Caption:   promptText(post),
		Date:      int64(post.Date),
	}
	if n := len(post.Photo); n > 0 {
		req.PhotoID = post.Photo[n-1].FileID
	}

	if _, err := h.uc.IngestChannelPost(ctx, req); err != nil {
		h.logger.Error().Err(err).Int64("channel_id", req.ChannelID).Int("message_id", req.MessageID).Msg("Failed to ingest channel post")
	}
}

type adminCommandFunc func(context.Context, *dto.AdminCommandRequest) (*dto.CommandResponse, error)

func (h *Handlers) handleAdminCommand(ctx context.Context, update *models.Update, command string, fn adminCommandFunc) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	h.runAdminCommand(ctx, msg, command, commandArgs(msg.Text), fn)
}

func (h *Handlers) runAdminCommand(ctx context.Context, msg *models.Message, command string, args []string, fn adminCommandFunc) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	h.logCommand(userID, command, "processing")

	resp, err := fn(ctx, &dto.AdminCommandRequest{
		AdminID: userID,
		ChatID:  chatID,
		Args:    args,
	})
	if err != nil {
		h.replyError(ctx, chatID, userID, command, err)
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
	h.logCommand(userID, command, "success")
}

func (h *Handlers) answer(ctx context.Context, callbackID, text string, alert bool) {
	_ = h.AnswerCallback(ctx, &dto.CallbackAnswer{CallbackID: callbackID, Text: text, ShowAlert: alert})
}

func (h *Handlers) sendResponse(ctx context.Context, chatID int64, text string) {
	if _, err := h.SendText(ctx, &dto.OutgoingMessage{ChatID: chatID, Text: text}); err != nil {
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to send Telegram response")
	}
}

// replyError logs a failed command and tells the user what went wrong
func (h *Handlers) replyError(ctx context.Context, chatID, userID int64, command string, err error) {
	h.logError(userID, command, err)
	h.sendResponse(ctx, chatID, userMessage(err))
}

// logCommand logs successful commands
func (h *Handlers) logCommand(userID int64, command, result string) {
	h.logger.Info().Int64("user_id", userID).Str("command", command).Str("result", result).Msg("Telegram command processed")
}

// logError logs command errors
func (h *Handlers) logError(userID int64, command string, err error) {
	h.logger.Error().Int64("user_id", userID).Str("command", command).Err(err).Msg("Telegram command failed")
}

// userMessage returns the text shown to a user for err. Internal details are never shown.
func userMessage(err error) string {
	var typed pkgerrors.TypedError
	if errors.As(err, &typed) && typed.Type() != pkgerrors.ErrorTypeInternal {
		return typed.Error()
	}
	return consts.MsgInternalError
}

func senderFrom(u *models.User) dto.Sender {
	return dto.Sender{
		UserID:    u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// commandArgs returns the whitespace separated arguments after the command
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// commandPayload returns everything after the command verbatim, trimmed
func commandPayload(text string) string {
	text = strings.TrimSpace(text)
	idx := strings.IndexFunc(text, func(r rune) bool { return r == ' ' || r == '\n' || r == '\t' })
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx:])
}

func promptText(msg *models.Message) string {
	if msg.Caption != "" {
		return msg.Caption
	}
	return msg.Text
}
