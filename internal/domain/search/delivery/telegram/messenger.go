package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
	searcherrors "github.com/Conte777/catalog-search-bot/internal/domain/search/errors"
)

// SendText implements deps.Messenger interface
func (h *Handlers) SendText(ctx context.Context, msg *dto.OutgoingMessage) (int, error) {
	if msg.Text == "" {
		h.logger.Warn().Int64("chat_id", msg.ChatID).Msg("Attempt to send empty message")
		return 0, fmt.Errorf("message text cannot be empty")
	}

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	params := &tgbot.SendMessageParams{
		ChatID:          msg.ChatID,
		Text:            truncate(msg.Text, MaxMessageLength),
		ReplyParameters: replyTo(msg.ReplyTo),
		ReplyMarkup:     inlineKeyboard(msg.Buttons),
	}
	if msg.HTML {
		params.ParseMode = models.ParseModeHTML
	}
	if msg.DisablePreview {
		params.LinkPreviewOptions = &models.LinkPreviewOptions{IsDisabled: tgbot.True()}
	}

	sent, err := h.bot.SendMessage(msgCtx, params)
	if err != nil {
		handledErr := h.handleSendMessageError(msg.ChatID, err)
		h.logMessageSend(msg.ChatID, len(msg.Text), false, handledErr)
		return 0, handledErr
	}

	h.logMessageSend(msg.ChatID, len(msg.Text), true, nil)
	return sent.ID, nil
}

// SendPhoto implements deps.Messenger interface
func (h *Handlers) SendPhoto(ctx context.Context, photo *dto.OutgoingPhoto) (int, error) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	sent, err := h.bot.SendPhoto(msgCtx, &tgbot.SendPhotoParams{
		ChatID:          photo.ChatID,
		Photo:           &models.InputFileString{Data: photo.PhotoURL},
		Caption:         truncate(photo.Caption, MaxCaptionLength),
		ReplyParameters: replyTo(photo.ReplyTo),
		ReplyMarkup:     inlineKeyboard(photo.Buttons),
	})
	if err != nil {
		handledErr := h.handleSendMessageError(photo.ChatID, err)
		h.logMessageSend(photo.ChatID, len(photo.Caption), false, handledErr)
		return 0, handledErr
	}

	h.logMessageSend(photo.ChatID, len(photo.Caption), true, nil)
	return sent.ID, nil
}

// EditText implements deps.Messenger interface
func (h *Handlers) EditText(ctx context.Context, edit *dto.MessageEdit) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.EditMessageText(msgCtx, &tgbot.EditMessageTextParams{
		ChatID:    edit.ChatID,
		MessageID: edit.MessageID,
		Text:      truncate(edit.Text, MaxMessageLength),
	})
	if err != nil {
		return h.handleSendMessageError(edit.ChatID, err)
	}
	return nil
}

// EditCaption implements deps.Messenger interface
func (h *Handlers) EditCaption(ctx context.Context, edit *dto.MessageEdit) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.EditMessageCaption(msgCtx, &tgbot.EditMessageCaptionParams{
		ChatID:    edit.ChatID,
		MessageID: edit.MessageID,
		Caption:   truncate(edit.Text, MaxCaptionLength),
	})
	if err != nil {
		return h.handleSendMessageError(edit.ChatID, err)
	}
	return nil
}

// DeleteMessage implements deps.Messenger interface
func (h *Handlers) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if _, err := h.bot.DeleteMessage(msgCtx, &tgbot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	}); err != nil {
		return h.handleSendMessageError(chatID, err)
	}
	return nil
}

// React implements deps.Messenger interface
func (h *Handlers) React(ctx context.Context, chatID int64, messageID int, emoji string) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.SetMessageReaction(msgCtx, &tgbot.SetMessageReactionParams{
		ChatID:    chatID,
		MessageID: messageID,
		Reaction: []models.ReactionType{{
			Type: models.ReactionTypeTypeEmoji,
			ReactionTypeEmoji: &models.ReactionTypeEmoji{
				Type:  models.ReactionTypeTypeEmoji,
				Emoji: emoji,
			},
		}},
	})
	if err != nil {
		return h.handleSendMessageError(chatID, err)
	}
	return nil
}

// AnswerCallback implements deps.Messenger interface
func (h *Handlers) AnswerCallback(ctx context.Context, answer *dto.CallbackAnswer) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.AnswerCallbackQuery(msgCtx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: answer.CallbackID,
		Text:            answer.Text,
		ShowAlert:       answer.ShowAlert,
	})
	if err != nil {
		h.logger.Warn().Err(err).Str("callback_id", answer.CallbackID).Msg("Failed to answer callback query")
		return fmt.Errorf("%w: %w", searcherrors.ErrTelegramAPI, err)
	}
	return nil
}

// GetMembership implements deps.MembershipChecker interface
func (h *Handlers) GetMembership(ctx context.Context, chatRef string, userID int64) (entities.MembershipStatus, error) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	member, err := h.bot.GetChatMember(msgCtx, &tgbot.GetChatMemberParams{
		ChatID: chatRef,
		UserID: userID,
	})
	if err != nil {
		return "", fmt.Errorf("%w: get chat member: %w", searcherrors.ErrTelegramAPI, err)
	}

	return entities.MembershipStatus(member.Type), nil
}

// handleSendMessageError classifies Telegram API errors
func (h *Handlers) handleSendMessageError(chatID int64, err error) error {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "Forbidden"):
		h.logger.Warn().Int64("chat_id", chatID).Msg("User blocked the bot or chat not found")
		return fmt.Errorf("%w: user blocked the bot or chat not found", searcherrors.ErrTelegramAPI)

	case strings.Contains(errorMsg, "chat not found"):
		h.logger.Warn().Int64("chat_id", chatID).Msg("Chat not found")
		return fmt.Errorf("%w: chat not found", searcherrors.ErrTelegramAPI)

	case strings.Contains(errorMsg, "Too Many Requests"):
		h.logger.Warn().Int64("chat_id", chatID).Msg("Rate limit exceeded")
		return fmt.Errorf("%w: rate limit exceeded", searcherrors.ErrTelegramAPI)

	case strings.Contains(errorMsg, "timeout"), strings.Contains(errorMsg, "deadline exceeded"):
		h.logger.Warn().Int64("chat_id", chatID).Msg("Network error while calling Telegram")
		return fmt.Errorf("%w: network error", searcherrors.ErrTelegramAPI)

	default:
		return fmt.Errorf("%w: %w", searcherrors.ErrTelegramAPI, err)
	}
}

// logMessageSend logs message send result
func (h *Handlers) logMessageSend(chatID int64, length int, success bool, err error) {
	logEvent := h.logger.Debug()
	if !success {
		logEvent = h.logger.Error()
	}

	logEvent.Int64("chat_id", chatID).Int("message_length", length).Bool("success", success)

	if err != nil {
		logEvent.Err(err)
	}

	logEvent.Msg("Message send attempt completed")
}

func inlineKeyboard(rows [][]dto.Button) models.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}

	keyboard := make([][]models.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, models.InlineKeyboardButton{
				Text:         b.Text,
				URL:          b.URL,
				CallbackData: b.CallbackData,
			})
		}
		keyboard = append(keyboard, buttons)
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

func replyTo(messageID int) *models.ReplyParameters {
	if messageID == 0 {
		return nil
	}
	return &models.ReplyParameters{MessageID: messageID, AllowSendingWithoutReply: true}
}

// truncate cuts text to limit characters
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
