// Package business contains business logic for the search domain
package business

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/catalog-search-bot/config"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/consts"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/deps"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
	searcherrors "github.com/Conte777/catalog-search-bot/internal/domain/search/errors"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/session"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure/metrics"
)

// Params groups the UseCase dependencies for fx injection
type Params struct {
	fx.In

	Settings  *Settings
	Gate      *AccessGate
	Posts     deps.PostRepository
	Users     deps.UserRepository
	Requests  deps.RequestRepository
	Sessions  *session.Store
	Scheduler deps.DeletionScheduler
	Telegram  *config.TelegramConfig
	Search    *config.SearchConfig
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
}

// UseCase contains business logic for search bot operations
type UseCase struct {
	settings  *Settings
	gate      *AccessGate
	posts     deps.PostRepository
	users     deps.UserRepository
	requests  deps.RequestRepository
	sessions  *session.Store
	scheduler deps.DeletionScheduler
	sender    deps.Messenger
	telegram  *config.TelegramConfig
	search    *config.SearchConfig
	metrics   *metrics.Metrics
	validate  *validator.Validate
	logger    zerolog.Logger

	now       func() time.Time
	newID     func() string
	pickEmoji func() string
}

// NewUseCase creates a new UseCase instance
// Note: sender is not passed here to break cyclic dependency
// Use SetSender after creating TelegramHandlers
func NewUseCase(p Params) *UseCase {
	return &UseCase{
		settings:  p.Settings,
		gate:      p.Gate,
		posts:     p.Posts,
		users:     p.Users,
		requests:  p.Requests,
		sessions:  p.Sessions,
		scheduler: p.Scheduler,
		telegram:  p.Telegram,
		search:    p.Search,
		metrics:   p.Metrics,
		validate:  validator.New(),
		logger:    p.Logger,
		now:       time.Now,
		newID:     uuid.NewString,
		pickEmoji: randomEmoji,
	}
}

// SetSender sets the Messenger after construction
// This is called by fx.Invoke to resolve cyclic dependency
func (uc *UseCase) SetSender(sender deps.Messenger) {
	uc.sender = sender
}

// HandleStart handles /start command
func (uc *UseCase) HandleStart(ctx context.Context, req *dto.StartCommandRequest) (*dto.CommandResponse, error) {
	uc.logger.Info().
		Int64("user_id", req.Sender.UserID).
		Str("username", req.Sender.Username).
		Msg("User started bot")

	if err := uc.touchUser(ctx, req.Sender); err != nil {
		return nil, err
	}

	return &dto.CommandResponse{Message: fmt.Sprintf(consts.MsgWelcome, req.Sender.DisplayName())}, nil
}

// HandleQuery runs the search flow for one free-text message:
// record the user, count the search, gate, show the indicator, query the index
// and deliver either the results or the no-results prompt.
func (uc *UseCase) HandleQuery(ctx context.Context, req *dto.SearchRequest) (*dto.SearchOutcome, error) {
	if uc.sender == nil {
		uc.logger.Error().Msg("Messenger is not set")
		return nil, searcherrors.ErrSenderNotSet
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, searcherrors.ErrEmptyQuery
	}

	log := uc.logger.With().
		Int64("user_id", req.Sender.UserID).
		Int64("chat_id", req.ChatID).
		Str("query", query).
		Logger()

	// The search is counted before the gate so blocked attempts count too
	if err := uc.touchUser(ctx, req.Sender); err != nil {
		return nil, err
	}
	if err := uc.users.IncrementSearchCount(ctx, req.Sender.UserID); err != nil {
		log.Error().Err(err).Msg("Failed to increment search count")
		return nil, fmt.Errorf("failed to increment search count: %w", err)
	}

	decision := uc.gate.Evaluate(ctx, req.Sender.UserID)
	if !decision.Allowed {
		return uc.sendJoinPrompt(ctx, req, decision.JoinTarget)
	}

	uc.showSearching(ctx, req.ChatID, req.MessageID)

	started := time.Now()
	posts, err := uc.posts.Search(ctx, query, uc.search.ResultLimit)
	if err != nil {
		log.Error().Err(err).Msg("Catalog search failed")
		uc.metrics.RecordSearch("error")
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	uc.metrics.RecordIndexQuery(time.Since(started).Seconds(), len(posts))

	log.Info().Int("results", len(posts)).Msg("Search completed")

	if len(posts) == 0 {
		return uc.sendNoResults(ctx, req, query)
	}
	return uc.sendResults(ctx, req, posts)
}

func (uc *UseCase) sendJoinPrompt(ctx context.Context, req *dto.SearchRequest, target string) (*dto.SearchOutcome, error) {
	msgID, err := uc.sender.SendText(ctx, &dto.OutgoingMessage{
		ChatID:  req.ChatID,
		Text:    consts.MsgJoinChannel,
		ReplyTo: req.MessageID,
		Buttons: [][]dto.Button{{{Text: consts.MsgJoinButton, URL: JoinURL(target)}}},
	})
	if err != nil {
		uc.metrics.RecordDeliveryFailure("join_prompt")
		return nil, fmt.Errorf("failed to send join prompt: %w", err)
	}

	uc.metrics.RecordSearch(string(dto.OutcomeBlocked))
	return &dto.SearchOutcome{
		Kind:       dto.OutcomeBlocked,
		Text:       consts.MsgJoinChannel,
		JoinTarget: target,
		MessageID:  msgID,
	}, nil
}

// showSearching sends the indicator, waits SearchingDelay and removes it again.
// Delivery problems are logged only, the search continues regardless.
func (uc *UseCase) showSearching(ctx context.Context, chatID int64, replyTo int) {
	msgID, err := uc.sender.SendText(ctx, &dto.OutgoingMessage{
		ChatID:  chatID,
		Text:    consts.MsgSearching,
		ReplyTo: replyTo,
	})
	if err != nil {
		uc.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to send searching indicator")
		uc.metrics.RecordDeliveryFailure("indicator")
	}

	if delay := uc.search.SearchingDelay; delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
		timer.Stop()
	}

	if err != nil {
		return
	}
	if err := uc.sender.DeleteMessage(context.WithoutCancel(ctx), chatID, msgID); err != nil {
		uc.logger.Warn().Err(err).Int64("chat_id", chatID).Int("message_id", msgID).Msg("Failed to delete searching indicator")
		uc.metrics.RecordDeliveryFailure("indicator_delete")
	}
}

func (uc *UseCase) sendResults(ctx context.Context, req *dto.SearchRequest, posts []entities.Post) (*dto.SearchOutcome, error) {
	text := FormatResults(posts, uc.settings.PrivateMode(ctx), uc.settings.PrivateLink(ctx))

	msgID, err := uc.sender.SendText(ctx, &dto.OutgoingMessage{
		ChatID:         req.ChatID,
		Text:           text,
		ReplyTo:        req.MessageID,
		DisablePreview: true,
		HTML:           true,
	})
	if err != nil {
		uc.metrics.RecordDeliveryFailure("results")
		return nil, fmt.Errorf("failed to send results: %w", err)
	}

	if err := uc.sender.React(ctx, req.ChatID, req.MessageID, uc.pickEmoji()); err != nil {
		uc.logger.Warn().Err(err).Int64("chat_id", req.ChatID).Msg("Failed to react to query")
		uc.metrics.RecordDeliveryFailure("reaction")
	}

	outcome := &dto.SearchOutcome{
		Kind:      dto.OutcomeResults,
		Text:      text,
		Results:   posts,
		MessageID: msgID,
	}

	if uc.settings.AutoDelete(ctx) {
		seconds := uc.settings.AutoDeleteSeconds(ctx)
		uc.scheduler.ScheduleDeletion(req.ChatID, msgID, time.Duration(seconds)*time.Second)
		outcome.DeletionScheduled = true
	}

	uc.metrics.RecordSearch(string(dto.OutcomeResults))
	return outcome, nil
}

func (uc *UseCase) sendNoResults(ctx context.Context, req *dto.SearchRequest, query string) (*dto.SearchOutcome, error) {
	text := fmt.Sprintf(consts.MsgNoResults, query)
	buttons := [][]dto.Button{
		{{Text: consts.MsgDateSearchButton, CallbackData: CallbackData(consts.CallbackDateSearch, query)}},
		{{Text: consts.MsgRequestButton, CallbackData: CallbackData(consts.CallbackRequest, query)}},
	}

	outcome := &dto.SearchOutcome{Kind: dto.OutcomeNoResults, Text: text}

	var (
		msgID int
		err   error
	)
	if image := uc.settings.NRFImage(ctx); strings.HasPrefix(image, "http") {
		outcome.WithImage = true
		msgID, err = uc.sender.SendPhoto(ctx, &dto.OutgoingPhoto{
			ChatID:   req.ChatID,
			PhotoURL: image,
			Caption:  text,
			ReplyTo:  req.MessageID,
			Buttons:  buttons,
		})
	} else {
		msgID, err = uc.sender.SendText(ctx, &dto.OutgoingMessage{
			ChatID:  req.ChatID,
			Text:    text,
			ReplyTo: req.MessageID,
			Buttons: buttons,
		})
	}
	if err != nil {
		uc.metrics.RecordDeliveryFailure("no_results")
		return nil, fmt.Errorf("failed to send no results prompt: %w", err)
	}

	outcome.MessageID = msgID
	uc.metrics.RecordSearch(string(dto.OutcomeNoResults))
	return outcome, nil
}

// touchUser records the sender, refreshing profile fields and last_seen
func (uc *UseCase) touchUser(ctx context.Context, sender dto.Sender) error {
	now := uc.now()
	user := &entities.User{
		UserID:    sender.UserID,
		Username:  sender.Username,
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
		JoinedAt:  now,
		LastSeen:  now,
	}
	if err := uc.users.Upsert(ctx, user); err != nil {
		uc.logger.Error().Err(err).Int64("user_id", sender.UserID).Msg("Failed to upsert user")
		return fmt.Errorf("failed to record user: %w", err)
	}
	return nil
}

// CallbackData joins prefix and payload, dropping the payload when the result
// would exceed the Telegram callback data limit.
func CallbackData(prefix, payload string) string {
	if len(prefix)+len(payload) > consts.MaxCallbackDataLength {
		return prefix
	}
	return prefix + payload
}

// JoinURL turns a join target into a URL usable on an inline button
func JoinURL(target string) string {
	switch {
	case strings.HasPrefix(target, "@"):
		return "https://t.me/" + strings.TrimPrefix(target, "@")
	case strings.HasPrefix(target, "http://"), strings.HasPrefix(target, "https://"), strings.HasPrefix(target, "tg://"):
		return target
	case strings.HasPrefix(target, "t.me/"):
		return "https://" + target
	default:
		return "https://t.me/" + target
	}
}

func randomEmoji() string {
	return consts.ReactionEmojis[rand.IntN(len(consts.ReactionEmojis))]
}
