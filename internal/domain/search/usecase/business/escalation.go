package business

import (
	"context"
	"fmt"
	"strings"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/consts"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
	searcherrors "github.com/Conte777/catalog-search-bot/internal/domain/search/errors"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/session"
	pkgerrors "github.com/Conte777/catalog-search-bot/pkg/errors"
)

// HandleEscalation records a content request for the query and notifies every admin.
// Each request gets its own id, so repeated presses create separate requests.
func (uc *UseCase) HandleEscalation(ctx context.Context, req *dto.EscalationRequest) (*dto.EscalationResult, error) {
	if uc.sender == nil {
		uc.logger.Error().Msg("Messenger is not set")
		return nil, searcherrors.ErrSenderNotSet
	}

	req.Query = strings.TrimSpace(req.Query)
	if err := uc.validate.Struct(req); err != nil {
		return nil, searcherrors.ErrEmptyQuery
	}

	// The request references the user row
	if err := uc.touchUser(ctx, req.Sender); err != nil {
		return nil, err
	}

	request := &entities.Request{
		ID:          uc.newID(),
		UserID:      req.Sender.UserID,
		Query:       req.Query,
		Status:      entities.RequestStatusPending,
		RequestedAt: uc.now(),
	}
	if err := uc.requests.Create(ctx, request); err != nil {
		uc.logger.Error().Err(err).Int64("user_id", req.Sender.UserID).Msg("Failed to create request")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	uc.metrics.RecordRequestCreated()

	uc.logger.Info().
		Str("request_id", request.ID).
		Int64("user_id", request.UserID).
		Str("query", request.Query).
		Msg("Content request created")

	result := &dto.EscalationResult{RequestID: request.ID}
	notice := fmt.Sprintf(consts.MsgAdminRequest, req.Sender.Mention(), req.Query)

	for _, adminID := range uc.telegram.AdminIDs {
		_, err := uc.sender.SendText(ctx, &dto.OutgoingMessage{
			ChatID:  adminID,
			Text:    notice,
			Buttons: [][]dto.Button{{{Text: consts.MsgReplyButton, CallbackData: consts.CallbackReply + request.ID}}},
		})
		if err != nil {
			uc.logger.Warn().Err(err).Int64("admin_id", adminID).Str("request_id", request.ID).Msg("Failed to notify admin")
			uc.metrics.RecordAdminNotifyFailure()
			result.AdminsFailed++
			continue
		}
		result.AdminsNotified++
	}

	edit := &dto.MessageEdit{
		ChatID:    req.ChatID,
		MessageID: req.PromptMessageID,
		Text:      fmt.Sprintf(consts.MsgRequestSent, req.Query),
	}
	var err error
	if req.PromptHasPhoto {
		err = uc.sender.EditCaption(ctx, edit)
	} else {
		err = uc.sender.EditText(ctx, edit)
	}
	if err != nil {
		uc.logger.Warn().Err(err).Int64("chat_id", req.ChatID).Msg("Failed to update request prompt")
		uc.metrics.RecordDeliveryFailure("prompt_edit")
	}

	return result, nil
}

// HandleDateSearch answers the release date action. Search by date is not implemented.
func (uc *UseCase) HandleDateSearch(ctx context.Context, userID int64, query string) *dto.CommandResponse {
	uc.logger.Debug().Int64("user_id", userID).Str("query", query).Msg("Date search requested")
	return &dto.CommandResponse{Message: consts.MsgDateSearchStub}
}

// StartReply opens a reply session for the admin on a pending request
func (uc *UseCase) StartReply(ctx context.Context, req *dto.ReplyStartRequest) (*dto.CommandResponse, error) {
	if err := uc.requireAdmin(req.AdminID); err != nil {
		return nil, err
	}
	if err := uc.validate.Struct(req); err != nil {
		return nil, searcherrors.ErrRequestNotFound
	}

	request, err := uc.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	if request.Status == entities.RequestStatusResolved {
		return nil, searcherrors.ErrRequestResolved
	}

	uc.sessions.Begin(req.AdminID, session.Session{
		Kind:      session.KindReply,
		RequestID: request.ID,
		UserID:    request.UserID,
		Query:     request.Query,
	})

	uc.logger.Info().Int64("admin_id", req.AdminID).Str("request_id", request.ID).Msg("Reply session started")
	return &dto.CommandResponse{Message: consts.MsgReplyPrompt}, nil
}

// HandleAdminText feeds an admin's plain text into the waiting session.
// handled is false when the admin has no session and the text should be searched instead.
func (uc *UseCase) HandleAdminText(ctx context.Context, req *dto.AdminTextRequest) (resp *dto.CommandResponse, handled bool, err error) {
	if !uc.telegram.IsAdmin(req.AdminID) {
		return nil, false, nil
	}

	sess, ok := uc.sessions.Consume(req.AdminID)
	if !ok {
		return nil, false, nil
	}

	switch sess.Kind {
	case session.KindBroadcast:
		resp, err = uc.broadcastText(ctx, req.AdminID, req.Text)
	case session.KindReply:
		resp, err = uc.deliverReply(ctx, sess, req)
	default:
		err = pkgerrors.NewInternalError("unknown session kind " + string(sess.Kind))
	}
	return resp, true, err
}

func (uc *UseCase) deliverReply(ctx context.Context, sess session.Session, req *dto.AdminTextRequest) (*dto.CommandResponse, error) {
	if uc.sender == nil {
		return nil, searcherrors.ErrSenderNotSet
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, searcherrors.ErrEmptyReply
	}

	if _, err := uc.sender.SendText(ctx, &dto.OutgoingMessage{
		ChatID: sess.UserID,
		Text:   fmt.Sprintf(consts.MsgReplyToUser, sess.Query, text),
	}); err != nil {
		uc.logger.Error().Err(err).Str("request_id", sess.RequestID).Int64("user_id", sess.UserID).Msg("Failed to deliver reply")
		uc.metrics.RecordDeliveryFailure("reply")
		return nil, fmt.Errorf("failed to deliver reply: %w", err)
	}

	changed, err := uc.requests.Resolve(ctx, sess.RequestID, uc.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		uc.logger.Warn().Str("request_id", sess.RequestID).Msg("Request was already resolved")
	}

	uc.logger.Info().Int64("admin_id", req.AdminID).Str("request_id", sess.RequestID).Msg("Reply delivered")
	return &dto.CommandResponse{Message: consts.MsgReplyDelivered}, nil
}

// QueryFromPrompt recovers the query from the text or caption of a no-results prompt
func QueryFromPrompt(text string) string {
	prefix := strings.TrimSuffix(consts.MsgNoResults, "%s")
	if !strings.HasPrefix(text, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(text, prefix))
}
