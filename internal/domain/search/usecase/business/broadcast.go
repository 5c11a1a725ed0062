package business

import (
	"context"
	"fmt"
	"strings"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/consts"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	searcherrors "github.com/Conte777/catalog-search-bot/internal/domain/search/errors"
)

// broadcastPageSize is how many user ids are loaded per page
const broadcastPageSize = 500

// Broadcast sends text to every known user. A failed recipient is counted and skipped.
func (uc *UseCase) Broadcast(ctx context.Context, adminID int64, text string) (*dto.BroadcastResult, error) {
	if uc.sender == nil {
		return nil, searcherrors.ErrSenderNotSet
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, searcherrors.ErrEmptyBroadcast
	}

	uc.logger.Info().Int64("admin_id", adminID).Msg("Broadcast started")

	result := &dto.BroadcastResult{}
	var afterID int64
	for {
		ids, err := uc.users.ListIDs(ctx, afterID, broadcastPageSize)
		if err != nil {
			uc.logger.Error().Err(err).Int64("after_id", afterID).Msg("Failed to list users for broadcast")
			return result, fmt.Errorf("failed to list users: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		for _, userID := range ids {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			if _, err := uc.sender.SendText(ctx, &dto.OutgoingMessage{ChatID: userID, Text: text}); err != nil {
				uc.logger.Debug().Err(err).Int64("user_id", userID).Msg("Broadcast delivery failed")
				uc.metrics.RecordBroadcast(false)
				result.Failed++
				continue
			}
			uc.metrics.RecordBroadcast(true)
			result.Success++
		}

		afterID = ids[len(ids)-1]
		if len(ids) < broadcastPageSize {
			break
		}
	}

	uc.logger.Info().
		Int64("admin_id", adminID).
		Int("success", result.Success).
		Int("failed", result.Failed).
		Msg("Broadcast completed")

	return result, nil
}

func (uc *UseCase) broadcastText(ctx context.Context, adminID int64, text string) (*dto.CommandResponse, error) {
	result, err := uc.Broadcast(ctx, adminID, text)
	if err != nil {
		return nil, err
	}
	return &dto.CommandResponse{Message: fmt.Sprintf(consts.MsgBroadcastDone, result.Success, result.Failed)}, nil
}
