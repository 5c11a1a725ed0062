package business

import (
	"context"
	"fmt"
	"time"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
)

// IngestChannelPost adds a post from the configured database channel to the catalog.
// Posts from other channels and posts without caption or photo are ignored.
func (uc *UseCase) IngestChannelPost(ctx context.Context, req *dto.ChannelPostRequest) (bool, error) {
	dbChannel := uc.settings.DBChannel(ctx)
	if dbChannel == 0 || dbChannel != req.ChannelID {
		return false, nil
	}
	if req.Caption == "" && req.PhotoID == "" {
		return false, nil
	}

	post := &entities.Post{
		MessageID: req.MessageID,
		ChannelID: req.ChannelID,
		Caption:   req.Caption,
		PhotoID:   req.PhotoID,
		AddedAt:   uc.now(),
	}
	if req.Date > 0 {
		post.Date = time.Unix(req.Date, 0).UTC()
	}

	created, err := uc.posts.Add(ctx, post)
	if err != nil {
		uc.logger.Error().Err(err).Int64("channel_id", req.ChannelID).Int("message_id", req.MessageID).Msg("Failed to add post")
		return false, fmt.Errorf("failed to add post: %w", err)
	}
	if created {
		uc.metrics.RecordPostIngested()
		uc.logger.Info().Int64("channel_id", req.ChannelID).Int("message_id", req.MessageID).Msg("Post added to catalog")
	}

	return created, nil
}
