package business

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/consts"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
	searcherrors "github.com/Conte777/catalog-search-bot/internal/domain/search/errors"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/session"
)

// requireAdmin rejects non-admins before any side effect
func (uc *UseCase) requireAdmin(userID int64) error {
	if !uc.telegram.IsAdmin(userID) {
		uc.logger.Warn().Int64("user_id", userID).Msg("Unauthorized admin command")
		return searcherrors.ErrUnauthorized
	}
	return nil
}

// SetMode handles /setmode <private|public>
func (uc *UseCase) SetMode(ctx context.Context, req *dto.AdminCommandRequest) (*dto.CommandResponse, error) {
	if err := uc.requireAdmin(req.AdminID); err != nil {
		return nil, err
	}

	form := &dto.SetModeRequest{Mode: strings.ToLower(arg(req.Args, 0))}
	if err := uc.validate.Struct(form); err != nil {
		return nil, searcherrors.ErrInvalidMode
	}

	if err := uc.settings.Set(ctx, consts.SettingMode, form.Mode); err != nil {
		return nil, fmt.Errorf("failed to set mode: %w", err)
	}

	return &dto.CommandResponse{Message: fmt.Sprintf(consts.MsgModeSet, form.Mode)}, nil
}

// AutoDelete handles /autodelete <on|off> [seconds]
func (uc *UseCase) AutoDelete(ctx context.Context, req *dto.AdminCommandRequest) (*dto.CommandResponse, error) {
	if err := uc.requireAdmin(req.AdminID); err != nil {
		return nil, err
	}

	form := &dto.AutoDeleteRequest{State: strings.ToLower(arg(req.Args, 0))}
	if raw := arg(req.Args, 1); raw != "" && form.State == consts.AutoDeleteOn {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, searcherrors.ErrInvalidDeleteTime
		}
		form.Seconds = seconds
	}
	if err := uc.validate.Struct(form); err != nil {
		return nil, searcherrors.ErrInvalidAutoDelete
	}

	if form.State == consts.AutoDeleteOff {
		if err := uc.settings.Set(ctx, consts.SettingAutoDelete, consts.AutoDeleteOff); err != nil {
			return nil, fmt.Errorf("failed to disable auto delete: %w", err)
		}
		return &dto.CommandResponse{Message: consts.MsgAutoDeleteOff}, nil
	}

	if form.Seconds > 0 {
		if err := uc.settings.Set(ctx, consts.SettingAutoDeleteTime, strconv.Itoa(form.Seconds)); err != nil {
			return nil, fmt.Errorf("failed to set auto delete time: %w", err)
		}
	}
	if err := uc.settings.Set(ctx, consts.SettingAutoDelete, consts.AutoDeleteOn); err != nil {
		return nil, fmt.Errorf("failed to enable auto delete: %w", err)
	}

	return &dto.CommandResponse{Message: consts.MsgAutoDeleteOn}, nil
}

// SetNRFImage handles /setnrfimage <url>
func (uc *UseCase) SetNRFImage(ctx context.Context, req *dto.AdminCommandRequest) (*dto.CommandResponse, error) {
	if err := uc.requireAdmin(req.AdminID); err != nil {
		return nil, err
	}

	form := &dto.SetNRFImageRequest{URL: arg(req.Args, 0)}
	if err := uc.validate.Struct(form); err != nil {
		return nil, searcherrors.ErrInvalidNRFImage
	}

	if err := uc.settings.Set(ctx, consts.SettingNRFImage, form.URL); err != nil {
		return nil, fmt.Errorf("failed to set no results image: %w", err)
	}

	return &dto.CommandResponse{Message: consts.MsgNRFImageUpdated}, nil
}

// SetPrivateLink handles /setprivatelink <link>
func (uc *UseCase) SetPrivateLink(ctx context.Context, req *dto.AdminCommandRequest) (*dto.CommandResponse, error) {
	if err := uc.requireAdmin(req.AdminID); err != nil {
		return nil, err
	}

	form := &dto.SetPrivateLinkRequest{Link: arg(req.Args, 0)}
	if err := uc.validate.Struct(form); err != nil {
		return nil, searcherrors.ErrInvalidLink
	}

	if err := uc.settings.Set(ctx, consts.SettingPrivateLink, form.Link); err != nil {
		return nil, fmt.Errorf("failed to set private link: %w", err)
	}

	return &dto.CommandResponse{Message: consts.MsgPrivateLinkUpdate}, nil
}

// AddDB handles /adddb <channel_id>
func (uc *UseCase) AddDB(ctx context.Context, req *dto.AdminCommandRequest) (*dto.CommandResponse, error) {
	if err := uc.requireAdmin(req.AdminID); err != nil {
		return nil, err
	}

	channelID, err := strconv.ParseInt(arg(req.Args, 0), 10, 64)
	if err != nil {
		return nil, searcherrors.ErrInvalidChannel
	}
	form := &dto.AddDBRequest{ChannelID: channelID}
	if err := uc.validate.Struct(form); err != nil {
		return nil, searcherrors.ErrInvalidChannel
	}

	if err := uc.settings.Set(ctx, consts.SettingDBChannel, strconv.FormatInt(form.ChannelID, 10)); err != nil {
		return nil, fmt.Errorf("failed to set database channel: %w", err)
	}

	return &dto.CommandResponse{Message: fmt.Sprintf(consts.MsgDBChannelSet, form.ChannelID)}, nil
}

// RemoveDB handles /removedb
func (uc *UseCase) RemoveDB(ctx context.Context, req *dto.AdminCommandRequest) (*dto.CommandResponse, error) {
	if err := uc.requireAdmin(req.AdminID); err != nil {
		return nil, err
	}

	if err := uc.settings.Unset(ctx, consts.SettingDBChannel); err != nil {
		return nil, fmt.Errorf("failed to remove database channel: %w", err)
	}

	return &dto.CommandResponse{Message: consts.MsgDBChannelRemoved}, nil
}

// Status handles /status
func (uc *UseCase) Status(ctx context.Context, req *dto.AdminCommandRequest) (*dto.CommandResponse, error) {
	if err := uc.requireAdmin(req.AdminID); err != nil {
		return nil, err
	}

	stats, err := uc.stats(ctx)
	if err != nil {
		return nil, err
	}

	autoDelete := consts.AutoDeleteOff
	if uc.settings.AutoDelete(ctx) {
		autoDelete = fmt.Sprintf("%s (%ds)", consts.AutoDeleteOn, uc.settings.AutoDeleteSeconds(ctx))
	}

	return &dto.CommandResponse{
		Message: fmt.Sprintf(consts.MsgStatus,
			stats.TotalUsers, stats.TotalSearches, stats.TotalPosts, stats.PendingRequests,
			uc.settings.Mode(ctx), autoDelete),
	}, nil
}

func (uc *UseCase) stats(ctx context.Context) (entities.Stats, error) {
	var stats entities.Stats

	users, searches, err := uc.users.Stats(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to load user stats: %w", err)
	}
	posts, err := uc.posts.Count(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to count posts: %w", err)
	}
	pending, err := uc.requests.ListPending(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to list pending requests: %w", err)
	}

	stats.TotalUsers = users
	stats.TotalSearches = searches
	stats.TotalPosts = posts
	stats.PendingRequests = len(pending)
	return stats, nil
}

// StartBroadcast handles /broadcast: the next text from the admin is sent to every user
func (uc *UseCase) StartBroadcast(ctx context.Context, req *dto.AdminCommandRequest) (*dto.CommandResponse, error) {
	if err := uc.requireAdmin(req.AdminID); err != nil {
		return nil, err
	}

	// Text after the command is broadcast right away
	if text := strings.TrimSpace(strings.Join(req.Args, " ")); text != "" {
		return uc.broadcastText(ctx, req.AdminID, text)
	}

	uc.sessions.Begin(req.AdminID, session.Session{Kind: session.KindBroadcast})
	return &dto.CommandResponse{Message: consts.MsgBroadcastPrompt}, nil
}

// Cancel handles /cancel
func (uc *UseCase) Cancel(ctx context.Context, req *dto.AdminCommandRequest) (*dto.CommandResponse, error) {
	if uc.sessions.Cancel(req.AdminID) {
		return &dto.CommandResponse{Message: consts.MsgCancelled}, nil
	}
	return &dto.CommandResponse{Message: consts.MsgNothingToCancel}, nil
}

func arg(args []string, i int) string {
	if i < len(args) {
		return strings.TrimSpace(args[i])
	}
	return ""
}
