// Package errors contains domain-specific errors for the search domain
package errors

import (
	"github.com/Conte777/catalog-search-bot/internal/domain/search/consts"
	pkgerrors "github.com/Conte777/catalog-search-bot/pkg/errors"
)

// Domain errors for search operations
var (
	ErrUnauthorized      = pkgerrors.NewPermissionError(consts.MsgUnauthorized)
	ErrInvalidMode       = pkgerrors.NewValidationError(consts.UsageSetMode)
	ErrInvalidAutoDelete = pkgerrors.NewValidationError(consts.UsageAutoDelete)
	ErrInvalidDeleteTime = pkgerrors.NewValidationError(consts.UsageAutoDeleteTime)
	ErrInvalidNRFImage   = pkgerrors.NewValidationError(consts.UsageSetNRFImage)
	ErrInvalidLink       = pkgerrors.NewValidationError(consts.UsageSetPrivateLink)
	ErrInvalidChannel    = pkgerrors.NewValidationError(consts.UsageAddDB)
	ErrEmptyBroadcast    = pkgerrors.NewValidationError(consts.UsageBroadcast)
	ErrEmptyReply        = pkgerrors.NewValidationError(consts.UsageReply)
	ErrEmptyQuery        = pkgerrors.NewValidationError("search query cannot be empty")
	ErrRequestNotFound   = pkgerrors.NewNotFoundError("request not found")
	ErrRequestResolved   = pkgerrors.NewConflictError("request already resolved")
	ErrSenderNotSet      = pkgerrors.NewInternalError("telegram sender is not set")
	ErrTelegramAPI       = pkgerrors.NewInternalError("telegram API error")
)
