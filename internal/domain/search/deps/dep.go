// Package deps contains interface definitions for the search domain dependencies
package deps

import (
	"context"
	"time"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
)

// Messenger defines the Telegram operations the search flow depends on.
// It is implemented by the Telegram delivery handlers and injected with
// SetSender to break the UseCase <-> Handlers cycle.
type Messenger interface {
	// SendText sends a text message and returns its message ID
	SendText(ctx context.Context, msg *dto.OutgoingMessage) (int, error)

	// SendPhoto sends a photo with caption and returns its message ID
	SendPhoto(ctx context.Context, photo *dto.OutgoingPhoto) (int, error)

	// EditText edits the text of a message
	EditText(ctx context.Context, edit *dto.MessageEdit) error

	// EditCaption edits the caption of a media message
	EditCaption(ctx context.Context, edit *dto.MessageEdit) error

	// DeleteMessage deletes a message from a chat
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	// React attaches an emoji reaction to a message
	React(ctx context.Context, chatID int64, messageID int, emoji string) error

	// AnswerCallback acknowledges an inline button press
	AnswerCallback(ctx context.Context, answer *dto.CallbackAnswer) error
}

// MembershipChecker resolves a user's membership in a channel
type MembershipChecker interface {
	// GetMembership returns the member status of userID in chatRef (@username, numeric id or link)
	GetMembership(ctx context.Context, chatRef string, userID int64) (entities.MembershipStatus, error)
}

// DeletionScheduler schedules one-shot, fire-and-forget message deletions
type DeletionScheduler interface {
	// ScheduleDeletion deletes messageID in chatID once after elapses
	ScheduleDeletion(chatID int64, messageID int, after time.Duration)
}

// SettingsRepository defines key/value settings access
type SettingsRepository interface {
	// Get returns the value for key and whether a row exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Upsert creates or replaces the value for key atomically
	Upsert(ctx context.Context, key, value string) error

	// Delete removes the row for key
	Delete(ctx context.Context, key string) error
}

// PostRepository defines catalog index access
type PostRepository interface {
	// Search runs a full-text query ordered by relevance, at most limit rows
	Search(ctx context.Context, query string, limit int) ([]entities.Post, error)

	// Add stores a post; a duplicate (channel, message) pair is ignored
	Add(ctx context.Context, post *entities.Post) (bool, error)

	// Count returns the catalog size
	Count(ctx context.Context) (int64, error)
}

// UserRepository defines user ledger access
type UserRepository interface {
	// Upsert creates the user or refreshes profile fields and last_seen
	Upsert(ctx context.Context, user *entities.User) error

	// IncrementSearchCount atomically adds one to search_count
	IncrementSearchCount(ctx context.Context, userID int64) error

	// ListIDs returns up to limit user ids greater than afterID, ascending
	ListIDs(ctx context.Context, afterID int64, limit int) ([]int64, error)

	// Stats returns total users and total searches
	Stats(ctx context.Context) (users int64, searches int64, err error)
}

// RequestRepository defines request ledger access
type RequestRepository interface {
	// Create stores a new request
	Create(ctx context.Context, req *entities.Request) error

	// GetByID returns a request by id
	GetByID(ctx context.Context, id string) (*entities.Request, error)

	// ListPending returns pending requests, oldest first
	ListPending(ctx context.Context) ([]entities.Request, error)

	// Resolve marks a pending request as resolved, reporting whether it changed
	Resolve(ctx context.Context, id string, at time.Time) (bool, error)
}
