// Package entities contains domain entities
package entities

import "time"

// Post is a catalog entry mirrored from the database channel.
// Score is the relevance computed by a search query and is never written.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID int       `gorm:"not null;uniqueIndex:idx_posts_channel_message" json:"messageId"`
	ChannelID int64     `gorm:"not null;uniqueIndex:idx_posts_channel_message" json:"channelId"`
	Caption   string    `gorm:"type:text" json:"caption"`
	PhotoID   string    `gorm:"type:text" json:"photoId"`
	Date      time.Time `json:"date"`
	AddedAt   time.Time `gorm:"not null" json:"addedAt"`
	Score     float64   `gorm:"->;-:migration" json:"score"`
}

// TableName overrides the table name
func (Post) TableName() string {
	return "posts"
}

// User is a bot user record keyed by Telegram user id
type User struct {
	UserID      int64     `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	Username    string    `json:"username"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	JoinedAt    time.Time `gorm:"not null" json:"joinedAt"`
	LastSeen    time.Time `gorm:"not null" json:"lastSeen"`
	SearchCount int64     `gorm:"not null;default:0" json:"searchCount"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// Setting is a key/value configuration row
type Setting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name
func (Setting) TableName() string {
	return "settings"
}

// RequestStatus is the lifecycle state of a content request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusResolved RequestStatus = "resolved"
)

// Request is a "content not found" escalation raised by a user
type Request struct {
	ID          string        `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      int64         `gorm:"not null;index" json:"userId"`
	Query       string        `gorm:"type:text;not null" json:"query"`
	Status      RequestStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	RequestedAt time.Time     `gorm:"not null" json:"requestedAt"`
	ResolvedAt  *time.Time    `json:"resolvedAt,omitempty"`
}

// TableName overrides the table name
func (Request) TableName() string {
	return "requests"
}

// Stats aggregates ledger counters for the admin status report
type Stats struct {
	TotalUsers      int64
	TotalSearches   int64
	TotalPosts      int64
	PendingRequests int
}
