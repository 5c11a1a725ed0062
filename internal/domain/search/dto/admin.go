package dto

// AdminCommandRequest carries a raw admin command and its arguments
type AdminCommandRequest struct {
	AdminID int64    `json:"adminId" validate:"required"`
	ChatID  int64    `json:"chatId"`
	Args    []string `json:"args"`
}

// SetModeRequest is the validated form of /setmode
type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=public private"`
}

// AutoDeleteRequest is the validated form of /autodelete
type AutoDeleteRequest struct {
	State   string `json:"state" validate:"required,oneof=on off"`
	Seconds int    `json:"seconds" validate:"omitempty,gt=0"`
}

// SetNRFImageRequest is the validated form of /setnrfimage
type SetNRFImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// SetPrivateLinkRequest is the validated form of /setprivatelink
type SetPrivateLinkRequest struct {
	Link string `json:"link" validate:"required"`
}

// AddDBRequest is the validated form of /adddb
type AddDBRequest struct {
	ChannelID int64 `json:"channelId" validate:"required,ne=0"`
}

// AdminTextRequest is a plain text message from an admin that may feed a session
type AdminTextRequest struct {
	AdminID int64  `json:"adminId"`
	ChatID  int64  `json:"chatId"`
	Text    string `json:"text"`
}

// ReplyStartRequest is raised by the "Reply to User" action
type ReplyStartRequest struct {
	AdminID   int64  `json:"adminId"`
	ChatID    int64  `json:"chatId"`
	RequestID string `json:"requestId" validate:"required,uuid"`
}

// ChannelPostRequest is a channel post considered for catalog ingestion
type ChannelPostRequest struct {
	ChannelID int64  `json:"channelId"`
	MessageID int    `json:"messageId"`
	Caption   string `json:"caption"`
	PhotoID   string `json:"photoId"`
	Date      int64  `json:"date"`
}
