package dto

// Button is an inline keyboard button. Exactly one of URL and CallbackData is set.
type Button struct {
	Text         string `json:"text"`
	URL          string `json:"url,omitempty"`
	CallbackData string `json:"callbackData,omitempty"`
}

// OutgoingMessage is a text message to send. Text is sent verbatim unless HTML is set.
type OutgoingMessage struct {
	ChatID         int64      `json:"chatId"`
	Text           string     `json:"text"`
	ReplyTo        int        `json:"replyTo,omitempty"`
	Buttons        [][]Button `json:"buttons,omitempty"`
	DisablePreview bool       `json:"disablePreview,omitempty"`
	HTML           bool       `json:"html,omitempty"`
}

// OutgoingPhoto is a photo with caption to send
type OutgoingPhoto struct {
	ChatID   int64      `json:"chatId"`
	PhotoURL string     `json:"photoUrl"`
	Caption  string     `json:"caption"`
	ReplyTo  int        `json:"replyTo,omitempty"`
	Buttons  [][]Button `json:"buttons,omitempty"`
}

// MessageEdit replaces the text or caption of a sent message
type MessageEdit struct {
	ChatID    int64  `json:"chatId"`
	MessageID int    `json:"messageId"`
	Text      string `json:"text"`
}

// CallbackAnswer acknowledges an inline button press
type CallbackAnswer struct {
	CallbackID string `json:"callbackId"`
	Text       string `json:"text,omitempty"`
	ShowAlert  bool   `json:"showAlert,omitempty"`
}
