package consts

// Inline button callback prefixes
const (
	CallbackDateSearch = "nrf_date:"
	CallbackRequest    = "nrf_request:"
	CallbackReply      = "reply_req:"
)

// MaxCallbackDataLength is the Telegram limit for callback_data in bytes
const MaxCallbackDataLength = 64

// ReactionEmojis is the set a results reaction is drawn from
var ReactionEmojis = []string{"👍", "❤️", "🔥", "🎯", "⭐", "👏", "🙌", "💯"}
