package consts

// User facing texts
const (
	MsgWelcome = "Hello %s! 👋\n\n" +
		"I'm an advanced search bot. You can search for content by typing any text.\n\n" +
		"Just send me what you're looking for and I'll find it for you!"
	MsgJoinChannel       = "Please join our channel to use the search feature."
	MsgJoinButton        = "Join Channel"
	MsgSearching         = "🔎 Searching..."
	MsgNoResults         = "❌ No results found for: %s"
	MsgDateSearchButton  = "Search by Release Date"
	MsgRequestButton     = "Request Admin to Add"
	MsgDateSearchStub    = "🚧 Search by release date is not available yet"
	MsgRequestSent       = "✅ Your request has been sent to admins for: %s"
	MsgAdminRequest      = "📥 New content request from %s:\n\n%s"
	MsgReplyButton       = "Reply to User"
	MsgReplyPrompt       = "Please send your reply to the user:"
	MsgReplyDelivered    = "✅ Reply delivered to the user"
	MsgReplyToUser       = "📬 Reply from admins to your request \"%s\":\n\n%s"
	MsgUnauthorized      = "❌ You are not authorized to use this command."
	MsgBroadcastPrompt   = "Please send the message you want to broadcast:"
	MsgBroadcastDone     = "Broadcast completed!\n\n✅ Success: %d\n❌ Failed: %d"
	MsgCancelled         = "Cancelled."
	MsgNothingToCancel   = "Nothing to cancel."
	MsgInternalError     = "❌ Something went wrong, please try again later"
	MsgModeSet           = "✅ Mode set to %s"
	MsgAutoDeleteOn      = "✅ Auto delete enabled"
	MsgAutoDeleteOff     = "✅ Auto delete disabled"
	MsgNRFImageUpdated   = "✅ No results found image updated"
	MsgPrivateLinkUpdate = "✅ Private link updated"
	MsgDBChannelSet      = "✅ Database channel set to %d"
	MsgDBChannelRemoved  = "✅ Database channel removed"
	MsgStatus            = "📊 Bot Status\n\n" +
		"👥 Total Users: %d\n" +
		"🔍 Total Searches: %d\n" +
		"📂 Database Posts: %d\n" +
		"📨 Pending Requests: %d\n" +
		"🌐 Mode: %s\n" +
		"🗑️ Auto Delete: %s"
)

// Usage texts returned for malformed admin input
const (
	UsageSetMode        = "Usage: /setmode <private/public>"
	UsageAutoDelete     = "Usage: /autodelete <on/off> [time_in_seconds]"
	UsageAutoDeleteTime = "Invalid time. Please provide a positive number of seconds."
	UsageSetNRFImage    = "Usage: /setnrfimage <image_url>"
	UsageSetPrivateLink = "Usage: /setprivatelink <channel_link>"
	UsageAddDB          = "Usage: /adddb <channel_id>"
	UsageBroadcast      = "Broadcast message cannot be empty."
	UsageReply          = "Reply cannot be empty."
)
