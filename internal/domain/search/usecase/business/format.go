package business

import (
	"html"
	"strconv"
	"strings"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
)

const (
	// ResultsBanner opens every results message
	ResultsBanner = "Powered By @ChannelName\nHere are the results 👇\n\n"
	// ResultDelimiter terminates every entry
	ResultDelimiter = "\n\n---\n\n"
	// MaxTitleLength is the caption length kept before truncation, in characters
	MaxTitleLength = 50
	// NoTitle replaces an empty caption
	NoTitle = "No Title"

	publicLinkBase     = "https://t.me/c/"
	channelIDPrefixLen = 4
)

// FormatResults renders posts in the given order. It returns "" for no posts.
func FormatResults(posts []entities.Post, privateMode bool, privateLink string) string {
	if len(posts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(ResultsBanner)

	for _, post := range posts {
		b.WriteString("♻️ <b>")
		b.WriteString(html.EscapeString(PostTitle(post.Caption)))
		b.WriteString("</b>\n🔗 <a href=\"")
		b.WriteString(html.EscapeString(PostLink(post, privateMode, privateLink)))
		b.WriteString("\">Post Link</a>")
		b.WriteString(ResultDelimiter)
	}

	return b.String()
}

// PostTitle truncates a caption to MaxTitleLength characters followed by "..."
func PostTitle(caption string) string {
	if caption == "" {
		return NoTitle
	}
	runes := []rune(caption)
	if len(runes) > MaxTitleLength {
		return string(runes[:MaxTitleLength]) + "..."
	}
	return caption
}

// PostLink builds the link to a post: under the private link in private mode,
// otherwise the public t.me/c deep link with the "-100" style prefix stripped.
func PostLink(post entities.Post, privateMode bool, privateLink string) string {
	messageID := strconv.Itoa(post.MessageID)

	if privateMode && privateLink != "" {
		return privateLink + "/" + messageID
	}

	channel := strconv.FormatInt(post.ChannelID, 10)
	if len(channel) > channelIDPrefixLen {
		channel = channel[channelIDPrefixLen:]
	} else {
		channel = ""
	}
	return publicLinkBase + channel + "/" + messageID
}
