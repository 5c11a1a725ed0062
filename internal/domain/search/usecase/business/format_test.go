package business

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
)

func TestFormatResults_Empty(t *testing.T) {
	assert.Empty(t, FormatResults(nil, false, ""))
}

func TestFormatResults_Entry(t *testing.T) {
	posts := []entities.Post{{MessageID: 42, ChannelID: -1001234567890, Caption: "Batman & Robin"}}

	got := FormatResults(posts, false, "")

	want := ResultsBanner +
		"♻️ <b>Batman &amp; Robin</b>\n🔗 <a href=\"https://t.me/c/1234567890/42\">Post Link</a>" +
		ResultDelimiter
	assert.Equal(t, want, got)
	assert.True(t, strings.HasPrefix(got, "Powered By @ChannelName\nHere are the results 👇\n\n"))
}

func TestPostTitle(t *testing.T) {
	sixty := strings.Repeat("a", 60)
	forty := strings.Repeat("b", 40)
	fifty := strings.Repeat("c", 50)
	cyrillic := strings.Repeat("ж", 55)

	assert.Equal(t, strings.Repeat("a", 50)+"...", PostTitle(sixty))
	assert.Equal(t, forty, PostTitle(forty))
	assert.Equal(t, fifty, PostTitle(fifty))
	assert.Equal(t, strings.Repeat("ж", 50)+"...", PostTitle(cyrillic))
	assert.Equal(t, NoTitle, PostTitle(""))
}

func TestPostLink(t *testing.T) {
	post := entities.Post{MessageID: 42, ChannelID: -1001234567890}

	tests := []struct {
		name        string
		private     bool
		privateLink string
		want        string
	}{
		{name: "public", want: "https://t.me/c/1234567890/42"},
		{name: "private with link", private: true, privateLink: "https://t.me/+invite", want: "https://t.me/+invite/42"},
		{name: "private without link", private: true, want: "https://t.me/c/1234567890/42"},
		{name: "public ignores link", privateLink: "https://t.me/+invite", want: "https://t.me/c/1234567890/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostLink(post, tt.private, tt.privateLink))
		})
	}
}
