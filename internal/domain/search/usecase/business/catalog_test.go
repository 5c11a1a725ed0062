package business

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/consts"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
)

func TestIngestChannelPost(t *testing.T) {
	env := newTestEnv()
	env.settings.values[consts.SettingDBChannel] = "-1001234567890"
	ctx := context.Background()

	post := &dto.ChannelPostRequest{
		ChannelID: testChannelID,
		MessageID: 42,
		Caption:   "Batman (1989)",
		PhotoID:   "photo-1",
		Date:      1700000000,
	}

	created, err := env.uc.IngestChannelPost(ctx, post)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = env.uc.IngestChannelPost(ctx, post)
	require.NoError(t, err)
	assert.False(t, created, "duplicates are ignored")

	require.Len(t, env.posts.added, 1)
	assert.Equal(t, int64(1700000000), env.posts.added[0].Date.Unix())
}

func TestIngestChannelPost_Ignored(t *testing.T) {
	ctx := context.Background()

	t.Run("no database channel", func(t *testing.T) {
		env := newTestEnv()
		created, err := env.uc.IngestChannelPost(ctx, &dto.ChannelPostRequest{ChannelID: testChannelID, MessageID: 1, Caption: "x"})
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("other channel", func(t *testing.T) {
		env := newTestEnv()
		env.settings.values[consts.SettingDBChannel] = "-1009"
		created, err := env.uc.IngestChannelPost(ctx, &dto.ChannelPostRequest{ChannelID: testChannelID, MessageID: 1, Caption: "x"})
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("empty post", func(t *testing.T) {
		env := newTestEnv()
		env.settings.values[consts.SettingDBChannel] = "-1001234567890"
		created, err := env.uc.IngestChannelPost(ctx, &dto.ChannelPostRequest{ChannelID: testChannelID, MessageID: 1})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Empty(t, env.posts.added)
	})
}
