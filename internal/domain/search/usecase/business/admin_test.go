package business

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/consts"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
	searcherrors "github.com/Conte777/catalog-search-bot/internal/domain/search/errors"
	pkgerrors "github.com/Conte777/catalog-search-bot/pkg/errors"
)

func adminCmd(adminID int64, args ...string) *dto.AdminCommandRequest {
	return &dto.AdminCommandRequest{AdminID: adminID, ChatID: adminID, Args: args}
}

func TestAdminCommands_RejectNonAdmin(t *testing.T) {
	env := newTestEnv()
	env.settings.values[consts.SettingMode] = consts.ModePrivate
	ctx := context.Background()

	commands := map[string]func(context.Context, *dto.AdminCommandRequest) (*dto.CommandResponse, error){
		"setmode":        env.uc.SetMode,
		"autodelete":     env.uc.AutoDelete,
		"setnrfimage":    env.uc.SetNRFImage,
		"setprivatelink": env.uc.SetPrivateLink,
		"adddb":          env.uc.AddDB,
		"removedb":       env.uc.RemoveDB,
		"status":         env.uc.Status,
		"broadcast":      env.uc.StartBroadcast,
	}

	args := map[string][]string{
		"setmode":        {"public"},
		"autodelete":     {"on", "5"},
		"setnrfimage":    {"https://example.com/x.jpg"},
		"setprivatelink": {"@other"},
		"adddb":          {"-1009"},
		"broadcast":      {"hello"},
	}

	for name, handler := range commands {
		t.Run(name, func(t *testing.T) {
			_, err := handler(ctx, adminCmd(testUserID, args[name]...))
			assert.ErrorIs(t, err, searcherrors.ErrUnauthorized)
			assert.True(t, pkgerrors.IsPermissionError(err))
		})
	}

	assert.Equal(t, map[string]string{consts.SettingMode: consts.ModePrivate}, env.settings.values)
	assert.Empty(t, env.messenger.texts)
	assert.Zero(t, env.sessions.Len())
}

func TestSetMode(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	resp, err := env.uc.SetMode(ctx, adminCmd(testAdminID, "PRIVATE"))
	require.NoError(t, err)
	assert.Equal(t, "✅ Mode set to private", resp.Message)
	assert.Equal(t, consts.ModePrivate, env.settings.values[consts.SettingMode])

	for _, bad := range [][]string{nil, {"secret"}} {
		_, err = env.uc.SetMode(ctx, adminCmd(testAdminID, bad...))
		assert.ErrorIs(t, err, searcherrors.ErrInvalidMode)
	}
	assert.Equal(t, consts.ModePrivate, env.settings.values[consts.SettingMode])
}

func TestAutoDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("on with time", func(t *testing.T) {
		env := newTestEnv()
		resp, err := env.uc.AutoDelete(ctx, adminCmd(testAdminID, "on", "5"))
		require.NoError(t, err)
		assert.Equal(t, consts.MsgAutoDeleteOn, resp.Message)
		assert.Equal(t, consts.AutoDeleteOn, env.settings.values[consts.SettingAutoDelete])
		assert.Equal(t, "5", env.settings.values[consts.SettingAutoDeleteTime])
	})

	t.Run("on keeps previous time", func(t *testing.T) {
		env := newTestEnv()
		env.settings.values[consts.SettingAutoDeleteTime] = "30"
		_, err := env.uc.AutoDelete(ctx, adminCmd(testAdminID, "on"))
		require.NoError(t, err)
		assert.Equal(t, "30", env.settings.values[consts.SettingAutoDeleteTime])
	})

	t.Run("off", func(t *testing.T) {
		env := newTestEnv()
		env.settings.values[consts.SettingAutoDelete] = consts.AutoDeleteOn
		resp, err := env.uc.AutoDelete(ctx, adminCmd(testAdminID, "off"))
		require.NoError(t, err)
		assert.Equal(t, consts.MsgAutoDeleteOff, resp.Message)
		assert.Equal(t, consts.AutoDeleteOff, env.settings.values[consts.SettingAutoDelete])
	})

	t.Run("invalid time changes nothing", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.uc.AutoDelete(ctx, adminCmd(testAdminID, "on", "soon"))
		assert.ErrorIs(t, err, searcherrors.ErrInvalidDeleteTime)
		assert.Empty(t, env.settings.values)
	})

	t.Run("invalid state", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.uc.AutoDelete(ctx, adminCmd(testAdminID, "maybe"))
		assert.ErrorIs(t, err, searcherrors.ErrInvalidAutoDelete)
		assert.Empty(t, env.settings.values)
	})
}

func TestSetNRFImageAndPrivateLink(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.uc.SetNRFImage(ctx, adminCmd(testAdminID, "https://example.com/nrf.png"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/nrf.png", env.settings.values[consts.SettingNRFImage])

	_, err = env.uc.SetNRFImage(ctx, adminCmd(testAdminID, "nope"))
	assert.ErrorIs(t, err, searcherrors.ErrInvalidNRFImage)

	_, err = env.uc.SetPrivateLink(ctx, adminCmd(testAdminID, "@catalog"))
	require.NoError(t, err)
	assert.Equal(t, "@catalog", env.settings.values[consts.SettingPrivateLink])

	_, err = env.uc.SetPrivateLink(ctx, adminCmd(testAdminID))
	assert.ErrorIs(t, err, searcherrors.ErrInvalidLink)
}

func TestAddAndRemoveDB(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	resp, err := env.uc.AddDB(ctx, adminCmd(testAdminID, "-1001234567890"))
	require.NoError(t, err)
	assert.Equal(t, "✅ Database channel set to -1001234567890", resp.Message)
	assert.Equal(t, "-1001234567890", env.settings.values[consts.SettingDBChannel])

	for _, bad := range []string{"", "abc", "0"} {
		_, err = env.uc.AddDB(ctx, adminCmd(testAdminID, bad))
		assert.ErrorIs(t, err, searcherrors.ErrInvalidChannel, bad)
	}

	_, err = env.uc.RemoveDB(ctx, adminCmd(testAdminID))
	require.NoError(t, err)
	assert.NotContains(t, env.settings.values, consts.SettingDBChannel)
}

func TestStatus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.search("a")
	require.NoError(t, err)
	_, err = env.search("b")
	require.NoError(t, err)
	env.posts.added = append(env.posts.added, env.posts.results...)
	require.NoError(t, env.requests.Create(ctx, &entities.Request{ID: "r1", UserID: testUserID, Status: entities.RequestStatusPending}))
	require.NoError(t, env.requests.Create(ctx, &entities.Request{ID: "r2", UserID: testUserID, Status: entities.RequestStatusResolved}))

	resp, err := env.uc.Status(ctx, adminCmd(testAdminID))
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "📨 Pending Requests: 1")
	assert.Contains(t, resp.Message, "👥 Total Users: 1")
	assert.Contains(t, resp.Message, "🔍 Total Searches: 2")
	assert.Contains(t, resp.Message, "🌐 Mode: public")
	assert.Contains(t, resp.Message, "🗑️ Auto Delete: off")
}

func TestBroadcastSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	for _, id := range []int64{1, 2, 3} {
		_, err := env.uc.HandleStart(ctx, &dto.StartCommandRequest{Sender: dto.Sender{UserID: id}})
		require.NoError(t, err)
	}
	env.messenger.failChats[2] = true

	resp, err := env.uc.StartBroadcast(ctx, adminCmd(testAdminID))
	require.NoError(t, err)
	assert.Equal(t, consts.MsgBroadcastPrompt, resp.Message)

	resp, handled, err := env.uc.HandleAdminText(ctx, &dto.AdminTextRequest{AdminID: testAdminID, ChatID: testAdminID, Text: "Hello all"})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "Broadcast completed!\n\n✅ Success: 2\n❌ Failed: 1", resp.Message)

	assert.Len(t, env.messenger.textsTo(1), 1)
	assert.Len(t, env.messenger.textsTo(3), 1)

	_, handled, err = env.uc.HandleAdminText(ctx, &dto.AdminTextRequest{AdminID: testAdminID, Text: "search me"})
	require.NoError(t, err)
	assert.False(t, handled, "session ends after one message")
}

func TestCancel(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	resp, err := env.uc.Cancel(ctx, adminCmd(testAdminID))
	require.NoError(t, err)
	assert.Equal(t, consts.MsgNothingToCancel, resp.Message)

	_, err = env.uc.StartBroadcast(ctx, adminCmd(testAdminID))
	require.NoError(t, err)

	resp, err = env.uc.Cancel(ctx, adminCmd(testAdminID))
	require.NoError(t, err)
	assert.Equal(t, consts.MsgCancelled, resp.Message)

	_, handled, err := env.uc.HandleAdminText(ctx, &dto.AdminTextRequest{AdminID: testAdminID, Text: "hello"})
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestHandleAdminText_NonAdminIsNeverHandled(t *testing.T) {
	env := newTestEnv()

	_, handled, err := env.uc.HandleAdminText(context.Background(), &dto.AdminTextRequest{AdminID: testUserID, Text: "hello"})
	require.NoError(t, err)
	assert.False(t, handled)
}
