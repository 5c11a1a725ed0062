package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
	pkgerrors "github.com/Conte777/catalog-search-bot/pkg/errors"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestSettingsRepository_GetExisting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "settings" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}).
			AddRow("mode", "public", time.Now()))

	value, ok, err := repo.Get(context.Background(), "mode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "public", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_GetMissingIsNotAnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "settings" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	value, ok, err := repo.Get(context.Background(), "private_link")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type recordingLogger struct {
	errs []error
}

func (l *recordingLogger) LogMode(logger.LogLevel) logger.Interface      { return l }
func (l *recordingLogger) Info(context.Context, string, ...interface{})  {}
func (l *recordingLogger) Warn(context.Context, string, ...interface{})  {}
func (l *recordingLogger) Error(context.Context, string, ...interface{}) {}
func (l *recordingLogger) Trace(_ context.Context, _ time.Time, _ func() (string, int64), err error) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

func TestSettingsRepository_GetMissingLogsNothing(t *testing.T) {
	db, mock := newMockDB(t)
	rec := &recordingLogger{}
	db = db.Session(&gorm.Session{Logger: rec})
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "settings" WHERE key = \$1 LIMIT \$2`).
		WithArgs("auto_delete", 1).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, ok, err := repo.Get(context.Background(), "auto_delete")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, rec.errs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_UpsertUsesOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	mock.ExpectExec(`INSERT INTO "settings" .* ON CONFLICT \("key"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), "mode", "private"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_IncrementSearchCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE "users" SET "search_count"=search_count \+ \$1 WHERE user_id = \$2`).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementSearchCount(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_IncrementUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE "users" SET "search_count"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementSearchCount(context.Background(), 7)
	assert.True(t, pkgerrors.IsNotFoundError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpsertUsesOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO "users" .* ON CONFLICT \("user_id"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now()
	err := repo.Upsert(context.Background(), &entities.User{
		UserID:    42,
		Username:  "bruce",
		FirstName: "Bruce",
		JoinedAt:  now,
		LastSeen:  now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_SearchKeepsRankOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "message_id", "channel_id", "caption", "photo_id", "date", "added_at", "score"}).
		AddRow(1, 42, int64(-1001234567890), "Batman (1989) Remastered", "photo-a", now, now, 0.9).
		AddRow(2, 43, int64(-1001234567890), "Batman Returns", "photo-b", now, now, 0.5)

	mock.ExpectQuery(`SELECT posts\.\*, ts_rank\(search_vector, to_tsquery\('simple', .*\)\) AS score FROM "posts" WHERE search_vector @@ to_tsquery`).
		WillReturnRows(rows)

	posts, err := repo.Search(context.Background(), "Batman 1989", 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, 42, posts[0].MessageID)
	assert.Equal(t, 43, posts[1].MessageID)
	assert.InDelta(t, 0.9, posts[0].Score, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_SearchGluedTitleAndYear(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "message_id", "channel_id", "caption", "photo_id", "date", "added_at", "score"}).
		AddRow(1, 42, int64(-1001234567890), "Batman (1989) Remastered", "photo-a", now, now, 0.6)

	tsQuery := "batman1989:* | batman:* | 1989:*"
	mock.ExpectQuery(`SELECT posts\.\*, ts_rank\(search_vector, to_tsquery\('simple', \$1\)\) AS score FROM "posts" WHERE search_vector @@ to_tsquery\('simple', \$2\)`).
		WithArgs(tsQuery, tsQuery, 10).
		WillReturnRows(rows)

	posts, err := repo.Search(context.Background(), "batman1989", 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Batman (1989) Remastered", posts[0].Caption)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_SearchBlankQuerySkipsDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	posts, err := repo.Search(context.Background(), "  !!! ", 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AddReturnsCreated(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`INSERT INTO "posts" .* ON CONFLICT \("channel_id","message_id"\) DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	post := &entities.Post{MessageID: 42, ChannelID: -1001234567890, Caption: "Batman", AddedAt: time.Now()}
	created, err := repo.Add(context.Background(), post)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(7), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_Resolve(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRequestRepository(db)

	mock.ExpectExec(`UPDATE "requests" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := repo.Resolve(context.Background(), "0b6a3e52-6a0f-4b4e-9a57-1f3c2a7e8d11", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_ListPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRequestRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "requests" WHERE status = \$1 ORDER BY requested_at`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "query", "status", "requested_at", "resolved_at"}).
			AddRow("0b6a3e52-6a0f-4b4e-9a57-1f3c2a7e8d11", 42, "batman", "pending", now, nil))

	reqs, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, entities.RequestStatusPending, reqs[0].Status)
	assert.Equal(t, int64(42), reqs[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildTSQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "single word", query: "batman", want: "batman:*"},
		{name: "letters and digits are also split", query: "batman1989", want: "batman1989:* | batman:* | 1989:*"},
		{name: "mixed runs", query: "x2y10", want: "x2y10:* | x:* | 2:* | y:* | 10:*"},
		{name: "duplicate terms collapse", query: "batman batman1989", want: "batman:* | batman1989:* | 1989:*"},
		{name: "words are ORed", query: "Batman 1989", want: "batman:* | 1989:*"},
		{name: "punctuation separates", query: "Batman (1989)!", want: "batman:* | 1989:*"},
		{name: "tsquery operators are stripped", query: "a & b | !c", want: "a:* | b:* | c:*"},
		{name: "blank", query: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildTSQuery(tt.query))
		})
	}
}
