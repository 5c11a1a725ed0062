package business

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Conte777/catalog-search-bot/config"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
	searcherrors "github.com/Conte777/catalog-search-bot/internal/domain/search/errors"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/session"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure/metrics"
)

var errFake = errors.New("fake failure")

type fakeSettingsRepo struct {
	values  map[string]string
	readErr error
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{values: make(map[string]string)}
}

func (r *fakeSettingsRepo) Get(_ context.Context, key string) (string, bool, error) {
	if r.readErr != nil {
		return "", false, r.readErr
	}
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

func (r *fakeSettingsRepo) Delete(_ context.Context, key string) error {
	delete(r.values, key)
	return nil
}

type fakePostRepo struct {
	results   []entities.Post
	searchErr error
	queries   []string
	added     []entities.Post
}

func (r *fakePostRepo) Search(_ context.Context, query string, limit int) ([]entities.Post, error) {
	r.queries = append(r.queries, query)
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	if len(r.results) > limit {
		return r.results[:limit], nil
	}
	return r.results, nil
}

func (r *fakePostRepo) Add(_ context.Context, post *entities.Post) (bool, error) {
	for _, p := range r.added {
		if p.ChannelID == post.ChannelID && p.MessageID == post.MessageID {
			return false, nil
		}
	}
	r.added = append(r.added, *post)
	return true, nil
}

func (r *fakePostRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.added)), nil
}

type fakeUserRepo struct {
	users map[int64]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entities.User)}
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *entities.User) error {
	if existing, ok := r.users[user.UserID]; ok {
		existing.Username = user.Username
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.LastSeen = user.LastSeen
		return nil
	}
	u := *user
	r.users[user.UserID] = &u
	return nil
}

func (r *fakeUserRepo) IncrementSearchCount(_ context.Context, userID int64) error {
	u, ok := r.users[userID]
	if !ok {
		return errFake
	}
	u.SearchCount++
	return nil
}

func (r *fakeUserRepo) ListIDs(_ context.Context, afterID int64, limit int) ([]int64, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *fakeUserRepo) Stats(_ context.Context) (int64, int64, error) {
	var searches int64
	for _, u := range r.users {
		searches += u.SearchCount
	}
	return int64(len(r.users)), searches, nil
}

type fakeRequestRepo struct {
	requests map[string]*entities.Request
	order    []string
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*entities.Request)}
}

func (r *fakeRequestRepo) Create(_ context.Context, req *entities.Request) error {
	c := *req
	r.requests[req.ID] = &c
	r.order = append(r.order, req.ID)
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (*entities.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, searcherrors.ErrRequestNotFound
	}
	c := *req
	return &c, nil
}

func (r *fakeRequestRepo) ListPending(_ context.Context) ([]entities.Request, error) {
	var out []entities.Request
	for _, id := range r.order {
		if req := r.requests[id]; req.Status == entities.RequestStatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) Resolve(_ context.Context, id string, at time.Time) (bool, error) {
	req, ok := r.requests[id]
	if !ok || req.Status != entities.RequestStatusPending {
		return false, nil
	}
	req.Status = entities.RequestStatusResolved
	req.ResolvedAt = &at
	return true, nil
}

type scheduledDeletion struct {
	ChatID    int64
	MessageID int
	After     time.Duration
}

type fakeScheduler struct {
	calls []scheduledDeletion
}

func (s *fakeScheduler) ScheduleDeletion(chatID int64, messageID int, after time.Duration) {
	s.calls = append(s.calls, scheduledDeletion{ChatID: chatID, MessageID: messageID, After: after})
}

type reaction struct {
	ChatID    int64
	MessageID int
	Emoji     string
}

type fakeMessenger struct {
	mu sync.Mutex

	nextID    int
	texts     []dto.OutgoingMessage
	photos    []dto.OutgoingPhoto
	textEdits []dto.MessageEdit
	capEdits  []dto.MessageEdit
	deleted   []int
	reactions []reaction
	answers   []dto.CallbackAnswer

	failChats map[int64]bool
	reactErr  error
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{nextID: 100, failChats: make(map[int64]bool)}
}

func (m *fakeMessenger) SendText(_ context.Context, msg *dto.OutgoingMessage) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failChats[msg.ChatID] {
		return 0, errFake
	}
	m.nextID++
	m.texts = append(m.texts, *msg)
	return m.nextID, nil
}

func (m *fakeMessenger) SendPhoto(_ context.Context, photo *dto.OutgoingPhoto) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failChats[photo.ChatID] {
		return 0, errFake
	}
	m.nextID++
	m.photos = append(m.photos, *photo)
	return m.nextID, nil
}

func (m *fakeMessenger) EditText(_ context.Context, edit *dto.MessageEdit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textEdits = append(m.textEdits, *edit)
	return nil
}

func (m *fakeMessenger) EditCaption(_ context.Context, edit *dto.MessageEdit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capEdits = append(m.capEdits, *edit)
	return nil
}

func (m *fakeMessenger) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, messageID)
	return nil
}

func (m *fakeMessenger) React(_ context.Context, chatID int64, messageID int, emoji string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reactErr != nil {
		return m.reactErr
	}
	m.reactions = append(m.reactions, reaction{ChatID: chatID, MessageID: messageID, Emoji: emoji})
	return nil
}

func (m *fakeMessenger) AnswerCallback(_ context.Context, answer *dto.CallbackAnswer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, *answer)
	return nil
}

// textsTo returns the texts sent to chatID
func (m *fakeMessenger) textsTo(chatID int64) []dto.OutgoingMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dto.OutgoingMessage
	for _, t := range m.texts {
		if t.ChatID == chatID {
			out = append(out, t)
		}
	}
	return out
}

type fakeChecker struct {
	status entities.MembershipStatus
	err    error
	calls  int
}

func (c *fakeChecker) GetMembership(_ context.Context, _ string, _ int64) (entities.MembershipStatus, error) {
	c.calls++
	return c.status, c.err
}

const (
	testAdminID = int64(1000)
	testUserID  = int64(42)
	testChatID  = int64(42)
)

type testEnv struct {
	uc        *UseCase
	settings  *fakeSettingsRepo
	posts     *fakePostRepo
	users     *fakeUserRepo
	requests  *fakeRequestRepo
	scheduler *fakeScheduler
	messenger *fakeMessenger
	checker   *fakeChecker
	sessions  *session.Store
	metrics   *metrics.Metrics
}

func newTestEnv() *testEnv {
	logger := zerolog.Nop()
	searchCfg := &config.SearchConfig{
		ResultLimit:           10,
		SessionTTL:            time.Minute,
		DefaultMode:           "public",
		DefaultAutoDeleteTime: 60,
	}
	telegramCfg := &config.TelegramConfig{AdminIDs: []int64{testAdminID}}

	env := &testEnv{
		settings:  newFakeSettingsRepo(),
		posts:     &fakePostRepo{},
		users:     newFakeUserRepo(),
		requests:  newFakeRequestRepo(),
		scheduler: &fakeScheduler{},
		messenger: newFakeMessenger(),
		checker:   &fakeChecker{status: entities.MembershipMember},
		sessions:  session.NewStore(searchCfg, logger),
		metrics:   metrics.NewMetrics(prometheus.NewRegistry()),
	}

	settings := NewSettings(env.settings, searchCfg, logger)
	gate := NewAccessGate(settings, env.metrics, logger)
	gate.SetChecker(env.checker)

	env.uc = NewUseCase(Params{
		Settings:  settings,
		Gate:      gate,
		Posts:     env.posts,
		Users:     env.users,
		Requests:  env.requests,
		Sessions:  env.sessions,
		Scheduler: env.scheduler,
		Telegram:  telegramCfg,
		Search:    searchCfg,
		Metrics:   env.metrics,
		Logger:    logger,
	})
	env.uc.SetSender(env.messenger)
	env.uc.pickEmoji = func() string { return "🔥" }

	return env
}

func (e *testEnv) search(query string) (*dto.SearchOutcome, error) {
	return e.uc.HandleQuery(context.Background(), &dto.SearchRequest{
		Sender:    dto.Sender{UserID: testUserID, Username: "bruce", FirstName: "Bruce"},
		ChatID:    testChatID,
		MessageID: 7,
		Query:     query,
	})
}
