package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/models"
	"peels/internal/notify"
	"peels/internal/storage"
	"peels/internal/usecases"
)

// Fakes embed the store interface so each test only implements what the
// exercised handler calls.

type fakeUsers struct {
	UserStore
	byID map[int]models.User
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byID: map[int]models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(_ context.Context, u *models.User) error {
	for _, other := range f.byID {
		if strings.EqualFold(other.Username, u.Username) || strings.EqualFold(other.Email, u.Email) {
			return storage.ErrConflict
		}
	}
	u.ID = len(f.byID) + 1
	u.Level = 1
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetUser(_ context.Context, id int) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByLogin(_ context.Context, login string) (models.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Username, login) || strings.EqualFold(u.Email, login) {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

type fakeJournals struct {
	JournalStore
	byID map[int]models.Journal
}

func (f *fakeJournals) GetJournal(_ context.Context, id int) (models.Journal, error) {
	j, ok := f.byID[id]
	if !ok {
		return models.Journal{}, storage.ErrNotFound
	}
	return j, nil
}

func (f *fakeJournals) CreateJournal(_ context.Context, j *models.Journal) error {
	j.ID = len(f.byID) + 1
	f.byID[j.ID] = *j
	return nil
}

type fakeFriends struct {
	FriendStore
	of map[int][]int
}

func (f *fakeFriends) AreFriends(_ context.Context, a, b int) (bool, error) {
	return slices.Contains(f.of[a], b), nil
}

func (f *fakeFriends) FriendIDs(_ context.Context, userID int) ([]int, error) {
	return append([]int{}, f.of[userID]...), nil
}

type fakeEntries struct {
	EntryStore
	mu   sync.Mutex
	byID map[int]models.Entry
}

func (f *fakeEntries) CreateEntry(_ context.Context, e *models.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = len(f.byID) + 1
	f.byID[e.ID] = *e
	return nil
}

func (f *fakeEntries) GetEntry(_ context.Context, id int) (models.Entry, error) {
	e, ok := f.byID[id]
	if !ok {
		return models.Entry{}, storage.ErrNotFound
	}
	return e, nil
}

type fakeTemplates struct {
	TemplateStore
	byID map[int]models.Template
}

func (f *fakeTemplates) GetTemplate(_ context.Context, id int) (models.Template, error) {
	t, ok := f.byID[id]
	if !ok {
		return models.Template{}, storage.ErrNotFound
	}
	return t, nil
}

// fakeRewards serializes grants the way the user row lock does.
type fakeRewards struct {
	mu      sync.Mutex
	granted []models.Reward
	today   int
}

func (f *fakeRewards) GrantEntry(context.Context, int, time.Time) (models.RewardResult, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := usecases.EntryReward(f.today)
	if r.XP == 0 {
		return models.RewardResult{}, false, nil
	}
	f.today++
	f.granted = append(f.granted, r)
	return models.RewardResult{Experience: r.XP, Level: usecases.LevelFor(r.XP), Bananas: r.Bananas}, true, nil
}

type fakeTracker struct {
	mu        sync.Mutex
	done      []models.Goal
	evaluated int
}

func (f *fakeTracker) Progress(context.Context, *models.Goal) error { return nil }

func (f *fakeTracker) Evaluate(context.Context, int) ([]models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evaluated++
	return f.done, nil
}

type fakeNotifier struct {
	sent []models.Notification
}

func (f *fakeNotifier) NotifyQuietly(_ context.Context, userID int, kind, message string) {
	f.sent = append(f.sent, models.Notification{UserID: userID, Type: kind, Message: message})
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

// testAPI wires a router around fakes. Tests replace the fields they need
// before calling handler.
type testAPI struct {
	deps   Deps
	tokens *auth.TokenManager
}

func newTestAPI() *testAPI {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return &testAPI{
		tokens: tokens,
		deps: Deps{
			Users:              newFakeUsers(),
			Journals:           &fakeJournals{byID: map[int]models.Journal{}},
			Entries:            &fakeEntries{byID: map[int]models.Entry{}},
			Templates:          &fakeTemplates{byID: map[int]models.Template{}},
			Friends:            &fakeFriends{of: map[int][]int{}},
			Rewards:            &fakeRewards{},
			Tracker:            &fakeTracker{},
			Notifier:           &fakeNotifier{},
			Hub:                notify.NewHub(),
			Tokens:             tokens,
			DB:                 fakePinger{},
			CORSOrigin:         "http://localhost:3000",
			LoginRatePerMinute: 100,
			Log:                zap.NewNop(),
		},
	}
}

func (a *testAPI) handler() http.Handler {
	return NewRouter(a.deps)
}

func (a *testAPI) token(t *testing.T, userID int, username string) string {
	t.Helper()
	tok, _, err := a.tokens.Issue(userID, username)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if dst != nil {
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
	return env
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
