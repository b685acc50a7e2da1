package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvoronin/redlens/internal/api"
	"github.com/nvoronin/redlens/internal/history"
	"github.com/nvoronin/redlens/internal/search"
	"github.com/nvoronin/redlens/internal/session"
	"github.com/nvoronin/redlens/internal/store"
)

// memStore is an in-memory TokenStore.
type memStore struct{ token string }

func (m *memStore) Credential() (string, error) {
	if m.token == "" {
		return "", store.ErrNoCredential
	}
	return m.token, nil
}
func (m *memStore) SetCredential(token string) error { m.token = token; return nil }
func (m *memStore) ClearCredential() error           { m.token = ""; return nil }

// mockCmds records which command functions the app dispatched.
type mockCmds struct {
	loginUser, loginPass string
	loginSeq             uint64
	loginCalls           int

	registerUser, registerEmail, registerPass string
	registerSeq                               uint64
	registerCalls                             int

	validateToken string
	validateSeq   uint64
	validateCalls int

	searchTopic string
	searchSeq   uint64
	searchCalls int

	fetchSeq   uint64
	fetchCalls int

	deleteID    int64
	deleteSeq   uint64
	deleteCalls int
}

func noop() tea.Msg { return nil }

func (m *mockCmds) commands() Commands {
	return Commands{
		Login: func(username, password string, seq uint64) tea.Cmd {
			m.loginCalls++
			m.loginUser, m.loginPass, m.loginSeq = username, password, seq
			return noop
		},
		Register: func(username, email, password string, seq uint64) tea.Cmd {
			m.registerCalls++
			m.registerUser, m.registerEmail, m.registerPass, m.registerSeq = username, email, password, seq
			return noop
		},
		Validate: func(token string, seq uint64) tea.Cmd {
			m.validateCalls++
			m.validateToken, m.validateSeq = token, seq
			return noop
		},
		Search: func(topic string, seq uint64) tea.Cmd {
			m.searchCalls++
			m.searchTopic, m.searchSeq = topic, seq
			return noop
		},
		FetchHistory: func(seq uint64) tea.Cmd {
			m.fetchCalls++
			m.fetchSeq = seq
			return noop
		},
		DeleteHistory: func(id int64, seq uint64) tea.Cmd {
			m.deleteCalls++
			m.deleteID, m.deleteSeq = id, seq
			return noop
		},
	}
}

type fixture struct {
	app  App
	mock *mockCmds
	sess *session.Manager
	hist *history.Cache
}

func newFixture(t *testing.T, ms *memStore) *fixture {
	t.Helper()
	if ms == nil {
		ms = &memStore{}
	}
	mock := &mockCmds{}
	sess := session.New(ms)
	srch := search.New()
	hist := history.New()
	app := NewApp(sess, srch, hist, mock.commands())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return &fixture{app: model.(App), mock: mock, sess: sess, hist: hist}
}

func (f *fixture) send(t *testing.T, msg tea.Msg) {
	t.Helper()
	model, _ := f.app.Update(msg)
	f.app = model.(App)
}

func (f *fixture) press(t *testing.T, key tea.KeyType) {
	t.Helper()
	f.send(t, tea.KeyMsg{Type: key})
}

func (f *fixture) typeText(t *testing.T, s string) {
	t.Helper()
	f.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// signIn drives the fixture through a full login.
func (f *fixture) signIn(t *testing.T, username string) {
	t.Helper()
	f.press(t, tea.KeyCtrlL)
	f.typeText(t, username)
	f.press(t, tea.KeyTab)
	f.typeText(t, "pw")
	f.press(t, tea.KeyEnter)
	f.send(t, LoginComplete{Seq: f.mock.loginSeq, Token: "tok", Identity: api.Identity{Username: username}})
}

func TestInitValidatesStoredCredential(t *testing.T) {
	f := newFixture(t, &memStore{token: "tok-stored"})

	cmd := f.app.Init()
	if cmd == nil {
		t.Fatal("Init should return a command")
	}
	if f.mock.validateCalls != 1 {
		t.Fatalf("validate calls = %d, want 1", f.mock.validateCalls)
	}
	if f.mock.validateToken != "tok-stored" {
		t.Errorf("validated token = %q, want tok-stored", f.mock.validateToken)
	}

	f.send(t, StartupComplete{Seq: f.mock.validateSeq, Identity: api.Identity{Username: "alice"}})
	if f.sess.State() != session.StateAuthenticated {
		t.Errorf("state = %v, want authenticated", f.sess.State())
	}
}

func TestSubmitSearchDispatchesCommand(t *testing.T) {
	f := newFixture(t, nil)

	f.typeText(t, "golang")
	f.press(t, tea.KeyEnter)

	if f.mock.searchCalls != 1 {
		t.Fatalf("search calls = %d, want 1", f.mock.searchCalls)
	}
	if f.mock.searchTopic != "golang" {
		t.Errorf("topic = %q, want golang", f.mock.searchTopic)
	}

	f.send(t, SearchComplete{Seq: f.mock.searchSeq, Result: api.SearchResult{
		Topic: "golang",
		Posts: []api.Post{{ID: "p1", Title: "A post"}},
	}})
	if got := f.app.search.Result().Topic; got != "golang" {
		t.Errorf("result topic = %q, want golang", got)
	}
}

func TestEmptySearchNeverReachesNetwork(t *testing.T) {
	f := newFixture(t, nil)

	f.typeText(t, "   ")
	f.press(t, tea.KeyEnter)

	if f.mock.searchCalls != 0 {
		t.Errorf("search calls = %d, want 0", f.mock.searchCalls)
	}
	if f.app.ErrText() == "" {
		t.Error("an empty topic should surface a validation error")
	}
}

func TestStaleSearchResultIgnored(t *testing.T) {
	f := newFixture(t, nil)

	f.typeText(t, "golang")
	f.press(t, tea.KeyEnter)
	firstSeq := f.mock.searchSeq

	f.typeText(t, " but newer")
	f.press(t, tea.KeyEnter)
	secondSeq := f.mock.searchSeq

	f.send(t, SearchComplete{Seq: secondSeq, Result: api.SearchResult{Topic: "golang but newer"}})
	f.send(t, SearchComplete{Seq: firstSeq, Result: api.SearchResult{Topic: "golang"}})

	if got := f.app.search.Result().Topic; got != "golang but newer" {
		t.Errorf("visible result = %q, want the newest submission", got)
	}
}

func TestLoginFlow(t *testing.T) {
	f := newFixture(t, nil)

	f.press(t, tea.KeyCtrlL)
	if !f.app.InAuthView() {
		t.Fatal("ctrl+l should open the auth view")
	}

	f.typeText(t, "alice")
	f.press(t, tea.KeyTab)
	f.typeText(t, "secret")
	f.press(t, tea.KeyEnter)

	if f.mock.loginCalls != 1 {
		t.Fatalf("login calls = %d, want 1", f.mock.loginCalls)
	}
	if f.mock.loginUser != "alice" || f.mock.loginPass != "secret" {
		t.Errorf("login form = %q/%q, want alice/secret", f.mock.loginUser, f.mock.loginPass)
	}

	f.send(t, LoginComplete{Seq: f.mock.loginSeq, Token: "tok", Identity: api.Identity{Username: "alice"}})
	if f.sess.State() != session.StateAuthenticated {
		t.Errorf("state = %v, want authenticated", f.sess.State())
	}
	if !f.app.InSearchView() {
		t.Error("a successful login should land on the search view")
	}
}

func TestRegisterChainsIntoLogin(t *testing.T) {
	f := newFixture(t, nil)

	f.press(t, tea.KeyCtrlL)
	f.press(t, tea.KeyCtrlT) // switch to register
	f.typeText(t, "bob")
	f.press(t, tea.KeyTab)
	f.typeText(t, "bob@example.com")
	f.press(t, tea.KeyTab)
	f.typeText(t, "secret")
	f.press(t, tea.KeyEnter)

	if f.mock.registerCalls != 1 {
		t.Fatalf("register calls = %d, want 1", f.mock.registerCalls)
	}
	if f.mock.registerEmail != "bob@example.com" {
		t.Errorf("email = %q, want bob@example.com", f.mock.registerEmail)
	}

	f.send(t, RegisterComplete{Seq: f.mock.registerSeq})

	if f.mock.loginCalls != 1 {
		t.Fatalf("login calls after registration = %d, want the chained login", f.mock.loginCalls)
	}
	if f.mock.loginUser != "bob" || f.mock.loginPass != "secret" {
		t.Errorf("chained login = %q/%q, want the registration credentials", f.mock.loginUser, f.mock.loginPass)
	}
}

func TestHistoryDeleteRefetches(t *testing.T) {
	f := newFixture(t, nil)
	f.signIn(t, "alice")

	f.press(t, tea.KeyCtrlR)
	if !f.app.InHistoryView() {
		t.Fatal("ctrl+r should open the history view")
	}
	if f.mock.fetchCalls != 1 {
		t.Fatalf("fetch calls = %d, want 1 on entering history", f.mock.fetchCalls)
	}

	f.send(t, HistoryLoaded{Seq: f.mock.fetchSeq, Entries: []api.HistoryEntry{
		{ID: 1, Topic: "golang"},
		{ID: 2, Topic: "rust"},
	}})

	f.typeText(t, "d")
	if f.mock.deleteCalls != 1 || f.mock.deleteID != 1 {
		t.Fatalf("delete calls = %d id = %d, want one delete of entry 1", f.mock.deleteCalls, f.mock.deleteID)
	}

	f.send(t, HistoryDeleted{Seq: f.mock.deleteSeq})
	// The cache is stale after a confirmed delete; the open view refetches.
	if f.mock.fetchCalls != 2 {
		t.Errorf("fetch calls = %d, want a refetch after delete", f.mock.fetchCalls)
	}
}

func TestSearchSuccessInvalidatesHistory(t *testing.T) {
	f := newFixture(t, nil)
	f.signIn(t, "alice")

	f.press(t, tea.KeyCtrlR)
	f.send(t, HistoryLoaded{Seq: f.mock.fetchSeq, Entries: []api.HistoryEntry{{ID: 1, Topic: "old"}}})
	f.press(t, tea.KeyEsc)

	f.typeText(t, "golang")
	f.press(t, tea.KeyEnter)
	f.send(t, SearchComplete{Seq: f.mock.searchSeq, Result: api.SearchResult{Topic: "golang"}})

	if _, need := f.hist.Entries(); !need {
		t.Error("a successful search while signed in should invalidate the history cache")
	}
}

// TestExpiredCredentialTearsSessionDown walks the full scenario: sign
// in, search, then hit a credential rejection on the history fetch.
func TestExpiredCredentialTearsSessionDown(t *testing.T) {
	ms := &memStore{}
	f := newFixture(t, ms)
	f.signIn(t, "alice")

	f.typeText(t, "golang")
	f.press(t, tea.KeyEnter)
	f.send(t, SearchComplete{Seq: f.mock.searchSeq, Result: api.SearchResult{
		Topic: "golang",
		Posts: []api.Post{{ID: "p1"}},
	}})

	f.press(t, tea.KeyCtrlR)
	f.send(t, HistoryLoaded{Seq: f.mock.fetchSeq, Err: &api.Error{Kind: api.KindAuth, Message: "token expired", Status: 401}})

	if f.sess.State() != session.StateAnonymous {
		t.Errorf("state = %v, want anonymous after rejection", f.sess.State())
	}
	if ms.token != "" {
		t.Errorf("stored token = %q, want purged", ms.token)
	}
	if !f.app.InAuthView() {
		t.Error("a dead session should land on the auth view")
	}
	if f.app.search.Phase() != search.Idle {
		t.Errorf("search phase = %v, want cleared", f.app.search.Phase())
	}
	if entries, _ := f.hist.Entries(); len(entries) != 0 {
		t.Errorf("history entries = %d, want reset", len(entries))
	}
}

func TestLogoutResetsCaches(t *testing.T) {
	f := newFixture(t, nil)
	f.signIn(t, "alice")

	f.press(t, tea.KeyCtrlR)
	f.send(t, HistoryLoaded{Seq: f.mock.fetchSeq, Entries: []api.HistoryEntry{{ID: 1}}})
	f.press(t, tea.KeyEsc)

	f.press(t, tea.KeyCtrlO)

	if f.sess.State() != session.StateAnonymous {
		t.Errorf("state = %v, want anonymous", f.sess.State())
	}
	entries, need := f.hist.Entries()
	if len(entries) != 0 || !need {
		t.Error("logout should reset the history cache")
	}
}
