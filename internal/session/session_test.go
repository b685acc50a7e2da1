package session

import (
	"errors"
	"testing"

	"github.com/nvoronin/redlens/internal/api"
	"github.com/nvoronin/redlens/internal/store"
)

// fakeStore is an in-memory TokenStore.
type fakeStore struct {
	token    string
	setCalls int
	clears   int
}

func (f *fakeStore) Credential() (string, error) {
	if f.token == "" {
		return "", store.ErrNoCredential
	}
	return f.token, nil
}

func (f *fakeStore) SetCredential(token string) error {
	f.token = token
	f.setCalls++
	return nil
}

func (f *fakeStore) ClearCredential() error {
	f.token = ""
	f.clears++
	return nil
}

func TestBeginLoginValidation(t *testing.T) {
	m := New(&fakeStore{})

	if _, err := m.BeginLogin("", "pw"); api.KindOf(err) != api.KindValidation {
		t.Errorf("empty username: err = %v, want validation error", err)
	}
	if _, err := m.BeginLogin("  alice  ", ""); api.KindOf(err) != api.KindValidation {
		t.Errorf("empty password: err = %v, want validation error", err)
	}
	if m.State() != StateAnonymous {
		t.Errorf("state after rejected forms = %v, want anonymous", m.State())
	}

	att, err := m.BeginLogin("  alice  ", "pw")
	if err != nil {
		t.Fatalf("BeginLogin: %v", err)
	}
	if att.Username != "alice" {
		t.Errorf("username = %q, want trimmed alice", att.Username)
	}
	if m.State() != StateAuthenticating {
		t.Errorf("state = %v, want authenticating", m.State())
	}
}

func TestNewLoginSupersedesPending(t *testing.T) {
	m := New(&fakeStore{})

	first, err := m.BeginLogin("alice", "pw")
	if err != nil {
		t.Fatalf("BeginLogin: %v", err)
	}
	second, err := m.BeginLogin("alice", "pw2")
	if err != nil {
		t.Fatalf("second BeginLogin: %v", err)
	}

	// The first response arrives late and must be discarded.
	if m.ApplyLogin(first.Seq, "tok-old", api.Identity{Username: "alice"}, nil) {
		t.Error("superseded login result should be discarded")
	}
	if !m.ApplyLogin(second.Seq, "tok-new", api.Identity{Username: "alice"}, nil) {
		t.Error("latest login result should be applied")
	}
	if m.Token() != "tok-new" {
		t.Errorf("Token = %q, want tok-new", m.Token())
	}
}

func TestLoginSuccessPersistsCredential(t *testing.T) {
	fs := &fakeStore{}
	m := New(fs)

	att, _ := m.BeginLogin("alice", "pw")
	if !m.ApplyLogin(att.Seq, "tok-1", api.Identity{Username: "alice"}, nil) {
		t.Fatal("ApplyLogin should accept the current sequence")
	}

	if m.State() != StateAuthenticated {
		t.Errorf("state = %v, want authenticated", m.State())
	}
	if m.Token() != "tok-1" {
		t.Errorf("Token = %q, want tok-1", m.Token())
	}
	if fs.token != "tok-1" {
		t.Errorf("stored token = %q, want tok-1", fs.token)
	}
	if m.Identity().Username != "alice" {
		t.Errorf("identity = %+v, want alice", m.Identity())
	}
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	m := New(&fakeStore{})

	att, _ := m.BeginLogin("alice", "wrong")
	m.ApplyLogin(att.Seq, "", api.Identity{}, &api.Error{Kind: api.KindAuth, Message: "bad credentials"})

	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
	if m.Token() != "" {
		t.Errorf("Token = %q, want empty", m.Token())
	}
}

func TestStaleLoginResultDiscarded(t *testing.T) {
	fs := &fakeStore{}
	m := New(fs)

	first, _ := m.BeginLogin("alice", "pw")
	m.Logout() // supersedes the in-flight attempt

	if m.ApplyLogin(first.Seq, "tok-old", api.Identity{Username: "alice"}, nil) {
		t.Error("ApplyLogin should discard a result from before Logout")
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
	if m.Token() != "" {
		t.Errorf("Token = %q, want empty", m.Token())
	}
}

func TestExplicitLoginSupersedesStartup(t *testing.T) {
	fs := &fakeStore{token: "tok-stored"}
	m := New(fs)

	startup, ok := m.BeginStartup()
	if !ok {
		t.Fatal("BeginStartup should start with a stored credential")
	}

	att, err := m.BeginLogin("alice", "pw")
	if err != nil {
		t.Fatalf("BeginLogin during startup validation: %v", err)
	}

	// The late startup result must not clobber the explicit login.
	if m.ApplyStartup(startup.Seq, api.Identity{Username: "ghost"}, nil) {
		t.Error("stale startup result should be discarded")
	}
	if !m.ApplyLogin(att.Seq, "tok-new", api.Identity{Username: "alice"}, nil) {
		t.Error("login result should be applied")
	}
	if m.Identity().Username != "alice" {
		t.Errorf("identity = %+v, want alice", m.Identity())
	}
}

func TestRegisterYieldsNoSession(t *testing.T) {
	m := New(&fakeStore{})

	if _, err := m.BeginRegister("alice", "not-an-email", "pw"); api.KindOf(err) != api.KindValidation {
		t.Errorf("bad email: err = %v, want validation error", err)
	}

	att, err := m.BeginRegister("alice", "alice@example.com", "pw")
	if err != nil {
		t.Fatalf("BeginRegister: %v", err)
	}
	if !m.ApplyRegister(att.Seq, nil) {
		t.Fatal("ApplyRegister should accept the current sequence")
	}
	if m.State() != StateAnonymous {
		t.Errorf("state after successful registration = %v, want anonymous", m.State())
	}
	if m.Token() != "" {
		t.Errorf("Token = %q, want empty after registration", m.Token())
	}
}

func TestStartupNoCredential(t *testing.T) {
	m := New(&fakeStore{})

	if _, ok := m.BeginStartup(); ok {
		t.Error("BeginStartup should not start without a stored credential")
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
}

func TestStartupRejectedCredentialPurged(t *testing.T) {
	fs := &fakeStore{token: "tok-stale"}
	m := New(fs)

	att, ok := m.BeginStartup()
	if !ok {
		t.Fatal("BeginStartup should start")
	}
	m.ApplyStartup(att.Seq, api.Identity{}, &api.Error{Kind: api.KindAuth, Message: "token expired", Status: 401})

	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
	if fs.token != "" {
		t.Errorf("stored token = %q, want purged", fs.token)
	}
}

func TestStartupNetworkFailureClearsCredential(t *testing.T) {
	fs := &fakeStore{token: "tok-stored"}
	m := New(fs)

	att, ok := m.BeginStartup()
	if !ok {
		t.Fatal("BeginStartup should start")
	}
	m.ApplyStartup(att.Seq, api.Identity{}, api.NetworkError(errors.New("connection refused")))

	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
	if fs.token != "" {
		t.Errorf("stored token = %q, want cleared on any startup validation failure", fs.token)
	}
	if m.Token() != "" {
		t.Errorf("Token = %q, want empty", m.Token())
	}
}

func TestForceLogoutClearsEverything(t *testing.T) {
	fs := &fakeStore{}
	m := New(fs)

	att, _ := m.BeginLogin("alice", "pw")
	m.ApplyLogin(att.Seq, "tok", api.Identity{Username: "alice"}, nil)

	m.ForceLogout()

	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
	if m.Token() != "" || fs.token != "" {
		t.Error("ForceLogout should drop the token in memory and on disk")
	}
	if m.Identity().Username != "" {
		t.Errorf("identity = %+v, want zero", m.Identity())
	}
}
