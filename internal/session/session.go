// Package session owns the authentication lifecycle.
//
// The Manager is a pure state machine: Begin* methods validate input,
// advance the state, and hand back a sequence-tagged intent for the
// caller to execute on the network; Apply* methods install the outcome.
// A result tagged with a stale sequence is discarded, so a superseded
// attempt can never clobber a newer one.
package session

import (
	"errors"
	"strings"

	"github.com/nvoronin/redlens/internal/api"
	"github.com/nvoronin/redlens/internal/logging"
	"github.com/nvoronin/redlens/internal/store"
)

// State is the authentication state of the session.
type State int

const (
	// StateAnonymous means no credential is held.
	StateAnonymous State = iota
	// StateAuthenticating means a login, registration, or startup
	// validation is in flight.
	StateAuthenticating
	// StateAuthenticated means a credential is held and validated.
	StateAuthenticated
	// StateInvalid means the held credential was rejected and the
	// session is being torn down.
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// TokenStore persists the bearer credential between runs.
type TokenStore interface {
	Credential() (string, error)
	SetCredential(token string) error
	ClearCredential() error
}

// AttemptKind identifies what a pending auth sequence is doing.
type AttemptKind int

const (
	// AttemptNone means nothing is in flight.
	AttemptNone AttemptKind = iota
	// AttemptLogin is an explicit username/password login.
	AttemptLogin
	// AttemptRegister is an account registration; it chains into a
	// login on success and never yields a session by itself.
	AttemptRegister
	// AttemptStartup is validation of a credential loaded from disk.
	AttemptStartup
)

// Attempt is a sequence-tagged auth intent to run on the network.
type Attempt struct {
	Kind     AttemptKind
	Seq      uint64
	Username string
	Password string
	Email    string
	// Token is set for AttemptStartup: the stored credential under test.
	Token string
}

// Manager is the session state machine. It is not safe for concurrent
// use; all calls happen on the program's single update loop.
type Manager struct {
	state    State
	seq      uint64
	identity api.Identity
	token    string
	store    TokenStore
}

// New creates a Manager in StateAnonymous backed by the given store.
func New(store TokenStore) *Manager {
	return &Manager{state: StateAnonymous, store: store}
}

// State reports the current auth state.
func (m *Manager) State() State { return m.state }

// Identity returns the authenticated user, zero-valued otherwise.
func (m *Manager) Identity() api.Identity { return m.identity }

// Token returns the current bearer credential, "" when anonymous.
// It is the CredentialSource for the API client.
func (m *Manager) Token() string { return m.token }

// BeginLogin validates the form and starts a login attempt. A login
// issued while another auth attempt is in flight supersedes it: the
// sequence moves on and the older result lands stale.
func (m *Manager) BeginLogin(username, password string) (Attempt, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Attempt{}, api.ValidationError("username and password are required")
	}

	m.seq++
	m.state = StateAuthenticating
	logging.Info("login started", "username", username, "seq", m.seq)
	return Attempt{Kind: AttemptLogin, Seq: m.seq, Username: username, Password: password}, nil
}

// BeginRegister validates the form and starts a registration attempt.
func (m *Manager) BeginRegister(username, email, password string) (Attempt, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return Attempt{}, api.ValidationError("username, email, and password are required")
	}
	if !strings.Contains(email, "@") {
		return Attempt{}, api.ValidationError("email address looks invalid")
	}

	m.seq++
	m.state = StateAuthenticating
	logging.Info("registration started", "username", username, "seq", m.seq)
	return Attempt{Kind: AttemptRegister, Seq: m.seq, Username: username, Email: email, Password: password}, nil
}

// BeginStartup starts validation of a credential loaded from disk.
// When no credential is stored it returns started=false and the session
// stays anonymous.
func (m *Manager) BeginStartup() (Attempt, bool) {
	token, err := m.store.Credential()
	if err != nil {
		if !errors.Is(err, store.ErrNoCredential) {
			logging.Warn("could not read stored credential", "error", err)
		}
		return Attempt{}, false
	}
	if token == "" {
		return Attempt{}, false
	}

	m.seq++
	m.state = StateAuthenticating
	m.token = token
	logging.Info("validating stored credential", "seq", m.seq)
	return Attempt{Kind: AttemptStartup, Seq: m.seq, Token: token}, true
}

// ApplyLogin installs a login outcome. On success the credential is
// persisted and the session becomes authenticated. Stale sequences are
// discarded and reported via the bool.
func (m *Manager) ApplyLogin(seq uint64, token string, id api.Identity, err error) bool {
	if seq != m.seq {
		logging.Debug("discarding stale login result", "got", seq, "want", m.seq)
		return false
	}

	if err != nil {
		m.state = StateAnonymous
		m.token = ""
		logging.Warn("login failed", "error", err)
		return true
	}

	m.state = StateAuthenticated
	m.token = token
	m.identity = id
	if serr := m.store.SetCredential(token); serr != nil {
		// The session still works for this run; it just won't
		// survive a restart.
		logging.Error("could not persist credential", "error", serr)
	}
	logging.Info("login succeeded", "username", id.Username)
	return true
}

// ApplyRegister installs a registration outcome. Success does not
// authenticate; the caller chains a login with the same credentials.
func (m *Manager) ApplyRegister(seq uint64, err error) bool {
	if seq != m.seq {
		logging.Debug("discarding stale registration result", "got", seq, "want", m.seq)
		return false
	}
	m.state = StateAnonymous

	if err != nil {
		logging.Warn("registration failed", "error", err)
	} else {
		logging.Info("registration succeeded")
	}
	return true
}

// ApplyStartup installs the outcome of validating a stored credential.
// Any failure, rejection or network, purges the credential so the next
// run starts cleanly anonymous.
func (m *Manager) ApplyStartup(seq uint64, id api.Identity, err error) bool {
	if seq != m.seq {
		logging.Debug("discarding stale startup result", "got", seq, "want", m.seq)
		return false
	}

	if err != nil {
		// Invalid is transient; purge resolves it to Anonymous.
		m.state = StateInvalid
		m.purge()
		logging.Warn("stored credential validation failed, purged", "error", err)
		return true
	}

	m.state = StateAuthenticated
	m.identity = id
	logging.Info("stored credential validated", "username", id.Username)
	return true
}

// Logout is the user-initiated teardown. It bumps the sequence so any
// in-flight auth result lands stale.
func (m *Manager) Logout() {
	m.seq++
	m.purge()
	logging.Info("logged out")
}

// ForceLogout tears the session down after a credential rejection on
// any authenticated call. Like Logout it invalidates in-flight results.
func (m *Manager) ForceLogout() {
	m.seq++
	m.purge()
	logging.Warn("session invalidated by server")
}

func (m *Manager) purge() {
	m.state = StateAnonymous
	m.token = ""
	m.identity = api.Identity{}
	if err := m.store.ClearCredential(); err != nil {
		logging.Error("could not clear stored credential", "error", err)
	}
}
