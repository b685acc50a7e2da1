// Package viewmodel merges the core state machines into one renderable
// snapshot. Compose is a pure function of its inputs; it never mutates
// the cores and never touches the network.
package viewmodel

import (
	"github.com/nvoronin/redlens/internal/api"
	"github.com/nvoronin/redlens/internal/history"
	"github.com/nvoronin/redlens/internal/search"
	"github.com/nvoronin/redlens/internal/session"
)

// View is everything the presentation layer needs to draw a frame.
type View struct {
	// Authenticated is true when a validated session is held.
	Authenticated bool
	// Authenticating is true while a login, registration, or startup
	// validation is in flight.
	Authenticating bool
	// Username is the authenticated user's name, "" otherwise.
	Username string

	// Searching is true while a query is in flight.
	Searching bool
	// Topic is the topic of the current query or result.
	Topic string
	// Result is the last successful search, zero-valued otherwise.
	Result api.SearchResult
	// HaveResult is true when Result holds server data.
	HaveResult bool
	// SearchError is the rendered failure of the last query, "" when
	// none.
	SearchError string

	// History is the cached entries. Only populated while
	// authenticated.
	History []api.HistoryEntry
	// HistoryLoaded is true when History holds server data.
	HistoryLoaded bool
	// HistoryFetchNeeded is true when the cache wants a refetch.
	HistoryFetchNeeded bool
}

// Compose builds the View for the current frame.
func Compose(sess *session.Manager, srch *search.Orchestrator, hist *history.Cache) View {
	v := View{
		Authenticated:  sess.State() == session.StateAuthenticated,
		Authenticating: sess.State() == session.StateAuthenticating,
		Searching:      srch.Phase() == search.Loading,
		Topic:          srch.Topic(),
	}
	if v.Authenticated {
		v.Username = sess.Identity().Username
		entries, need := hist.Entries()
		v.History = entries
		v.HistoryLoaded = hist.Loaded()
		v.HistoryFetchNeeded = need
	}
	if srch.Phase() == search.Success {
		v.Result = srch.Result()
		v.HaveResult = true
	}
	if srch.Phase() == search.Failed && srch.Err() != nil {
		v.SearchError = srch.Err().Error()
	}
	return v
}
