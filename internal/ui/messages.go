// Package ui provides the Bubble Tea TUI for redlens.
package ui

import "github.com/nvoronin/redlens/internal/api"

// LoginComplete is sent when a login round-trip finishes.
type LoginComplete struct {
	Seq      uint64 // auth correlation sequence
	Token    string
	Identity api.Identity
	Err      error
}

// RegisterComplete is sent when a registration round-trip finishes.
// Success carries no session; the app chains a login with the same
// credentials.
type RegisterComplete struct {
	Seq uint64
	Err error
}

// StartupComplete is sent when validation of a stored credential
// finishes.
type StartupComplete struct {
	Seq      uint64
	Identity api.Identity
	Err      error
}

// SearchComplete is sent when a topic query finishes.
type SearchComplete struct {
	Seq    uint64 // search correlation sequence
	Result api.SearchResult
	Err    error
}

// HistoryLoaded is sent when the history fetch finishes.
type HistoryLoaded struct {
	Seq     uint64
	Entries []api.HistoryEntry
	Err     error
}

// HistoryDeleted is sent when a history deletion finishes.
type HistoryDeleted struct {
	Seq uint64
	Err error
}

// scrollTick drives the smooth scroll animation frames.
type scrollTick struct{}
