// Package history caches the authenticated user's past searches.
//
// The cache is read-through: Entries reports whether a fetch is needed,
// and the caller runs it. Deletions are optimistic about nothing; the
// cached entry is removed only after the server confirms, and the cache
// is then marked stale so the next view refetches.
package history

import (
	"github.com/nvoronin/redlens/internal/api"
	"github.com/nvoronin/redlens/internal/logging"
)

// FetchRequest is a sequence-tagged fetch for the caller to execute.
type FetchRequest struct {
	Seq uint64
}

// DeleteRequest is a sequence-tagged deletion for the caller to execute.
type DeleteRequest struct {
	ID  int64
	Seq uint64
}

// Cache holds the history entries. Not safe for concurrent use; it
// lives on the program's single update loop.
type Cache struct {
	entries  []api.HistoryEntry
	loaded   bool
	stale    bool
	fetching bool

	fetchSeq  uint64
	deleteSeq uint64
	pendingID int64
}

// New creates an empty, unloaded Cache.
func New() *Cache {
	return &Cache{}
}

// Entries returns the cached entries and whether a fetch is needed.
// A fetch is needed when the cache was never loaded or was invalidated,
// and none is already in flight.
func (c *Cache) Entries() ([]api.HistoryEntry, bool) {
	need := (!c.loaded || c.stale) && !c.fetching
	return c.entries, need
}

// Loaded reports whether the cache holds server data.
func (c *Cache) Loaded() bool { return c.loaded }

// Fetching reports whether a fetch is in flight.
func (c *Cache) Fetching() bool { return c.fetching }

// BeginFetch starts a history fetch.
func (c *Cache) BeginFetch() FetchRequest {
	c.fetchSeq++
	c.fetching = true
	logging.Debug("history fetch started", "seq", c.fetchSeq)
	return FetchRequest{Seq: c.fetchSeq}
}

// ApplyFetch installs a fetch outcome. A failed fetch keeps whatever
// was cached before. Stale sequences are discarded.
func (c *Cache) ApplyFetch(seq uint64, entries []api.HistoryEntry, err error) bool {
	if seq != c.fetchSeq {
		logging.Debug("discarding stale history fetch", "got", seq, "want", c.fetchSeq)
		return false
	}
	c.fetching = false

	if err != nil {
		logging.Warn("history fetch failed", "error", err)
		return true
	}

	c.entries = entries
	c.loaded = true
	c.stale = false
	logging.Info("history loaded", "entries", len(entries))
	return true
}

// BeginDelete starts deletion of one entry.
func (c *Cache) BeginDelete(id int64) DeleteRequest {
	c.deleteSeq++
	c.pendingID = id
	logging.Debug("history delete started", "id", id, "seq", c.deleteSeq)
	return DeleteRequest{ID: id, Seq: c.deleteSeq}
}

// ApplyDelete installs a deletion outcome. On success the entry is
// removed from the cache and the cache marked stale for a refetch; on
// failure the cache is left untouched.
func (c *Cache) ApplyDelete(seq uint64, err error) bool {
	if seq != c.deleteSeq {
		logging.Debug("discarding stale history delete", "got", seq, "want", c.deleteSeq)
		return false
	}

	if err != nil {
		logging.Warn("history delete failed", "id", c.pendingID, "error", err)
		return true
	}

	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.ID != c.pendingID {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	c.stale = true
	logging.Info("history entry deleted", "id", c.pendingID)
	return true
}

// Entry returns the cached entry with the given id. The detail view is
// a pure read of the cache; it never fetches.
func (c *Cache) Entry(id int64) (api.HistoryEntry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return api.HistoryEntry{}, false
}

// Invalidate marks the cache stale so the next view refetches. Called
// after a successful search while authenticated, which the server
// records as a new entry.
func (c *Cache) Invalidate() {
	c.stale = true
}

// Reset drops everything on logout and invalidates in-flight results.
func (c *Cache) Reset() {
	c.fetchSeq++
	c.deleteSeq++
	c.entries = nil
	c.loaded = false
	c.stale = false
	c.fetching = false
	c.pendingID = 0
}
