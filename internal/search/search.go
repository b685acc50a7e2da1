// Package search orchestrates topic queries.
//
// Submission is last-wins: every accepted submission bumps a sequence
// number, and results arriving with an older tag are dropped. There is
// no cooperative cancellation of in-flight requests; a superseded
// response simply cannot be applied.
package search

import (
	"strings"

	"github.com/nvoronin/redlens/internal/api"
	"github.com/nvoronin/redlens/internal/logging"
)

// Phase is the lifecycle of the current query.
type Phase int

const (
	// Idle means no query has run yet, or the view was cleared.
	Idle Phase = iota
	// Loading means a query is in flight.
	Loading
	// Success means the last applied result succeeded.
	Success
	// Failed means the last applied result was an error.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request is a sequence-tagged query for the caller to execute.
type Request struct {
	Topic string
	Seq   uint64
}

// Orchestrator tracks the current query and its result. Not safe for
// concurrent use; it lives on the program's single update loop.
type Orchestrator struct {
	phase  Phase
	seq    uint64
	topic  string
	result api.SearchResult
	err    error
}

// New creates an idle Orchestrator.
func New() *Orchestrator {
	return &Orchestrator{}
}

// Phase reports the current lifecycle phase.
func (o *Orchestrator) Phase() Phase { return o.phase }

// Topic returns the topic of the current query or result.
func (o *Orchestrator) Topic() string { return o.topic }

// Result returns the last successful result. Only meaningful in
// Success.
func (o *Orchestrator) Result() api.SearchResult { return o.result }

// Err returns the failure of the last applied query. Only meaningful
// in Failed.
func (o *Orchestrator) Err() error { return o.err }

// Submit accepts a topic and, when it starts a query, returns the
// tagged request. The topic is trimmed first; an empty topic is a
// validation error that leaves the current state untouched. Submitting
// the topic already loading is a no-op (started=false).
func (o *Orchestrator) Submit(topic string) (Request, bool, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Request{}, false, api.ValidationError("enter a topic to search")
	}
	if o.phase == Loading && topic == o.topic {
		return Request{}, false, nil
	}

	o.seq++
	o.phase = Loading
	o.topic = topic
	o.err = nil
	logging.Info("search started", "topic", topic, "seq", o.seq)
	return Request{Topic: topic, Seq: o.seq}, true, nil
}

// Apply installs the outcome of a query. Results tagged with a stale
// sequence are discarded and reported via the bool.
func (o *Orchestrator) Apply(seq uint64, result api.SearchResult, err error) bool {
	if seq != o.seq {
		logging.Debug("discarding stale search result", "got", seq, "want", o.seq)
		return false
	}

	if err != nil {
		o.phase = Failed
		o.err = err
		logging.Warn("search failed", "topic", o.topic, "error", err)
		return true
	}

	o.phase = Success
	o.result = result
	o.err = nil
	logging.Info("search succeeded", "topic", o.topic, "posts", len(result.Posts))
	return true
}

// Clear resets to Idle and invalidates any in-flight query.
func (o *Orchestrator) Clear() {
	o.seq++
	o.phase = Idle
	o.topic = ""
	o.result = api.SearchResult{}
	o.err = nil
}
