package api

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp is a time.Time that also decodes the offset-less ISO 8601
// strings the service emits for naive datetimes.
type Timestamp struct {
	time.Time
}

// timestampLayouts in decode preference order. RFC 3339 first, then the
// naive shapes Python's isoformat produces.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// Post is a single discussion post returned by the service.
// Immutable once received; IDs are unique within one result set only.
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Text        string  `json:"text"`
	URL         string  `json:"url"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	Permalink   string  `json:"permalink"`
}

// Created returns the post creation time.
func (p Post) Created() time.Time {
	return time.Unix(int64(p.CreatedUTC), 0)
}

// Sentiment values the service may report. Anything else is treated
// as SentimentUnknown by consumers.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentUnknown  = "unknown"
)

// Analysis is the server-side derived analysis of a result set.
// Opaque beyond type checking; the client never recomputes it.
type Analysis struct {
	OverallSentiment    string   `json:"overall_sentiment"`
	ToxicityLevel       float64  `json:"toxicity_level"`
	FrequentWords       []string `json:"frequent_words"`
	InfluentialAccounts []string `json:"influential_accounts"`
}

// SearchResult is one completed search: the topic it was issued for,
// the posts found, and the analysis over them.
type SearchResult struct {
	Topic    string   `json:"topic"`
	Posts    []Post   `json:"posts"`
	Analysis Analysis `json:"analysis"`
}

// HistoryEntry is a server-owned record of a past search.
type HistoryEntry struct {
	ID        int64        `json:"id"`
	Topic     string       `json:"topic"`
	CreatedAt Timestamp    `json:"created_at"`
	Results   SearchResult `json:"results"`
}

// Identity describes the authenticated user.
type Identity struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"created_at"`
}

// searchRequest is the POST /api/search body.
type searchRequest struct {
	Topic string `json:"topic"`
	Limit int    `json:"limit"`
}

// searchResponse is the POST /api/search response body.
type searchResponse struct {
	Posts    []Post   `json:"posts"`
	Analysis Analysis `json:"analysis"`
}

// tokenResponse is the POST /api/auth/login response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// registerRequest is the POST /api/auth/register body.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
