package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvoronin/redlens/internal/api"
)

// RenderAnalysis renders the analysis summary panel: sentiment chip,
// toxicity bar, frequent words, and top contributors.
func RenderAnalysis(a api.Analysis, width int) string {
	var b strings.Builder

	b.WriteString(sentimentChip(a.OverallSentiment))
	b.WriteString("  ")
	b.WriteString(MetaItem.Render("toxicity "))
	b.WriteString(toxicityBar(a.ToxicityLevel, 10))
	b.WriteString(MetaItem.Render(fmt.Sprintf(" %.0f%%", a.ToxicityLevel*100)))
	b.WriteString("\n")

	if len(a.FrequentWords) > 0 {
		words := a.FrequentWords
		if len(words) > 8 {
			words = words[:8]
		}
		b.WriteString(MetaItem.Render("words  "))
		b.WriteString(strings.Join(words, " · "))
		b.WriteString("\n")
	}

	if len(a.InfluentialAccounts) > 0 {
		accounts := a.InfluentialAccounts
		if len(accounts) > 5 {
			accounts = accounts[:5]
		}
		b.WriteString(MetaItem.Render("voices "))
		for i, acct := range accounts {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString("u/" + acct)
		}
		b.WriteString("\n")
	}

	panelWidth := width - 4
	if panelWidth < 20 {
		panelWidth = 20
	}
	return PanelStyle.Width(panelWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func sentimentChip(sentiment string) string {
	switch sentiment {
	case api.SentimentPositive:
		return SentimentPositive.Render("positive")
	case api.SentimentNegative:
		return SentimentNegative.Render("negative")
	case api.SentimentNeutral:
		return SentimentNeutral.Render("neutral")
	default:
		return SentimentNeutral.Render("unknown")
	}
}

// toxicityBar renders level in [0,1] as filled/empty cells.
func toxicityBar(level float64, cells int) string {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	filled := int(level*float64(cells) + 0.5)

	var b strings.Builder
	for i := 0; i < cells; i++ {
		if i < filled {
			b.WriteString(ToxicityFilled.Render("█"))
		} else {
			b.WriteString(ToxicityEmpty.Render("░"))
		}
	}
	return b.String()
}

// RenderPosts renders the posts list with a scroll window.
func RenderPosts(posts []api.Post, cursor, width, height, scrollOffset int) string {
	if len(posts) == 0 {
		return HelpStyle.Render("No posts found for this topic.")
	}

	var b strings.Builder
	rendered := 0
	for i := scrollOffset; i < len(posts) && rendered < height; i++ {
		b.WriteString(renderPostLine(posts[i], i == cursor, width))
		b.WriteString("\n")
		rendered++
	}
	return b.String()
}

// renderPostLine renders one post row: badge, truncated title, score,
// comment count, age.
func renderPostLine(post api.Post, selected bool, width int) string {
	badge := SubredditBadge.Render("r/" + post.Subreddit)
	badgeWidth := lipgloss.Width(badge)

	meta := fmt.Sprintf("▲%d  %dc  %s", post.Score, post.NumComments, formatAgeShort(post.Created()))
	metaWidth := utf8.RuneCountInString(meta)

	titleWidth := width - badgeWidth - metaWidth - 6
	if titleWidth < 20 {
		titleWidth = 20
	}
	title := truncate(post.Title, titleWidth)

	style := NormalItem
	if selected {
		style = SelectedItem
	}

	pad := titleWidth - utf8.RuneCountInString(title)
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%s%s%s  %s", badge, style.Render(title), strings.Repeat(" ", pad), MetaItem.Render(meta))
}

// RenderHistory renders the cached history entries.
func RenderHistory(entries []api.HistoryEntry, cursor, width, height, scrollOffset int) string {
	if len(entries) == 0 {
		return HelpStyle.Render("No past searches yet. Run a search while signed in.")
	}

	var b strings.Builder
	rendered := 0
	for i := scrollOffset; i < len(entries) && rendered < height; i++ {
		b.WriteString(renderHistoryLine(entries[i], i == cursor, width))
		b.WriteString("\n")
		rendered++
	}
	return b.String()
}

func renderHistoryLine(entry api.HistoryEntry, selected bool, width int) string {
	meta := fmt.Sprintf("%d posts  %s  %s",
		len(entry.Results.Posts),
		entry.Results.Analysis.OverallSentiment,
		entry.CreatedAt.Format("Jan 2 15:04"))
	metaWidth := utf8.RuneCountInString(meta)

	topicWidth := width - metaWidth - 6
	if topicWidth < 16 {
		topicWidth = 16
	}
	topic := truncate(entry.Topic, topicWidth)

	style := NormalItem
	if selected {
		style = SelectedItem
	}

	pad := topicWidth - utf8.RuneCountInString(topic)
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%s%s  %s", style.Render(topic), strings.Repeat(" ", pad), MetaItem.Render(meta))
}

// RenderStatusBar renders the bottom bar: left status, right key hints.
func RenderStatusBar(left string, hints [][2]string, width int) string {
	keys := make([]string, 0, len(hints))
	for _, h := range hints {
		keys = append(keys, StatusBarKey.Render(h[0])+StatusBarText.Render(":"+h[1]))
	}
	keyHints := strings.Join(keys, " ")

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(keyHints)
	padding := width - leftWidth - rightWidth - 2
	if padding < 0 {
		padding = 0
	}

	bar := left + strings.Repeat(" ", padding) + keyHints
	return StatusBar.Width(width).Render(bar)
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func formatAgeShort(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}
