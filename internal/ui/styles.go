package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
	colorDanger    = lipgloss.Color("196") // Red
)

// TitleStyle for section headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// SelectedItem style for the currently highlighted list row.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected rows.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// MetaItem style for scores, ages, and counts.
var MetaItem = lipgloss.NewStyle().
	Foreground(colorMuted)

// SubredditBadge style for the post source badge.
var SubredditBadge = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// SentimentPositive / Negative / Neutral chips for the analysis panel.
var (
	SentimentPositive = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(colorSuccess).
				Padding(0, 1)
	SentimentNegative = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(colorDanger).
				Padding(0, 1)
	SentimentNeutral = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(colorSecondary).
				Padding(0, 1)
)

// ToxicityFilled / ToxicityEmpty cells for the toxicity bar.
var (
	ToxicityFilled = lipgloss.NewStyle().Foreground(colorWarning)
	ToxicityEmpty  = lipgloss.NewStyle().Foreground(colorMuted)
)

// PanelStyle frames the analysis summary above the posts list.
var PanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// InputLabel style for form field labels.
var InputLabel = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// ActiveTab / InactiveTab for the login/register switch.
var (
	ActiveTab = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary).
			Padding(0, 2)
	InactiveTab = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 2)
)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in the status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for the error bar.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true).
	Padding(0, 1)

// NoticeStyle for informational one-liners (e.g. "registered, signing in").
var NoticeStyle = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Padding(0, 1)

// HelpStyle for empty-state help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)
