package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvoronin/redlens/internal/api"
	"github.com/nvoronin/redlens/internal/history"
	"github.com/nvoronin/redlens/internal/search"
	"github.com/nvoronin/redlens/internal/session"
	"github.com/nvoronin/redlens/internal/viewmodel"
)

type mode int

const (
	modeSearch mode = iota
	modeAuth
	modeHistory
	modeDetail
)

type authTab int

const (
	tabLogin authTab = iota
	tabRegister
)

// Commands are the network legs the App dispatches. Injected so tests
// can run the whole Update loop against a fake transport.
// IMPORTANT: App does NOT hold the API client. All network work happens
// inside these commands; results come back as messages.
type Commands struct {
	Login         func(username, password string, seq uint64) tea.Cmd
	Register      func(username, email, password string, seq uint64) tea.Cmd
	Validate      func(token string, seq uint64) tea.Cmd
	Search        func(topic string, seq uint64) tea.Cmd
	FetchHistory  func(seq uint64) tea.Cmd
	DeleteHistory func(id int64, seq uint64) tea.Cmd
}

// App is the root Bubble Tea model. All state mutation happens in
// Update; the cores never see a goroutine other than the program loop.
type App struct {
	cmds Commands

	session *session.Manager
	search  *search.Orchestrator
	history *history.Cache

	mode mode

	topicInput textinput.Model
	listFocus  bool
	cursor     int

	tab        authTab
	authInputs []textinput.Model
	authFocus  int
	// Held between a successful registration and the chained login.
	pendingUsername string
	pendingPassword string

	histCursor int
	detailID   int64
	detailPos  int

	spin spinner.Model

	// Smooth scrolling with harmonica spring physics
	scrollSpring   harmonica.Spring
	scrollPos      float64
	scrollVelocity float64
	scrollTarget   float64

	errText string
	notice  string

	width  int
	height int
	ready  bool
}

// NewApp wires the cores and command functions into a root model.
func NewApp(sess *session.Manager, srch *search.Orchestrator, hist *history.Cache, cmds Commands) App {
	ti := textinput.New()
	ti.Placeholder = "topic to analyze"
	ti.CharLimit = 200
	ti.Focus()

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	spring := harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.8)

	return App{
		cmds:         cmds,
		session:      sess,
		search:       srch,
		history:      hist,
		topicInput:   ti,
		authInputs:   []textinput.Model{username, email, password},
		spin:         sp,
		scrollSpring: spring,
	}
}

// Init validates any stored credential and starts the input blink.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if att, ok := a.session.BeginStartup(); ok && a.cmds.Validate != nil {
		cmds = append(cmds, a.cmds.Validate(att.Token, att.Seq), a.spin.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.topicInput.Width = msg.Width - 10
		return a, nil

	case spinner.TickMsg:
		if a.busy() {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a, nil

	case scrollTick:
		a.scrollPos, a.scrollVelocity = a.scrollSpring.Update(a.scrollPos, a.scrollVelocity, a.scrollTarget)
		if a.scrolling() {
			return a, a.scrollCmd()
		}
		a.scrollPos = a.scrollTarget
		a.scrollVelocity = 0
		return a, nil

	case LoginComplete:
		return a.handleLoginComplete(msg)

	case RegisterComplete:
		return a.handleRegisterComplete(msg)

	case StartupComplete:
		if a.session.ApplyStartup(msg.Seq, msg.Identity, msg.Err) {
			if a.session.State() == session.StateAuthenticated {
				a.notice = "welcome back, " + msg.Identity.Username
			}
		}
		return a, nil

	case SearchComplete:
		return a.handleSearchComplete(msg)

	case HistoryLoaded:
		if a.history.ApplyFetch(msg.Seq, msg.Entries, msg.Err) && msg.Err != nil {
			if api.IsAuth(msg.Err) {
				return a.invalidateSession()
			}
			a.errText = msg.Err.Error()
		}
		return a, nil

	case HistoryDeleted:
		return a.handleHistoryDeleted(msg)
	}

	return a.updateInputs(msg)
}

// busy reports whether anything is in flight that wants a spinner.
func (a App) busy() bool {
	return a.search.Phase() == search.Loading ||
		a.session.State() == session.StateAuthenticating ||
		a.history.Fetching()
}

func (a App) scrolling() bool {
	return math.Abs(a.scrollPos-a.scrollTarget) > 0.01
}

func (a App) scrollCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(time.Time) tea.Msg { return scrollTick{} })
}

// handleLoginComplete installs a login outcome and lands the user on
// the search view.
func (a App) handleLoginComplete(msg LoginComplete) (tea.Model, tea.Cmd) {
	if !a.session.ApplyLogin(msg.Seq, msg.Token, msg.Identity, msg.Err) {
		return a, nil
	}
	a.pendingUsername = ""
	a.pendingPassword = ""
	if msg.Err != nil {
		a.errText = msg.Err.Error()
		return a, nil
	}

	a.history.Reset()
	a.errText = ""
	a.notice = "signed in as " + msg.Identity.Username
	a.mode = modeSearch
	a.listFocus = false
	a.topicInput.Focus()
	for i := range a.authInputs {
		a.authInputs[i].SetValue("")
	}
	return a, nil
}

// handleRegisterComplete chains a successful registration into a login
// with the same credentials.
func (a App) handleRegisterComplete(msg RegisterComplete) (tea.Model, tea.Cmd) {
	if !a.session.ApplyRegister(msg.Seq, msg.Err) {
		return a, nil
	}
	if msg.Err != nil {
		a.errText = msg.Err.Error()
		a.pendingUsername = ""
		a.pendingPassword = ""
		return a, nil
	}

	a.notice = "account created, signing in"
	att, err := a.session.BeginLogin(a.pendingUsername, a.pendingPassword)
	if err != nil {
		a.errText = err.Error()
		return a, nil
	}
	if a.cmds.Login == nil {
		return a, nil
	}
	return a, tea.Batch(a.cmds.Login(att.Username, att.Password, att.Seq), a.spin.Tick)
}

// handleSearchComplete installs a query outcome. An auth rejection on
// search tears the whole session down; a success while signed in means
// the server recorded a new history entry.
func (a App) handleSearchComplete(msg SearchComplete) (tea.Model, tea.Cmd) {
	if !a.search.Apply(msg.Seq, msg.Result, msg.Err) {
		return a, nil
	}
	if msg.Err != nil {
		if api.IsAuth(msg.Err) && a.session.State() == session.StateAuthenticated {
			return a.invalidateSession()
		}
		return a, nil
	}

	a.cursor = 0
	a.scrollPos = 0
	a.scrollTarget = 0
	a.scrollVelocity = 0
	if a.session.State() == session.StateAuthenticated {
		a.history.Invalidate()
	}
	return a, nil
}

func (a App) handleHistoryDeleted(msg HistoryDeleted) (tea.Model, tea.Cmd) {
	if !a.history.ApplyDelete(msg.Seq, msg.Err) {
		return a, nil
	}
	if msg.Err != nil {
		if api.IsAuth(msg.Err) {
			return a.invalidateSession()
		}
		a.errText = msg.Err.Error()
		return a, nil
	}

	entries, need := a.history.Entries()
	if a.histCursor >= len(entries) && len(entries) > 0 {
		a.histCursor = len(entries) - 1
	}
	if need && a.mode == modeHistory && a.cmds.FetchHistory != nil {
		req := a.history.BeginFetch()
		return a, tea.Batch(a.cmds.FetchHistory(req.Seq), a.spin.Tick)
	}
	return a, nil
}

// invalidateSession is the one place a server-side credential rejection
// is handled: force logout, drop per-user caches, land on the auth view.
func (a App) invalidateSession() (tea.Model, tea.Cmd) {
	a.session.ForceLogout()
	a.history.Reset()
	a.search.Clear()
	a.errText = "session expired, please sign in again"
	a.notice = ""
	a.mode = modeAuth
	a.tab = tabLogin
	a.focusAuthField(0)
	return a, nil
}

// handleKeyMsg processes keyboard input per mode.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	a.notice = ""

	switch a.mode {
	case modeSearch:
		return a.handleSearchKeys(msg)
	case modeAuth:
		return a.handleAuthKeys(msg)
	case modeHistory:
		return a.handleHistoryKeys(msg)
	case modeDetail:
		return a.handleDetailKeys(msg)
	}
	return a, nil
}

func (a App) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if a.listFocus {
			return a, nil
		}
		return a.submitSearch()

	case "esc":
		if a.listFocus {
			a.listFocus = false
			a.topicInput.Focus()
			return a, nil
		}
		a.search.Clear()
		a.topicInput.SetValue("")
		a.errText = ""
		a.cursor = 0
		a.resetScroll()
		return a, nil

	case "tab":
		if a.search.Phase() == search.Success && len(a.search.Result().Posts) > 0 {
			a.listFocus = !a.listFocus
			if a.listFocus {
				a.topicInput.Blur()
			} else {
				a.topicInput.Focus()
			}
		}
		return a, nil

	case "ctrl+l":
		if a.session.State() != session.StateAuthenticated {
			a.mode = modeAuth
			a.tab = tabLogin
			a.errText = ""
			a.focusAuthField(0)
			return a, nil
		}
		return a, nil

	case "ctrl+o":
		if a.session.State() == session.StateAuthenticated {
			a.session.Logout()
			a.history.Reset()
			a.notice = "signed out"
		}
		return a, nil

	case "ctrl+r":
		if a.session.State() == session.StateAuthenticated {
			return a.enterHistory()
		}
		return a, nil
	}

	if a.listFocus {
		posts := a.search.Result().Posts
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "j", "down":
			if a.cursor < len(posts)-1 {
				a.cursor++
				cmd := a.trackCursor(a.cursor)
				return a, cmd
			}
		case "k", "up":
			if a.cursor > 0 {
				a.cursor--
				cmd := a.trackCursor(a.cursor)
				return a, cmd
			}
		case "g", "home":
			a.cursor = 0
			cmd := a.trackCursor(a.cursor)
			return a, cmd
		case "G", "end":
			if len(posts) > 0 {
				a.cursor = len(posts) - 1
				cmd := a.trackCursor(a.cursor)
				return a, cmd
			}
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.topicInput, cmd = a.topicInput.Update(msg)
	return a, cmd
}

func (a App) submitSearch() (tea.Model, tea.Cmd) {
	req, started, err := a.search.Submit(a.topicInput.Value())
	if err != nil {
		a.errText = err.Error()
		return a, nil
	}
	if !started {
		return a, nil
	}
	a.errText = ""
	a.cursor = 0
	a.resetScroll()
	if a.cmds.Search == nil {
		return a, nil
	}
	return a, tea.Batch(a.cmds.Search(req.Topic, req.Seq), a.spin.Tick)
}

func (a App) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeSearch
		a.errText = ""
		a.topicInput.Focus()
		return a, nil

	case "ctrl+t":
		if a.tab == tabLogin {
			a.tab = tabRegister
		} else {
			a.tab = tabLogin
		}
		a.errText = ""
		a.focusAuthField(0)
		return a, nil

	case "tab", "down":
		a.focusAuthField(a.authFieldPos() + 1)
		return a, nil

	case "shift+tab", "up":
		a.focusAuthField(a.authFieldPos() - 1)
		return a, nil

	case "enter":
		return a.submitAuth()
	}

	var cmd tea.Cmd
	a.authInputs[a.authFocus], cmd = a.authInputs[a.authFocus].Update(msg)
	return a, cmd
}

// authFields returns the input indexes active for the current tab.
// Login skips the email field.
func (a App) authFields() []int {
	if a.tab == tabLogin {
		return []int{0, 2}
	}
	return []int{0, 1, 2}
}

// authFieldPos returns the position of the focused input within the
// active field list.
func (a App) authFieldPos() int {
	for i, idx := range a.authFields() {
		if idx == a.authFocus {
			return i
		}
	}
	return 0
}

// focusAuthField focuses the field at the given position in the active
// field list, wrapping at both ends.
func (a *App) focusAuthField(want int) {
	fields := a.authFields()
	if want < 0 {
		want = len(fields) - 1
	}
	want = want % len(fields)

	for i := range a.authInputs {
		a.authInputs[i].Blur()
	}
	// authFocus indexes authInputs directly so Update routes keystrokes.
	a.authFocus = fields[want]
	a.authInputs[a.authFocus].Focus()
}

func (a App) submitAuth() (tea.Model, tea.Cmd) {
	username := a.authInputs[0].Value()
	email := a.authInputs[1].Value()
	password := a.authInputs[2].Value()

	if a.tab == tabLogin {
		att, err := a.session.BeginLogin(username, password)
		if err != nil {
			a.errText = err.Error()
			return a, nil
		}
		a.errText = ""
		if a.cmds.Login == nil {
			return a, nil
		}
		return a, tea.Batch(a.cmds.Login(att.Username, att.Password, att.Seq), a.spin.Tick)
	}

	att, err := a.session.BeginRegister(username, email, password)
	if err != nil {
		a.errText = err.Error()
		return a, nil
	}
	a.errText = ""
	a.pendingUsername = att.Username
	a.pendingPassword = att.Password
	if a.cmds.Register == nil {
		return a, nil
	}
	return a, tea.Batch(a.cmds.Register(att.Username, att.Email, att.Password, att.Seq), a.spin.Tick)
}

// enterHistory switches to the history view and fetches when the cache
// wants it.
func (a App) enterHistory() (tea.Model, tea.Cmd) {
	a.mode = modeHistory
	a.errText = ""
	a.topicInput.Blur()
	a.listFocus = false
	a.resetScroll()

	_, need := a.history.Entries()
	if need && a.cmds.FetchHistory != nil {
		req := a.history.BeginFetch()
		return a, tea.Batch(a.cmds.FetchHistory(req.Seq), a.spin.Tick)
	}
	return a, nil
}

func (a App) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries, _ := a.history.Entries()

	switch msg.String() {
	case "esc":
		a.mode = modeSearch
		a.topicInput.Focus()
		return a, nil

	case "q":
		return a, tea.Quit

	case "j", "down":
		if a.histCursor < len(entries)-1 {
			a.histCursor++
			cmd := a.trackCursor(a.histCursor)
			return a, cmd
		}
		return a, nil

	case "k", "up":
		if a.histCursor > 0 {
			a.histCursor--
			cmd := a.trackCursor(a.histCursor)
			return a, cmd
		}
		return a, nil

	case "g", "home":
		a.histCursor = 0
		cmd := a.trackCursor(0)
		return a, cmd

	case "G", "end":
		if len(entries) > 0 {
			a.histCursor = len(entries) - 1
			cmd := a.trackCursor(a.histCursor)
			return a, cmd
		}
		return a, nil

	case "enter":
		if a.histCursor < len(entries) {
			a.detailID = entries[a.histCursor].ID
			a.detailPos = 0
			a.mode = modeDetail
		}
		return a, nil

	case "d":
		if a.histCursor < len(entries) {
			req := a.history.BeginDelete(entries[a.histCursor].ID)
			if a.cmds.DeleteHistory != nil {
				return a, a.cmds.DeleteHistory(req.ID, req.Seq)
			}
		}
		return a, nil

	case "r":
		if !a.history.Fetching() && a.cmds.FetchHistory != nil {
			req := a.history.BeginFetch()
			return a, tea.Batch(a.cmds.FetchHistory(req.Seq), a.spin.Tick)
		}
		return a, nil
	}

	return a, nil
}

func (a App) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entry, ok := a.history.Entry(a.detailID)

	switch msg.String() {
	case "esc", "q":
		a.mode = modeHistory
		return a, nil

	case "j", "down":
		if ok && a.detailPos < len(entry.Results.Posts)-1 {
			a.detailPos++
		}
		return a, nil

	case "k", "up":
		if a.detailPos > 0 {
			a.detailPos--
		}
		return a, nil
	}

	return a, nil
}

// trackCursor moves the scroll target so the cursor stays visible and
// starts the spring animation.
func (a *App) trackCursor(cursor int) tea.Cmd {
	visible := a.listHeight()
	target := a.scrollTarget
	if float64(cursor) < target {
		target = float64(cursor)
	}
	if float64(cursor) >= target+float64(visible) {
		target = float64(cursor - visible + 1)
	}
	if target == a.scrollTarget {
		return nil
	}
	a.scrollTarget = target
	return a.scrollCmd()
}

func (a *App) resetScroll() {
	a.scrollPos = 0
	a.scrollVelocity = 0
	a.scrollTarget = 0
}

// listHeight is the viewport height available to list rows.
func (a App) listHeight() int {
	// header + input/panel area + status bar
	h := a.height - 10
	if h < 3 {
		h = 3
	}
	return h
}

func (a App) scrollOffset(max int) int {
	off := int(a.scrollPos + 0.5)
	if off < 0 {
		off = 0
	}
	if off > max {
		off = max
	}
	return off
}

func (a App) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.mode {
	case modeSearch:
		a.topicInput, cmd = a.topicInput.Update(msg)
	case modeAuth:
		a.authInputs[a.authFocus], cmd = a.authInputs[a.authFocus].Update(msg)
	}
	return a, cmd
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	vm := viewmodel.Compose(a.session, a.search, a.history)

	var body string
	switch a.mode {
	case modeSearch:
		body = a.viewSearch(vm)
	case modeAuth:
		body = a.viewAuth(vm)
	case modeHistory:
		body = a.viewHistory(vm)
	case modeDetail:
		body = a.viewDetail()
	}

	errorBar := ""
	if a.errText != "" {
		errorBar = ErrorStyle.Width(a.width).Render("Error: "+a.errText) + "\n"
	} else if a.notice != "" {
		errorBar = NoticeStyle.Width(a.width).Render(a.notice) + "\n"
	}

	return body + errorBar + a.statusBar(vm)
}

func (a App) viewSearch(vm viewmodel.View) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("redlens"))
	if vm.Authenticated {
		b.WriteString(MetaItem.Render("  " + vm.Username))
	}
	b.WriteString("\n\n")

	b.WriteString("  " + a.topicInput.View() + "\n\n")

	switch {
	case vm.Searching:
		b.WriteString("  " + a.spin.View() + MetaItem.Render(" analyzing \""+vm.Topic+"\"") + "\n")
	case vm.SearchError != "":
		b.WriteString(ErrorStyle.Render(vm.SearchError) + "\n")
	case vm.HaveResult:
		b.WriteString(RenderAnalysis(vm.Result.Analysis, a.width) + "\n")
		posts := vm.Result.Posts
		offset := a.scrollOffset(maxOffset(len(posts), a.listHeight()))
		b.WriteString(RenderPosts(posts, a.cursorOrNone(), a.width, a.listHeight(), offset))
	default:
		b.WriteString(HelpStyle.Render("Type a topic and press Enter to analyze the discussion around it."))
		b.WriteString("\n")
	}

	return b.String()
}

// cursorOrNone hides the list cursor while the input owns focus.
func (a App) cursorOrNone() int {
	if a.listFocus {
		return a.cursor
	}
	return -1
}

func (a App) viewAuth(vm viewmodel.View) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("redlens"))
	b.WriteString("\n\n  ")
	if a.tab == tabLogin {
		b.WriteString(ActiveTab.Render("Sign in") + " " + InactiveTab.Render("Register"))
	} else {
		b.WriteString(InactiveTab.Render("Sign in") + " " + ActiveTab.Render("Register"))
	}
	b.WriteString("\n\n")

	labels := []string{"username", "email", "password"}
	for _, idx := range a.authFields() {
		b.WriteString(InputLabel.Render(labels[idx]) + "\n")
		b.WriteString("  " + a.authInputs[idx].View() + "\n")
	}

	if vm.Authenticating {
		b.WriteString("\n  " + a.spin.View() + MetaItem.Render(" contacting server"))
	}
	b.WriteString("\n")
	return b.String()
}

func (a App) viewHistory(vm viewmodel.View) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Past searches"))
	b.WriteString(MetaItem.Render(fmt.Sprintf("  %d entries", len(vm.History))))
	b.WriteString("\n\n")

	if a.history.Fetching() && !vm.HistoryLoaded {
		b.WriteString("  " + a.spin.View() + MetaItem.Render(" loading history") + "\n")
		return b.String()
	}

	offset := a.scrollOffset(maxOffset(len(vm.History), a.listHeight()))
	b.WriteString(RenderHistory(vm.History, a.histCursor, a.width, a.listHeight(), offset))
	return b.String()
}

func (a App) viewDetail() string {
	entry, ok := a.history.Entry(a.detailID)
	if !ok {
		return HelpStyle.Render("This entry is no longer cached. Press Esc to go back.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(entry.Topic))
	b.WriteString(MetaItem.Render("  " + entry.CreatedAt.Format("Jan 2 2006 15:04")))
	b.WriteString("\n\n")
	b.WriteString(RenderAnalysis(entry.Results.Analysis, a.width) + "\n")

	posts := entry.Results.Posts
	offset := a.detailPos - a.listHeight() + 1
	if offset < 0 {
		offset = 0
	}
	b.WriteString(RenderPosts(posts, a.detailPos, a.width, a.listHeight(), offset))
	return b.String()
}

func (a App) statusBar(vm viewmodel.View) string {
	var left string
	var hints [][2]string

	switch a.mode {
	case modeSearch:
		if vm.Searching {
			left = " " + a.spin.View() + " searching "
		} else if vm.Authenticated {
			left = " " + vm.Username + " "
		} else {
			left = " anonymous "
		}
		hints = [][2]string{
			{"Enter", "search"},
			{"Tab", "list"},
			{"Esc", "clear"},
		}
		if vm.Authenticated {
			hints = append(hints, [2]string{"^R", "history"}, [2]string{"^O", "sign out"})
		} else {
			hints = append(hints, [2]string{"^L", "sign in"})
		}
		hints = append(hints, [2]string{"^C", "quit"})

	case modeAuth:
		left = " authentication "
		hints = [][2]string{
			{"Tab", "next"},
			{"^T", "switch"},
			{"Enter", "submit"},
			{"Esc", "back"},
		}

	case modeHistory:
		left = fmt.Sprintf(" %d/%d ", a.histCursor+1, len(vm.History))
		hints = [][2]string{
			{"j/k", "nav"},
			{"Enter", "open"},
			{"d", "delete"},
			{"r", "refresh"},
			{"Esc", "back"},
		}

	case modeDetail:
		left = " detail "
		hints = [][2]string{
			{"j/k", "nav"},
			{"Esc", "back"},
		}
	}

	return RenderStatusBar(left, hints, a.width)
}

func maxOffset(total, visible int) int {
	m := total - visible
	if m < 0 {
		m = 0
	}
	return m
}

// Mode accessors for tests.

// InSearchView reports whether the search view is active.
func (a App) InSearchView() bool { return a.mode == modeSearch }

// InAuthView reports whether the auth view is active.
func (a App) InAuthView() bool { return a.mode == modeAuth }

// InHistoryView reports whether the history view is active.
func (a App) InHistoryView() bool { return a.mode == modeHistory }

// InDetailView reports whether the detail view is active.
func (a App) InDetailView() bool { return a.mode == modeDetail }

// ErrText returns the transient error line (for testing).
func (a App) ErrText() string { return a.errText }

// HistCursor returns the history cursor position (for testing).
func (a App) HistCursor() int { return a.histCursor }
