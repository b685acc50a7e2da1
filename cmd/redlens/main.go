package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvoronin/redlens/internal/api"
	"github.com/nvoronin/redlens/internal/config"
	"github.com/nvoronin/redlens/internal/history"
	"github.com/nvoronin/redlens/internal/logging"
	"github.com/nvoronin/redlens/internal/search"
	"github.com/nvoronin/redlens/internal/session"
	"github.com/nvoronin/redlens/internal/store"
	"github.com/nvoronin/redlens/internal/ui"
)

func main() {
	if err := logging.Init(); err != nil {
		log.Printf("Warning: file logging disabled: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.AutoPopulateFromEnv()

	// Data directory: ~/.redlens/
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".redlens")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.Open(filepath.Join(dataDir, "redlens.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	sess := session.New(st)
	srch := search.New()
	hist := history.New()

	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	client := api.New(cfg.Server.BaseURL, timeout, sess.Token)
	searchLimit := cfg.Server.SearchLimit

	// Each command runs one network leg off the update loop and reports
	// back as a sequence-tagged message.
	cmds := ui.Commands{
		Login: func(username, password string, seq uint64) tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				token, err := client.Login(ctx, username, password)
				if err != nil {
					return ui.LoginComplete{Seq: seq, Err: err}
				}
				// The login response carries only the token; identity
				// comes from the form.
				return ui.LoginComplete{Seq: seq, Token: token, Identity: api.Identity{Username: username}}
			}
		},
		Register: func(username, email, password string, seq uint64) tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				return ui.RegisterComplete{Seq: seq, Err: client.Register(ctx, username, email, password)}
			}
		},
		Validate: func(token string, seq uint64) tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				id, err := client.Me(ctx)
				return ui.StartupComplete{Seq: seq, Identity: id, Err: err}
			}
		},
		Search: func(topic string, seq uint64) tea.Cmd {
			return func() tea.Msg {
				// Search waits on the client-side limiter, so give it
				// headroom beyond the per-request timeout.
				ctx, cancel := context.WithTimeout(context.Background(), timeout+30*time.Second)
				defer cancel()
				result, err := client.Search(ctx, topic, searchLimit)
				return ui.SearchComplete{Seq: seq, Result: result, Err: err}
			}
		},
		FetchHistory: func(seq uint64) tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				entries, err := client.History(ctx)
				return ui.HistoryLoaded{Seq: seq, Entries: entries, Err: err}
			}
		},
		DeleteHistory: func(id int64, seq uint64) tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				return ui.HistoryDeleted{Seq: seq, Err: client.DeleteHistory(ctx, id)}
			}
		},
	}

	app := ui.NewApp(sess, srch, hist, cmds)

	logging.Info("redlens starting", "server", cfg.Server.BaseURL)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Error("program error", "error", err)
		log.Fatalf("Error running program: %v", err)
	}
}
