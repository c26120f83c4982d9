package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/sioneuhlig/eventscout/internal/tasks"
	"github.com/sioneuhlig/eventscout/internal/ui"
	"github.com/urfave/cli/v3"
)

const tuiLogPath = "./tmp/scout-tui.log"

// TUI launches the interactive event browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	if err := os.MkdirAll(filepath.Dir(tuiLogPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile(tuiLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	r.SetLogger(shared.NewLogger(logFile))

	engine, err := r.engine(true)
	if err != nil {
		return err
	}
	location, err := r.resolveLocation(cmd.StringArg("location"))
	if err != nil {
		return err
	}
	prefs, err := r.history.Preferences()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, ui.ModelOpts{
		Searcher:  engine,
		Favorites: r.favorites,
		History:   r.history,
		Session:   &tasks.Session{},
		Request:   tasks.SearchRequest{Location: location, Criteria: prefs},
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	r.syncFavoriteCategories()
	return nil
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Aliases:   []string{"interactive", "ui"},
		Usage:     "Browse events interactively",
		Arguments: []cli.Argument{&cli.StringArg{Name: "location"}},
		Action:    r.TUI,
	}
}
