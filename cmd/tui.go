package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/melodex/internal/shared"
	"github.com/desertthunder/melodex/internal/tasks"
	"github.com/desertthunder/melodex/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing the library.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/melodex-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	// Mutation outcomes surface in the TUI status line rather than stdout.
	notifier := ui.NewStatusNotifier()
	deps := r.deps(notifier)
	deps.Logger = fileLogger

	flows := ui.Flows{
		Catalog:   tasks.NewCatalogFlow(deps),
		Likes:     tasks.NewLikeFlow(deps),
		Playlists: tasks.NewPlaylistFlow(deps),
		Invites:   tasks.NewInviteFlow(deps),
	}

	model := ui.NewModel(ctx, flows, notifier)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
