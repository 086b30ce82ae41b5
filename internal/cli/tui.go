package cli

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/dayboard/internal/app"
	"github.com/nhle/dayboard/internal/httpclient"
	appsync "github.com/nhle/dayboard/internal/sync"
)

func newTUICommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "tui",
		Aliases: []string{"board"},
		Short:   "Open the terminal board",
		Long: `Opens the full-screen board. Press ? inside it for the key bindings.
Logs go to log.file while the board is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.env

			var poller *appsync.Poller
			if env.Config.API.BaseURL != "" {
				interval := time.Duration(env.Config.API.PollIntervalSec) * time.Second
				poller = appsync.New(env.Ops, interval, httpclient.IsAuthError, env.Logger)
			}

			p := tea.NewProgram(
				app.New(env.Todos, env.Ops, poller),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("running board: %w", err)
			}
			return nil
		},
	}
}
