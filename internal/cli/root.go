// Package cli holds the dayboard command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// runtime carries the flag values and the Env opened for the running
// command.
type runtime struct {
	open       Opener
	configPath string
	env        *Env
}

// NewRootCommand builds the command tree. open is called once, before the
// selected subcommand runs.
func NewRootCommand(open Opener) *cobra.Command {
	r := &runtime{open: open}

	rootCmd := &cobra.Command{
		Use:   "dayboard",
		Short: "Dayboard - todos and daily trackers in the terminal",
		Long: `Dayboard keeps your todos in sync with the server and tracks the rest
of the day locally:

- Todos and lists, with smart lists for My Day, Important and Planned
- A fasting timer and a daily water log
- A small notepad and food recommendation settings
- A terminal board (dayboard tui) over all of it`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.open(Options{
				ConfigPath:  r.configPath,
				Interactive: cmd.Name() == "tui",
			})
			if err != nil {
				return err
			}
			r.env = env
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			r.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&r.configPath, "config", "", "config file (default: ~/.config/dayboard/config.yaml)")

	rootCmd.AddCommand(newLoginCommand(r))
	rootCmd.AddCommand(newLogoutCommand(r))
	rootCmd.AddCommand(newTodoCommand(r))
	rootCmd.AddCommand(newListCommand(r))
	rootCmd.AddCommand(newFastCommand(r))
	rootCmd.AddCommand(newWaterCommand(r))
	rootCmd.AddCommand(newNotesCommand(r))
	rootCmd.AddCommand(newSettingsCommand(r))
	rootCmd.AddCommand(newTUICommand(r))

	return rootCmd
}

// Execute runs the command tree with args. The Env is released even when
// the command fails.
func Execute(ctx context.Context, open Opener, args []string) error {
	r := &runtime{}
	rootCmd := NewRootCommand(func(opts Options) (*Env, error) {
		env, err := open(opts)
		r.env = env
		return env, err
	})
	rootCmd.SetArgs(args)
	defer r.close()

	return rootCmd.ExecuteContext(ctx)
}

func (r *runtime) close() {
	if r.env != nil {
		r.env.Close()
	}
}
