package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/dayboard/internal/store"
)

func newFastCommand(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fast",
		Short: "Fasting timer",
	}

	var goal int
	start := &cobra.Command{
		Use:   "start",
		Short: "Start a fast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if goal < 0 {
				return errors.New("--goal must not be negative")
			}
			sess, err := r.env.Store.StartFast(cmd.Context(), goal, r.env.Now())
			if errors.Is(err, store.ErrFastActive) {
				return errors.New("a fast is already running, stop it first")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fast started at %s, goal %dh\n",
				sess.StartedAt.Local().Format("15:04"), sess.GoalHours)
			return nil
		},
	}
	start.Flags().IntVar(&goal, "goal", 16, "goal in hours")

	stop := &cobra.Command{
		Use:   "stop",
		Short: "End the running fast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := r.env.Now()
			sess, err := r.env.Store.StopFast(cmd.Context(), now)
			if errors.Is(err, store.ErrNoActiveFast) {
				return errors.New("no fast is running")
			}
			if err != nil {
				return err
			}

			verdict := "goal not reached"
			if sess.GoalReached(now) {
				verdict = "goal reached"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fasted %s, %s\n", formatDuration(sess.Elapsed(now)), verdict)
			return nil
		},
	}

	var history bool
	status := &cobra.Command{
		Use:   "status",
		Short: "Show the running fast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := r.env.Now()
			out := cmd.OutOrStdout()

			active, err := r.env.Store.ActiveFast(ctx)
			if err != nil {
				return err
			}
			if active == nil {
				fmt.Fprintln(out, "Not fasting")
			} else {
				fmt.Fprintf(out, "Fasting for %s", formatDuration(active.Elapsed(now)))
				if active.GoalHours > 0 {
					left := time.Duration(active.GoalHours)*time.Hour - active.Elapsed(now)
					if left > 0 {
						fmt.Fprintf(out, ", %s to go", formatDuration(left))
					} else {
						fmt.Fprint(out, ", goal reached")
					}
				}
				fmt.Fprintln(out)
			}

			if !history {
				return nil
			}
			past, err := r.env.Store.FastHistory(ctx)
			if err != nil {
				return err
			}
			for i := len(past) - 1; i >= 0; i-- {
				s := past[i]
				fmt.Fprintf(out, "  %s  %s  goal %dh\n",
					s.StartedAt.Local().Format("2006-01-02 15:04"), formatDuration(s.Elapsed(now)), s.GoalHours)
			}
			return nil
		},
	}
	status.Flags().BoolVar(&history, "history", false, "also list finished fasts")

	cmd.AddCommand(start, stop, status)
	return cmd
}

func newWaterCommand(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "water",
		Short: "Daily water log",
	}

	add := &cobra.Command{
		Use:   "add <ml>",
		Short: "Log a drink",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ml, err := strconv.Atoi(args[0])
			if err != nil || ml <= 0 {
				return fmt.Errorf("amount must be a positive number of milliliters, got %q", args[0])
			}
			intake, err := r.env.Store.AddWater(cmd.Context(), ml, r.env.Now())
			if err != nil {
				return err
			}
			printWater(cmd, intake.Total(), r.env.Config.Water.DailyGoalML)
			return nil
		},
	}

	var day string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show a day's intake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := r.env.Now()
			when := now
			if day != "" {
				d, err := parseDay(day, now)
				if err != nil {
					return fmt.Errorf("--day: %w", err)
				}
				when = d
			}

			intake, err := r.env.Store.WaterIntake(cmd.Context(), when)
			if err != nil {
				return err
			}
			for _, e := range intake.Entries {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %d ml\n", e.LoggedAt.Local().Format("15:04"), e.Milliliters)
			}
			printWater(cmd, intake.Total(), r.env.Config.Water.DailyGoalML)
			return nil
		},
	}
	show.Flags().StringVar(&day, "day", "", "YYYY-MM-DD or today (default: today)")

	cmd.AddCommand(add, show)
	return cmd
}

func printWater(cmd *cobra.Command, total, goal int) {
	pct := 0
	if goal > 0 {
		pct = total * 100 / goal
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d / %d ml (%d%%)\n", total, goal, pct)
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Minute)
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}
