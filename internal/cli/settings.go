package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSettingsCommand(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Food recommendation settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.env.Store.RecommendationSettings(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "enabled:        %t\n", s.Enabled)
			fmt.Fprintf(out, "daily calories: %d\n", s.DailyCalories)
			fmt.Fprintf(out, "diet:           %s\n", orNone(s.Diet))
			fmt.Fprintf(out, "exclude:        %s\n", orNone(strings.Join(s.Exclude, ", ")))
			return nil
		},
	}

	var (
		calories int
		diet     string
		exclude  []string
		enabled  bool
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; unset flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := r.env.Store.RecommendationSettings(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("calories") && !flags.Changed("diet") &&
				!flags.Changed("exclude") && !flags.Changed("enabled") {
				return fmt.Errorf("nothing to change, see `dayboard settings set --help`")
			}
			if flags.Changed("calories") {
				s.DailyCalories = calories
			}
			if flags.Changed("diet") {
				s.Diet = diet
			}
			if flags.Changed("exclude") {
				s.Exclude = exclude
			}
			if flags.Changed("enabled") {
				s.Enabled = enabled
			}

			if err := r.env.Store.SaveRecommendationSettings(ctx, s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings saved")
			return nil
		},
	}
	set.Flags().IntVar(&calories, "calories", 0, "daily calorie target")
	set.Flags().StringVar(&diet, "diet", "", "diet label, e.g. vegetarian")
	set.Flags().StringSliceVar(&exclude, "exclude", nil, "ingredients to avoid, repeatable")
	set.Flags().BoolVar(&enabled, "enabled", true, "turn recommendations on or off")

	cmd.AddCommand(show, set)
	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
