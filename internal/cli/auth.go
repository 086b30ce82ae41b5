package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/credential"
	"github.com/nhle/dayboard/internal/httpclient"
)

func newLoginCommand(r *runtime) *cobra.Command {
	var token, userID string
	var skipCheck bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the session token used for every request",
		Long: `Saves the session token (and optionally the user id) in the system
keyring. Without --token you are prompted for it. The token is checked by
fetching your todos, which also fills the local copy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.env

			if token == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("Session token").
						EchoMode(huh.EchoModePassword).
						Validate(func(s string) error {
							if strings.TrimSpace(s) == "" {
								return errors.New("token is required")
							}
							return nil
						}).
						Value(&token),
					huh.NewInput().
						Title("User id").
						Description("Optional").
						Value(&userID),
				))
				if err := form.Run(); err != nil {
					return fmt.Errorf("reading credentials: %w", err)
				}
			}

			sess := credential.Session{
				Token:  strings.TrimSpace(token),
				UserID: strings.TrimSpace(userID),
			}
			if err := env.Creds.SaveSession(sess); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			out := cmd.OutOrStdout()
			if skipCheck || env.Config.API.BaseURL == "" {
				fmt.Fprintln(out, "Session saved")
				return nil
			}

			err := refresh(cmd, env)
			switch {
			case err == nil:
				fmt.Fprintf(out, "Logged in, %d todos loaded\n", len(env.Todos.State().Todos))
				return nil
			case httpclient.IsAuthError(err):
				if clearErr := env.Creds.ClearSession(); clearErr != nil {
					env.Logger.Warn("clearing rejected session", zap.Error(clearErr))
				}
				return fmt.Errorf("the server rejected the token: %w", err)
			}
			fmt.Fprintf(out, "Session saved, but the server could not be reached: %v\n", err)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "session token")
	cmd.Flags().StringVar(&userID, "user-id", "", "user id sent with each request")
	cmd.Flags().BoolVar(&skipCheck, "no-check", false, "save without contacting the server")
	return cmd
}

func newLogoutCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.env.Creds.ClearSession(); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
