package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/nextmeet/internal/google"
	"github.com/teemow/nextmeet/internal/tokenstore"
)

func newAuthCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored Google authorization",
	}

	cmd.AddCommand(newAuthLoginCmd(opts))
	cmd.AddCommand(newAuthStatusCmd(opts))
	cmd.AddCommand(newAuthLogoutCmd(opts))

	return cmd
}

func newAuthLoginCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize calendar access in the browser and store the token",
		Long: `Runs the browser authorization even when a valid token is already stored
and replaces the stored token with the new one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			auth, err := e.authenticator(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if _, err := auth.Login(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Authenticated. Token saved to %s\n", auth.TokenPath())
			return err
		},
	}
}

func newAuthStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored token's location and state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			state, stored, err := google.Inspect(e.store, google.Scopes, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Token file: %s\n", e.store.Path(tokenstore.ScopeKey(google.Scopes)))
			_, _ = fmt.Fprintf(out, "State:      %s\n", state)
			if stored != nil {
				expiry := "never"
				if !stored.Expiry.IsZero() {
					expiry = stored.Expiry.Local().Format(time.RFC1123)
				}
				_, _ = fmt.Fprintf(out, "Expires:    %s\n", expiry)
				_, _ = fmt.Fprintf(out, "Refresh:    %t\n", stored.RefreshToken != "")
			}
			return nil
		},
	}
}

func newAuthLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			key := tokenstore.ScopeKey(google.Scopes)
			if err := e.store.Delete(key); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", e.store.Path(key))
			return err
		},
	}
}
