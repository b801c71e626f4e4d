package main

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Obtain and print a valid access token",
		Long: `Obtain a currently valid access token and print it to stdout.

The token is fetched from the provider's token endpoint using the
configured grant (refresh token if known, otherwise username/password).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			manager, err := buildManager(cfg)
			if err != nil {
				return err
			}

			var spinner *pterm.SpinnerPrinter
			if !quiet {
				spinner, _ = pterm.DefaultSpinner.Start("Requesting access token...")
			}

			token, err := manager.Token(cmd.Context())
			if err != nil {
				if spinner != nil {
					spinner.Fail("Token request failed")
				}
				return err
			}

			if spinner != nil {
				spinner.Success(fmt.Sprintf("Access token obtained (expires %s)",
					token.ExpiresAt.Format(time.RFC3339)))
				if token.Scope != "" {
					pterm.Info.Printfln("Granted scopes: %s", token.Scope)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), token.AccessToken)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the token")

	return cmd
}
