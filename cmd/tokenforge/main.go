// Package main implements the tokenforge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TokenForge/tokenforge/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenforge",
		Short: "TokenForge - OAuth2 bearer tokens for REST APIs",
		Long: `TokenForge obtains, caches, and refreshes OAuth2 bearer tokens
and attaches them to requests against the provider's REST API.

Credentials come from flags, TOKENFORGE_* environment variables,
or the YAML config file, in that order of precedence.`,
		Version:      config.Version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file")
	bindCredentialFlags(cmd.PersistentFlags())

	cmd.AddCommand(newTokenCmd())
	cmd.AddCommand(newRequestCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}
