package main

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/TokenForge/tokenforge/pkg/auth"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TOKEN",
		Short: "Inspect the claims of a JWT-shaped token",
		Long: `Parse a JWT-shaped token and print its claims without verifying
the signature. Opaque tokens cannot be inspected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenString := args[0]

			if !auth.IsJWT(tokenString) {
				return fmt.Errorf("token is opaque, not a JWT")
			}

			claims, err := auth.ParseClaims(tokenString)
			if err != nil {
				return err
			}

			rows := pterm.TableData{{"Claim", "Value"}}
			if claims.Subject != "" {
				rows = append(rows, []string{"sub", claims.Subject})
			}
			if claims.Username != "" {
				rows = append(rows, []string{"username", claims.Username})
			}
			if claims.Scope != "" {
				rows = append(rows, []string{"scope", claims.Scope})
			}
			if claims.Issuer != "" {
				rows = append(rows, []string{"iss", claims.Issuer})
			}
			if !claims.IssuedAt.IsZero() {
				rows = append(rows, []string{"iat", claims.IssuedAt.Format(time.RFC3339)})
			}
			if !claims.ExpiresAt.IsZero() {
				rows = append(rows, []string{"exp", claims.ExpiresAt.Format(time.RFC3339)})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}
}
