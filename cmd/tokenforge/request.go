package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TokenForge/tokenforge/pkg/client"
)

func newRequestCmd() *cobra.Command {
	var (
		queryPairs  []string
		data        string
		contentType string
	)

	cmd := &cobra.Command{
		Use:   "request METHOD PATH",
		Short: "Issue an authorized request against the resource API",
		Long: `Issue a request against the configured resource API with a valid
bearer token and the configured user agent attached.

The response body is written to stdout unmodified; API-level error
payloads are passed through rather than interpreted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			api, err := buildClient(cfg)
			if err != nil {
				return err
			}

			query := url.Values{}
			for _, pair := range queryPairs {
				key, value, found := strings.Cut(pair, "=")
				if !found {
					return fmt.Errorf("invalid query parameter %q, expected key=value", pair)
				}
				query.Add(key, value)
			}

			var body io.Reader
			if data != "" {
				body = strings.NewReader(data)
			}

			req := client.Request{
				Method: strings.ToUpper(args[0]),
				Path:   args[1],
				Query:  query,
				Body:   body,
			}
			if contentType != "" {
				req.Header = map[string][]string{"Content-Type": {contentType}}
			}

			resp, err := api.Do(cmd.Context(), req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()

			if _, err := io.Copy(cmd.OutOrStdout(), resp.Body); err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}

			if resp.StatusCode >= 400 {
				return fmt.Errorf("API returned status %s", resp.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&queryPairs, "query", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "Request body")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Content-Type for the request body")

	return cmd
}
