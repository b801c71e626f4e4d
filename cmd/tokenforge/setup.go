package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/TokenForge/tokenforge/pkg/auth"
	"github.com/TokenForge/tokenforge/pkg/client"
	"github.com/TokenForge/tokenforge/pkg/config"
)

// bindCredentialFlags registers the configuration surface as flags.
func bindCredentialFlags(fs *pflag.FlagSet) {
	fs.String("client-id", "", "OAuth2 client identifier")
	fs.String("client-secret", "", "OAuth2 client secret")
	fs.String("username", "", "Username for the password grant")
	fs.String("password", "", "Password for the password grant")
	fs.String("refresh-token", "", "Refresh token for the refresh_token grant")
	fs.String("user-agent", "", "User agent attached to every request")
	fs.String("token-url", "", "Provider token endpoint")
	fs.String("api-url", "", "Resource API base URL")
	fs.Duration("timeout", 0, "HTTP request timeout")
}

// flagConfig extracts the configuration surface from the command's flags.
func flagConfig(cmd *cobra.Command) *config.Config {
	fs := cmd.Flags()
	getString := func(name string) string {
		value, _ := fs.GetString(name)
		return value
	}
	timeout, _ := fs.GetDuration("timeout")

	return &config.Config{
		ClientID:     getString("client-id"),
		ClientSecret: getString("client-secret"),
		Username:     getString("username"),
		Password:     getString("password"),
		RefreshToken: getString("refresh-token"),
		UserAgent:    getString("user-agent"),
		TokenURL:     getString("token-url"),
		APIBaseURL:   getString("api-url"),
		Timeout:      timeout,
	}
}

// loadConfig merges flags, environment, and the config file, then validates.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Path()
	}

	fileCfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := flagConfig(cmd)
	cfg.Merge(config.FromEnv())
	cfg.Merge(fileCfg)
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildManager constructs the token manager from a loaded config.
func buildManager(cfg *config.Config) (*auth.Manager, error) {
	return auth.NewManager(cfg.Credentials(), auth.WithHTTPClient(httpClient(cfg.Timeout)))
}

// buildClient constructs the authorized API client from a loaded config.
func buildClient(cfg *config.Config) (*client.Client, error) {
	manager, err := buildManager(cfg)
	if err != nil {
		return nil, err
	}
	return client.New(cfg.APIBaseURL, cfg.UserAgent, manager,
		client.WithHTTPClient(httpClient(cfg.Timeout)))
}

func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
