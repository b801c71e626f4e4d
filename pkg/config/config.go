// Package config loads the client configuration from explicit values, the
// process environment, and an optional YAML config file.
//
// Sources merge with the precedence: explicit values (flags) > environment
// variables (TOKENFORGE_*) > config file. The core packages never read the
// environment themselves; this package is the only adapter.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/TokenForge/tokenforge/pkg/auth"
)

// Version is the client version, used in the default user agent.
const Version = "0.1.0"

// DefaultUserAgent identifies the client when no user agent is configured.
// The target API's usage policy requires one on every request.
const DefaultUserAgent = "tokenforge/" + Version

// envPrefix is the prefix for environment variable lookups.
const envPrefix = "TOKENFORGE"

// Config enumerates every option the client accepts.
type Config struct {
	// ClientID and ClientSecret identify the application to the provider.
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// Username and Password enable the password grant.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// RefreshToken seeds the refresh_token grant.
	RefreshToken string `yaml:"refresh_token,omitempty"`

	// UserAgent is attached to every request. Defaults to DefaultUserAgent.
	UserAgent string `yaml:"user_agent,omitempty"`

	// TokenURL is the provider's token endpoint.
	TokenURL string `yaml:"token_url"`

	// APIBaseURL is the resource API host, distinct from the token endpoint.
	APIBaseURL string `yaml:"api_base_url"`

	// Timeout bounds each HTTP request. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// FromEnv reads configuration from TOKENFORGE_* environment variables.
func FromEnv() *Config {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	return &Config{
		ClientID:     v.GetString("client_id"),
		ClientSecret: v.GetString("client_secret"),
		Username:     v.GetString("username"),
		Password:     v.GetString("password"),
		RefreshToken: v.GetString("refresh_token"),
		UserAgent:    v.GetString("user_agent"),
		TokenURL:     v.GetString("token_url"),
		APIBaseURL:   v.GetString("api_base_url"),
		Timeout:      v.GetDuration("timeout"),
	}
}

// Path returns the config file location: $TOKENFORGE_CONFIG if set, else the
// XDG config directory.
func Path() string {
	if custom := os.Getenv(envPrefix + "_CONFIG"); custom != "" {
		return custom
	}
	return filepath.Join(xdg.ConfigHome, "tokenforge", "config.yaml")
}

// LoadFile reads a YAML config file. A missing file is not an error; the
// config file is optional.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &c, nil
}

// Merge fills zero-valued fields of c from other. c's own values win.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if c.ClientID == "" {
		c.ClientID = other.ClientID
	}
	if c.ClientSecret == "" {
		c.ClientSecret = other.ClientSecret
	}
	if c.Username == "" {
		c.Username = other.Username
	}
	if c.Password == "" {
		c.Password = other.Password
	}
	if c.RefreshToken == "" {
		c.RefreshToken = other.RefreshToken
	}
	if c.UserAgent == "" {
		c.UserAgent = other.UserAgent
	}
	if c.TokenURL == "" {
		c.TokenURL = other.TokenURL
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = other.APIBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = other.Timeout
	}
}

// Normalize applies defaults to optional fields.
func (c *Config) Normalize() {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
}

// Validate checks the hard requirements. Grant-path sufficiency is not
// checked here; the token manager reports it on first use, without I/O.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("client_id is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("client_secret is required")
	}
	if c.TokenURL == "" {
		return fmt.Errorf("token_url is required")
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	return nil
}

// Credentials converts the configuration into the token manager's input.
func (c *Config) Credentials() auth.Credentials {
	return auth.Credentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Username:     c.Username,
		Password:     c.Password,
		RefreshToken: c.RefreshToken,
		UserAgent:    c.UserAgent,
		TokenURL:     c.TokenURL,
	}
}
