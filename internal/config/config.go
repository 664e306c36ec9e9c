// Package config provides configuration management for the OAuth client
// bootstrap tool. Settings come from an optional YAML file with environment
// variables taking precedence, matching how the tool is run in CI (env only)
// and on workstations (config file plus prompts).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the production Janua admin API endpoint.
const DefaultAPIURL = "https://api.janua.dev"

// Environment variable names recognised by the tool.
const (
	EnvAPIURL        = "JANUA_API_URL"
	EnvAdminEmail    = "JANUA_ADMIN_EMAIL"
	EnvAdminPassword = "JANUA_ADMIN_PASSWORD"
	EnvProxyURL      = "JANUA_PROXY_URL"
)

// Config represents the tool's configuration, loaded from a YAML file.
type Config struct {
	// APIURL is the base URL of the Janua admin API.
	APIURL string `yaml:"api-url" json:"api-url"`

	// ProxyURL is the URL of an optional proxy server to use for outbound requests.
	ProxyURL string `yaml:"proxy-url" json:"proxy-url"`

	// RequestLog enables debug logging of outbound requests and responses.
	// Secrets are masked before anything reaches the log.
	RequestLog bool `yaml:"request-log" json:"request-log"`

	// LoggingToFile redirects logs to a rotated file instead of stdout.
	LoggingToFile bool `yaml:"logging-to-file" json:"logging-to-file"`

	// LogDir overrides the directory used for file logging.
	LogDir string `yaml:"log-dir,omitempty" json:"log-dir,omitempty"`

	// AdminEmail and AdminPassword are only ever populated from the
	// environment, never from the config file, so credentials cannot end up
	// committed alongside tool settings.
	AdminEmail    string `yaml:"-" json:"-"`
	AdminPassword string `yaml:"-" json:"-"`
}

// Default returns the configuration used when no config file is supplied.
func Default() *Config {
	return &Config{APIURL: DefaultAPIURL}
}

// LoadConfig reads and parses the YAML configuration file at the given path.
func LoadConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("config: read %s failed: %w", configFile, err)
	}
	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s failed: %w", configFile, err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return cfg, nil
}

// LoadConfigOptional behaves like LoadConfig but returns defaults when the
// file is absent and optional is true.
func LoadConfigOptional(configFile string, optional bool) (*Config, error) {
	if configFile == "" {
		return Default(), nil
	}
	if _, err := os.Stat(configFile); err != nil {
		if optional && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: stat %s failed: %w", configFile, err)
	}
	return LoadConfig(configFile)
}

// ApplyEnv overlays environment variables onto the configuration. Environment
// values win over file values so CI can override a checked-in config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvProxyURL); v != "" {
		c.ProxyURL = v
	}
	if v := os.Getenv("JANUA_REQUEST_LOG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.RequestLog = b
		}
	}
	c.AdminEmail = os.Getenv(EnvAdminEmail)
	c.AdminPassword = os.Getenv(EnvAdminPassword)
}
