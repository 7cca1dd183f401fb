package zvm

import (
	"os"

	"github.com/rs/zerolog"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/vpgtools/vpgerrors"
)

// Config carries everything needed to reach a ZVM appliance.
type Config struct {
	// Address is the appliance host, with or without an https:// prefix
	Address string `yaml:"address"`
	// ClientID identifies the Keycloak API client
	ClientID string `yaml:"client_id"`
	// ClientSecret is the Keycloak client secret
	ClientSecret string `yaml:"client_secret"`
	// InsecureSkipVerify disables TLS certificate verification, for
	// appliances running self-signed certificates
	InsecureSkipVerify bool `yaml:"ignore_ssl"`

	// Logger receives per-request debug lines. Zero value logs nothing.
	Logger zerolog.Logger `yaml:"-"`
}

// LoadConfig reads a connection config from a YAML file. Flag values layer
// on top of the result; see cmd/vpgtools.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &vpgerrors.InputError{Source: path, Message: "cannot read config file", Cause: err}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &vpgerrors.InputError{Source: path, Message: "cannot parse config file", Cause: err}
	}
	cfg.Logger = zerolog.Nop()
	return &cfg, nil
}

// validate reports the required fields missing from the config.
func (c *Config) validate() error {
	var missing []string
	if c.Address == "" {
		missing = append(missing, "address")
	}
	if c.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client_secret")
	}
	if len(missing) > 0 {
		return &vpgerrors.InputError{Source: "config", Missing: missing, Message: "incomplete connection config"}
	}
	return nil
}
