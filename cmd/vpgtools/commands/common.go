// Package commands provides CLI command handlers for vpgtools.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/erraggy/vpgtools/zvm"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatText, FormatJSON)
	}
	return nil
}

// OutputJSON writes data as indented JSON to stdout.
func OutputJSON(data any) error {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to json: %w", err)
	}
	fmt.Println(string(bytes))
	return nil
}

// ConnectionFlags holds the appliance connection flags shared by the
// online commands. File values load first; non-empty flags override them.
type ConnectionFlags struct {
	ConfigPath   string
	Address      string
	ClientID     string
	ClientSecret string
	IgnoreSSL    bool
	Verbose      bool
}

// AddConnectionFlags binds the shared connection flags onto a FlagSet.
func AddConnectionFlags(fs *flag.FlagSet) *ConnectionFlags {
	flags := &ConnectionFlags{}
	fs.StringVar(&flags.ConfigPath, "config", "", "path to a YAML connection config file")
	fs.StringVar(&flags.Address, "zvm-address", "", "ZVM appliance address (host or https URL)")
	fs.StringVar(&flags.ClientID, "client-id", "", "Keycloak API client id")
	fs.StringVar(&flags.ClientSecret, "client-secret", "", "Keycloak API client secret")
	fs.BoolVar(&flags.IgnoreSSL, "ignore-ssl", false, "skip TLS certificate verification")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging")
	return flags
}

// NewLogger builds the console logger the online commands share.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// BuildClient resolves the connection config (file first, flags override)
// and opens an appliance client.
func (f *ConnectionFlags) BuildClient(logger zerolog.Logger) (*zvm.Client, error) {
	cfg := &zvm.Config{}
	if f.ConfigPath != "" {
		loaded, err := zvm.LoadConfig(f.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if f.Address != "" {
		cfg.Address = f.Address
	}
	if f.ClientID != "" {
		cfg.ClientID = f.ClientID
	}
	if f.ClientSecret != "" {
		cfg.ClientSecret = f.ClientSecret
	}
	if f.IgnoreSSL {
		cfg.InsecureSkipVerify = true
	}
	cfg.Logger = logger
	return zvm.New(*cfg)
}

// SplitVpgNames parses the comma-separated --vpg-names value, dropping
// empty entries.
func SplitVpgNames(value string) []string {
	if value == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
