// Package commands implements the bmp CLI commands.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/mesh/proxy"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "BMP_LOG_LEVEL"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitCommandError = 1
	ExitDecodeError  = 2
)

// Config holds the CLI configuration, loaded from an optional YAML file
// and overridden by the environment and flags.
type Config struct {
	LogLevel    string `yaml:"log_level"`
	ProtocolLog string `yaml:"protocol_log"`
	PeerID      string `yaml:"peer_id"`
	Format      string `yaml:"format"`
	MTU         int    `yaml:"mtu"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Format:   "text",
		MTU:      proxy.DefaultMTU,
	}
}

// LoadConfig overlays the YAML file at path onto cfg.
// Keys missing from the file keep their current value.
func LoadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies environment overrides to cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := validateFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.MTU < proxy.MinMTU {
		errs = append(errs, fmt.Errorf("mtu must be at least %d, got %d", proxy.MinMTU, c.MTU))
	}
	return errors.Join(errs...)
}

// ParseLevel parses a log level name: debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", s)
	}
	return l, nil
}

func validateFormat(f string) error {
	switch f {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be text, json, or yaml)", f)
	}
}
