package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// bareEnvKeys maps the environment variables that carry no GERRIT_ prefix
// onto their config keys. These names are part of the deployment contract
// and cannot be renamed.
var bareEnvKeys = map[string]string{
	"READ_ONLY_MODE": "read_only",
	"ENABLED_TOOLS":  "enabled_tools",
}

// Load reads configuration from the given YAML file (if it exists), then
// overlays environment variable overrides (GERRIT_*, READ_ONLY_MODE,
// ENABLED_TOOLS).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: GERRIT_HOST -> host, etc.
	if err := k.Load(env.Provider("GERRIT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GERRIT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// READ_ONLY_MODE and ENABLED_TOOLS have no prefix; map them explicitly
	// and skip everything else.
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return bareEnvKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values. A missing
// HTTP password is not an error: read tools work anonymously, and mutating
// tools report an authentication failure per call.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("host is required (set GERRIT_HOST or `host` in %s)", DefaultConfigFile)
	}
	if strings.TrimSpace(c.User) == "" {
		return fmt.Errorf("user is required (set GERRIT_USER or `user` in %s)", DefaultConfigFile)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}
