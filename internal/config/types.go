package config

import "strings"

// Config is the top-level mcp-gerrit configuration, corresponding to
// .mcp-gerrit.yml. Every field can also be set through the environment
// (GERRIT_HOST, GERRIT_USER, GERRIT_HTTP_PASSWORD, GERRIT_VERIFY_SSL,
// GERRIT_TIMEOUT_SECONDS, GERRIT_LOG_FILE, READ_ONLY_MODE, ENABLED_TOOLS);
// environment values win over the file.
type Config struct {
	Host           string `yaml:"host" koanf:"host"`
	User           string `yaml:"user" koanf:"user"`
	HTTPPassword   string `yaml:"http_password,omitempty" koanf:"http_password"`
	VerifySSL      bool   `yaml:"verify_ssl" koanf:"verify_ssl"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	ReadOnly       bool   `yaml:"read_only" koanf:"read_only"`
	EnabledTools   string `yaml:"enabled_tools,omitempty" koanf:"enabled_tools"`
	LogFile        string `yaml:"log_file,omitempty" koanf:"log_file"`
}

// BaseURL returns the Gerrit base URL derived from Host. A host given with an
// explicit http:// or https:// scheme is used as-is; a bare hostname gets an
// https:// prefix. Trailing slashes are trimmed.
func (c *Config) BaseURL() string {
	host := strings.TrimRight(strings.TrimSpace(c.Host), "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}

// ConfiguredTools parses EnabledTools into a set of tool names. A nil return
// means no restriction: every tool is enabled.
func (c *Config) ConfiguredTools() map[string]bool {
	if strings.TrimSpace(c.EnabledTools) == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, name := range strings.Split(c.EnabledTools, ",") {
		if name = strings.TrimSpace(name); name != "" {
			set[name] = true
		}
	}
	return set
}
