package config

// DefaultConfigFile is the config file looked up in the working directory
// when --config is not given.
const DefaultConfigFile = ".mcp-gerrit.yml"

// DefaultConfig returns a Config populated with defaults. Host and User have
// no defaults and must come from the config file or the environment.
func DefaultConfig() *Config {
	return &Config{
		VerifySSL:      true,
		TimeoutSeconds: 30,
	}
}
