package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .mcp-gerrit.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to mcp-gerrit! Let's configure your Gerrit connection.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Gerrit host.
	hostPrompt := promptui.Prompt{
		Label: "Gerrit host (hostname or URL, e.g. gerrit.example.com)",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("host must not be empty")
			}
			return nil
		},
	}
	host, err := hostPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}
	cfg.Host = strings.TrimRight(strings.TrimSpace(host), "/")

	// 2. Gerrit user.
	userPrompt := promptui.Prompt{
		Label: "Gerrit username",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("user must not be empty")
			}
			return nil
		},
	}
	user, err := userPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}
	cfg.User = strings.TrimSpace(user)

	// 3. HTTP password storage. The password comes from Gerrit's
	// Settings > HTTP Credentials page, not the account password.
	passwordPrompt := promptui.Select{
		Label: "HTTP password",
		Items: []string{
			"read from GERRIT_HTTP_PASSWORD environment variable (recommended)",
			"store in the config file",
		},
	}
	passwordIdx, _, err := passwordPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("password storage: %w", err)
	}
	if passwordIdx == 1 {
		secretPrompt := promptui.Prompt{
			Label: "Gerrit HTTP password",
			Mask:  '*',
		}
		secret, err := secretPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("password: %w", err)
		}
		cfg.HTTPPassword = secret
	}

	// 4. TLS verification.
	tlsPrompt := promptui.Select{
		Label: "Verify TLS certificates",
		Items: []string{"yes", "no (self-signed / internal CA)"},
	}
	tlsIdx, _, err := tlsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("tls verification: %w", err)
	}
	cfg.VerifySSL = tlsIdx == 0

	// 5. Read-only mode.
	roPrompt := promptui.Select{
		Label: "Expose mutating tools (post_review, add_comment, add_reviewer)",
		Items: []string{"yes", "no (read-only mode)"},
	}
	roIdx, _, err := roPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("read-only selection: %w", err)
	}
	cfg.ReadOnly = roIdx == 1

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	if cfg.HTTPPassword == "" {
		fmt.Println("Remember to export GERRIT_HTTP_PASSWORD before starting the server.")
	}
	return cfg, nil
}
