package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and Gerrit connectivity",
	Long: `Loads the configuration, probes the Gerrit server version, and verifies
the configured credentials when a password is present. Exits non-zero on
the first failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("Config:   host=%s user=%s verify_ssl=%v timeout=%ds\n",
			cfg.Host, cfg.User, cfg.VerifySSL, cfg.TimeoutSeconds)

		logger, err := newLogger(cfg)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync()

		client := newClient(cfg, logger)

		version, err := client.ServerVersion(cmd.Context())
		if err != nil {
			return fmt.Errorf("reaching %s: %w", cfg.BaseURL(), err)
		}
		fmt.Printf("Server:   Gerrit %s at %s\n", version, cfg.BaseURL())

		if !client.Authenticated() {
			fmt.Fprintln(os.Stderr, "Warning: GERRIT_HTTP_PASSWORD not set; skipping the credential check, mutating tools will fail")
			return nil
		}

		self, err := client.Self(cmd.Context())
		if err != nil {
			return fmt.Errorf("verifying credentials: %w", err)
		}
		name := self.Username
		if name == "" {
			name = self.Name
		}
		fmt.Printf("Account:  authenticated as %s (id %d)\n", name, self.AccountID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
