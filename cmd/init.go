package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vkozyrev/mcp-gerrit/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a .mcp-gerrit.yml config file",
	Run: func(cmd *cobra.Command, args []string) {
		_, err := config.RunWizard()
		exitOnError(err)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
