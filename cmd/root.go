package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vkozyrev/mcp-gerrit/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mcp-gerrit",
	Short: "MCP server exposing a Gerrit code-review instance as agent tools",
	Long: `mcp-gerrit bridges a Gerrit code-review server into the Model Context
Protocol: AI agents and other tool-calling clients can query changes,
fetch diffs, and post reviews through named tools instead of speaking
Gerrit's REST API directly.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env in the working directory may carry GERRIT_* variables.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
