package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/vkozyrev/mcp-gerrit/internal/mcp"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of mcp-gerrit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mcp-gerrit %s\n", Version)
	},
}

func init() {
	// The MCP server reports the same version to hosts.
	mcpserver.Version = Version
	rootCmd.AddCommand(versionCmd)
}
