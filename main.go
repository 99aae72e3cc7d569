package main

import (
	"os"

	"github.com/vkozyrev/mcp-gerrit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
