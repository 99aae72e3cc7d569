package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkozyrev/mcp-gerrit/internal/progress"
)

var (
	fetchPatchset string
	fetchFilter   string
	fetchOutput   string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch CHANGE_ID",
	Short: "Fetch a change with its full diffs and print the JSON bundle",
	Long: `Fetches a Gerrit change the same way the fetch_gerrit_change tool does:
the change detail plus the diff of every file in the selected patchset.
Useful for inspecting what an agent would see without an MCP host.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync()

		client := newClient(cfg, logger)

		reporter := progress.NewReporter()
		started := false
		bundle, err := client.FetchChange(cmd.Context(), args[0], fetchPatchset, fetchFilter,
			func(done, total int, path string) {
				if !started {
					reporter.Start(total)
					started = true
				}
				reporter.Update(done, path)
			})
		if started {
			reporter.Finish()
		}
		if err != nil {
			return fmt.Errorf("fetching change %s: %w", args[0], err)
		}

		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding bundle: %w", err)
		}
		data = append(data, '\n')

		if fetchOutput != "" {
			if err := os.WriteFile(fetchOutput, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", fetchOutput, err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s (%d files)\n", fetchOutput, len(bundle.Files))
			return nil
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchPatchset, "patchset", "", "patchset number (defaults to the current patchset)")
	fetchCmd.Flags().StringVar(&fetchFilter, "filter", "", "restrict diffs to an exact path or glob")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "write the bundle to a file instead of stdout")
	rootCmd.AddCommand(fetchCmd)
}
