package main

import (
	"fmt"

	"github.com/joshuapare/patchkit/pkg/patch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatusCmd())
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <file>",
		Short: "Report leftover draft/backup siblings from a crashed edit",
		Long: `The status command checks for stale .draft.tmp and .backup.tmp siblings
left behind by an interrupted edit. It reports them without touching them;
while they exist, new edits on the file are refused.

Example:
  patchctl status image.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(args)
		},
	}
	return cmd
}

func runStatus(args []string) error {
	path := args[0]

	stale, err := patch.Stale(path)
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":  path,
			"clean": len(stale) == 0,
			"stale": stale,
		})
	}

	if len(stale) == 0 {
		printInfo("%s: clean, no leftover transaction state\n", path)
		return nil
	}
	printInfo("%s: %d leftover sibling(s) from an interrupted edit:\n", path, len(stale))
	for _, p := range stale {
		printInfo("  %s\n", p)
	}
	printInfo("Inspect and remove them before retrying the edit.\n")
	return nil
}
