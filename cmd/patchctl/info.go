package main

import (
	"fmt"

	"github.com/joshuapare/patchkit/pkg/patch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Report a file's length and content fingerprint",
		Long: `The info command streams over a file and reports its identity: byte
length and content fingerprint. It never loads the file into memory.

Example:
  patchctl info image.bin
  patchctl info image.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Fingerprinting %s\n", path)

	id, err := patch.Identify(path, nil)
	if err != nil {
		return fmt.Errorf("info failed: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":        id.Path,
			"length":      id.Length,
			"fingerprint": fmt.Sprintf("%016X", id.Fingerprint),
		})
	}

	printInfo("File: %s\n", id.Path)
	printInfo("  Length: %d bytes\n", id.Length)
	printInfo("  Fingerprint: %016X\n", id.Fingerprint)
	return nil
}
