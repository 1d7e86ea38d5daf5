package main

import (
	"fmt"

	"github.com/joshuapare/patchkit/pkg/patch"
	"github.com/spf13/cobra"
)

var (
	removeBufferSize int
	removeDryRun     bool
)

func init() {
	cmd := newRemoveCmd()
	cmd.Flags().IntVar(&removeBufferSize, "buffer-size", 0, "Copy buffer size in bytes (0 = default)")
	cmd.Flags().BoolVar(&removeDryRun, "dry-run", false, "Build and verify the draft without committing")
	rootCmd.AddCommand(cmd)
}

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <file> <position>",
		Short: "Remove one byte at a position",
		Long: `The remove command deletes the byte at the given zero-based position.
All later bytes shift back by one and the file shrinks by one byte.

Example:
  patchctl remove image.bin 1024
  patchctl remove image.bin 0x400`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(args)
		},
	}
	return cmd
}

func runRemove(args []string) error {
	path := args[0]
	pos, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	printVerbose("Removing byte at position %d from %s\n", pos, path)

	res, err := patch.RemoveByte(path, pos, operationOptions(removeBufferSize, removeDryRun))
	if err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":            path,
			"operation":       res.Op.String(),
			"position":        pos,
			"bytes_processed": res.BytesProcessed,
			"dry_run":         removeDryRun,
			"success":         true,
		})
	}

	printInfo("Removed byte at position %d from %s (%d bytes processed)\n",
		pos, path, res.BytesProcessed)
	if removeDryRun {
		printInfo("Dry run: original not modified\n")
	}
	return nil
}
