package main

import (
	"fmt"

	"github.com/joshuapare/patchkit/pkg/patch"
	"github.com/spf13/cobra"
)

var (
	setBufferSize int
	setDryRun     bool
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().IntVar(&setBufferSize, "buffer-size", 0, "Copy buffer size in bytes (0 = default)")
	cmd.Flags().BoolVar(&setDryRun, "dry-run", false, "Build and verify the draft without committing")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <position> <byte>",
		Short: "Overwrite one byte at a position",
		Long: `The set command overwrites the byte at the given zero-based position.
File length is unchanged. Position and byte accept decimal or 0x-hex.

Example:
  patchctl set image.bin 1024 0xFF
  patchctl set image.bin 0 65 --dry-run`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	path := args[0]
	pos, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	value, err := parseByteValue(args[2])
	if err != nil {
		return err
	}

	printVerbose("Overwriting %s position %d with 0x%02X\n", path, pos, value)

	res, err := patch.SetByte(path, pos, value, operationOptions(setBufferSize, setDryRun))
	if err != nil {
		return fmt.Errorf("set failed: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":            path,
			"operation":       res.Op.String(),
			"position":        pos,
			"value":           value,
			"bytes_processed": res.BytesProcessed,
			"dry_run":         setDryRun,
			"success":         true,
		})
	}

	printInfo("Overwrote byte at position %d in %s (0x%02X, %d bytes processed)\n",
		pos, path, value, res.BytesProcessed)
	if setDryRun {
		printInfo("Dry run: original not modified\n")
	}
	return nil
}
