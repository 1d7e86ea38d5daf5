package main

import (
	"fmt"

	"github.com/joshuapare/patchkit/pkg/patch"
	"github.com/spf13/cobra"
)

var (
	insertBufferSize int
	insertDryRun     bool
)

func init() {
	cmd := newInsertCmd()
	cmd.Flags().IntVar(&insertBufferSize, "buffer-size", 0, "Copy buffer size in bytes (0 = default)")
	cmd.Flags().BoolVar(&insertDryRun, "dry-run", false, "Build and verify the draft without committing")
	rootCmd.AddCommand(cmd)
}

func newInsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert <file> <position> <byte>",
		Short: "Insert one byte at a position",
		Long: `The insert command inserts a byte at the given zero-based position.
All bytes from that position on shift forward by one and the file grows by
one byte. A position equal to the file length appends.

Example:
  patchctl insert image.bin 1024 0x00
  patchctl insert empty.bin 0 0x7F`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(args)
		},
	}
	return cmd
}

func runInsert(args []string) error {
	path := args[0]
	pos, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	value, err := parseByteValue(args[2])
	if err != nil {
		return err
	}

	printVerbose("Inserting 0x%02X at position %d in %s\n", value, pos, path)

	res, err := patch.InsertByte(path, pos, value, operationOptions(insertBufferSize, insertDryRun))
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":            path,
			"operation":       res.Op.String(),
			"position":        pos,
			"value":           value,
			"bytes_processed": res.BytesProcessed,
			"dry_run":         insertDryRun,
			"success":         true,
		})
	}

	printInfo("Inserted 0x%02X at position %d in %s (%d bytes processed)\n",
		value, pos, path, res.BytesProcessed)
	if insertDryRun {
		printInfo("Dry run: original not modified\n")
	}
	return nil
}
