//go:build patchdebug

package diag

import "fmt"

// Enabled reports whether rich diagnostics are compiled in.
const Enabled = true

// Detail formats a rich diagnostic string for error payloads.
func Detail(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
