//go:build !patchdebug

package diag

// Enabled reports whether rich diagnostics are compiled in.
const Enabled = false

// Detail is a no-op in production builds; error payloads stay fixed-size.
func Detail(string, ...any) string { return "" }
