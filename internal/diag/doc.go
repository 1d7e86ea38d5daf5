// Package diag is the compile-time switch between production and debug
// error payloads. Production binaries carry only fixed-size error fields;
// building with -tags patchdebug enables rich diagnostic strings.
package diag
