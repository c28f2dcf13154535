// Package rctest adapts goarista's own test package (test.Diff,
// test.CopyFile) into helpers for this repo's test suite.
package rctest

import "github.com/kylelemons/godebug/pretty"

// Diff returns a human-readable difference between got and want, or the
// empty string if they are equal. Thin wrapper around
// github.com/kylelemons/godebug/pretty, the same dependency goarista's own
// test.Diff/test.PrettyPrint helpers are built on.
func Diff(got, want interface{}) string {
	return pretty.Compare(got, want)
}

// PrettyPrint renders v for inclusion in debug-level log lines.
func PrettyPrint(v interface{}) string {
	return pretty.Sprint(v)
}
