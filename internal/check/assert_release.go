//go:build !debug

// Package check holds engine invariant assertions. They panic in builds
// tagged debug and compile away otherwise.
package check

func Assert(_ bool, _ string) {}

func Assertf(_ bool, _ string, _ ...any) {}

// Enabled reports whether assertions are compiled in.
const Enabled = false
