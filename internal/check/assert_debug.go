//go:build debug

// Package check holds engine invariant assertions. They panic in builds
// tagged debug and compile away otherwise.
package check

import "fmt"

// Assert panics if cond is false.
func Assert(cond bool, msg string) {
	if !cond {
		panic("vending invariant violated: " + msg)
	}
}

// Assertf panics if cond is false with a formatted message.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic("vending invariant violated: " + fmt.Sprintf(format, args...))
	}
}

// Enabled reports whether assertions are compiled in.
const Enabled = true
