// Package debug holds invariant checks that panic when violated. They guard
// states that validation should make unreachable.
package debug

import "github.com/zeebo/errs"

// Error is the class of invariant violations.
var Error = errs.Class("invariant")

// Assert panics with an invariant error mentioning info if fn returns false.
func Assert(info string, fn func() bool) {
	if !fn() {
		panic(Error.New("assertion failed: %s", info))
	}
}
