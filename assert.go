//go:build debug

package pgs

import "fmt"

// pgsAssert panics with msg when truth is false. Only compiled into debug
// builds (-tags debug) so release builds pay nothing for the check
// SolvePrepareSoA makes on its groupOffset.
func pgsAssert(truth bool, msg ...interface{}) {
	if !truth {
		panic(fmt.Sprint("Assertion failed: ", msg))
	}
}
