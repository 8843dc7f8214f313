// Package dice provides the randomness abstraction used by the simulation
// when it has to pick among equally likely alternatives.
package dice

import "fmt"

// Source is the randomness provider.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Between returns a uniformly distributed int in [lo, hi], inclusive on both ends.
//
// Precondition: src is non-nil; lo <= hi.
// Postcondition: lo <= result <= hi.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("dice: Between called with hi < lo (%d < %d)", hi, lo))
	}
	return lo + src.Intn(hi-lo+1)
}
