// Package conv provides checked narrowing conversions for the regex engine.
//
// These panic on overflow since overflow indicates a programming error
// (a program larger than the bytecode offset width can address).
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
