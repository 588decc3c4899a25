// Package isogeny computes a finite superset of the pre type 1-2
// isogeny primes of a quadratic number field K: the primes outside of
// which any K-rational isogeny character is necessarily of type 2 in
// Momose's classification.
//
// The computation enumerates the possible epsilon characters, bounds
// each by divisibilities coming from auxiliary primes of small norm,
// units, and Weil polynomials, and filters the resulting prime
// divisors by congruence and splitting conditions.
package isogeny
