package isogeny

import "errors"

// ErrInfiniteResult is returned when K contains the Hilbert class
// field of an imaginary quadratic field, so the set of isogeny primes
// is infinite and no finite superset exists.
var ErrInfiniteResult = errors.New("isogeny: K contains the Hilbert class field of an imaginary quadratic field, the set of isogeny primes is infinite")

// ErrEmergencyPrimes is returned when not enough completely split
// primes below the search bound generate the class group. Raising
// emergencyBound would fix it, at the cost of a larger computation.
var ErrEmergencyPrimes = errors.New("isogeny: unable to add enough emergency auxiliary primes, try a larger split-prime search bound")

// ErrUnknownEpsilonType is returned when an epsilon tuple falls
// outside the known classification; it indicates a bug.
var ErrUnknownEpsilonType = errors.New("isogeny: unknown epsilon type")
