package arith

// Package arith provides exact rational-integer helpers used across the
// isogeny-primes pipeline: gcd/lcm in pairwise and list form (for both
// integers and rationals), the Kronecker symbol, prime sieves,
// deterministic factorization of big integers, perfect-power base
// extraction and squarefree decomposition.
//
// All functions operate on arbitrary-precision values and never
// overflow; inputs are not mutated.
