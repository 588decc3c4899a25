package numfield

// Package numfield is the algebraic-number-theory backend of the
// isogeny-primes pipeline, implemented from scratch for quadratic
// fields K = Q(sqrt(D)). It provides exact element arithmetic over the
// ring of integers, ideal arithmetic in Hermite form, prime
// factorization of rational primes, ideal reduction with generator
// tracking (Gauss reduction for imaginary fields, the rho-cycle for
// real fields), the class group with elementary-divisor generators and
// exponent vectors, the unit group, and absolute norms in composite
// biquadratic fields.
//
// Every computation is exact over Z and Q; nothing here is
// probabilistic or floating-point.
