package isogeny

// EcQIsogenyPrimes are the primes p for which some elliptic curve over
// Q admits a rational p-isogeny (Mazur, Kenku).
var EcQIsogenyPrimes = []int64{2, 3, 5, 7, 11, 13, 17, 19, 37, 43, 67, 163}

// ClassNumberOneDiscs are the discriminants of the imaginary quadratic
// fields of class number one.
var ClassNumberOneDiscs = []int64{-3, -4, -7, -8, -11, -19, -43, -67, -163}
