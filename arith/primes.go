package arith

// PrimesUpTo returns all rational primes <= limit in ascending order
// using a sieve of Eratosthenes.
func PrimesUpTo(limit int64) []int64 {
	if limit < 2 {
		return nil
	}
	composite := make([]bool, limit+1)
	for p := int64(2); p*p <= limit; p++ {
		if !composite[p] {
			for i := p * p; i <= limit; i += p {
				composite[i] = true
			}
		}
	}
	var primes []int64
	for i := int64(2); i <= limit; i++ {
		if !composite[i] {
			primes = append(primes, i)
		}
	}
	return primes
}

// IsSquarefreeInt reports whether n is squarefree. 0 is not squarefree.
func IsSquarefreeInt(n int64) bool {
	if n == 0 {
		return false
	}
	if n < 0 {
		n = -n
	}
	for p := int64(2); p*p <= n; p++ {
		if n%(p*p) == 0 {
			return false
		}
	}
	return true
}
