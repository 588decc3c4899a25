package arith

import "math/big"

// Kronecker returns the Kronecker symbol (a/n), extending the Jacobi
// symbol to arbitrary n. (a/0) is 1 for a = ±1 and 0 otherwise;
// (a/2) is 0 for even a and ±1 according to a mod 8.
func Kronecker(a, n *big.Int) int {
	if n.Sign() == 0 {
		if new(big.Int).Abs(a).Cmp(oneInt) == 0 {
			return 1
		}
		return 0
	}

	sign := 1
	m := new(big.Int).Set(n)
	if m.Sign() < 0 {
		m.Neg(m)
		if a.Sign() < 0 {
			sign = -1
		}
	}

	// Pull out the even part of n; each factor of 2 contributes (a/2).
	sym2 := 0
	for m.Bit(0) == 0 {
		m.Rsh(m, 1)
		sym2++
	}
	if sym2 > 0 {
		if a.Bit(0) == 0 {
			return 0
		}
		if sym2%2 == 1 {
			switch new(big.Int).Mod(a, big.NewInt(8)).Int64() {
			case 3, 5:
				sign = -sign
			}
		}
	}

	return sign * big.Jacobi(a, m)
}

// KroneckerInt is Kronecker on int64 arguments.
func KroneckerInt(a, n int64) int {
	return Kronecker(big.NewInt(a), big.NewInt(n))
}
