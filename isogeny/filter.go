package isogeny

import (
	"fmt"
	"math/big"

	"github.com/koffie/isogeny-primes2/numfield"
)

// filterABCPrimes keeps the primes compatible with an isogeny
// character of the given epsilon type: each type forces a splitting
// behavior in K and a congruence condition on p.
func filterABCPrimes(f *numfield.Field, primes []*big.Int, typ EpsType) ([]*big.Int, error) {
	var out []*big.Int
	three := big.NewInt(3)
	four := big.NewInt(4)
	twelve := big.NewInt(12)
	for _, p := range primes {
		inert := f.RationalPrimeIsInert(p)
		keep := false
		switch typ {
		case TypeQuadratic:
			keep = !inert
		case TypeQuarticNonDiagonal:
			keep = !inert && new(big.Int).Mod(p, three).Int64() == 2
		case TypeQuarticDiagonal:
			keep = new(big.Int).Mod(p, three).Int64() == 2
		case TypeSextic:
			keep = !inert && new(big.Int).Mod(p, four).Int64() == 3
		case TypeMixed:
			keep = !inert && new(big.Int).Mod(p, twelve).Int64() == 1
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownEpsilonType, typ)
		}
		if keep {
			out = append(out, p)
		}
	}
	return out, nil
}
