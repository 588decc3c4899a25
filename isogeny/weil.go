package isogeny

import (
	"fmt"
	"math/big"

	"github.com/koffie/isogeny-primes2/internal/ffield"
)

// frobTraces returns the traces a of the Weil polynomials x^2 - a x + n
// to loop over for a residue field of cardinality n = p^f. Without
// loopCurves all integers with a^2 <= 4n are used; with it only the
// traces realized by elliptic curves over F_n, which is a smaller set
// at a cost of enumerating the curves.
func frobTraces(p int64, deg int, loopCurves bool) ([]int64, error) {
	n := p
	for i := 1; i < deg; i++ {
		n *= p
	}
	if loopCurves {
		f, err := ffield.New(uint64(p), deg)
		if err != nil {
			return nil, fmt.Errorf("isogeny: residue field F_%d^%d: %w", p, deg, err)
		}
		return ffield.CurveTraces(f), nil
	}
	bound := new(big.Int).Sqrt(big.NewInt(4 * n)).Int64()
	out := make([]int64, 0, 2*bound+1)
	for a := -bound; a <= bound; a++ {
		out = append(out, a)
	}
	return out, nil
}
