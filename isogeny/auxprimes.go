package isogeny

import (
	"go.uber.org/zap"

	"github.com/koffie/isogeny-primes2/numfield"
)

// emergencyBound limits the search for completely split primes whose
// classes generate the class group.
const emergencyBound = 500

// auxPrimes selects the auxiliary primes: all primes of norm up to
// normBound, plus emergency primes when K contains an imaginary
// quadratic field, chosen completely split with norm coprime to 6 h_K
// so that their classes cover the class group generators.
func auxPrimes(f *numfield.Field, normBound int64, cg *numfield.ClassGroup, containsImagQuad bool, log *zap.Logger) ([]numfield.PrimeIdeal, error) {
	aux, err := f.PrimesOfBoundedNorm(normBound)
	if err != nil {
		return nil, err
	}
	split := f.CompletelySplitPrimes(emergencyBound)

	if !containsImagQuad {
		if len(split) == 0 {
			return nil, ErrEmergencyPrimes
		}
		p := split[0]
		qs, err := f.Factor(p)
		if err != nil {
			return nil, err
		}
		if p > normBound {
			aux = append(aux, qs[0])
			log.Debug("emergency aux prime added", zap.Int64("p", p))
		}
		return aux, nil
	}

	h := cg.Order()
	missing := map[string]bool{}
	for _, g := range cg.Gens() {
		key, err := g.ClassKey()
		if err != nil {
			return nil, err
		}
		missing[key] = true
	}
	for _, p := range split {
		if len(missing) == 0 {
			break
		}
		if p%2 == 0 || p%3 == 0 || gcd64(p, h) != 1 {
			continue
		}
		qs, err := f.Factor(p)
		if err != nil {
			return nil, err
		}
		for _, q := range qs {
			key, err := q.ClassKey()
			if err != nil {
				return nil, err
			}
			if missing[key] {
				if p > normBound {
					aux = append(aux, q)
					log.Debug("emergency aux prime added", zap.Int64("p", p))
				}
				delete(missing, key)
			}
		}
	}
	if len(missing) > 0 {
		return nil, ErrEmergencyPrimes
	}
	return aux, nil
}

func gcd64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
