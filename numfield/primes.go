package numfield

import (
	"fmt"
	"math/big"

	"github.com/koffie/isogeny-primes2/arith"
)

// Factor returns the prime ideals above the rational prime p, one per
// distinct factor: two for split primes, one for ramified or inert.
func (f *Field) Factor(p int64) ([]PrimeIdeal, error) {
	pb := big.NewInt(p)
	if !pb.ProbablyPrime(20) {
		return nil, fmt.Errorf("numfield: %d is not prime", p)
	}
	switch arith.Kronecker(f.Disc, pb) {
	case -1:
		i, err := newIdeal(f, pb, big.NewInt(1), big.NewInt(f.sigma))
		if err != nil {
			return nil, err
		}
		return []PrimeIdeal{{Ideal: i, P: p, F: 2}}, nil
	case 0:
		b, err := f.splitRoot(p)
		if err != nil {
			return nil, err
		}
		i, err := newIdeal(f, big.NewInt(1), pb, b)
		if err != nil {
			return nil, err
		}
		return []PrimeIdeal{{Ideal: i, P: p, F: 1}}, nil
	default:
		b, err := f.splitRoot(p)
		if err != nil {
			return nil, err
		}
		i, err := newIdeal(f, big.NewInt(1), pb, b)
		if err != nil {
			return nil, err
		}
		return []PrimeIdeal{
			{Ideal: i, P: p, F: 1},
			{Ideal: i.Conj(), P: p, F: 1},
		}, nil
	}
}

// splitRoot finds b in [0, 2p) with b^2 = Disc mod 4p and b = Disc
// mod 2, so that (p, (b + sqrt(Disc))/2) is a prime above p.
func (f *Field) splitRoot(p int64) (*big.Int, error) {
	pb := big.NewInt(p)
	if p == 2 {
		for b := int64(0); b < 4; b++ {
			chk := big.NewInt(b * b)
			chk.Sub(chk, f.Disc)
			if new(big.Int).Mod(chk, big.NewInt(8)).Sign() == 0 {
				return big.NewInt(b), nil
			}
		}
		return nil, fmt.Errorf("%w: no square root of %s above 2", ErrInternal, f.Disc)
	}
	var r *big.Int
	if f.Disc.Bit(0) == 0 {
		// Disc = 4D: b = 2b' with b'^2 = D mod p.
		dm := new(big.Int).Mod(f.d, pb)
		r = new(big.Int).ModSqrt(dm, pb)
		if r == nil {
			return nil, fmt.Errorf("%w: %s is a non-residue mod %d", ErrInternal, f.d, p)
		}
		return r.Lsh(r, 1), nil
	}
	// Disc odd: need b odd with b = +-r mod p.
	dm := new(big.Int).Mod(f.Disc, pb)
	r = new(big.Int).ModSqrt(dm, pb)
	if r == nil {
		return nil, fmt.Errorf("%w: %s is a non-residue mod %d", ErrInternal, f.Disc, p)
	}
	if r.Bit(0) == 0 {
		r.Add(r, pb)
	}
	return r, nil
}

// PrimesOfBoundedNorm returns all prime ideals of norm at most bound,
// ordered by the rational prime below them.
func (f *Field) PrimesOfBoundedNorm(bound int64) ([]PrimeIdeal, error) {
	var out []PrimeIdeal
	for _, p := range arith.PrimesUpTo(bound) {
		qs, err := f.Factor(p)
		if err != nil {
			return nil, err
		}
		for _, q := range qs {
			if q.F == 2 && p > bound/p {
				continue // norm p^2 exceeds the bound
			}
			out = append(out, q)
		}
	}
	return out, nil
}

// CompletelySplitPrimes returns the rational primes up to bound that
// split completely in K.
func (f *Field) CompletelySplitPrimes(bound int64) []int64 {
	var out []int64
	for _, p := range arith.PrimesUpTo(bound) {
		if arith.Kronecker(f.Disc, big.NewInt(p)) == 1 {
			out = append(out, p)
		}
	}
	return out
}

// ResidueCharacteristic returns the rational prime below q.
func (q PrimeIdeal) ResidueCharacteristic() int64 { return q.P }

// ResidueDegree returns the degree of the residue field extension.
func (q PrimeIdeal) ResidueDegree() int { return q.F }
