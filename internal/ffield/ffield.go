// Package ffield implements the small finite fields F_q, q = p^k,
// that arise as residue fields of the auxiliary primes, represented
// over a power basis. It provides the element arithmetic and the
// elliptic-curve point counts consumed by the curve-looping Weil
// polynomial enumerator.
package ffield

import (
	"fmt"
	"math/bits"
	"sort"
)

// Field describes F_q = F_p[X]/(chi(X)) with q = p^Deg.
type Field struct {
	P   uint64
	Deg int
	Chi []uint64 // monic, length Deg+1
}

// Elem is an F_q element represented by its Deg limbs in the power basis.
type Elem struct {
	Limb []uint64
}

// New constructs F_{p^deg} for prime p, searching for the first monic
// irreducible of degree deg when deg > 1.
func New(p uint64, deg int) (*Field, error) {
	if p < 2 {
		return nil, fmt.Errorf("ffield: p must be prime, got %d", p)
	}
	if deg < 1 {
		return nil, fmt.Errorf("ffield: degree must be positive, got %d", deg)
	}
	if deg == 1 {
		return &Field{P: p, Deg: 1, Chi: []uint64{0, 1}}, nil
	}
	chi := make([]uint64, deg+1)
	chi[deg] = 1
	for {
		if isIrreducible(p, chi) {
			return &Field{P: p, Deg: deg, Chi: chi}, nil
		}
		// Lexicographic increment of the non-leading coefficients.
		i := 0
		for {
			chi[i]++
			if chi[i] < p {
				break
			}
			chi[i] = 0
			i++
			if i == deg {
				return nil, fmt.Errorf("ffield: no irreducible of degree %d over F_%d", deg, p)
			}
		}
	}
}

// isIrreducible tests a monic polynomial over F_p for irreducibility by
// trial root/factor search; the degrees used here are tiny.
func isIrreducible(p uint64, chi []uint64) bool {
	deg := len(chi) - 1
	if deg == 1 {
		return true
	}
	// A quadratic or cubic is irreducible iff it has no root.
	if deg <= 3 {
		for x := uint64(0); x < p; x++ {
			if evalPoly(p, chi, x) == 0 {
				return false
			}
		}
		return true
	}
	// General case not needed for residue fields of quadratic fields.
	panic("ffield: irreducibility test limited to degree <= 3")
}

func evalPoly(p uint64, coeff []uint64, x uint64) uint64 {
	acc := uint64(0)
	for i := len(coeff) - 1; i >= 0; i-- {
		acc = modAdd(modMul(acc, x, p), coeff[i]%p, p)
	}
	return acc
}

// Card returns q = p^Deg.
func (f *Field) Card() uint64 {
	q := uint64(1)
	for i := 0; i < f.Deg; i++ {
		q *= f.P
	}
	return q
}

// Zero returns the additive identity.
func (f *Field) Zero() Elem {
	return Elem{Limb: make([]uint64, f.Deg)}
}

// One returns the multiplicative identity.
func (f *Field) One() Elem {
	e := f.Zero()
	e.Limb[0] = 1
	return e
}

// Embed lifts an F_p element into F_q.
func (f *Field) Embed(x uint64) Elem {
	e := f.Zero()
	e.Limb[0] = x % f.P
	return e
}

// Elements enumerates all q field elements.
func (f *Field) Elements() []Elem {
	q := f.Card()
	out := make([]Elem, 0, q)
	limb := make([]uint64, f.Deg)
	for {
		e := f.Zero()
		copy(e.Limb, limb)
		out = append(out, e)
		i := 0
		for {
			limb[i]++
			if limb[i] < f.P {
				break
			}
			limb[i] = 0
			i++
			if i == f.Deg {
				return out
			}
		}
	}
}

// Add returns a + b.
func (f *Field) Add(a, b Elem) Elem {
	out := f.Zero()
	for i := 0; i < f.Deg; i++ {
		out.Limb[i] = modAdd(a.Limb[i], b.Limb[i], f.P)
	}
	return out
}

// Sub returns a - b.
func (f *Field) Sub(a, b Elem) Elem {
	out := f.Zero()
	for i := 0; i < f.Deg; i++ {
		out.Limb[i] = modSub(a.Limb[i], b.Limb[i], f.P)
	}
	return out
}

// Mul returns a * b, reducing by chi.
func (f *Field) Mul(a, b Elem) Elem {
	deg := f.Deg
	tmp := make([]uint64, 2*deg)
	for i := 0; i < deg; i++ {
		if a.Limb[i] == 0 {
			continue
		}
		for j := 0; j < deg; j++ {
			if b.Limb[j] == 0 {
				continue
			}
			tmp[i+j] = modAdd(tmp[i+j], modMul(a.Limb[i], b.Limb[j], f.P), f.P)
		}
	}
	for k := len(tmp) - 1; k >= deg; k-- {
		coeff := tmp[k]
		if coeff == 0 {
			continue
		}
		tmp[k] = 0
		m := k - deg
		for j := 0; j < deg; j++ {
			tmp[m+j] = modSub(tmp[m+j], modMul(coeff, f.Chi[j], f.P), f.P)
		}
	}
	out := f.Zero()
	copy(out.Limb, tmp[:deg])
	return out
}

// IsZero reports whether e is zero.
func (f *Field) IsZero(e Elem) bool {
	for _, l := range e.Limb {
		if l%f.P != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether a and b represent the same element.
func (f *Field) Equal(a, b Elem) bool {
	return f.IsZero(f.Sub(a, b))
}

// Pow returns base^exp for exp >= 0.
func (f *Field) Pow(base Elem, exp uint64) Elem {
	result := f.One()
	cur := base
	for exp > 0 {
		if exp&1 == 1 {
			result = f.Mul(result, cur)
		}
		cur = f.Mul(cur, cur)
		exp >>= 1
	}
	return result
}

// MulInt returns n * e for a small rational integer n.
func (f *Field) MulInt(n uint64, e Elem) Elem {
	return f.Mul(f.Embed(n%f.P), e)
}

func modAdd(a, b, q uint64) uint64 {
	a %= q
	b %= q
	sum := a + b
	if sum >= q || sum < a {
		sum -= q
	}
	return sum
}

func modSub(a, b, q uint64) uint64 {
	a %= q
	b %= q
	if a >= b {
		return a - b
	}
	return a + q - b
}

func modMul(a, b, q uint64) uint64 {
	a %= q
	b %= q
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}

// sortedTraces returns the sorted distinct values of m.
func sortedTraces(m map[int64]bool) []int64 {
	out := make([]int64, 0, len(m))
	for a := range m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
