package numfield

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/koffie/isogeny-primes2/arith"
)

// ErrInternal marks states the mathematics rules out; reaching one
// means the backend itself is wrong, and callers must treat it as
// unrecoverable.
var ErrInternal = errors.New("numfield: internal consistency failure")

// Ideal is a non-zero integral ideal G * (Z*A + Z*(B + sqrt(Disc))/2)
// with G, A > 0 and B normalized into [0, 2A), B^2 = Disc mod 4A.
type Ideal struct {
	f       *Field
	G, A, B *big.Int
}

// PrimeIdeal is a prime ideal together with the rational prime below
// it and its residue degree.
type PrimeIdeal struct {
	*Ideal
	P int64 // rational prime below
	F int   // residue degree: 1 (split, ramified) or 2 (inert)
}

func newIdeal(f *Field, g, a, b *big.Int) (*Ideal, error) {
	if g.Sign() <= 0 || a.Sign() <= 0 {
		return nil, fmt.Errorf("numfield: non-positive ideal parameters (%s, %s)", g, a)
	}
	twoA := new(big.Int).Lsh(a, 1)
	bn := new(big.Int).Mod(b, twoA)
	check := new(big.Int).Mul(bn, bn)
	check.Sub(check, f.Disc)
	fourA := new(big.Int).Lsh(a, 2)
	if new(big.Int).Mod(check, fourA).Sign() != 0 {
		return nil, fmt.Errorf("numfield: (%s + sqrt(%s))/2 not integral over %s", bn, f.Disc, a)
	}
	return &Ideal{f: f, G: new(big.Int).Set(g), A: new(big.Int).Set(a), B: bn}, nil
}

// WholeRing returns the unit ideal O_K.
func (f *Field) WholeRing() *Ideal {
	i, err := newIdeal(f, big.NewInt(1), big.NewInt(1), big.NewInt(f.sigma))
	if err != nil {
		panic(err) // sigma always satisfies the parity condition
	}
	return i
}

// Norm returns G^2 * A.
func (i *Ideal) Norm() *big.Int {
	n := new(big.Int).Mul(i.G, i.G)
	return n.Mul(n, i.A)
}

// Equal reports ideal equality.
func (i *Ideal) Equal(j *Ideal) bool {
	return i.G.Cmp(j.G) == 0 && i.A.Cmp(j.A) == 0 && i.B.Cmp(j.B) == 0
}

// Conj returns the conjugate ideal.
func (i *Ideal) Conj() *Ideal {
	out, err := newIdeal(i.f, i.G, i.A, new(big.Int).Neg(i.B))
	if err != nil {
		panic(err)
	}
	return out
}

// c returns (B^2 - Disc)/(4A), the third form coefficient.
func (i *Ideal) c() *big.Int {
	n := new(big.Int).Mul(i.B, i.B)
	n.Sub(n, i.f.Disc)
	n.Quo(n, new(big.Int).Lsh(i.A, 2))
	return n
}

// uv is a module vector: the element (u + v*sqrt(Disc))/2.
type uv struct {
	u, v *big.Int
}

// mulUV multiplies two module vectors; the result stays integral for
// algebraic integers.
func (f *Field) mulUV(x, y uv) (uv, error) {
	u := new(big.Int).Mul(x.u, y.u)
	u.Add(u, new(big.Int).Mul(new(big.Int).Mul(x.v, y.v), f.Disc))
	v := new(big.Int).Mul(x.u, y.v)
	v.Add(v, new(big.Int).Mul(x.v, y.u))
	if u.Bit(0) != 0 || v.Bit(0) != 0 {
		return uv{}, fmt.Errorf("%w: non-integral product in module coordinates", ErrInternal)
	}
	return uv{u: u.Rsh(u, 1), v: v.Rsh(v, 1)}, nil
}

// generatorsUV returns the two module generators of an ideal.
func (i *Ideal) generatorsUV() []uv {
	ga := new(big.Int).Mul(i.G, i.A)
	return []uv{
		{u: new(big.Int).Lsh(ga, 1), v: new(big.Int)},
		{u: new(big.Int).Mul(i.G, i.B), v: new(big.Int).Set(i.G)},
	}
}

// idealFromUV builds the ideal generated as a Z-module by the given
// vectors, via a two-column Hermite reduction.
func (f *Field) idealFromUV(vecs []uv) (*Ideal, error) {
	// First compute gcd of the v-coordinates with a running Bezout
	// combination, giving the row (u0, g).
	u0 := new(big.Int)
	g := new(big.Int)
	for _, w := range vecs {
		if w.v.Sign() == 0 {
			continue
		}
		if g.Sign() == 0 {
			g.Set(w.v)
			u0.Set(w.u)
			continue
		}
		x, y := new(big.Int), new(big.Int)
		gg := new(big.Int).GCD(x, y, new(big.Int).Abs(g), new(big.Int).Abs(w.v))
		if g.Sign() < 0 {
			x.Neg(x)
		}
		if w.v.Sign() < 0 {
			y.Neg(y)
		}
		nu := new(big.Int).Mul(x, u0)
		nu.Add(nu, new(big.Int).Mul(y, w.u))
		u0, g = nu, gg
	}
	if g.Sign() == 0 {
		return nil, fmt.Errorf("numfield: module of rank < 2 is not an ideal")
	}
	if g.Sign() < 0 {
		g.Neg(g)
		u0.Neg(u0)
	}

	// Reduce all rows below (u0, g) and gcd the remaining u-parts.
	w0 := new(big.Int)
	for _, w := range vecs {
		t := new(big.Int).Set(w.u)
		if w.v.Sign() != 0 {
			q := new(big.Int).Quo(w.v, g)
			t.Sub(t, q.Mul(q, u0))
		}
		w0 = arith.Gcd(w0, t)
	}
	if w0.Sign() == 0 {
		return nil, fmt.Errorf("numfield: module of rank < 2 is not an ideal")
	}

	// I = g*(Z * w0/(2g) + Z * (u0/g + sqrt(Disc))/2).
	twoG := new(big.Int).Lsh(g, 1)
	if new(big.Int).Mod(w0, twoG).Sign() != 0 || new(big.Int).Mod(u0, g).Sign() != 0 {
		return nil, fmt.Errorf("%w: module is not an O_K-ideal", ErrInternal)
	}
	a := new(big.Int).Quo(w0, twoG)
	b := new(big.Int).Quo(u0, g)
	return newIdeal(f, g, a, b)
}

// Mul returns the ideal product.
func (i *Ideal) Mul(j *Ideal) (*Ideal, error) {
	gi := i.generatorsUV()
	gj := j.generatorsUV()
	prods := make([]uv, 0, 4)
	for _, x := range gi {
		for _, y := range gj {
			p, err := i.f.mulUV(x, y)
			if err != nil {
				return nil, err
			}
			prods = append(prods, p)
		}
	}
	return i.f.idealFromUV(prods)
}

// Pow returns i^n for n >= 0.
func (i *Ideal) Pow(n int64) (*Ideal, error) {
	if n < 0 {
		return nil, fmt.Errorf("numfield: negative ideal power %d", n)
	}
	out := i.f.WholeRing()
	cur := i
	var err error
	for n > 0 {
		if n&1 == 1 {
			if out, err = out.Mul(cur); err != nil {
				return nil, err
			}
		}
		n >>= 1
		if n > 0 {
			if cur, err = cur.Mul(cur); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Contains reports whether x, which must be an algebraic integer, lies
// in the ideal.
func (i *Ideal) Contains(x Elem) bool {
	u, v, ok := i.f.elemToUV(x)
	if !ok {
		return false
	}
	// x = (u + v sqrt(Disc))/2 lies in I iff G | v and u = v B mod 2GA.
	if new(big.Int).Mod(v, i.G).Sign() != 0 {
		return false
	}
	r := new(big.Int).Sub(u, new(big.Int).Mul(v, i.B))
	m := new(big.Int).Lsh(new(big.Int).Mul(i.G, i.A), 1)
	return new(big.Int).Mod(r, m).Sign() == 0
}

// Generators returns the Z-module generators of the ideal as field
// elements: G*A and G*(B + sqrt(Disc))/2.
func (i *Ideal) Generators() []Elem {
	gens := i.generatorsUV()
	out := make([]Elem, len(gens))
	for k, g := range gens {
		out[k] = i.f.elemUV(g.u, g.v)
	}
	return out
}

// elemToUV expresses x as (u + v*sqrt(Disc))/2 with integer u, v; ok is
// false when x is not an algebraic integer.
func (f *Field) elemToUV(x Elem) (*big.Int, *big.Int, bool) {
	// x = a + b sqrt(D); sqrt(Disc) = s sqrt(D) with s = 1 or 2.
	s := int64(1)
	if f.Disc.Cmp(f.d) != 0 {
		s = 2
	}
	u := new(big.Rat).Add(x.A, x.A)
	v := new(big.Rat).Add(x.B, x.B)
	v.Quo(v, new(big.Rat).SetInt64(s))
	if !u.IsInt() || !v.IsInt() {
		return nil, nil, false
	}
	ui, vi := new(big.Int).Set(u.Num()), new(big.Int).Set(v.Num())
	// Integrality also needs u = v*Disc mod 2.
	par := new(big.Int).Mul(vi, f.Disc)
	par.Sub(par, ui)
	if par.Bit(0) != 0 {
		return nil, nil, false
	}
	return ui, vi, true
}

func (i *Ideal) String() string {
	return fmt.Sprintf("[%s, %s, %s]", i.G, i.A, i.B)
}
