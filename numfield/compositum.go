package numfield

import (
	"fmt"
	"math/big"

	"github.com/koffie/isogeny-primes2/arith"
)

// Surd is an element u + v*sqrt(e) of Q(sqrt(e)), with e squarefree
// and possibly 1 (the rational case). Weil polynomial roots live here.
type Surd struct {
	U, V *big.Rat
	E    *big.Int
}

// IsRational reports whether the surd lies in Q.
func (s Surd) IsRational() bool {
	return s.V.Sign() == 0 || s.E.Cmp(big.NewInt(1)) == 0
}

// Rational returns the surd as a rational number; only valid when
// IsRational holds.
func (s Surd) Rational() *big.Rat {
	if s.E.Cmp(big.NewInt(1)) == 0 {
		return new(big.Rat).Add(s.U, s.V)
	}
	return new(big.Rat).Set(s.U)
}

func surdMul(x, y Surd) Surd {
	e := new(big.Rat).SetInt(x.E)
	u := new(big.Rat).Mul(x.V, y.V)
	u.Mul(u, e)
	u.Add(u, new(big.Rat).Mul(x.U, y.U))
	v := new(big.Rat).Mul(x.U, y.V)
	v.Add(v, new(big.Rat).Mul(x.V, y.U))
	return Surd{U: u, V: v, E: x.E}
}

// Pow returns s^n for n >= 0.
func (s Surd) Pow(n int64) Surd {
	out := Surd{U: big.NewRat(1, 1), V: new(big.Rat), E: s.E}
	cur := s
	for n > 0 {
		if n&1 == 1 {
			out = surdMul(out, cur)
		}
		cur = surdMul(cur, cur)
		n >>= 1
	}
	return out
}

// RootsOfFrobPoly returns the distinct roots of x^2 - a*x + n as
// surds over the squarefree core of the discriminant a^2 - 4n.
func RootsOfFrobPoly(a, n int64) ([]Surd, error) {
	disc := big.NewInt(a*a - 4*n)
	half := big.NewRat(a, 2)
	if disc.Sign() == 0 {
		return []Surd{{U: half, V: new(big.Rat), E: big.NewInt(1)}}, nil
	}
	e, f, err := arith.Squarefree(disc)
	if err != nil {
		return nil, err
	}
	fh := new(big.Rat).SetFrac(f, big.NewInt(2))
	return []Surd{
		{U: half, V: fh, E: e},
		{U: new(big.Rat).Set(half), V: new(big.Rat).Neg(fh), E: e},
	}, nil
}

// NormDiffCompositum returns the absolute norm of x - y taken in the
// compositum of K and Q(sqrt(e)). The result must be a rational
// integer; a non-integral value wraps ErrInternal.
func (f *Field) NormDiffCompositum(x Elem, y Surd) (*big.Int, error) {
	var n *big.Rat
	switch {
	case y.IsRational():
		r := y.Rational()
		n = f.Norm(f.Sub(x, NewElem(r, new(big.Rat))))
	case y.E.Cmp(f.d) == 0:
		n = f.Norm(f.Sub(x, NewElem(y.U, y.V)))
	default:
		// Degree 4 compositum: norm of w + v*sqrt(d) - t*sqrt(e) is
		// (w^2 + v^2 d - t^2 e)^2 - 4 w^2 v^2 d.
		w := new(big.Rat).Sub(x.A, y.U)
		v := x.B
		t := y.V
		d := new(big.Rat).SetInt(f.d)
		e := new(big.Rat).SetInt(y.E)
		w2 := new(big.Rat).Mul(w, w)
		v2d := new(big.Rat).Mul(new(big.Rat).Mul(v, v), d)
		t2e := new(big.Rat).Mul(new(big.Rat).Mul(t, t), e)
		p := new(big.Rat).Add(w2, v2d)
		p.Sub(p, t2e)
		p.Mul(p, p)
		q := new(big.Rat).Mul(w2, v2d)
		q.Mul(q, big.NewRat(4, 1))
		n = p.Sub(p, q)
	}
	if !n.IsInt() {
		return nil, fmt.Errorf("%w: compositum norm %s is not integral", ErrInternal, n)
	}
	return new(big.Int).Set(n.Num()), nil
}
