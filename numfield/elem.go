package numfield

import (
	"fmt"
	"math/big"
)

// Elem is the element A + B*sqrt(D) of Q(sqrt(D)), with exact rational
// coordinates. Elements are immutable; all operations return fresh
// values.
type Elem struct {
	A, B *big.Rat
}

// NewElem builds the element a + b*sqrt(D).
func NewElem(a, b *big.Rat) Elem {
	return Elem{A: new(big.Rat).Set(a), B: new(big.Rat).Set(b)}
}

// IntElem builds the rational integer n as a field element.
func IntElem(n int64) Elem {
	return Elem{A: new(big.Rat).SetInt64(n), B: new(big.Rat)}
}

// Zero returns the additive identity.
func (f *Field) Zero() Elem { return IntElem(0) }

// One returns the multiplicative identity.
func (f *Field) One() Elem { return IntElem(1) }

// Add returns x + y.
func (f *Field) Add(x, y Elem) Elem {
	return Elem{
		A: new(big.Rat).Add(x.A, y.A),
		B: new(big.Rat).Add(x.B, y.B),
	}
}

// Sub returns x - y.
func (f *Field) Sub(x, y Elem) Elem {
	return Elem{
		A: new(big.Rat).Sub(x.A, y.A),
		B: new(big.Rat).Sub(x.B, y.B),
	}
}

// Mul returns x * y, using sqrt(D)^2 = D.
func (f *Field) Mul(x, y Elem) Elem {
	d := new(big.Rat).SetInt64(f.D)
	a := new(big.Rat).Mul(x.A, y.A)
	a.Add(a, new(big.Rat).Mul(d, new(big.Rat).Mul(x.B, y.B)))
	b := new(big.Rat).Mul(x.A, y.B)
	b.Add(b, new(big.Rat).Mul(x.B, y.A))
	return Elem{A: a, B: b}
}

// Neg returns -x.
func (f *Field) Neg(x Elem) Elem {
	return Elem{A: new(big.Rat).Neg(x.A), B: new(big.Rat).Neg(x.B)}
}

// Conj returns the Galois conjugate a - b*sqrt(D).
func (f *Field) Conj(x Elem) Elem {
	return Elem{A: new(big.Rat).Set(x.A), B: new(big.Rat).Neg(x.B)}
}

// Norm returns the field norm a^2 - D b^2 as an exact rational.
func (f *Field) Norm(x Elem) *big.Rat {
	n := new(big.Rat).Mul(x.A, x.A)
	t := new(big.Rat).Mul(x.B, x.B)
	t.Mul(t, new(big.Rat).SetInt64(f.D))
	return n.Sub(n, t)
}

// Trace returns 2a.
func (f *Field) Trace(x Elem) *big.Rat {
	return new(big.Rat).Add(x.A, x.A)
}

// Inv returns 1/x. x must be non-zero.
func (f *Field) Inv(x Elem) Elem {
	n := f.Norm(x)
	if n.Sign() == 0 {
		panic("numfield: inverse of zero element")
	}
	inv := new(big.Rat).Inv(n)
	return Elem{
		A: new(big.Rat).Mul(x.A, inv),
		B: new(big.Rat).Mul(new(big.Rat).Neg(x.B), inv),
	}
}

// Div returns x / y.
func (f *Field) Div(x, y Elem) Elem {
	return f.Mul(x, f.Inv(y))
}

// Pow returns x^n for any integer n (negative exponents invert).
func (f *Field) Pow(x Elem, n int64) Elem {
	if n < 0 {
		return f.Pow(f.Inv(x), -n)
	}
	out := f.One()
	cur := x
	for n > 0 {
		if n&1 == 1 {
			out = f.Mul(out, cur)
		}
		cur = f.Mul(cur, cur)
		n >>= 1
	}
	return out
}

// ScaleRat returns c * x for a rational scalar c.
func (f *Field) ScaleRat(c *big.Rat, x Elem) Elem {
	return Elem{
		A: new(big.Rat).Mul(c, x.A),
		B: new(big.Rat).Mul(c, x.B),
	}
}

// IsZero reports whether x = 0.
func (f *Field) IsZero(x Elem) bool {
	return x.A.Sign() == 0 && x.B.Sign() == 0
}

// Equal reports whether x = y.
func (f *Field) Equal(x, y Elem) bool {
	return x.A.Cmp(y.A) == 0 && x.B.Cmp(y.B) == 0
}

// MulMatrix returns the 2x2 rational matrix of multiplication by x on
// the power basis (1, sqrt(D)): rows are the coordinates of x*1 and
// x*sqrt(D).
func (f *Field) MulMatrix(x Elem) [2][2]*big.Rat {
	d := new(big.Rat).SetInt64(f.D)
	return [2][2]*big.Rat{
		{new(big.Rat).Set(x.A), new(big.Rat).Set(x.B)},
		{new(big.Rat).Mul(d, x.B), new(big.Rat).Set(x.A)},
	}
}

// SqrtDisc returns sqrt(Disc) as an element: sqrt(D) when D = 1 mod 4
// and 2 sqrt(D) otherwise.
func (f *Field) SqrtDisc() Elem {
	b := big.NewRat(1, 1)
	if f.Disc.Cmp(f.d) != 0 {
		b.SetInt64(2)
	}
	return Elem{A: new(big.Rat), B: b}
}

// elemUV converts module coordinates (u + v*sqrt(Disc))/2 into a field
// element.
func (f *Field) elemUV(u, v *big.Int) Elem {
	half := big.NewRat(1, 2)
	e := f.ScaleRat(new(big.Rat).SetInt(v), f.SqrtDisc())
	e.A = new(big.Rat).Add(e.A, new(big.Rat).SetInt(u))
	return f.ScaleRat(half, e)
}

func (x Elem) String() string {
	return fmt.Sprintf("%s + %s*sqrt(D)", x.A.RatString(), x.B.RatString())
}
