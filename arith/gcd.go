package arith

import (
	"math/big"
)

// Gcd returns the non-negative gcd of a and b, with Gcd(0, 0) = 0.
func Gcd(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	if x.Sign() == 0 {
		return y
	}
	if y.Sign() == 0 {
		return x
	}
	return x.GCD(nil, nil, x, y)
}

// Lcm returns the non-negative lcm of a and b, with Lcm(0, x) = 0.
func Lcm(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := Gcd(a, b)
	l := new(big.Int).Abs(new(big.Int).Mul(a, b))
	return l.Quo(l, g)
}

// GcdAll folds Gcd over xs. The gcd of an empty list is 0.
func GcdAll(xs ...*big.Int) *big.Int {
	out := new(big.Int)
	for _, x := range xs {
		out = Gcd(out, x)
		if out.Cmp(oneInt) == 0 {
			break
		}
	}
	return out
}

// LcmAll folds Lcm over xs. The lcm of an empty list is 1.
func LcmAll(xs ...*big.Int) *big.Int {
	out := big.NewInt(1)
	for _, x := range xs {
		out = Lcm(out, x)
		if out.Sign() == 0 {
			break
		}
	}
	return out
}

// GcdRat returns the largest non-negative rational g such that a/g and
// b/g are integers: gcd(p1/q1, p2/q2) = gcd(p1,p2)/lcm(q1,q2) for
// fractions in lowest terms. GcdRat(0, 0) = 0.
func GcdRat(a, b *big.Rat) *big.Rat {
	num := Gcd(a.Num(), b.Num())
	den := Lcm(a.Denom(), b.Denom())
	return new(big.Rat).SetFrac(num, den)
}

// LcmRat returns the smallest non-negative rational l such that l/a and
// l/b are integers, with LcmRat(0, x) = 0.
func LcmRat(a, b *big.Rat) *big.Rat {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Rat)
	}
	num := Lcm(a.Num(), b.Num())
	den := Gcd(a.Denom(), b.Denom())
	return new(big.Rat).SetFrac(num, den)
}

var oneInt = big.NewInt(1)
