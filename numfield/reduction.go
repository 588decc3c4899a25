package numfield

import (
	"fmt"
	"math/big"
)

// form is a primitive ideal Z*a + Z*(b + sqrt(Disc))/2 without its
// content.
type form struct {
	a, b *big.Int
}

func (fm form) equal(other form) bool {
	return fm.a.Cmp(other.a) == 0 && fm.b.Cmp(other.b) == 0
}

func (fm form) less(other form) bool {
	if c := fm.a.Cmp(other.a); c != 0 {
		return c < 0
	}
	return fm.b.Cmp(other.b) < 0
}

func (fm form) key() string {
	return fm.a.String() + "|" + fm.b.String()
}

// sqrtDisc returns floor(sqrt(Disc)) for real fields.
func (f *Field) sqrtDisc() *big.Int {
	return new(big.Int).Sqrt(f.Disc)
}

// gamma returns the element (b + sqrt(Disc)) / (2 a).
func (f *Field) gamma(b, a *big.Int) Elem {
	two := new(big.Int).Lsh(a, 1)
	den := new(big.Rat).SetInt(two)
	s := int64(1)
	if f.Disc.Cmp(f.d) != 0 {
		s = 2
	}
	return Elem{
		A: new(big.Rat).Quo(new(big.Rat).SetInt(b), den),
		B: new(big.Rat).Quo(new(big.Rat).SetInt64(s), den),
	}
}

func (f *Field) formC(fm form) *big.Int {
	c := new(big.Int).Mul(fm.b, fm.b)
	c.Sub(c, f.Disc)
	return c.Quo(c, new(big.Int).Lsh(fm.a, 2))
}

// normalizeB shifts b by multiples of 2a into the normal range:
// (-a, a] for definite forms or when a exceeds sqrt(Disc), otherwise
// the topmost residue below sqrt(Disc).
func (f *Field) normalizeB(a, b *big.Int) *big.Int {
	twoA := new(big.Int).Lsh(a, 1)
	if f.Disc.Sign() < 0 || a.Cmp(f.sqrtDisc()) > 0 {
		m := new(big.Int).Mod(b, twoA)
		if m.Cmp(a) > 0 {
			m.Sub(m, twoA)
		}
		return m
	}
	s := f.sqrtDisc()
	m := new(big.Int).Sub(s, b)
	m.Mod(m, twoA)
	return m.Sub(s, m)
}

func (f *Field) isReduced(fm form) bool {
	if f.Disc.Sign() < 0 {
		c := f.formC(fm)
		absB := new(big.Int).Abs(fm.b)
		if absB.Cmp(fm.a) > 0 || fm.a.Cmp(c) > 0 {
			return false
		}
		if fm.b.Sign() < 0 && (absB.Cmp(fm.a) == 0 || fm.a.Cmp(c) == 0) {
			return false
		}
		return true
	}
	s := f.sqrtDisc()
	if fm.b.Sign() <= 0 || fm.b.Cmp(s) > 0 {
		return false
	}
	twoA := new(big.Int).Lsh(fm.a, 1)
	if new(big.Int).Add(twoA, fm.b).Cmp(s) <= 0 {
		return false
	}
	return new(big.Int).Sub(twoA, fm.b).Cmp(s) <= 0
}

// rho applies one reduction step, returning the successor form and the
// element gamma with I(fm) = gamma * I(successor).
func (f *Field) rho(fm form) (form, Elem) {
	c := f.formC(fm)
	a2 := new(big.Int).Abs(c)
	b2 := f.normalizeB(a2, new(big.Int).Neg(fm.b))
	return form{a: a2, b: b2}, f.gamma(fm.b, a2)
}

const reductionCap = 1 << 22

// reduce brings a primitive ideal into reduced position, tracking the
// element Gamma with I(a, b) = Gamma * I(reduced).
func (f *Field) reduce(a, b *big.Int) (form, Elem, error) {
	fm := form{a: new(big.Int).Set(a), b: f.normalizeB(a, b)}
	g := f.One()
	for n := 0; !f.isReduced(fm); n++ {
		if n > reductionCap {
			return form{}, Elem{}, fmt.Errorf("%w: reduction of [%s, %s] does not terminate", ErrInternal, a, b)
		}
		var step Elem
		fm, step = f.rho(fm)
		g = f.Mul(g, step)
	}
	return fm, g, nil
}

// cycle returns the reduction cycle through a reduced form, with the
// accumulated elements delta_i satisfying I(start) = delta_i * I(form_i).
// Definite forms have a one-element cycle.
func (f *Field) cycle(start form) ([]form, []Elem, error) {
	forms := []form{start}
	deltas := []Elem{f.One()}
	if f.Disc.Sign() < 0 {
		return forms, deltas, nil
	}
	cur, acc := start, f.One()
	for n := 0; ; n++ {
		if n > reductionCap {
			return nil, nil, fmt.Errorf("%w: cycle through [%s, %s] does not close", ErrInternal, start.a, start.b)
		}
		next, step := f.rho(cur)
		acc = f.Mul(acc, step)
		if next.equal(start) {
			return forms, deltas, nil
		}
		forms = append(forms, next)
		deltas = append(deltas, acc)
		cur = next
	}
}

// canonForm returns the lexicographically least form in the reduction
// cycle of the primitive part of i.
func (i *Ideal) canonForm() (form, error) {
	red, _, err := i.f.reduce(i.A, i.B)
	if err != nil {
		return form{}, err
	}
	forms, _, err := i.f.cycle(red)
	if err != nil {
		return form{}, err
	}
	best := forms[0]
	for _, fm := range forms[1:] {
		if fm.less(best) {
			best = fm
		}
	}
	return best, nil
}

// ClassKey returns a string identifying the ideal class of i.
func (i *Ideal) ClassKey() (string, error) {
	fm, err := i.canonForm()
	if err != nil {
		return "", err
	}
	return fm.key(), nil
}

// principalForm returns the reduced form of O_K and the tracking
// element Gamma0 with O_K = Gamma0 * I(form).
func (f *Field) principalForm() (form, Elem, error) {
	return f.reduce(big.NewInt(1), big.NewInt(f.sigma))
}

// IsPrincipal reports whether i is a principal ideal.
func (i *Ideal) IsPrincipal() (bool, error) {
	_, _, found, err := i.principalWitness()
	return found, err
}

// Generator returns alpha with i = (alpha); the error wraps ErrInternal
// when i is not principal.
func (i *Ideal) Generator() (Elem, error) {
	num, den, found, err := i.principalWitness()
	if err != nil {
		return Elem{}, err
	}
	if !found {
		return Elem{}, fmt.Errorf("%w: ideal %s is not principal", ErrInternal, i)
	}
	alpha := i.f.Div(num, den)
	alpha = i.f.ScaleRat(new(big.Rat).SetInt(i.G), alpha)
	// |N(alpha)| must match the ideal norm.
	n := i.f.Norm(alpha)
	if new(big.Rat).Abs(n).Cmp(new(big.Rat).SetInt(i.Norm())) != 0 {
		return Elem{}, fmt.Errorf("%w: generator norm %s does not match ideal norm %s", ErrInternal, n, i.Norm())
	}
	return alpha, nil
}

// principalWitness reduces the primitive part of i, walks its cycle,
// and looks for the reduced form of O_K. On a hit it returns num/den
// with primitive part = (num/den).
func (i *Ideal) principalWitness() (Elem, Elem, bool, error) {
	f := i.f
	red, gam, err := f.reduce(i.A, i.B)
	if err != nil {
		return Elem{}, Elem{}, false, err
	}
	p0, gam0, err := f.principalForm()
	if err != nil {
		return Elem{}, Elem{}, false, err
	}
	forms, deltas, err := f.cycle(red)
	if err != nil {
		return Elem{}, Elem{}, false, err
	}
	for k, fm := range forms {
		if fm.equal(p0) {
			return f.Mul(gam, deltas[k]), gam0, true, nil
		}
	}
	return Elem{}, Elem{}, false, nil
}

// FundamentalUnit returns a fundamental unit of a real quadratic
// field, obtained by walking the principal reduction cycle once.
func (f *Field) FundamentalUnit() (Elem, error) {
	if f.Disc.Sign() < 0 {
		return Elem{}, fmt.Errorf("numfield: Q(sqrt(%d)) has no fundamental unit", f.D)
	}
	p0, _, err := f.principalForm()
	if err != nil {
		return Elem{}, err
	}
	cur, unit := p0, f.One()
	for n := 0; ; n++ {
		if n > reductionCap {
			return Elem{}, fmt.Errorf("%w: principal cycle does not close", ErrInternal)
		}
		next, step := f.rho(cur)
		unit = f.Mul(unit, step)
		if next.equal(p0) {
			return unit, nil
		}
	}
}
