package numfield

import (
	"math/big"
	"testing"
)

func mustField(t *testing.T, D int64) *Field {
	t.Helper()
	f, err := New(D)
	if err != nil {
		t.Fatalf("New(%d): %v", D, err)
	}
	return f
}

func TestClassNumbers(t *testing.T) {
	cases := []struct {
		D int64
		h int64
	}{
		{-1, 1},
		{-3, 1},
		{-163, 1},
		{-23, 3},
		{-31, 3},
		{-47, 5},
		{-5, 2},
		{2, 1},
		{5, 1},
		{10, 2},
	}
	for _, c := range cases {
		f := mustField(t, c.D)
		h, err := f.ClassNumber()
		if err != nil {
			t.Fatalf("ClassNumber(%d): %v", c.D, err)
		}
		if h != c.h {
			t.Fatalf("ClassNumber(%d) = %d, want %d", c.D, h, c.h)
		}
	}
}

func TestFactorGaussian(t *testing.T) {
	f := mustField(t, -1)

	qs, err := f.Factor(5)
	if err != nil {
		t.Fatalf("Factor(5): %v", err)
	}
	if len(qs) != 2 || qs[0].F != 1 {
		t.Fatalf("5 should split in Q(i), got %v", qs)
	}
	prod, err := qs[0].Mul(qs[1].Ideal)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if prod.Norm().Cmp(big.NewInt(25)) != 0 {
		t.Fatalf("product of primes above 5 has norm %s, want 25", prod.Norm())
	}
	if !prod.Contains(IntElem(5)) {
		t.Fatalf("(5) not contained in product of primes above 5")
	}
	for _, g := range prod.Generators() {
		if !prod.Contains(g) {
			t.Fatalf("ideal does not contain its own generator %v", g)
		}
	}

	qs, err = f.Factor(3)
	if err != nil {
		t.Fatalf("Factor(3): %v", err)
	}
	if len(qs) != 1 || qs[0].F != 2 {
		t.Fatalf("3 should be inert in Q(i), got %v", qs)
	}

	qs, err = f.Factor(2)
	if err != nil {
		t.Fatalf("Factor(2): %v", err)
	}
	if len(qs) != 1 || qs[0].F != 1 {
		t.Fatalf("2 should ramify in Q(i), got %v", qs)
	}
}

func TestPrimesOfBoundedNorm(t *testing.T) {
	f := mustField(t, -1)
	qs, err := f.PrimesOfBoundedNorm(10)
	if err != nil {
		t.Fatalf("PrimesOfBoundedNorm: %v", err)
	}
	// Above 2 (ramified), 5 (split pair), and 3 (inert, norm 9).
	if len(qs) != 4 {
		t.Fatalf("got %d primes of norm <= 10 in Q(i), want 4", len(qs))
	}
	for _, q := range qs {
		if q.Norm().Cmp(big.NewInt(10)) > 0 {
			t.Fatalf("prime %s has norm %s above the bound", q.Ideal, q.Norm())
		}
	}
}

func TestNonPrincipalPrime(t *testing.T) {
	f := mustField(t, -5)
	qs, err := f.Factor(2)
	if err != nil {
		t.Fatalf("Factor(2): %v", err)
	}
	p2 := qs[0].Ideal
	ok, err := p2.IsPrincipal()
	if err != nil {
		t.Fatalf("IsPrincipal: %v", err)
	}
	if ok {
		t.Fatalf("prime above 2 in Q(sqrt(-5)) must not be principal")
	}
	sq, err := p2.Mul(p2)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	ok, err = sq.IsPrincipal()
	if err != nil {
		t.Fatalf("IsPrincipal of square: %v", err)
	}
	if !ok {
		t.Fatalf("square of the prime above 2 must be principal")
	}
	g, err := sq.Generator()
	if err != nil {
		t.Fatalf("Generator: %v", err)
	}
	n := f.Norm(g)
	if new(big.Rat).Abs(n).Cmp(new(big.Rat).SetInt64(4)) != 0 {
		t.Fatalf("generator norm %s, want +-4", n)
	}

	cg, err := f.ClassGroup()
	if err != nil {
		t.Fatalf("ClassGroup: %v", err)
	}
	if len(cg.GenOrders()) != 1 || cg.GenOrders()[0] != 2 {
		t.Fatalf("class group of Q(sqrt(-5)) should be Z/2, got %v", cg.GenOrders())
	}
	ord, err := cg.ClassOrder(p2)
	if err != nil {
		t.Fatalf("ClassOrder: %v", err)
	}
	if ord != 2 {
		t.Fatalf("class order of prime above 2 is %d, want 2", ord)
	}
}

func TestClassOrderCyclicCubic(t *testing.T) {
	f := mustField(t, -23)
	cg, err := f.ClassGroup()
	if err != nil {
		t.Fatalf("ClassGroup: %v", err)
	}
	if cg.Order() != 3 {
		t.Fatalf("h(-23) = %d, want 3", cg.Order())
	}
	qs, err := f.Factor(2)
	if err != nil {
		t.Fatalf("Factor(2): %v", err)
	}
	ord, err := cg.ClassOrder(qs[0].Ideal)
	if err != nil {
		t.Fatalf("ClassOrder: %v", err)
	}
	if ord != 3 {
		t.Fatalf("class order of prime above 2 is %d, want 3", ord)
	}
	cube, err := qs[0].Pow(3)
	if err != nil {
		t.Fatalf("Pow: %v", err)
	}
	if _, err := cube.Generator(); err != nil {
		t.Fatalf("cube of prime above 2 should be principal: %v", err)
	}
	if _, err := qs[0].Pow(-1); err == nil {
		t.Fatalf("negative ideal power must be rejected")
	}
}

func TestPrincipalGeneratorSplitPrime(t *testing.T) {
	for _, D := range []int64{-1, 2} {
		f := mustField(t, D)
		p := int64(5)
		if D == 2 {
			p = 7 // 7 splits in Q(sqrt(2))
		}
		qs, err := f.Factor(p)
		if err != nil {
			t.Fatalf("Factor(%d): %v", p, err)
		}
		g, err := qs[0].Generator()
		if err != nil {
			t.Fatalf("Generator over D=%d: %v", D, err)
		}
		n := new(big.Rat).Abs(f.Norm(g))
		if n.Cmp(new(big.Rat).SetInt64(p)) != 0 {
			t.Fatalf("generator norm %s over D=%d, want %d", n, D, p)
		}
	}
}

func TestFundamentalUnit(t *testing.T) {
	for _, D := range []int64{2, 5, 10} {
		f := mustField(t, D)
		u, err := f.FundamentalUnit()
		if err != nil {
			t.Fatalf("FundamentalUnit(%d): %v", D, err)
		}
		n := new(big.Rat).Abs(f.Norm(u))
		if n.Cmp(new(big.Rat).SetInt64(1)) != 0 {
			t.Fatalf("unit norm %s over D=%d, want +-1", f.Norm(u), D)
		}
		if u.B.Sign() == 0 {
			t.Fatalf("fundamental unit of Q(sqrt(%d)) cannot be rational, got %v", D, u)
		}
	}
}

func TestUnitGens(t *testing.T) {
	f := mustField(t, -3)
	gens, err := f.UnitGens()
	if err != nil {
		t.Fatalf("UnitGens: %v", err)
	}
	if len(gens) != 1 {
		t.Fatalf("imaginary field has one unit generator, got %d", len(gens))
	}
	// zeta_6 has order 6: its cube is -1.
	z3 := f.Pow(gens[0], 3)
	if !f.Equal(z3, IntElem(-1)) {
		t.Fatalf("torsion generator cubed is %v, want -1", z3)
	}

	f = mustField(t, 2)
	gens, err = f.UnitGens()
	if err != nil {
		t.Fatalf("UnitGens: %v", err)
	}
	if len(gens) != 2 {
		t.Fatalf("real field has two unit generators, got %d", len(gens))
	}
}

func TestNormDiffCompositum(t *testing.T) {
	// Roots of x^2 - x + 2 lie in Q(sqrt(-7)).
	roots, err := RootsOfFrobPoly(1, 2)
	if err != nil {
		t.Fatalf("RootsOfFrobPoly: %v", err)
	}
	if len(roots) != 2 || roots[0].E.Cmp(big.NewInt(-7)) != 0 {
		t.Fatalf("unexpected roots %v", roots)
	}

	// Same field: Norm(1 - beta) = (1 - b1)(1 - b2) = 1 - a + n = 2.
	f7 := mustField(t, -7)
	n, err := f7.NormDiffCompositum(f7.One(), roots[0])
	if err != nil {
		t.Fatalf("NormDiffCompositum: %v", err)
	}
	if n.Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("norm in K = %s, want 2", n)
	}

	// Degree 4 compositum with Q(sqrt(-31)): Norm(0 - beta) = n^2 = 4.
	f31 := mustField(t, -31)
	n, err = f31.NormDiffCompositum(f31.Zero(), roots[0])
	if err != nil {
		t.Fatalf("NormDiffCompositum: %v", err)
	}
	if n.Cmp(big.NewInt(4)) != 0 {
		t.Fatalf("norm in compositum = %s, want 4", n)
	}

	// Rational root case: x^2 - 4x + 4 has the double root 2.
	roots, err = RootsOfFrobPoly(4, 4)
	if err != nil {
		t.Fatalf("RootsOfFrobPoly: %v", err)
	}
	if len(roots) != 1 || !roots[0].IsRational() {
		t.Fatalf("double rational root expected, got %v", roots)
	}
	n, err = f7.NormDiffCompositum(f7.Zero(), roots[0])
	if err != nil {
		t.Fatalf("NormDiffCompositum: %v", err)
	}
	if n.Cmp(big.NewInt(4)) != 0 {
		t.Fatalf("norm of -2 in K = %s, want 4", n)
	}
}

func TestContainsImaginaryQuadratic(t *testing.T) {
	cases := []struct {
		D        int64
		contains bool
		hilbert  bool
	}{
		{-1, true, true},
		{-5, true, false},
		{-163, true, true},
		{5, false, false},
	}
	for _, c := range cases {
		f := mustField(t, c.D)
		contains, hilbert, err := f.ContainsImaginaryQuadratic()
		if err != nil {
			t.Fatalf("ContainsImaginaryQuadratic(%d): %v", c.D, err)
		}
		if contains != c.contains || hilbert != c.hilbert {
			t.Fatalf("ContainsImaginaryQuadratic(%d) = (%v, %v), want (%v, %v)",
				c.D, contains, hilbert, c.contains, c.hilbert)
		}
	}
}
