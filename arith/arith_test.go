package arith

import (
	"math/big"
	"testing"
)

func TestGcdLcmBasics(t *testing.T) {
	if g := Gcd(big.NewInt(12), big.NewInt(-18)); g.Int64() != 6 {
		t.Fatalf("gcd(12,-18) = %s, want 6", g)
	}
	if g := Gcd(big.NewInt(0), big.NewInt(0)); g.Sign() != 0 {
		t.Fatalf("gcd(0,0) = %s, want 0", g)
	}
	if l := Lcm(big.NewInt(4), big.NewInt(6)); l.Int64() != 12 {
		t.Fatalf("lcm(4,6) = %s, want 12", l)
	}
	if l := Lcm(big.NewInt(0), big.NewInt(7)); l.Sign() != 0 {
		t.Fatalf("lcm(0,7) = %s, want 0", l)
	}
	if l := LcmAll(); l.Int64() != 1 {
		t.Fatalf("empty lcm = %s, want 1", l)
	}
	if g := GcdAll(big.NewInt(30), big.NewInt(42), big.NewInt(70)); g.Int64() != 2 {
		t.Fatalf("gcd(30,42,70) = %s, want 2", g)
	}
}

func TestGcdRat(t *testing.T) {
	a := big.NewRat(3, 4)
	b := big.NewRat(9, 10)
	g := GcdRat(a, b)
	want := big.NewRat(3, 20)
	if g.Cmp(want) != 0 {
		t.Fatalf("gcd(3/4, 9/10) = %s, want %s", g, want)
	}
	// Both inputs divided by the gcd must be integers.
	for _, x := range []*big.Rat{a, b} {
		q := new(big.Rat).Quo(x, g)
		if !q.IsInt() {
			t.Fatalf("%s / %s = %s is not integral", x, g, q)
		}
	}
}

func TestKronecker(t *testing.T) {
	cases := []struct {
		a, n int64
		want int
	}{
		{-31, 2, 1},  // -31 = 1 mod 8
		{5, 2, -1},   // 5 mod 8
		{-4, 2, 0},   // even
		{-31, 5, 1},  // -31 = 4 = 2^2 mod 5
		{-31, 31, 0}, // ramified
		{12, 7, -1},
		{2885, 7, 1}, // 2885 = 1 mod 7
		{1, 0, 1},
		{5, 0, 0},
		{-3, -1, -1},
	}
	for _, c := range cases {
		if got := KroneckerInt(c.a, c.n); got != c.want {
			t.Errorf("kronecker(%d, %d) = %d, want %d", c.a, c.n, got, c.want)
		}
	}
}

func TestPrimesUpTo(t *testing.T) {
	ps := PrimesUpTo(30)
	want := []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	if len(ps) != len(want) {
		t.Fatalf("got %v, want %v", ps, want)
	}
	for i := range ps {
		if ps[i] != want[i] {
			t.Fatalf("got %v, want %v", ps, want)
		}
	}
}

func TestPrimeDivisors(t *testing.T) {
	n := new(big.Int).SetInt64(2 * 2 * 3 * 73 * 73 * 1009)
	ps, err := PrimeDivisors(n)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{2, 3, 73, 1009}
	if len(ps) != len(want) {
		t.Fatalf("prime divisors %v, want %v", ps, want)
	}
	for i, p := range ps {
		if p.Int64() != want[i] {
			t.Fatalf("prime divisors %v, want %v", ps, want)
		}
	}
	if _, err := PrimeDivisors(new(big.Int)); err == nil {
		t.Fatal("expected error for 0")
	}
}

func TestPrimeDivisorsLarge(t *testing.T) {
	// Product of two primes past the trial-division bound; forces the
	// Pollard path, and the keyed-PRNG seeding makes the run
	// deterministic.
	p := big.NewInt(999983)
	q := big.NewInt(1000003)
	n := new(big.Int).Mul(p, q)
	ps, err := PrimeDivisors(n)
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 2 || ps[0].Cmp(p) != 0 || ps[1].Cmp(q) != 0 {
		t.Fatalf("got %v, want [%s %s]", ps, p, q)
	}
}

func TestPerfectPowerBase(t *testing.T) {
	cases := []struct{ n, want int64 }{
		{64, 2},
		{36, 6},
		{729, 3},
		{7, 7},
		{1, 1},
		{0, 0},
	}
	for _, c := range cases {
		if got := PerfectPowerBase(big.NewInt(c.n)); got.Int64() != c.want {
			t.Errorf("perfect power base of %d = %s, want %d", c.n, got, c.want)
		}
	}
}

func TestSquarefree(t *testing.T) {
	d, f, err := Squarefree(big.NewInt(-48)) // -48 = -3 * 4^2
	if err != nil {
		t.Fatal(err)
	}
	if d.Int64() != -3 || f.Int64() != 4 {
		t.Fatalf("squarefree(-48) = (%s, %s), want (-3, 4)", d, f)
	}
	d, f, err = Squarefree(big.NewInt(35))
	if err != nil {
		t.Fatal(err)
	}
	if d.Int64() != 35 || f.Int64() != 1 {
		t.Fatalf("squarefree(35) = (%s, %s), want (35, 1)", d, f)
	}
}
