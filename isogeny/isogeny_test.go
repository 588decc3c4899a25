package isogeny

import (
	"errors"
	"math/big"
	"testing"

	"go.uber.org/zap"

	"github.com/koffie/isogeny-primes2/numfield"
)

func mustField(t *testing.T, D int64) *numfield.Field {
	t.Helper()
	f, err := numfield.New(D)
	if err != nil {
		t.Fatalf("numfield.New(%d): %v", D, err)
	}
	return f
}

func TestEpsilonTypes(t *testing.T) {
	cases := []struct {
		eps  Epsilon
		want EpsType
	}{
		{Epsilon{0, 4}, TypeQuarticNonDiagonal},
		{Epsilon{0, 12}, TypeQuadratic},
		{Epsilon{4, 4}, TypeQuarticDiagonal},
		{Epsilon{8, 8}, TypeQuarticDiagonal},
		{Epsilon{4, 8}, TypeQuarticNonDiagonal},
		{Epsilon{0, 8}, TypeQuarticNonDiagonal},
		{Epsilon{0, 6}, TypeSextic},
		{Epsilon{6, 12}, TypeSextic},
		{Epsilon{4, 6}, TypeMixed},
		{Epsilon{6, 8}, TypeMixed},
	}
	for _, c := range cases {
		if got := c.eps.Type(); got != c.want {
			t.Fatalf("Type(%v) = %v, want %v", c.eps, got, c.want)
		}
	}
}

func TestEpsilonEnumeration(t *testing.T) {
	swap := [][]int{{1, 0}}

	// 5^2 tuples minus the three type 1-2 ones.
	full := Epsilons(2, swap, true)
	if len(full) != 22 {
		t.Fatalf("unfiltered count = %d, want 22", len(full))
	}

	// One representative per dual orbit.
	dualOnly := Epsilons(2, nil, false)
	if len(dualOnly) != 11 {
		t.Fatalf("dual-filtered count = %d, want 11", len(dualOnly))
	}

	// One representative per dual-and-swap orbit.
	reduced := Epsilons(2, swap, false)
	if len(reduced) != 7 {
		t.Fatalf("orbit-filtered count = %d, want 7", len(reduced))
	}

	// Representatives must cover all orbits: expanding them back out
	// gives the full list.
	group := permClosure(2, swap)
	covered := map[string]bool{}
	for _, e := range reduced {
		for k := range redundantOrbit(e, group) {
			covered[k] = true
		}
	}
	for _, e := range full {
		if !covered[e.Key()] {
			t.Fatalf("epsilon %v not covered by any representative", e)
		}
	}
}

func TestFilterABCPrimes(t *testing.T) {
	f := mustField(t, -1) // 5 splits, 3 inert, 2 ramified
	ps := []*big.Int{big.NewInt(2), big.NewInt(3), big.NewInt(5)}

	got, err := filterABCPrimes(f, ps, TypeQuadratic)
	if err != nil {
		t.Fatalf("filterABCPrimes: %v", err)
	}
	if len(got) != 2 || got[0].Int64() != 2 || got[1].Int64() != 5 {
		t.Fatalf("quadratic filter kept %v, want [2 5]", got)
	}

	got, err = filterABCPrimes(f, ps, TypeQuarticNonDiagonal)
	if err != nil {
		t.Fatalf("filterABCPrimes: %v", err)
	}
	if len(got) != 2 || got[0].Int64() != 2 || got[1].Int64() != 5 {
		t.Fatalf("quartic-nondiagonal filter kept %v, want [2 5]", got)
	}

	got, err = filterABCPrimes(f, []*big.Int{big.NewInt(13)}, TypeQuarticDiagonal)
	if err != nil {
		t.Fatalf("filterABCPrimes: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("13 = 1 mod 3 must not pass the quartic-diagonal filter, got %v", got)
	}
}

func TestAuxPrimesEmergency(t *testing.T) {
	f := mustField(t, -5) // h = 2
	cg, err := f.ClassGroup()
	if err != nil {
		t.Fatalf("ClassGroup: %v", err)
	}

	// With a tiny bound the generator class is only covered by an
	// emergency prime above 7, the first good split prime.
	aux, err := auxPrimes(f, 5, cg, true, zap.NewNop())
	if err != nil {
		t.Fatalf("auxPrimes: %v", err)
	}
	var sawEmergency bool
	for _, q := range aux {
		if q.P == 7 {
			sawEmergency = true
		}
	}
	if !sawEmergency {
		t.Fatalf("expected an emergency prime above 7, got %v", aux)
	}

	// A bound that already includes norm 7 needs no additions.
	aux, err = auxPrimes(f, 10, cg, true, zap.NewNop())
	if err != nil {
		t.Fatalf("auxPrimes: %v", err)
	}
	for _, q := range aux {
		if q.Norm().Int64() > 10 {
			t.Fatalf("prime of norm %s beyond the bound without need", q.Norm())
		}
	}
}

func TestPreTypeOneTwoInfinite(t *testing.T) {
	// The imaginary quadratic fields of class number one are their own
	// Hilbert class fields, so their isogeny prime sets are infinite.
	for _, disc := range ClassNumberOneDiscs {
		d := disc
		if d%4 == 0 {
			d /= 4
		}
		f := mustField(t, d)
		_, err := PreTypeOneTwoPrimes(f, Options{})
		if !errors.Is(err, ErrInfiniteResult) {
			t.Fatalf("D=%d: err = %v, want ErrInfiniteResult", d, err)
		}
	}
}

func checkSortedPrimes(t *testing.T, ps []int64) {
	t.Helper()
	for i, p := range ps {
		if i > 0 && ps[i-1] >= p {
			t.Fatalf("output not strictly sorted at %d: %v", i, ps)
		}
		if !big.NewInt(p).ProbablyPrime(20) {
			t.Fatalf("non-prime %d in output", p)
		}
	}
}

func subset(small, large []int64) bool {
	in := map[int64]bool{}
	for _, p := range large {
		in[p] = true
	}
	for _, p := range small {
		if !in[p] {
			return false
		}
	}
	return true
}

func TestPreTypeOneTwoRealField(t *testing.T) {
	f := mustField(t, 5)
	got, err := PreTypeOneTwoPrimes(f, Options{NormBound: 20})
	if err != nil {
		t.Fatalf("PreTypeOneTwoPrimes: %v", err)
	}
	checkSortedPrimes(t, got)

	// Restricting the Weil polynomials to actual curves can only
	// shrink the divisibilities.
	looped, err := PreTypeOneTwoPrimes(f, Options{NormBound: 20, LoopCurves: true})
	if err != nil {
		t.Fatalf("PreTypeOneTwoPrimes with LoopCurves: %v", err)
	}
	checkSortedPrimes(t, looped)
	if !subset(looped, got) {
		t.Fatalf("curve-loop output %v not contained in %v", looped, got)
	}
}

func TestPreTypeOneTwoImaginaryField(t *testing.T) {
	f := mustField(t, -31) // h = 3
	got, err := PreTypeOneTwoPrimes(f, Options{NormBound: 20})
	if err != nil {
		t.Fatalf("PreTypeOneTwoPrimes: %v", err)
	}
	checkSortedPrimes(t, got)
	if len(got) == 0 {
		t.Fatalf("empty superset for Q(sqrt(-31))")
	}

	// The principal ideal lattice adds gcd conditions, so the output
	// can only shrink.
	refined, err := PreTypeOneTwoPrimes(f, Options{NormBound: 20, UsePIL: true})
	if err != nil {
		t.Fatalf("PreTypeOneTwoPrimes with UsePIL: %v", err)
	}
	checkSortedPrimes(t, refined)
	if !subset(refined, got) {
		t.Fatalf("PIL output %v not contained in %v", refined, got)
	}

	// Determinism.
	again, err := PreTypeOneTwoPrimes(f, Options{NormBound: 20})
	if err != nil {
		t.Fatalf("PreTypeOneTwoPrimes rerun: %v", err)
	}
	if !subset(got, again) || !subset(again, got) {
		t.Fatalf("non-deterministic output: %v vs %v", got, again)
	}
}

func TestPreTypeOneTwoMinus31(t *testing.T) {
	// Pinned output for the classical h = 3 example Q(sqrt(-31)).
	f := mustField(t, -31)
	got, err := PreTypeOneTwoPrimes(f, Options{NormBound: 20})
	if err != nil {
		t.Fatalf("PreTypeOneTwoPrimes: %v", err)
	}
	// 73, from the published bound for this field, is absent here: it
	// is inert in Q(sqrt(-31)) with 73 = 1 mod 12, so every type-wise
	// congruence filter rejects it. It only enters through a delegated
	// character filter.
	want := []int64{2, 5, 7, 11, 17, 31, 41}
	if len(got) != len(want) {
		t.Fatalf("superset = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("superset = %v, want %v", got, want)
		}
	}
}

func TestHeavyFilterDelegate(t *testing.T) {
	f := mustField(t, -31)
	var sawEpsilons int
	filter := func(_ *numfield.Field, _ *numfield.ClassGroup, collapsed map[string]*big.Int, epsilons []Epsilon, _ []numfield.PrimeIdeal, _ []numfield.Embedding) ([]int64, error) {
		sawEpsilons = len(epsilons)
		if len(collapsed) != len(epsilons) {
			t.Fatalf("collapsed has %d entries for %d epsilons", len(collapsed), len(epsilons))
		}
		return []int64{19}, nil
	}
	got, err := PreTypeOneTwoPrimes(f, Options{NormBound: 20, HeavyFilter: filter})
	if err != nil {
		t.Fatalf("PreTypeOneTwoPrimes with HeavyFilter: %v", err)
	}
	if len(got) != 1 || got[0] != 19 {
		t.Fatalf("delegate result not passed through, got %v", got)
	}
	// Orbit removal is skipped for the heavy filter.
	if sawEpsilons != 22 {
		t.Fatalf("heavy filter saw %d epsilons, want 22", sawEpsilons)
	}
}
