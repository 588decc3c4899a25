package ffield

import "testing"

func TestFieldArithmeticPrime(t *testing.T) {
	f, err := New(7, 1)
	if err != nil {
		t.Fatal(err)
	}
	if f.Card() != 7 {
		t.Fatalf("card = %d, want 7", f.Card())
	}
	a := f.Embed(5)
	b := f.Embed(4)
	if got := f.Mul(a, b); got.Limb[0] != 6 {
		t.Fatalf("5*4 = %d mod 7, want 6", got.Limb[0])
	}
	if got := f.Pow(a, 6); !f.Equal(got, f.One()) {
		t.Fatalf("fermat failed: 5^6 = %v", got)
	}
}

func TestFieldExtension(t *testing.T) {
	f, err := New(5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if f.Card() != 25 {
		t.Fatalf("card = %d, want 25", f.Card())
	}
	if len(f.Elements()) != 25 {
		t.Fatalf("element count = %d", len(f.Elements()))
	}
	// Every non-zero element satisfies x^24 = 1.
	for _, e := range f.Elements() {
		if f.IsZero(e) {
			continue
		}
		if !f.Equal(f.Pow(e, 24), f.One()) {
			t.Fatalf("x^24 != 1 for %v", e)
		}
	}
}

func TestCurveTracesHasseBound(t *testing.T) {
	for _, c := range []struct {
		p   uint64
		deg int
	}{{5, 1}, {7, 1}, {2, 1}, {3, 1}, {2, 2}, {3, 2}} {
		f, err := New(c.p, c.deg)
		if err != nil {
			t.Fatal(err)
		}
		q := int64(f.Card())
		traces := CurveTraces(f)
		if len(traces) == 0 {
			t.Fatalf("no traces over F_%d", q)
		}
		for _, a := range traces {
			if a*a > 4*q {
				t.Fatalf("trace %d violates Hasse bound over F_%d", a, q)
			}
		}
	}
}

func TestCurveTracesF5(t *testing.T) {
	// By Waterhouse every a with a^2 <= 4q and gcd(a, 5) = 1 occurs over
	// F_5, and a = 0 occurs supersingularly (y^2 = x^3 + 1 has 6 points).
	f, _ := New(5, 1)
	traces := CurveTraces(f)
	has := map[int64]bool{}
	for _, a := range traces {
		has[a] = true
	}
	for _, want := range []int64{-4, -2, 0, 2, 4, -3, -1, 1, 3} {
		if !has[want] {
			t.Fatalf("trace %d missing over F_5: %v", want, traces)
		}
	}
}
