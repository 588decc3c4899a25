package ffield

// Elliptic-curve point counting over F_q by exhaustive enumeration.
// The residue fields in play have at most a few hundred elements, so
// brute force is both exact and fast enough.

// CurveTraces returns the sorted distinct Frobenius traces
// a = q + 1 - #E(F_q) over all elliptic curves E/F_q.
//
// For characteristic > 3 every curve has a short Weierstrass model
// y^2 = x^3 + Ax + B; in characteristic 2 and 3 the full Weierstrass
// form is enumerated (q <= 9 there, so the 5-parameter loop is cheap).
func CurveTraces(f *Field) []int64 {
	if f.P > 3 {
		return shortWeierstrassTraces(f)
	}
	return generalWeierstrassTraces(f)
}

func shortWeierstrassTraces(f *Field) []int64 {
	q := int64(f.Card())
	elems := f.Elements()
	traces := map[int64]bool{}
	for _, A := range elems {
		for _, B := range elems {
			// Discriminant -16(4A^3 + 27B^2) must not vanish.
			disc := f.Add(
				f.MulInt(4, f.Pow(A, 3)),
				f.MulInt(27, f.Mul(B, B)),
			)
			if f.IsZero(disc) {
				continue
			}
			n := int64(1) // point at infinity
			for _, x := range elems {
				rhs := f.Add(f.Add(f.Pow(x, 3), f.Mul(A, x)), B)
				n += int64(countSquareRoots(f, rhs, elems))
			}
			traces[q+1-n] = true
		}
	}
	return sortedTraces(traces)
}

func generalWeierstrassTraces(f *Field) []int64 {
	q := int64(f.Card())
	elems := f.Elements()
	traces := map[int64]bool{}
	for _, a1 := range elems {
		for _, a2 := range elems {
			for _, a3 := range elems {
				for _, a4 := range elems {
					for _, a6 := range elems {
						if f.IsZero(weierstrassDisc(f, a1, a2, a3, a4, a6)) {
							continue
						}
						n := int64(1)
						for _, x := range elems {
							// y^2 + (a1 x + a3) y = x^3 + a2 x^2 + a4 x + a6
							rhs := f.Add(f.Add(f.Add(f.Pow(x, 3), f.Mul(a2, f.Mul(x, x))), f.Mul(a4, x)), a6)
							lin := f.Add(f.Mul(a1, x), a3)
							for _, y := range elems {
								lhs := f.Add(f.Mul(y, y), f.Mul(lin, y))
								if f.Equal(lhs, rhs) {
									n++
								}
							}
						}
						traces[q+1-n] = true
					}
				}
			}
		}
	}
	return sortedTraces(traces)
}

// countSquareRoots counts the y with y^2 = v.
func countSquareRoots(f *Field, v Elem, elems []Elem) int {
	if f.IsZero(v) {
		return 1
	}
	// Euler criterion: v^((q-1)/2) = 1 iff v is a non-zero square.
	e := f.Pow(v, (f.Card()-1)/2)
	if f.Equal(e, f.One()) {
		return 2
	}
	return 0
}

// weierstrassDisc evaluates the discriminant of the general Weierstrass
// equation from the standard b-invariants.
func weierstrassDisc(f *Field, a1, a2, a3, a4, a6 Elem) Elem {
	b2 := f.Add(f.Mul(a1, a1), f.MulInt(4, a2))
	b4 := f.Add(f.MulInt(2, a4), f.Mul(a1, a3))
	b6 := f.Add(f.Mul(a3, a3), f.MulInt(4, a6))
	b8 := f.Sub(
		f.Add(
			f.Add(f.Mul(f.Mul(a1, a1), a6), f.MulInt(4, f.Mul(a2, a6))),
			f.Mul(a2, f.Mul(a3, a3)),
		),
		f.Add(f.Mul(a1, f.Mul(a3, a4)), f.Mul(a4, a4)),
	)
	term1 := f.Mul(f.Mul(b2, b2), b8)
	term2 := f.MulInt(8, f.Pow(b4, 3))
	term3 := f.MulInt(27, f.Mul(b6, b6))
	term4 := f.MulInt(9, f.Mul(b2, f.Mul(b4, b6)))
	// delta = -b2^2 b8 - 8 b4^3 - 27 b6^2 + 9 b2 b4 b6
	return f.Sub(term4, f.Add(f.Add(term1, term2), term3))
}
