package zlattice

import "math/big"

// SNF computes the Smith normal form D = U A V of A, with diagonal
// entries d1 | d2 | ... non-negative. Only the row transform is
// returned, as U together with its inverse; the column transform acts
// on the relation side of the presentations we use and is discarded.
func SNF(A *Matrix) (D, U, Uinv *Matrix) {
	D = A.Clone()
	U = Identity(A.Rows)
	Uinv = Identity(A.Rows)
	q := new(big.Int)
	t := new(big.Int)
	rem := new(big.Int)

	n := A.Rows
	if A.Cols < n {
		n = A.Cols
	}

	for k := 0; k < n; k++ {
		for {
			pi, pj := minEntry(D, k)
			if pi < 0 {
				break // submatrix is zero
			}
			if pi != k {
				swapRowTracked(D, U, Uinv, pi, k)
			}
			if pj != k {
				swapCol(D, pj, k)
			}
			dirty := false
			for i := k + 1; i < D.Rows; i++ {
				if D.a[i][k].Sign() == 0 {
					continue
				}
				q.QuoRem(D.a[i][k], D.a[k][k], rem)
				addRowTracked(D, U, Uinv, i, k, t.Neg(q))
				if rem.Sign() != 0 {
					dirty = true
				}
			}
			for j := k + 1; j < D.Cols; j++ {
				if D.a[k][j].Sign() == 0 {
					continue
				}
				q.QuoRem(D.a[k][j], D.a[k][k], rem)
				qq := new(big.Int).Set(q)
				for i := 0; i < D.Rows; i++ {
					D.a[i][j].Sub(D.a[i][j], t.Mul(qq, D.a[i][k]))
				}
				if rem.Sign() != 0 {
					dirty = true
				}
			}
			if dirty {
				continue
			}
			// The cross is clear; force d_k to divide the rest of the
			// submatrix before moving on.
			fi := firstNonDivisible(D, k)
			if fi < 0 {
				break
			}
			addRowTracked(D, U, Uinv, k, fi, t.SetInt64(1))
		}
		if D.a[k][k].Sign() < 0 {
			negRowTracked(D, U, Uinv, k)
		}
	}
	return D, U, Uinv
}

// minEntry returns the position of the entry of smallest non-zero
// absolute value in the submatrix with rows and columns >= k, or
// (-1, -1) when that submatrix is zero.
func minEntry(m *Matrix, k int) (int, int) {
	bi, bj := -1, -1
	for i := k; i < m.Rows; i++ {
		for j := k; j < m.Cols; j++ {
			if m.a[i][j].Sign() == 0 {
				continue
			}
			if bi < 0 || absCmp(m.a[i][j], m.a[bi][bj]) < 0 {
				bi, bj = i, j
			}
		}
	}
	return bi, bj
}

// firstNonDivisible returns the row of an entry in the submatrix past
// k not divisible by the pivot d_k, or -1.
func firstNonDivisible(m *Matrix, k int) int {
	for i := k + 1; i < m.Rows; i++ {
		for j := k + 1; j < m.Cols; j++ {
			if !Divides(m.a[k][k], m.a[i][j]) {
				return i
			}
		}
	}
	return -1
}

// Divides reports whether a divides b (a non-zero).
func Divides(a, b *big.Int) bool {
	if a.Sign() == 0 {
		return b.Sign() == 0
	}
	return new(big.Int).Rem(b, a).Sign() == 0
}

// swapRowTracked swaps rows i and k of D, mirroring the operation in U
// and its inverse.
func swapRowTracked(D, U, Uinv *Matrix, i, k int) {
	D.a[i], D.a[k] = D.a[k], D.a[i]
	U.a[i], U.a[k] = U.a[k], U.a[i]
	for r := 0; r < Uinv.Rows; r++ {
		Uinv.a[r][i], Uinv.a[r][k] = Uinv.a[r][k], Uinv.a[r][i]
	}
}

// addRowTracked adds c times row k to row i of D and U, and applies the
// inverse column operation to Uinv.
func addRowTracked(D, U, Uinv *Matrix, i, k int, c *big.Int) {
	cc := new(big.Int).Set(c)
	t := new(big.Int)
	for j := 0; j < D.Cols; j++ {
		D.a[i][j].Add(D.a[i][j], t.Mul(cc, D.a[k][j]))
	}
	for j := 0; j < U.Cols; j++ {
		U.a[i][j].Add(U.a[i][j], t.Mul(cc, U.a[k][j]))
	}
	for r := 0; r < Uinv.Rows; r++ {
		Uinv.a[r][k].Sub(Uinv.a[r][k], t.Mul(cc, Uinv.a[r][i]))
	}
}

func negRowTracked(D, U, Uinv *Matrix, k int) {
	for j := 0; j < D.Cols; j++ {
		D.a[k][j].Neg(D.a[k][j])
	}
	for j := 0; j < U.Cols; j++ {
		U.a[k][j].Neg(U.a[k][j])
	}
	for r := 0; r < Uinv.Rows; r++ {
		Uinv.a[r][k].Neg(Uinv.a[r][k])
	}
}
