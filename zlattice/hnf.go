package zlattice

import "math/big"

// HNF returns the row Hermite normal form of A with zero rows dropped:
// pivots positive, strictly right-shifting, entries above each pivot
// reduced into [0, pivot).
func HNF(A *Matrix) *Matrix {
	w := A.Clone()
	r := 0
	q := new(big.Int)
	t := new(big.Int)
	for j := 0; j < w.Cols && r < w.Rows; j++ {
		// Euclid the column entries at rows >= r down to one survivor.
		for {
			pivot := -1
			for i := r; i < w.Rows; i++ {
				if w.a[i][j].Sign() != 0 {
					if pivot < 0 || absCmp(w.a[i][j], w.a[pivot][j]) < 0 {
						pivot = i
					}
				}
			}
			if pivot < 0 {
				break
			}
			done := true
			for i := r; i < w.Rows; i++ {
				if i == pivot || w.a[i][j].Sign() == 0 {
					continue
				}
				q.Quo(w.a[i][j], w.a[pivot][j])
				for l := 0; l < w.Cols; l++ {
					w.a[i][l].Sub(w.a[i][l], t.Mul(q, w.a[pivot][l]))
				}
				if w.a[i][j].Sign() != 0 {
					done = false
				}
			}
			if done {
				w.a[r], w.a[pivot] = w.a[pivot], w.a[r]
				break
			}
		}
		if w.a[r][j].Sign() == 0 {
			continue
		}
		if w.a[r][j].Sign() < 0 {
			for l := 0; l < w.Cols; l++ {
				w.a[r][l].Neg(w.a[r][l])
			}
		}
		// Reduce the entries above the pivot into [0, pivot).
		for i := 0; i < r; i++ {
			if w.a[i][j].Sign() == 0 {
				continue
			}
			q.Div(w.a[i][j], w.a[r][j])
			for l := 0; l < w.Cols; l++ {
				w.a[i][l].Sub(w.a[i][l], t.Mul(q, w.a[r][l]))
			}
		}
		r++
	}
	out := New(r, w.Cols)
	for i := 0; i < r; i++ {
		for l := 0; l < w.Cols; l++ {
			out.a[i][l].Set(w.a[i][l])
		}
	}
	return out
}

// KernelBasis returns a basis of the right kernel {x : A x = 0} as a
// list of integer vectors of length A.Cols.
func KernelBasis(A *Matrix) [][]*big.Int {
	w := A.Clone()
	U := Identity(w.Cols)
	lead := 0
	q := new(big.Int)
	t := new(big.Int)
	for i := 0; i < w.Rows && lead < w.Cols; i++ {
		for {
			pivot := -1
			for j := lead; j < w.Cols; j++ {
				if w.a[i][j].Sign() != 0 {
					if pivot < 0 || absCmp(w.a[i][j], w.a[i][pivot]) < 0 {
						pivot = j
					}
				}
			}
			if pivot < 0 {
				break
			}
			done := true
			for j := lead; j < w.Cols; j++ {
				if j == pivot || w.a[i][j].Sign() == 0 {
					continue
				}
				q.Quo(w.a[i][j], w.a[i][pivot])
				subCol(w, j, pivot, q, t)
				subCol(U, j, pivot, q, t)
				if w.a[i][j].Sign() != 0 {
					done = false
				}
			}
			if done {
				swapCol(w, lead, pivot)
				swapCol(U, lead, pivot)
				lead++
				break
			}
		}
	}
	basis := make([][]*big.Int, 0, w.Cols-lead)
	for j := lead; j < w.Cols; j++ {
		v := make([]*big.Int, w.Cols)
		for i := 0; i < w.Cols; i++ {
			v[i] = new(big.Int).Set(U.a[i][j])
		}
		basis = append(basis, v)
	}
	return basis
}

// subCol subtracts q times column src from column dst.
func subCol(m *Matrix, dst, src int, q, scratch *big.Int) {
	for i := 0; i < m.Rows; i++ {
		m.a[i][dst].Sub(m.a[i][dst], scratch.Mul(q, m.a[i][src]))
	}
}

func swapCol(m *Matrix, a, b int) {
	if a == b {
		return
	}
	for i := 0; i < m.Rows; i++ {
		m.a[i][a], m.a[i][b] = m.a[i][b], m.a[i][a]
	}
}

func absCmp(a, b *big.Int) int {
	return new(big.Int).Abs(a).Cmp(new(big.Int).Abs(b))
}
