// Package zlattice implements dense exact linear algebra over the
// integers: companion matrices, Kronecker products, fraction-free
// determinants, Hermite and Smith normal forms and integer kernels.
// It backs the principal-ideal-lattice computations of the isogeny
// pipeline.
package zlattice

import (
	"math/big"
)

// Matrix is a dense rows x cols matrix with *big.Int entries.
type Matrix struct {
	Rows, Cols int
	a          [][]*big.Int
}

// New allocates a zero matrix.
func New(rows, cols int) *Matrix {
	a := make([][]*big.Int, rows)
	for i := range a {
		a[i] = make([]*big.Int, cols)
		for j := range a[i] {
			a[i][j] = new(big.Int)
		}
	}
	return &Matrix{Rows: rows, Cols: cols, a: a}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.a[i][i].SetInt64(1)
	}
	return m
}

// At returns the entry at (i, j). The returned value is shared; use Set
// to modify entries.
func (m *Matrix) At(i, j int) *big.Int { return m.a[i][j] }

// Set copies v into entry (i, j).
func (m *Matrix) Set(i, j int, v *big.Int) { m.a[i][j].Set(v) }

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	n := New(m.Rows, m.Cols)
	for i := range m.a {
		for j := range m.a[i] {
			n.a[i][j].Set(m.a[i][j])
		}
	}
	return n
}

// Sub returns m - n.
func (m *Matrix) Sub(n *Matrix) *Matrix {
	if m.Rows != n.Rows || m.Cols != n.Cols {
		panic("zlattice: dimension mismatch in Sub")
	}
	out := New(m.Rows, m.Cols)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.a[i][j].Sub(m.a[i][j], n.a[i][j])
		}
	}
	return out
}

// Mul returns the matrix product m * n.
func (m *Matrix) Mul(n *Matrix) *Matrix {
	if m.Cols != n.Rows {
		panic("zlattice: dimension mismatch in Mul")
	}
	out := New(m.Rows, n.Cols)
	t := new(big.Int)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < n.Cols; j++ {
			s := out.a[i][j]
			for k := 0; k < m.Cols; k++ {
				s.Add(s, t.Mul(m.a[i][k], n.a[k][j]))
			}
		}
	}
	return out
}

// Pow returns m^k for k >= 0 by repeated squaring.
func (m *Matrix) Pow(k int) *Matrix {
	if m.Rows != m.Cols {
		panic("zlattice: Pow of non-square matrix")
	}
	if k < 0 {
		panic("zlattice: negative power")
	}
	out := Identity(m.Rows)
	base := m.Clone()
	for k > 0 {
		if k&1 == 1 {
			out = out.Mul(base)
		}
		base = base.Mul(base)
		k >>= 1
	}
	return out
}

// Companion returns the companion matrix of the monic polynomial
// x^n + c[n-1] x^(n-1) + ... + c[0], where c has length n >= 1.
func Companion(c []*big.Int) *Matrix {
	n := len(c)
	if n == 0 {
		panic("zlattice: companion of a constant")
	}
	m := New(n, n)
	for i := 1; i < n; i++ {
		m.a[i][i-1].SetInt64(1)
	}
	for i := 0; i < n; i++ {
		m.a[i][n-1].Neg(c[i])
	}
	return m
}

// Tensor returns the Kronecker product m (x) n.
func (m *Matrix) Tensor(n *Matrix) *Matrix {
	out := New(m.Rows*n.Rows, m.Cols*n.Cols)
	t := new(big.Int)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			for k := 0; k < n.Rows; k++ {
				for l := 0; l < n.Cols; l++ {
					out.a[i*n.Rows+k][j*n.Cols+l].Set(t.Mul(m.a[i][j], n.a[k][l]))
				}
			}
		}
	}
	return out
}

// Det returns the determinant of a square matrix using the
// fraction-free Bareiss elimination, so all intermediate values stay
// integral.
func (m *Matrix) Det() *big.Int {
	if m.Rows != m.Cols {
		panic("zlattice: Det of non-square matrix")
	}
	n := m.Rows
	if n == 0 {
		return big.NewInt(1)
	}
	w := m.Clone()
	sign := 1
	prev := big.NewInt(1)
	t := new(big.Int)
	for k := 0; k < n-1; k++ {
		// Pivot search.
		if w.a[k][k].Sign() == 0 {
			swapped := false
			for i := k + 1; i < n; i++ {
				if w.a[i][k].Sign() != 0 {
					w.a[k], w.a[i] = w.a[i], w.a[k]
					sign = -sign
					swapped = true
					break
				}
			}
			if !swapped {
				return new(big.Int)
			}
		}
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				w.a[i][j].Mul(w.a[i][j], w.a[k][k])
				w.a[i][j].Sub(w.a[i][j], t.Mul(w.a[i][k], w.a[k][j]))
				w.a[i][j].Quo(w.a[i][j], prev)
			}
			w.a[i][k].SetInt64(0)
		}
		prev.Set(w.a[k][k])
	}
	det := new(big.Int).Set(w.a[n-1][n-1])
	if sign < 0 {
		det.Neg(det)
	}
	return det
}

// String renders the matrix for debugging output.
func (m *Matrix) String() string {
	s := ""
	for i := 0; i < m.Rows; i++ {
		s += "["
		for j := 0; j < m.Cols; j++ {
			if j > 0 {
				s += " "
			}
			s += m.a[i][j].String()
		}
		s += "]"
		if i < m.Rows-1 {
			s += "\n"
		}
	}
	return s
}
