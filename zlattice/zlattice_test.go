package zlattice

import (
	"math/big"
	"testing"
)

func fromInt64(rows, cols int, vals ...int64) *Matrix {
	m := New(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, big.NewInt(vals[i*cols+j]))
		}
	}
	return m
}

func TestDet(t *testing.T) {
	m := fromInt64(3, 3,
		2, 0, 1,
		1, 3, 2,
		1, 1, 2,
	)
	if d := m.Det(); d.Int64() != 6 {
		t.Fatalf("det = %s, want 6", d)
	}
	singular := fromInt64(2, 2, 1, 2, 2, 4)
	if d := singular.Det(); d.Sign() != 0 {
		t.Fatalf("det of singular matrix = %s, want 0", d)
	}
	if d := New(0, 0).Det(); d.Int64() != 1 {
		t.Fatalf("empty det = %s, want 1", d)
	}
}

func TestCompanionCharacteristic(t *testing.T) {
	// Companion matrix of x^2 - 5x + 7 must have trace 5 and det 7.
	c := Companion([]*big.Int{big.NewInt(7), big.NewInt(-5)})
	tr := new(big.Int).Add(c.At(0, 0), c.At(1, 1))
	if tr.Int64() != 5 {
		t.Fatalf("trace = %s, want 5", tr)
	}
	if d := c.Det(); d.Int64() != 7 {
		t.Fatalf("det = %s, want 7", d)
	}
	// Cayley-Hamilton: c^2 - 5c + 7 = 0.
	ch := c.Pow(2)
	five := fromInt64(2, 2, 5, 0, 0, 5)
	chm := ch.Sub(c.Mul(five)) // c^2 - 5c
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := int64(0)
			if i == j {
				want = -7
			}
			if chm.At(i, j).Int64() != want {
				t.Fatalf("cayley-hamilton failed at (%d,%d): %s", i, j, chm.At(i, j))
			}
		}
	}
}

func TestTensorDet(t *testing.T) {
	// det(A (x) B) = det(A)^m det(B)^n for A n x n, B m x m.
	a := fromInt64(2, 2, 1, 2, 3, 4) // det -2
	b := fromInt64(2, 2, 0, 1, 1, 1) // det -1
	ab := a.Tensor(b)
	if ab.Rows != 4 || ab.Cols != 4 {
		t.Fatalf("tensor shape %dx%d", ab.Rows, ab.Cols)
	}
	if d := ab.Det(); d.Int64() != 4 {
		t.Fatalf("det(A(x)B) = %s, want 4", d)
	}
}

func TestPow(t *testing.T) {
	m := fromInt64(2, 2, 1, 1, 0, 1)
	p := m.Pow(7)
	if p.At(0, 1).Int64() != 7 {
		t.Fatalf("pow failed: %s", p)
	}
	if id := m.Pow(0); id.At(0, 0).Int64() != 1 || id.At(0, 1).Int64() != 0 {
		t.Fatalf("m^0 not identity: %s", id)
	}
}

func TestHNF(t *testing.T) {
	m := fromInt64(3, 2,
		4, 6,
		2, 2,
		6, 4,
	)
	h := HNF(m)
	if h.Rows != 2 {
		t.Fatalf("rank = %d, want 2:\n%s", h.Rows, h)
	}
	// Pivots positive, second pivot strictly right of first.
	if h.At(0, 0).Sign() <= 0 {
		t.Fatalf("bad pivot:\n%s", h)
	}
	// Determinant of the HNF square part equals the lattice index.
	sq := New(2, 2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			sq.Set(i, j, h.At(i, j))
		}
	}
	if d := sq.Det(); d.Int64() != 4 {
		t.Fatalf("lattice index = %s, want 4:\n%s", d, h)
	}
}

func TestKernelBasis(t *testing.T) {
	// Kernel of (1 1 1; 0 1 2) is spanned by (1, -2, 1).
	m := fromInt64(2, 3,
		1, 1, 1,
		0, 1, 2,
	)
	basis := KernelBasis(m)
	if len(basis) != 1 {
		t.Fatalf("kernel rank = %d, want 1", len(basis))
	}
	v := basis[0]
	for i := 0; i < m.Rows; i++ {
		s := new(big.Int)
		for j := 0; j < m.Cols; j++ {
			s.Add(s, new(big.Int).Mul(m.At(i, j), v[j]))
		}
		if s.Sign() != 0 {
			t.Fatalf("A v != 0 at row %d: %v", i, v)
		}
	}
	if new(big.Int).Abs(v[0]).Int64() != 1 {
		t.Fatalf("kernel vector not primitive: %v", v)
	}
}

func TestSNF(t *testing.T) {
	a := fromInt64(2, 2,
		2, 4,
		6, 8,
	)
	d, u, uinv := SNF(a)
	if d.At(0, 0).Int64() != 2 || d.At(1, 1).Int64() != 4 {
		t.Fatalf("snf diagonal = (%s, %s), want (2, 4)", d.At(0, 0), d.At(1, 1))
	}
	if d.At(0, 1).Sign() != 0 || d.At(1, 0).Sign() != 0 {
		t.Fatalf("snf not diagonal:\n%s", d)
	}
	// U Uinv = I.
	id := u.Mul(uinv)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := int64(0)
			if i == j {
				want = 1
			}
			if id.At(i, j).Int64() != want {
				t.Fatalf("U Uinv != I:\n%s", id)
			}
		}
	}
	// U must be unimodular.
	if det := u.Det(); new(big.Int).Abs(det).Int64() != 1 {
		t.Fatalf("det U = %s", det)
	}
}

func TestSNFDivisibilityChain(t *testing.T) {
	a := fromInt64(3, 3,
		6, 0, 0,
		0, 10, 0,
		0, 0, 15,
	)
	d, _, _ := SNF(a)
	vals := []int64{d.At(0, 0).Int64(), d.At(1, 1).Int64(), d.At(2, 2).Int64()}
	// Invariant factors of diag(6,10,15) are 1, 30, 30.
	if vals[0] != 1 || vals[1] != 30 || vals[2] != 30 {
		t.Fatalf("invariant factors = %v, want [1 30 30]", vals)
	}
	for i := 0; i+1 < len(vals); i++ {
		if vals[i] != 0 && vals[i+1]%vals[i] != 0 {
			t.Fatalf("divisibility chain broken: %v", vals)
		}
	}
}
