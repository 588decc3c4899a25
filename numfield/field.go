package numfield

import (
	"fmt"
	"math/big"

	"github.com/koffie/isogeny-primes2/arith"
)

// Field is the quadratic number field Q(sqrt(D)) for squarefree D.
type Field struct {
	D    int64    // squarefree defining integer
	Disc *big.Int // field discriminant: D if D = 1 mod 4, else 4D

	d     *big.Int
	sigma int64 // parity of the discriminant

	cg    *ClassGroup // lazy
	units []Elem      // lazy
}

// New constructs Q(sqrt(D)). D must be squarefree and different from 0
// and 1.
func New(D int64) (*Field, error) {
	if D == 0 || D == 1 {
		return nil, fmt.Errorf("numfield: %d does not define a quadratic field", D)
	}
	if !arith.IsSquarefreeInt(D) {
		return nil, fmt.Errorf("numfield: %d is not squarefree", D)
	}
	f := &Field{D: D, d: big.NewInt(D)}
	if mod4(D) == 1 {
		f.Disc = big.NewInt(D)
	} else {
		f.Disc = big.NewInt(4 * D)
	}
	f.sigma = int64(f.Disc.Bit(0))
	return f, nil
}

func mod4(n int64) int64 {
	m := n % 4
	if m < 0 {
		m += 4
	}
	return m
}

// Degree returns the absolute degree of the field.
func (f *Field) Degree() int { return 2 }

// IsTotallyImaginary reports whether the field has no real embedding.
func (f *Field) IsTotallyImaginary() bool { return f.D < 0 }

// IsGalois reports whether K/Q is Galois; quadratic fields always are.
func (f *Field) IsGalois() bool { return true }

// GaloisClosure returns the Galois closure of K, which is K itself.
func (f *Field) GaloisClosure() *Field { return f }

// GaloisGroupGenerators returns generators of Gal(K/Q) as permutations
// of the embeddings, here the single transposition of the two.
func (f *Field) GaloisGroupGenerators() [][]int {
	return [][]int{{1, 0}}
}

// Embedding is a field embedding K -> Kgal.
type Embedding func(Elem) Elem

// Embeddings returns the two embeddings of K into its Galois closure:
// the identity and conjugation.
func (f *Field) Embeddings() []Embedding {
	return []Embedding{
		func(x Elem) Elem { return x },
		func(x Elem) Elem { return f.Conj(x) },
	}
}

// ContainsImaginaryQuadratic returns two booleans: whether K contains a
// totally imaginary quadratic subfield, and whether K contains the full
// Hilbert class field of such a subfield. For quadratic K the only
// quadratic subfield is K itself, and its Hilbert class field has
// absolute degree 2 h_K, so the second condition is h_K = 1.
func (f *Field) ContainsImaginaryQuadratic() (bool, bool, error) {
	if f.D > 0 {
		return false, false, nil
	}
	cg, err := f.ClassGroup()
	if err != nil {
		return false, false, err
	}
	return true, cg.Order() == 1, nil
}

// RationalPrimeIsInert reports whether the rational prime p stays prime
// (is inert) in K.
func (f *Field) RationalPrimeIsInert(p *big.Int) bool {
	return arith.Kronecker(f.Disc, p) == -1
}

func (f *Field) String() string {
	return fmt.Sprintf("Q(sqrt(%d))", f.D)
}
