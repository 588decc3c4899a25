package isogeny

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/koffie/isogeny-primes2/arith"
	"github.com/koffie/isogeny-primes2/numfield"
	"github.com/koffie/isogeny-primes2/zlattice"
)

// principalIdealLattice returns a basis, as rows, of the sublattice of
// Z^t of exponent vectors v with prod_i q_i^(v_i) principal.
func principalIdealLattice(aux []numfield.PrimeIdeal, cg *numfield.ClassGroup) ([][]*big.Int, error) {
	t := len(aux)
	divisors := cg.GenOrders()
	n := len(divisors)

	// v is in the lattice iff E v = 0 mod the divisors, which is the
	// projection to the first t coordinates of the kernel of [E | D].
	m := zlattice.New(n, t+n)
	for i, q := range aux {
		e, err := cg.Exponents(q.Ideal)
		if err != nil {
			return nil, err
		}
		for j := 0; j < n; j++ {
			m.Set(j, i, big.NewInt(e[j]))
		}
	}
	for j := 0; j < n; j++ {
		m.Set(j, t+j, big.NewInt(divisors[j]))
	}
	kernel := zlattice.KernelBasis(m)

	proj := zlattice.New(len(kernel), t)
	for i, v := range kernel {
		for j := 0; j < t; j++ {
			proj.Set(i, j, v[j])
		}
	}
	h := zlattice.HNF(proj)
	basis := make([][]*big.Int, h.Rows)
	for i := 0; i < h.Rows; i++ {
		row := make([]*big.Int, t)
		for j := 0; j < t; j++ {
			row[j] = new(big.Int).Set(h.At(i, j))
		}
		basis[i] = row
	}
	return basis, nil
}

// betaMatsFor returns, for one auxiliary prime, the matrices C^12 with
// C the companion matrix of x^2 - a x + n over its Frobenius traces.
func betaMatsFor(qn int64, traces []int64) []*zlattice.Matrix {
	out := make([]*zlattice.Matrix, 0, len(traces))
	for _, a := range traces {
		c := zlattice.Companion([]*big.Int{big.NewInt(qn), big.NewInt(-a)})
		out = append(out, c.Pow(12))
	}
	return out
}

// alphaForVector returns a generator of the fractional ideal
// prod_i q_i^(v_i), using conj(q)/Norm(q) for the negative exponents.
func alphaForVector(f *numfield.Field, aux []numfield.PrimeIdeal, v []*big.Int) (numfield.Elem, error) {
	num := f.WholeRing()
	den := f.WholeRing()
	for i, e := range v {
		if e.Sign() == 0 {
			continue
		}
		pw, err := aux[i].Pow(new(big.Int).Abs(e).Int64())
		if err != nil {
			return numfield.Elem{}, err
		}
		if e.Sign() > 0 {
			num, err = num.Mul(pw)
		} else {
			den, err = den.Mul(pw)
		}
		if err != nil {
			return numfield.Elem{}, err
		}
	}
	frac, err := num.Mul(den.Conj())
	if err != nil {
		return numfield.Elem{}, err
	}
	g, err := frac.Generator()
	if err != nil {
		return numfield.Elem{}, err
	}
	inv := new(big.Rat).SetFrac(big.NewInt(1), den.Norm())
	return f.ScaleRat(inv, g), nil
}

// ratMatDet computes det(A (x) I_t - I_2 (x) B) for a rational 2x2
// matrix A and an integer t x t matrix B, by clearing the common
// denominator l of A: the answer is l^(-2t) det(lA (x) I - I (x) lB).
func ratMatDet(a [2][2]*big.Rat, b *zlattice.Matrix) *big.Rat {
	l := arith.LcmAll(a[0][0].Denom(), a[0][1].Denom(), a[1][0].Denom(), a[1][1].Denom())
	la := zlattice.New(2, 2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			s := new(big.Int).Mul(a[i][j].Num(), l)
			s.Quo(s, a[i][j].Denom())
			la.Set(i, j, s)
		}
	}
	lb := zlattice.New(b.Rows, b.Cols)
	for i := 0; i < b.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			lb.Set(i, j, new(big.Int).Mul(l, b.At(i, j)))
		}
	}
	t := b.Rows
	m := la.Tensor(zlattice.Identity(t)).Sub(zlattice.Identity(2).Tensor(lb))
	det := m.Det()
	scale := new(big.Int).Exp(l, big.NewInt(int64(2*t)), nil)
	return new(big.Rat).SetFrac(det, scale)
}

// collapseMats tensor-collapses one matrix choice per position.
func collapseMats(choice []*zlattice.Matrix) *zlattice.Matrix {
	out := choice[0]
	for _, m := range choice[1:] {
		out = out.Tensor(m)
	}
	return out
}

// pilIntegers computes the principal-ideal-lattice divisibilities: for
// each epsilon, the gcd over good lattice basis vectors v of the lcm
// over collapsed beta matrices of det(M(alpha_v^eps) (x) I - I (x) B).
func pilIntegers(f *numfield.Field, aux []numfield.PrimeIdeal, tracesPerAux [][]int64, epsilons []Epsilon, embeddings []numfield.Embedding, cg *numfield.ClassGroup, log *zap.Logger) (map[string]*big.Rat, error) {
	basis, err := principalIdealLattice(aux, cg)
	if err != nil {
		return nil, err
	}
	var good [][]*big.Int
	for _, v := range basis {
		nz := 0
		for _, x := range v {
			if x.Sign() != 0 {
				nz++
			}
		}
		if nz > 1 {
			good = append(good, v)
		}
	}
	log.Debug("principal ideal lattice computed",
		zap.Int("basis", len(basis)), zap.Int("good", len(good)))

	betaMats := map[int][]*zlattice.Matrix{}
	for _, v := range good {
		for i, x := range v {
			if x.Sign() != 0 && betaMats[i] == nil {
				betaMats[i] = betaMatsFor(aux[i].Norm().Int64(), tracesPerAux[i])
			}
		}
	}

	type vecData struct {
		alpha     numfield.Elem
		collapsed []*zlattice.Matrix
	}
	data := make([]vecData, 0, len(good))
	for _, v := range good {
		alpha, err := alphaForVector(f, aux, v)
		if err != nil {
			return nil, err
		}
		var positions []int
		for i, x := range v {
			if x.Sign() != 0 {
				positions = append(positions, i)
			}
		}
		lists := make([][]*zlattice.Matrix, len(positions))
		for k, i := range positions {
			lists[k] = betaMats[i]
		}
		var collapsed []*zlattice.Matrix
		idx := make([]int, len(lists))
		for {
			choice := make([]*zlattice.Matrix, len(lists))
			for k := range lists {
				choice[k] = lists[k][idx[k]]
			}
			collapsed = append(collapsed, collapseMats(choice))
			k := len(idx) - 1
			for k >= 0 {
				idx[k]++
				if idx[k] < len(lists[k]) {
					break
				}
				idx[k] = 0
				k--
			}
			if k < 0 {
				break
			}
		}
		data = append(data, vecData{alpha: alpha, collapsed: collapsed})
	}

	out := make(map[string]*big.Rat, len(epsilons))
	for _, eps := range epsilons {
		runningGcd := new(big.Rat)
		for _, vd := range data {
			alphaEpsMat := f.MulMatrix(epsExp(f, vd.alpha, eps, embeddings))
			runningLcm := new(big.Rat).SetInt64(1)
			for _, b := range vd.collapsed {
				runningLcm = arith.LcmRat(runningLcm, ratMatDet(alphaEpsMat, b))
			}
			runningGcd = arith.GcdRat(runningGcd, runningLcm)
		}
		out[eps.Key()] = runningGcd
		log.Debug("lattice divisibility", zap.String("eps", eps.Key()))
	}
	return out, nil
}
