package numfield

import (
	"fmt"
	"math/big"

	"github.com/koffie/isogeny-primes2/arith"
	"github.com/koffie/isogeny-primes2/zlattice"
)

// ClassGroup is the ideal class group of a quadratic field presented
// by its elementary divisors: Cl(K) = Z/d_1 x ... x Z/d_n with
// d_1 | d_2 | ... and every d_j > 1.
type ClassGroup struct {
	f        *Field
	order    int64
	divisors []int64  // invariant factors > 1
	gens     []*Ideal // representative ideals of the generators

	// expo maps the canonical-form key of a class to its exponent
	// vector with respect to gens.
	expo map[string][]int64
}

// ClassGroup computes and caches the class group of K.
func (f *Field) ClassGroup() (*ClassGroup, error) {
	if f.cg != nil {
		return f.cg, nil
	}
	cg, err := f.buildClassGroup()
	if err != nil {
		return nil, err
	}
	f.cg = cg
	return cg, nil
}

// ClassNumber returns h_K.
func (f *Field) ClassNumber() (int64, error) {
	cg, err := f.ClassGroup()
	if err != nil {
		return 0, err
	}
	return cg.order, nil
}

// Order returns the order of the class group.
func (cg *ClassGroup) Order() int64 { return cg.order }

// IsTrivial reports h_K = 1.
func (cg *ClassGroup) IsTrivial() bool { return cg.order == 1 }

// Gens returns representative ideals for the group generators.
func (cg *ClassGroup) Gens() []*Ideal { return cg.gens }

// GenOrders returns the orders of the generators, smallest first, each
// dividing the next.
func (cg *ClassGroup) GenOrders() []int64 { return cg.divisors }

// Exponents writes the class of i as prod gens[j]^e_j with
// 0 <= e_j < divisors[j].
func (cg *ClassGroup) Exponents(i *Ideal) ([]int64, error) {
	key, err := i.ClassKey()
	if err != nil {
		return nil, err
	}
	e, ok := cg.expo[key]
	if !ok {
		return nil, fmt.Errorf("%w: class of %s not generated by primes below the Minkowski bound", ErrInternal, i)
	}
	return e, nil
}

// ClassOrder returns the multiplicative order of the class of i.
func (cg *ClassGroup) ClassOrder(i *Ideal) (int64, error) {
	e, err := cg.Exponents(i)
	if err != nil {
		return 0, err
	}
	ord := int64(1)
	for j, d := range cg.divisors {
		if e[j] == 0 {
			continue
		}
		g := gcd64(d, e[j])
		ord = lcm64(ord, d/g)
	}
	return ord, nil
}

func gcd64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm64(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd64(a, b) * b
}

// buildClassGroup enumerates the group from the classes of small
// primes, derives a triangular relation matrix from relative orders,
// and reads off the invariant factors from its Smith normal form.
func (f *Field) buildClassGroup() (*ClassGroup, error) {
	// Overestimate of the Minkowski bound; the prime classes below it
	// generate the group.
	bound := new(big.Int).Sqrt(new(big.Int).Abs(f.Disc)).Int64() + 1

	idKey, err := f.WholeRing().ClassKey()
	if err != nil {
		return nil, err
	}

	type elt struct {
		vec []int64 // exponents over the seed generators so far
	}
	subgroup := map[string]elt{idKey: {vec: nil}}
	// reps holds one ideal per subgroup element, for extending the
	// closure by multiplication.
	reps := map[string]*Ideal{idKey: f.WholeRing()}

	var seeds []*Ideal     // independent generators, in adoption order
	var relOrders []int64  // relative order of each seed
	var relDecomp [][]int64 // seed^relOrder over earlier seeds

	for _, p := range arith.PrimesUpTo(bound) {
		if arith.Kronecker(f.Disc, big.NewInt(p)) < 0 {
			continue
		}
		qs, err := f.Factor(p)
		if err != nil {
			return nil, err
		}
		q := qs[0].Ideal
		qKey, err := q.ClassKey()
		if err != nil {
			return nil, err
		}
		if _, ok := subgroup[qKey]; ok {
			continue
		}

		// q starts a new generator. Find its relative order: the
		// least r with q^r in the current subgroup.
		k := len(seeds)
		pow := q
		r := int64(1)
		var decomp []int64
		for {
			key, err := pow.ClassKey()
			if err != nil {
				return nil, err
			}
			if e, ok := subgroup[key]; ok {
				decomp = append([]int64{}, e.vec...)
				for len(decomp) < k {
					decomp = append(decomp, 0)
				}
				break
			}
			if pow, err = pow.Mul(q); err != nil {
				return nil, err
			}
			r++
		}
		seeds = append(seeds, q)
		relOrders = append(relOrders, r)
		relDecomp = append(relDecomp, decomp)

		// Extend the closure: old elements times q^t, 0 < t < r.
		next := make(map[string]elt, len(subgroup)*int(r))
		for key, e := range subgroup {
			vec := append(append([]int64{}, e.vec...), make([]int64, k+1-len(e.vec))...)
			next[key] = elt{vec: vec}
		}
		step := f.WholeRing()
		for t := int64(1); t < r; t++ {
			if step, err = step.Mul(q); err != nil {
				return nil, err
			}
			for key, e := range subgroup {
				prod, err := reps[key].Mul(step)
				if err != nil {
					return nil, err
				}
				pk, err := prod.ClassKey()
				if err != nil {
					return nil, err
				}
				vec := append(append([]int64{}, e.vec...), make([]int64, k+1-len(e.vec))...)
				vec[k] = t
				next[pk] = elt{vec: vec}
				if _, ok := reps[pk]; !ok {
					reps[pk] = prod
				}
			}
		}
		subgroup = next
	}

	n := len(seeds)
	order := int64(1)
	for _, r := range relOrders {
		order *= r
	}
	if int64(len(subgroup)) != order {
		return nil, fmt.Errorf("%w: closure has %d elements, relative orders give %d", ErrInternal, len(subgroup), order)
	}

	cg := &ClassGroup{f: f, order: order, expo: map[string][]int64{}}
	if n == 0 {
		cg.expo[idKey] = nil
		return cg, nil
	}

	// Relation matrix with one column per seed relation:
	// seeds[i]^relOrders[i] = prod_{j<i} seeds[j]^relDecomp[i][j].
	m := zlattice.New(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, big.NewInt(relOrders[i]))
		for j := 0; j < i; j++ {
			m.Set(j, i, big.NewInt(-relDecomp[i][j]))
		}
	}
	d, u, uinv := zlattice.SNF(m)

	// In the new coordinates x -> U x the relations become diagonal,
	// so generator j has order d_j; keep the non-trivial ones.
	var keep []int
	for j := 0; j < n; j++ {
		dj := d.At(j, j).Int64()
		if dj > 1 {
			keep = append(keep, j)
			cg.divisors = append(cg.divisors, dj)
		}
	}
	for _, j := range keep {
		t := f.WholeRing()
		for i := 0; i < n; i++ {
			e := uinv.At(i, j).Int64()
			base := seeds[i]
			if e < 0 {
				base = base.Conj()
				e = -e
			}
			pw, err := base.Pow(e)
			if err != nil {
				return nil, err
			}
			if t, err = t.Mul(pw); err != nil {
				return nil, err
			}
		}
		cg.gens = append(cg.gens, t)
	}
	for key, e := range subgroup {
		vec := make([]int64, len(keep))
		full := append(append([]int64{}, e.vec...), make([]int64, n-len(e.vec))...)
		for jj, j := range keep {
			var acc int64
			for i := 0; i < n; i++ {
				acc += u.At(j, i).Int64() * full[i]
			}
			dj := cg.divisors[jj]
			acc %= dj
			if acc < 0 {
				acc += dj
			}
			vec[jj] = acc
		}
		cg.expo[key] = vec
	}
	return cg, nil
}
