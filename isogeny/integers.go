package isogeny

import (
	"fmt"
	"math/big"

	"github.com/koffie/isogeny-primes2/arith"
	"github.com/koffie/isogeny-primes2/numfield"
)

// epsExp returns prod_i sigma_i(alpha)^eps[i] over the embeddings of K.
func epsExp(f *numfield.Field, alpha numfield.Elem, eps Epsilon, embeddings []numfield.Embedding) numfield.Elem {
	out := f.One()
	for i, emb := range embeddings {
		out = f.Mul(out, f.Pow(emb(alpha), int64(eps[i])))
	}
	return out
}

// intNorm converts a norm of an algebraic integer to *big.Int, failing
// on a non-integral value.
func intNorm(n *big.Rat) (*big.Int, error) {
	if !n.IsInt() {
		return nil, fmt.Errorf("%w: norm %s is not integral", numfield.ErrInternal, n)
	}
	return new(big.Int).Set(n.Num()), nil
}

// reducedGenerator returns a generator of q^m, where m is the order of
// the class of q.
func reducedGenerator(q numfield.PrimeIdeal, m int64) (numfield.Elem, error) {
	qm, err := q.Pow(m)
	if err != nil {
		return numfield.Elem{}, err
	}
	return qm.Generator()
}

// abIntegers computes, for each epsilon, lcm(A, B) with
// A = Norm(alpha^eps - 1) and B = Norm(alpha^eps - Norm(q)^(12 m)),
// where alpha generates q^m.
func abIntegers(f *numfield.Field, embeddings []numfield.Embedding, q numfield.PrimeIdeal, epsilons []Epsilon, m int64) (map[string]*big.Int, error) {
	alpha, err := reducedGenerator(q, m)
	if err != nil {
		return nil, err
	}
	nmPow := new(big.Int).Exp(q.Norm(), big.NewInt(12*m), nil)
	nmElem := numfield.NewElem(new(big.Rat).SetInt(nmPow), new(big.Rat))

	out := make(map[string]*big.Int, len(epsilons))
	for _, eps := range epsilons {
		ae := epsExp(f, alpha, eps, embeddings)
		a, err := intNorm(f.Norm(f.Sub(ae, f.One())))
		if err != nil {
			return nil, err
		}
		b, err := intNorm(f.Norm(f.Sub(ae, nmElem)))
		if err != nil {
			return nil, err
		}
		out[eps.Key()] = arith.Lcm(a, b)
	}
	return out, nil
}

// cIntegers accumulates, for each epsilon, the lcm over the Frobenius
// roots beta of the absolute norm of alpha^eps - beta^(12 m), taken in
// the compositum of K and the root field of the Weil polynomial.
func cIntegers(f *numfield.Field, embeddings []numfield.Embedding, q numfield.PrimeIdeal, epsilons []Epsilon, m int64, traces []int64) (map[string]*big.Int, error) {
	alpha, err := reducedGenerator(q, m)
	if err != nil {
		return nil, err
	}
	qn := q.Norm().Int64()

	out := make(map[string]*big.Int, len(epsilons))
	for _, eps := range epsilons {
		out[eps.Key()] = big.NewInt(1)
	}
	alphaEps := make(map[string]numfield.Elem, len(epsilons))
	for _, eps := range epsilons {
		alphaEps[eps.Key()] = epsExp(f, alpha, eps, embeddings)
	}
	for _, a := range traces {
		roots, err := numfield.RootsOfFrobPoly(a, qn)
		if err != nil {
			return nil, err
		}
		for _, beta := range roots {
			bp := beta.Pow(12 * m)
			for _, eps := range epsilons {
				n, err := f.NormDiffCompositum(alphaEps[eps.Key()], bp)
				if err != nil {
					return nil, err
				}
				k := eps.Key()
				out[k] = arith.Lcm(out[k], n)
			}
		}
	}
	return out, nil
}

// uIntegers computes, for each epsilon, the gcd over the unit group
// generators u of Norm(u^eps - 1).
func uIntegers(f *numfield.Field, epsilons []Epsilon, embeddings []numfield.Embedding) (map[string]*big.Int, error) {
	gens, err := f.UnitGens()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*big.Int, len(epsilons))
	for _, eps := range epsilons {
		acc := new(big.Int)
		for _, u := range gens {
			n, err := intNorm(f.Norm(f.Sub(epsExp(f, u, eps, embeddings), f.One())))
			if err != nil {
				return nil, err
			}
			acc = arith.Gcd(acc, n)
		}
		out[eps.Key()] = acc
	}
	return out, nil
}
