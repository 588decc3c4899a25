package isogeny

import (
	"fmt"
	"math/big"
	"sort"

	"go.uber.org/zap"

	"github.com/koffie/isogeny-primes2/arith"
	"github.com/koffie/isogeny-primes2/numfield"
)

// DefaultNormBound is the auxiliary prime norm bound used when
// Options.NormBound is zero.
const DefaultNormBound = 50

// CharacterFilter is an optional refinement applied instead of the
// type-wise congruence filters: it receives the collapsed
// divisibilities per epsilon and returns the surviving primes.
type CharacterFilter func(f *numfield.Field, cg *numfield.ClassGroup, collapsed map[string]*big.Int, epsilons []Epsilon, aux []numfield.PrimeIdeal, embeddings []numfield.Embedding) ([]int64, error)

// Options configures PreTypeOneTwoPrimes.
type Options struct {
	// NormBound bounds the norms of the auxiliary primes.
	NormBound int64
	// LoopCurves restricts the Weil polynomials to those of actual
	// elliptic curves over the residue fields.
	LoopCurves bool
	// UsePIL turns on the principal ideal lattice refinement; it only
	// applies when the class number exceeds one.
	UsePIL bool
	// HeavyFilter delegates the final filtering to a character
	// enumeration; epsilon orbit removal is skipped so the filter sees
	// the full list.
	HeavyFilter CharacterFilter
	// Logger receives debug progress; nil means no logging.
	Logger *zap.Logger
}

// PreTypeOneTwoPrimes returns a sorted finite superset of the pre type
// 1-2 isogeny primes of K.
func PreTypeOneTwoPrimes(f *numfield.Field, opts Options) ([]int64, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	normBound := opts.NormBound
	if normBound == 0 {
		normBound = DefaultNormBound
	}

	containsImagQuad, containsHilbert, err := f.ContainsImaginaryQuadratic()
	if err != nil {
		return nil, err
	}
	if containsHilbert {
		return nil, ErrInfiniteResult
	}

	cg, err := f.ClassGroup()
	if err != nil {
		return nil, err
	}
	aux, err := auxPrimes(f, normBound, cg, containsImagQuad, log)
	if err != nil {
		return nil, err
	}
	embeddings := f.Embeddings()

	var galoisGens [][]int
	if f.IsGalois() {
		galoisGens = f.GaloisGroupGenerators()
	}
	epsilons := Epsilons(f.Degree(), galoisGens, opts.HeavyFilter != nil)
	log.Debug("epsilons enumerated", zap.Int("count", len(epsilons)))

	divsFromUnits, err := uIntegers(f, epsilons, embeddings)
	if err != nil {
		return nil, err
	}
	log.Debug("computed divisibilities from units")

	// Per-epsilon divisibilities for each auxiliary prime. tracking[i]
	// and tracesPerAux[i] both belong to aux[i]; the index is the key,
	// so the collapse and PIL steps pair them without lookups.
	tracking := make([]map[string]*big.Int, len(aux))
	tracesPerAux := make([][]int64, len(aux))
	for i, q := range aux {
		m, err := cg.ClassOrder(q.Ideal)
		if err != nil {
			return nil, err
		}
		traces, err := frobTraces(q.P, q.F, opts.LoopCurves)
		if err != nil {
			return nil, err
		}
		tracesPerAux[i] = traces

		ab, err := abIntegers(f, embeddings, q, epsilons, m)
		if err != nil {
			return nil, err
		}
		c, err := cIntegers(f, embeddings, q, epsilons, m, traces)
		if err != nil {
			return nil, err
		}
		qn := q.Norm()
		unified := make(map[string]*big.Int, len(epsilons))
		for _, eps := range epsilons {
			k := eps.Key()
			unified[k] = arith.Gcd(arith.LcmAll(qn, ab[k], c[k]), divsFromUnits[k])
		}
		tracking[i] = unified
		log.Debug("auxiliary prime processed",
			zap.Int64("p", q.P), zap.String("norm", qn.String()))
	}

	// Collapse across the auxiliary primes.
	collapsed := make(map[string]*big.Int, len(epsilons))
	for _, eps := range epsilons {
		k := eps.Key()
		acc := new(big.Int)
		for i := range aux {
			acc = arith.Gcd(acc, tracking[i][k])
		}
		collapsed[k] = acc
	}
	log.Debug("computed tracking dict")

	if opts.UsePIL && cg.Order() > 1 {
		log.Debug("using principal ideal lattice")
		pil, err := pilIntegers(f, aux, tracesPerAux, epsilons, embeddings, cg, log)
		if err != nil {
			return nil, err
		}
		for _, eps := range epsilons {
			k := eps.Key()
			refined := arith.GcdRat(new(big.Rat).SetInt(collapsed[k]), pil[k])
			if !refined.IsInt() {
				return nil, fmt.Errorf("%w: non-integral refined bound %s", numfield.ErrInternal, refined)
			}
			collapsed[k] = new(big.Int).Set(refined.Num())
		}
	}

	if opts.HeavyFilter != nil {
		log.Debug("using heavy filtering")
		return opts.HeavyFilter(f, cg, collapsed, epsilons, aux, embeddings)
	}

	// Split by epsilon type, reduce to prime divisors, and filter.
	byType := map[EpsType]*big.Int{}
	for _, eps := range epsilons {
		t := eps.Type()
		cur, ok := byType[t]
		if !ok {
			cur = big.NewInt(1)
		}
		byType[t] = arith.Lcm(cur, collapsed[eps.Key()])
	}
	final := map[int64]bool{}
	for t, v := range byType {
		v = arith.PerfectPowerBase(v)
		divisors, err := arith.PrimeDivisors(v)
		if err != nil {
			return nil, err
		}
		kept, err := filterABCPrimes(f, divisors, t)
		if err != nil {
			return nil, err
		}
		for _, p := range kept {
			final[p.Int64()] = true
		}
	}

	out := make([]int64, 0, len(final))
	for p := range final {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
