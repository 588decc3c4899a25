package isogeny

import (
	"sort"
	"strconv"
	"strings"
)

// Epsilon is a candidate isogeny character exponent tuple, one entry
// per embedding of K, each entry one of 0, 4, 6, 8, 12.
type Epsilon []int

// epsilonValues are the possible entries of an epsilon tuple.
var epsilonValues = []int{0, 4, 6, 8, 12}

// Key returns a map key for the tuple.
func (e Epsilon) Key() string {
	parts := make([]string, len(e))
	for i, x := range e {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

func (e Epsilon) String() string {
	return "(" + e.Key() + ")"
}

// Dual returns the entrywise complement 12 - e, which gives the same
// divisibility bounds.
func (e Epsilon) Dual() Epsilon {
	out := make(Epsilon, len(e))
	for i, x := range e {
		out[i] = 12 - x
	}
	return out
}

// EpsType classifies an epsilon tuple; the class determines which
// congruence and splitting filters apply to its candidate primes.
type EpsType int

const (
	TypeQuadratic EpsType = iota
	TypeQuarticDiagonal
	TypeQuarticNonDiagonal
	TypeSextic
	TypeMixed
)

func (t EpsType) String() string {
	switch t {
	case TypeQuadratic:
		return "quadratic"
	case TypeQuarticDiagonal:
		return "quartic-diagonal"
	case TypeQuarticNonDiagonal:
		return "quartic-nondiagonal"
	case TypeSextic:
		return "sextic"
	case TypeMixed:
		return "mixed"
	}
	return "unknown"
}

// Type classifies the tuple. A 6 together with a 4 or 8 is mixed, a 6
// alone sextic, a 4 or 8 alone quartic (diagonal when all entries are
// equal), and anything else quadratic.
func (e Epsilon) Type() EpsType {
	has := func(vals ...int) bool {
		for _, x := range e {
			for _, v := range vals {
				if x == v {
					return true
				}
			}
		}
		return false
	}
	if has(6) {
		if has(4, 8) {
			return TypeMixed
		}
		return TypeSextic
	}
	if has(4, 8) {
		allEqual := true
		for _, x := range e[1:] {
			if x != e[0] {
				allEqual = false
			}
		}
		if allEqual {
			return TypeQuarticDiagonal
		}
		return TypeQuarticNonDiagonal
	}
	return TypeQuadratic
}

// galAct permutes the tuple by sigma: out[i] = e[sigma[i]].
func galAct(e Epsilon, sigma []int) Epsilon {
	out := make(Epsilon, len(e))
	for i, j := range sigma {
		out[i] = e[j]
	}
	return out
}

// permClosure generates the permutation group spanned by gens.
func permClosure(degree int, gens [][]int) [][]int {
	id := make([]int, degree)
	for i := range id {
		id[i] = i
	}
	key := func(p []int) string {
		parts := make([]string, len(p))
		for i, x := range p {
			parts[i] = strconv.Itoa(x)
		}
		return strings.Join(parts, ",")
	}
	seen := map[string][]int{key(id): id}
	queue := [][]int{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, g := range gens {
			next := make([]int, degree)
			for i := range next {
				next[i] = cur[g[i]]
			}
			if _, ok := seen[key(next)]; !ok {
				seen[key(next)] = next
				queue = append(queue, next)
			}
		}
	}
	out := make([][]int, 0, len(seen))
	for _, p := range seen {
		out = append(out, p)
	}
	return out
}

// redundantOrbit returns the tuples giving the same bounds as e: the
// Galois orbit of e and of its dual.
func redundantOrbit(e Epsilon, group [][]int) map[string]bool {
	out := map[string]bool{}
	if len(group) == 0 {
		out[e.Key()] = true
		out[e.Dual().Key()] = true
		return out
	}
	for _, sigma := range group {
		s := galAct(e, sigma)
		out[s.Key()] = true
		out[s.Dual().Key()] = true
	}
	return out
}

// Epsilons enumerates the epsilon tuples of the given degree, without
// the three type 1-2 tuples (all 0, all 6, all 12). With galoisGens
// set, one representative per dual-and-Galois orbit is kept; the
// heavy filter wants the full list and skips the orbit removal.
func Epsilons(degree int, galoisGens [][]int, heavyFilter bool) []Epsilon {
	var all []Epsilon
	var build func(prefix Epsilon)
	build = func(prefix Epsilon) {
		if len(prefix) == degree {
			all = append(all, append(Epsilon{}, prefix...))
			return
		}
		for _, v := range epsilonValues {
			build(append(prefix, v))
		}
	}
	build(Epsilon{})

	excluded := map[string]bool{}
	for _, v := range []int{0, 6, 12} {
		c := make(Epsilon, degree)
		for i := range c {
			c[i] = v
		}
		excluded[c.Key()] = true
	}

	var group [][]int
	if galoisGens != nil {
		group = permClosure(degree, galoisGens)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Key() < all[j].Key() })

	var out []Epsilon
	dropped := map[string]bool{}
	for _, e := range all {
		k := e.Key()
		if excluded[k] || dropped[k] {
			continue
		}
		out = append(out, e)
		if !heavyFilter {
			for rk := range redundantOrbit(e, group) {
				if rk != k {
					dropped[rk] = true
				}
			}
		}
	}
	return out
}
