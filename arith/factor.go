package arith

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/sha3"
)

// ErrFactor is returned when the factorization engine gives up on a
// composite cofactor. This does not happen for the integer sizes the
// pipeline produces in practice.
var ErrFactor = errors.New("arith: failed to split composite")

const (
	trialDivisionBound = 1 << 14
	rhoRounds          = 64
	millerRabinReps    = 30
)

var trialPrimes = PrimesUpTo(trialDivisionBound)

// factorPRNG derives a deterministic byte stream from n so that the
// Pollard iterations, and hence the whole pipeline, are reproducible.
func factorPRNG(n *big.Int) io.Reader {
	h := sha3.NewShake128()
	h.Write([]byte("isogeny-primes/factor"))
	h.Write(n.Bytes())
	key := make([]byte, 32)
	h.Read(key)
	prng, err := utils.NewKeyedPRNG(key)
	if err != nil {
		// Key length is fixed, so this cannot fail.
		panic(fmt.Sprintf("arith: keyed prng: %v", err))
	}
	return prng
}

func randBelow(r io.Reader, n *big.Int) *big.Int {
	buf := make([]byte, len(n.Bytes())+8)
	io.ReadFull(r, buf)
	x := new(big.Int).SetBytes(buf)
	return x.Mod(x, n)
}

// pollardBrent finds a non-trivial factor of the odd composite n, or
// returns nil when the round budget runs out.
func pollardBrent(n *big.Int, r io.Reader) *big.Int {
	one := big.NewInt(1)
	for round := 0; round < rhoRounds; round++ {
		c := randBelow(r, n)
		if c.Sign() == 0 {
			c.SetInt64(1)
		}
		x := randBelow(r, n)
		y := new(big.Int).Set(x)
		d := big.NewInt(1)
		q := big.NewInt(1)
		steps := 0
		for d.Cmp(one) == 0 && steps < 1<<19 {
			x.Mul(x, x).Add(x, c).Mod(x, n)
			y.Mul(y, y).Add(y, c).Mod(y, n)
			y.Mul(y, y).Add(y, c).Mod(y, n)
			diff := new(big.Int).Sub(x, y)
			if diff.Sign() == 0 {
				break
			}
			q.Mul(q, diff.Abs(diff)).Mod(q, n)
			steps++
			if steps%128 == 0 {
				d = Gcd(q, n)
			}
		}
		if d.Cmp(one) == 0 {
			d = Gcd(q, n)
		}
		if d.Cmp(one) > 0 && d.Cmp(n) < 0 {
			return d
		}
	}
	return nil
}

// PrimeDivisors returns the distinct prime divisors of n != 0 in
// ascending order. PrimeDivisors(±1) is empty.
func PrimeDivisors(n *big.Int) ([]*big.Int, error) {
	if n.Sign() == 0 {
		return nil, errors.New("arith: prime divisors of zero")
	}
	m := new(big.Int).Abs(n)
	found := map[string]*big.Int{}

	for _, p := range trialPrimes {
		if m.Cmp(oneInt) == 0 {
			break
		}
		bp := big.NewInt(p)
		if new(big.Int).Mod(m, bp).Sign() == 0 {
			found[bp.String()] = bp
			for new(big.Int).Mod(m, bp).Sign() == 0 {
				m.Quo(m, bp)
			}
		}
	}

	// Split what remains with Pollard-Brent.
	stack := []*big.Int{}
	if m.Cmp(oneInt) > 0 {
		stack = append(stack, m)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.ProbablyPrime(millerRabinReps) {
			found[cur.String()] = cur
			continue
		}
		// Perfect powers defeat rho cycles, so strip them first.
		if base, k := perfectPower(cur); k > 1 {
			stack = append(stack, base)
			continue
		}
		d := pollardBrent(cur, factorPRNG(cur))
		if d == nil {
			return nil, fmt.Errorf("%w: %s", ErrFactor, cur.String())
		}
		stack = append(stack, d, new(big.Int).Quo(cur, d))
	}

	out := make([]*big.Int, 0, len(found))
	for _, p := range found {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out, nil
}

// iroot returns floor(n^(1/k)) for n >= 0, k >= 1.
func iroot(n *big.Int, k int) *big.Int {
	if k == 1 || n.Sign() == 0 {
		return new(big.Int).Set(n)
	}
	if k == 2 {
		return new(big.Int).Sqrt(n)
	}
	// Newton iteration starting from a power-of-two overestimate.
	bk := big.NewInt(int64(k))
	bk1 := big.NewInt(int64(k - 1))
	x := new(big.Int).Lsh(oneInt, uint(n.BitLen()/k+1))
	for {
		// y = ((k-1)*x + n/x^(k-1)) / k
		xk1 := new(big.Int).Exp(x, bk1, nil)
		y := new(big.Int).Quo(n, xk1)
		y.Add(y, new(big.Int).Mul(bk1, x))
		y.Quo(y, bk)
		if y.Cmp(x) >= 0 {
			break
		}
		x = y
	}
	for new(big.Int).Exp(x, bk, nil).Cmp(n) > 0 {
		x.Sub(x, oneInt)
	}
	return x
}

// perfectPower returns (b, k) with n = b^k and k maximal, or (n, 1).
func perfectPower(n *big.Int) (*big.Int, int) {
	if n.Cmp(big.NewInt(2)) < 0 {
		return new(big.Int).Set(n), 1
	}
	for k := n.BitLen(); k >= 2; k-- {
		r := iroot(n, k)
		if new(big.Int).Exp(r, big.NewInt(int64(k)), nil).Cmp(n) == 0 {
			return r, k
		}
	}
	return new(big.Int).Set(n), 1
}

// PerfectPowerBase reduces a perfect power n = b^k (k maximal) to its
// base b; non-powers and 0, 1 are returned unchanged. n must be >= 0.
func PerfectPowerBase(n *big.Int) *big.Int {
	if n.Sign() < 0 {
		return new(big.Int).Set(n)
	}
	b, _ := perfectPower(n)
	return b
}

// Squarefree writes n != 0 as d * f^2 with d squarefree, returning
// (d, f). The sign of n goes into d.
func Squarefree(n *big.Int) (*big.Int, *big.Int, error) {
	if n.Sign() == 0 {
		return nil, nil, errors.New("arith: squarefree part of zero")
	}
	primes, err := PrimeDivisors(n)
	if err != nil {
		return nil, nil, err
	}
	d := big.NewInt(int64(n.Sign()))
	f := big.NewInt(1)
	m := new(big.Int).Abs(n)
	for _, p := range primes {
		e := 0
		for new(big.Int).Mod(m, p).Sign() == 0 {
			m.Quo(m, p)
			e++
		}
		if e%2 == 1 {
			d.Mul(d, p)
		}
		if e/2 > 0 {
			f.Mul(f, new(big.Int).Exp(p, big.NewInt(int64(e/2)), nil))
		}
	}
	return d, f, nil
}
