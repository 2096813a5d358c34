// Package randtest generates random values, magnitudes, balls and coefficient
// vectors for tests. Generated data is biased toward the cases arithmetic code
// gets wrong: special values, exact zeros, long runs of ones in the mantissa,
// and endpoints that nearly coincide.
package randtest

import (
	"math/big"
	"math/rand"

	"github.com/avdva/ball"
	"github.com/avdva/ball/bfp"
	"github.com/avdva/ball/mag"
)

// Source wraps a seeded rand.Rand.
type Source struct {
	*rand.Rand
}

// New returns a deterministic source for the given seed.
func New(seed int64) *Source {
	return &Source{Rand: rand.New(rand.NewSource(seed))}
}

// Mant returns a random nonzero mantissa of at most bits bits.
func (s *Source) Mant(bits int) *big.Int {
	if bits < 1 {
		bits = 1
	}
	n := 1 + s.Intn(bits)
	m := new(big.Int)
	switch s.Intn(4) {
	case 0: // 2^n - 1
		m.Lsh(big.NewInt(1), uint(n))
		m.Sub(m, big.NewInt(1))
	case 1: // 2^n + 1
		m.Lsh(big.NewInt(1), uint(n))
		m.Add(m, big.NewInt(1))
	default:
		for i := 0; i < n; i++ {
			m.SetBit(m, i, uint(s.Intn(2)))
		}
		m.SetBit(m, n-1, 1)
	}
	if s.Intn(2) == 0 {
		m.Neg(m)
	}
	return m
}

// Finite returns a random finite nonzero value with a mantissa of at most
// bits bits and an exponent in [-expRange, expRange].
func (s *Source) Finite(bits int, expRange int64) bfp.Value {
	return bfp.FromMantExp(s.Mant(bits), s.Exp(expRange))
}

// Exp returns a random exponent in [-r, r].
func (s *Source) Exp(r int64) int64 {
	if r <= 0 {
		return 0
	}
	return s.Int63n(2*r+1) - r
}

// Value returns a random value, special with a small probability.
func (s *Source) Value(bits int, expRange int64) bfp.Value {
	switch s.Intn(32) {
	case 0:
		return bfp.Zero()
	case 1:
		return bfp.PosInf()
	case 2:
		return bfp.NegInf()
	case 3:
		return bfp.NaN()
	}
	return s.Finite(bits, expRange)
}

// FiniteValue returns a random zero or finite value.
func (s *Source) FiniteValue(bits int, expRange int64) bfp.Value {
	if s.Intn(16) == 0 {
		return bfp.Zero()
	}
	return s.Finite(bits, expRange)
}

// Mag returns a random finite magnitude, zero with a small probability.
func (s *Source) Mag(expRange int64) mag.Mag {
	if s.Intn(8) == 0 {
		return mag.Zero()
	}
	return mag.FromValue(s.Finite(mag.Bits+8, expRange))
}

// Ball returns a random ball with a finite midpoint, exact with a small probability.
func (s *Source) Ball(bits int, expRange int64) ball.Ball {
	mid := s.FiniteValue(bits, expRange)
	if s.Intn(4) == 0 {
		return ball.FromValue(mid)
	}
	return ball.New(mid, s.Mag(expRange))
}

// SpecialBall returns a random ball which may have a special midpoint or radius.
func (s *Source) SpecialBall(bits int, expRange int64) ball.Ball {
	switch s.Intn(16) {
	case 0:
		return ball.New(s.Value(bits, expRange), mag.Inf())
	case 1:
		return ball.New(bfp.NaN(), s.Mag(expRange))
	case 2:
		return ball.New(bfp.Inf(s.Intn(2) == 0), s.Mag(expRange))
	}
	return s.Ball(bits, expRange)
}

// Balls returns n random balls. The last one is never an exact zero,
// and about a quarter of the others are.
func (s *Source) Balls(n, bits int, expRange int64) []ball.Ball {
	res := make([]ball.Ball, n)
	for i := range res {
		if i != n-1 && s.Intn(4) == 0 {
			continue
		}
		res[i] = s.Ball(bits, expRange)
		for i == n-1 && res[i].IsZero() {
			res[i] = s.Ball(bits, expRange)
		}
	}
	return res
}

// Prec returns a random precision in [2, max].
func (s *Source) Prec(max int) uint {
	if max < 2 {
		max = 2
	}
	return uint(2 + s.Intn(max-1))
}

// Mode returns a random rounding mode.
func (s *Source) Mode() bfp.RoundingMode {
	return bfp.RoundingMode(s.Intn(5))
}
