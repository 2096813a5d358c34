// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package mag implements a low-precision unsigned floating-point number,
// used as the radius of a ball. A Mag is an upper bound: every operation
// rounds its result toward +Inf, so a computed Mag is never smaller
// than the exact result.
//
//	value = man * 2^(exp-Bits), 2^(Bits-1) <= man < 2^Bits
//
// The zero Mag is 0.
package mag

import (
	"math"
	"math/big"
	"math/bits"

	"github.com/avdva/ball/bfp"
	mu "github.com/avdva/ball/internal/mathutil"
)

// Bits is the number of mantissa bits of a Mag.
const Bits = 30

const (
	minMan = 1 << (Bits - 1)
	maxMan = 1<<Bits - 1

	smallestNormal = 0x1p-1022
)

// Mag is a non-negative number or +Inf.
type Mag struct {
	man uint32
	exp int64
	inf bool
}

func split(m Mag) (man uint64, exp int64) {
	return uint64(m.man), m.exp
}

// Zero returns 0.
func Zero() Mag {
	return Mag{}
}

// Inf returns +Inf.
func Inf() Mag {
	return Mag{inf: true}
}

// Pow2 returns 2^e.
func Pow2(e int64) Mag {
	return Mag{man: minMan, exp: mu.AddExp(e, 1)}
}

// FromUint64 returns an upper bound of u.
func FromUint64(u uint64) Mag {
	return roundUp(u, 0, false)
}

// FromValue returns an upper bound of |v|.
// Infinities and not-a-number give +Inf.
func FromValue(v bfp.Value) Mag {
	switch {
	case v.IsZero():
		return Zero()
	case !v.IsFinite():
		return Inf()
	}
	m := v.Mant()
	m.Abs(m)
	n := m.BitLen()
	if n <= 64 {
		return roundUp(m.Uint64(), v.Exp(), false)
	}
	shift := uint(n - 64)
	// m is odd, so some nonzero bits are always shifted out.
	m.Rsh(m, shift)
	return roundUp(m.Uint64(), mu.AddExp(v.Exp(), int64(shift)), true)
}

// FromFloat64 returns an upper bound of |f|. NaN gives +Inf.
func FromFloat64(f float64) Mag {
	return FromValue(bfp.FromFloat64(f))
}

// roundUp returns an upper bound of u*2^e + t, where 0 <= t < 2^e, and t > 0 iff sticky is set.
func roundUp(u uint64, e int64, sticky bool) Mag {
	if u == 0 {
		if sticky {
			return Pow2(e)
		}
		return Zero()
	}
	n := mu.BinaryDigits(u)
	var man uint64
	if n > Bits {
		shift := uint(n - Bits)
		man = u >> shift
		sticky = sticky || u&(1<<shift-1) != 0
	} else {
		man = u << uint(Bits-n)
	}
	exp := mu.AddExp(e, int64(n))
	if sticky {
		man++
		if man > maxMan {
			man >>= 1
			exp = mu.AddExp(exp, 1)
		}
	}
	return Mag{man: uint32(man), exp: exp}
}

// IsZero reports whether m is 0.
func (m Mag) IsZero() bool {
	return !m.inf && m.man == 0
}

// IsInf reports whether m is +Inf.
func (m Mag) IsInf() bool {
	return m.inf
}

// IsFinite reports whether m is not +Inf.
func (m Mag) IsFinite() bool {
	return !m.inf
}

// Exp returns such e, that 2^(e-1) <= m < 2^e for a finite nonzero m.
func (m Mag) Exp() int64 {
	return m.exp
}

// Value returns the exact value of m as a floating-point value.
func (m Mag) Value() bfp.Value {
	switch {
	case m.inf:
		return bfp.PosInf()
	case m.man == 0:
		return bfp.Zero()
	}
	man, exp := split(m)
	return bfp.FromMantExp(new(big.Int).SetUint64(man), mu.SubExp(exp, Bits))
}

// Add returns an upper bound of m+other.
func (m Mag) Add(other Mag) Mag {
	switch {
	case m.inf || other.inf:
		return Inf()
	case m.man == 0:
		return other
	case other.man == 0:
		return m
	}
	if m.exp < other.exp {
		m, other = other, m
	}
	m1, e1 := split(m)
	m2, e2 := split(other)
	// align both mantissas at 62 bits below the top of the larger one.
	const guard = 32
	d := mu.ExpDiff(e1, e2)
	if d > Bits+guard {
		return roundUp(m1<<guard, e1-Bits-guard, true)
	}
	m1 <<= guard
	m2 <<= guard
	sticky := m2&(1<<d-1) != 0
	return roundUp(m1+m2>>d, e1-Bits-guard, sticky)
}

// Mul returns an upper bound of m*other.
// The product of 0 and +Inf is 0.
func (m Mag) Mul(other Mag) Mag {
	switch {
	case m.IsZero() || other.IsZero():
		return Zero()
	case m.inf || other.inf:
		return Inf()
	}
	m1, e1 := split(m)
	m2, e2 := split(other)
	return roundUp(m1*m2, mu.SubExp(mu.AddExp(e1, e2), 2*Bits), false)
}

// MulUint64 returns an upper bound of m*u.
func (m Mag) MulUint64(u uint64) Mag {
	switch {
	case m.IsZero() || u == 0:
		return Zero()
	case m.inf:
		return Inf()
	}
	hi, lo := bits.Mul64(uint64(m.man), u)
	e := mu.SubExp(m.exp, Bits)
	if hi == 0 {
		return roundUp(lo, e, false)
	}
	shift := uint(mu.BinaryDigits(hi))
	return roundUp(hi<<(64-shift)|lo>>shift, mu.AddExp(e, int64(shift)), lo&(1<<shift-1) != 0)
}

// MulPow2 returns m*2^k exactly.
func (m Mag) MulPow2(k int64) Mag {
	if m.inf || m.man == 0 {
		return m
	}
	return Mag{man: m.man, exp: mu.AddExp(m.exp, k)}
}

// Max returns the larger of m and other.
func Max(m, other Mag) Mag {
	if m.Cmp(other) >= 0 {
		return m
	}
	return other
}

// Cmp compares two magnitudes.
// Returns -1 if a < b, 0 if a == b, 1 if a > b
func (m Mag) Cmp(other Mag) int {
	switch {
	case m.inf || other.inf:
		return boolCmp(m.inf, other.inf)
	case m.man == 0 || other.man == 0:
		return boolCmp(m.man != 0, other.man != 0)
	case m.exp != other.exp:
		return mu.CmpInt64(m.exp, other.exp)
	}
	return boolCmp(m.man > other.man, m.man < other.man)
}

func boolCmp(a, b bool) int {
	switch {
	case a && !b:
		return 1
	case b && !a:
		return -1
	}
	return 0
}

// Ulp returns 2^(TopExp(v)-prec), the largest error of rounding a value
// of the magnitude of v to prec bits. Zero gives 0, other special values give +Inf.
func Ulp(v bfp.Value, prec uint) Mag {
	switch {
	case v.IsZero():
		return Zero()
	case !v.IsFinite():
		return Inf()
	}
	if prec == bfp.PrecExact {
		return Zero()
	}
	return Pow2(mu.SubExp(v.TopExp(), int64(prec)))
}

// Float64 returns an upper bound of m as a float64. The result may be +Inf.
func (m Mag) Float64() float64 {
	switch {
	case m.inf:
		return math.Inf(1)
	case m.man == 0:
		return 0
	}
	e := m.exp - Bits
	if e > math.MaxInt32 {
		return math.Inf(1)
	}
	if e < math.MinInt32 {
		return math.SmallestNonzeroFloat64
	}
	f := math.Ldexp(float64(m.man), int(e))
	if f < smallestNormal {
		// subnormal results may have been rounded down.
		return math.Nextafter(f, math.Inf(1))
	}
	return f
}
