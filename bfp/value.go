// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package bfp implements an arbitrary-precision binary floating-point number.
// A finite nonzero value is mant * 2^exp, where mant is an odd big integer,
// so every number has exactly one representation. Zero, both infinities and
// not-a-number are separate forms and never carry a mantissa.
//
// Values are immutable: every operation returns a new Value, and the mantissa of
// an existing Value is never modified, so Values can be copied and shared freely.
// Operations that round take an explicit precision in bits and a RoundingMode.
package bfp

import (
	"math"
	"math/big"

	mu "github.com/avdva/ball/internal/mathutil"
)

// Form is the kind of a Value.
type Form byte

// The zero form must stay first, so that the zero Value is 0.
const (
	ZeroForm Form = iota
	FiniteForm
	PosInfForm
	NegInfForm
	NaNForm
)

func (f Form) String() string {
	switch f {
	case ZeroForm:
		return "zero"
	case FiniteForm:
		return "finite"
	case PosInfForm:
		return "+inf"
	case NegInfForm:
		return "-inf"
	case NaNForm:
		return "nan"
	}
	return "unknown"
}

// RoundingMode determines how a value is rounded to the desired precision.
type RoundingMode byte

const (
	// ToNearestEven rounds to the nearest representable value, ties to even.
	ToNearestEven RoundingMode = iota
	// ToZero rounds the magnitude down.
	ToZero
	// AwayFromZero rounds the magnitude up.
	AwayFromZero
	// ToNegativeInf rounds toward -Inf (floor).
	ToNegativeInf
	// ToPositiveInf rounds toward +Inf (ceiling).
	ToPositiveInf
)

func (m RoundingMode) String() string {
	switch m {
	case ToNearestEven:
		return "ToNearestEven"
	case ToZero:
		return "ToZero"
	case AwayFromZero:
		return "AwayFromZero"
	case ToNegativeInf:
		return "ToNegativeInf"
	case ToPositiveInf:
		return "ToPositiveInf"
	}
	return "unknown"
}

// magnitude converts directed modes to ToZero/AwayFromZero for a value of the given sign.
func (m RoundingMode) magnitude(neg bool) RoundingMode {
	switch m {
	case ToNegativeInf:
		if neg {
			return AwayFromZero
		}
		return ToZero
	case ToPositiveInf:
		if neg {
			return ToZero
		}
		return AwayFromZero
	}
	return m
}

// Accuracy describes the rounding error of an operation
// relative to the exact result.
type Accuracy int8

const (
	Below Accuracy = -1
	Exact Accuracy = 0
	Above Accuracy = +1
)

func (a Accuracy) String() string {
	switch a {
	case Below:
		return "Below"
	case Exact:
		return "Exact"
	case Above:
		return "Above"
	}
	return "unknown"
}

// PrecExact is a precision that never rounds.
// Operations at PrecExact return exact results.
const PrecExact = uint(math.MaxInt64)

// Value is a binary floating-point number or one of the special values.
// The zero Value is 0.
type Value struct {
	form Form
	mant *big.Int // odd, set only for FiniteForm; never mutated.
	exp  int64
}

// Zero returns 0.
func Zero() Value {
	return Value{}
}

// NaN returns not-a-number.
func NaN() Value {
	return Value{form: NaNForm}
}

// PosInf returns +Inf.
func PosInf() Value {
	return Value{form: PosInfForm}
}

// NegInf returns -Inf.
func NegInf() Value {
	return Value{form: NegInfForm}
}

// Inf returns -Inf if neg is set, +Inf otherwise.
func Inf(neg bool) Value {
	if neg {
		return NegInf()
	}
	return PosInf()
}

// FromInt64 returns the exact value of x.
func FromInt64(x int64) Value {
	return fromMant(big.NewInt(x), 0)
}

// FromUint64 returns the exact value of x.
func FromUint64(x uint64) Value {
	return fromMant(new(big.Int).SetUint64(x), 0)
}

// FromBigInt returns the exact value of x.
func FromBigInt(x *big.Int) Value {
	return fromMant(new(big.Int).Set(x), 0)
}

// FromMantExp returns the exact value of mant * 2^exp.
func FromMantExp(mant *big.Int, exp int64) Value {
	return fromMant(new(big.Int).Set(mant), exp)
}

// FromFloat64 returns the exact value of f.
func FromFloat64(f float64) Value {
	switch {
	case math.IsNaN(f):
		return NaN()
	case math.IsInf(f, 0):
		return Inf(f < 0)
	case f == 0:
		return Zero()
	}
	frac, e := math.Frexp(f)
	const mantBits = 53
	m := int64(math.Ldexp(frac, mantBits))
	return fromMant(big.NewInt(m), int64(e-mantBits))
}

// fromMant takes ownership of m.
func fromMant(m *big.Int, exp int64) Value {
	v, _ := round(m, exp, PrecExact, ToZero)
	return v
}

func checkPrec(prec uint) {
	if prec == 0 {
		panic("bfp: precision must be positive")
	}
}

// round returns m * 2^exp rounded to prec bits. It takes ownership of m.
func round(m *big.Int, exp int64, prec uint, mode RoundingMode) (Value, Accuracy) {
	checkPrec(prec)
	if m.Sign() == 0 {
		return Value{}, Exact
	}
	exp = mu.AddExp(exp, int64(mu.TrimBig(m)))
	bl := uint(m.BitLen())
	if bl <= prec {
		return Value{form: FiniteForm, mant: m, exp: exp}, Exact
	}
	// m is odd here, so the discarded bits are never all zero.
	// If more than one bit is discarded, the lowest one is set and acts as a sticky bit.
	shift := bl - prec
	neg := m.Sign() < 0
	m.Abs(m)
	half := m.Bit(int(shift-1)) == 1
	sticky := shift > 1
	m.Rsh(m, shift)
	exp = mu.AddExp(exp, int64(shift))
	var inc bool
	switch mode.magnitude(neg) {
	case AwayFromZero:
		inc = true
	case ToNearestEven:
		inc = half && (sticky || m.Bit(0) == 1)
	}
	acc := Below
	if inc {
		m.Add(m, big.NewInt(1))
		acc = Above
	}
	// the kept bits may end with zeros, with or without the increment.
	exp = mu.AddExp(exp, int64(mu.TrimBig(m)))
	if neg {
		m.Neg(m)
		acc = -acc
	}
	return Value{form: FiniteForm, mant: m, exp: exp}, acc
}

// Form returns the form of x.
func (x Value) Form() Form {
	return x.form
}

// IsZero reports whether x is 0.
func (x Value) IsZero() bool {
	return x.form == ZeroForm
}

// IsNaN reports whether x is not-a-number.
func (x Value) IsNaN() bool {
	return x.form == NaNForm
}

// IsInf reports whether x is +Inf or -Inf.
func (x Value) IsInf() bool {
	return x.form == PosInfForm || x.form == NegInfForm
}

// IsFinite reports whether x is zero or a finite nonzero number.
func (x Value) IsFinite() bool {
	return x.form == ZeroForm || x.form == FiniteForm
}

// IsSpecial reports whether x is zero, an infinity or not-a-number.
func (x Value) IsSpecial() bool {
	return x.form != FiniteForm
}

// Sign returns -1 if x < 0, +1 if x > 0, and 0 if x is zero or not-a-number.
func (x Value) Sign() int {
	switch x.form {
	case FiniteForm:
		return x.mant.Sign()
	case PosInfForm:
		return 1
	case NegInfForm:
		return -1
	}
	return 0
}

// Mant returns a copy of the mantissa of a finite value, or nil.
func (x Value) Mant() *big.Int {
	if x.form != FiniteForm {
		return nil
	}
	return new(big.Int).Set(x.mant)
}

// Exp returns the exponent of a finite value, or 0.
func (x Value) Exp() int64 {
	if x.form != FiniteForm {
		return 0
	}
	return x.exp
}

// MinPrec returns the minimum precision required to represent x exactly.
// The result is 0 for special values.
func (x Value) MinPrec() uint {
	if x.form != FiniteForm {
		return 0
	}
	return uint(x.mant.BitLen())
}

// TopExp returns such t, that 2^(t-1) <= |x| < 2^t.
// x must be finite and nonzero.
func (x Value) TopExp() int64 {
	if x.form != FiniteForm {
		panic("bfp: TopExp of a special value")
	}
	return mu.AddExp(x.exp, mu.BigBinaryDigits(x.mant))
}

// Neg returns -x.
func (x Value) Neg() Value {
	switch x.form {
	case FiniteForm:
		return Value{form: FiniteForm, mant: new(big.Int).Neg(x.mant), exp: x.exp}
	case PosInfForm:
		return NegInf()
	case NegInfForm:
		return PosInf()
	}
	return x
}

// Abs returns |x|.
func (x Value) Abs() Value {
	if x.Sign() < 0 {
		return x.Neg()
	}
	return x
}

// MulPow2 returns x * 2^k exactly.
func (x Value) MulPow2(k int64) Value {
	if x.form != FiniteForm {
		return x
	}
	return Value{form: FiniteForm, mant: x.mant, exp: mu.AddExp(x.exp, k)}
}

// Round returns x rounded to prec bits.
func (x Value) Round(prec uint, mode RoundingMode) (Value, Accuracy) {
	checkPrec(prec)
	if x.form != FiniteForm || uint(x.mant.BitLen()) <= prec {
		return x, Exact
	}
	return round(new(big.Int).Set(x.mant), x.exp, prec, mode)
}

// Equal reports whether x and y have identical representations.
// Unlike Cmp, NaN is equal to NaN.
func (x Value) Equal(y Value) bool {
	if x.form != y.form {
		return false
	}
	if x.form != FiniteForm {
		return true
	}
	return x.exp == y.exp && x.mant.Cmp(y.mant) == 0
}

// Cmp compares x and y.
// Returns -1 if x < y, 0 if x == y, 1 if x > y.
// Cmp returns 0 if any of the arguments is not-a-number.
func (x Value) Cmp(y Value) int {
	if x.form == NaNForm || y.form == NaNForm {
		return 0
	}
	rx, ry := x.rank(), y.rank()
	switch {
	case rx < ry:
		return -1
	case rx > ry:
		return 1
	case x.form != FiniteForm:
		return 0
	}
	return cmpAbs(x, y) * x.mant.Sign()
}

// rank orders values by sign class: -Inf, negative, zero, positive, +Inf.
func (x Value) rank() int {
	switch x.form {
	case NegInfForm:
		return -2
	case PosInfForm:
		return 2
	}
	return x.Sign()
}

// CmpAbs compares |x| and |y|. NaN compares as equal to everything.
func (x Value) CmpAbs(y Value) int {
	return x.Abs().Cmp(y.Abs())
}

func cmpAbs(x, y Value) int {
	tx, ty := x.TopExp(), y.TopExp()
	switch {
	case tx < ty:
		return -1
	case tx > ty:
		return 1
	}
	// equal top exponents, so the exponent difference is below the mantissa length.
	if x.exp >= y.exp {
		return new(big.Int).Lsh(x.mant, uint(x.exp-y.exp)).CmpAbs(y.mant)
	}
	return x.mant.CmpAbs(new(big.Int).Lsh(y.mant, uint(y.exp-x.exp)))
}

// Mul returns x*y rounded to prec bits. Products involving special values
// follow the special-value table and are always Exact:
//	0 * finite = 0 * 0 = 0
//	0 * ±Inf = 0 * NaN = NaN
//	±Inf * ±Inf, ±Inf * finite = ±Inf, with the product of signs
//	anything else involving NaN = NaN
func (x Value) Mul(y Value, prec uint, mode RoundingMode) (Value, Accuracy) {
	checkPrec(prec)
	if x.form != FiniteForm || y.form != FiniteForm {
		return mulSpecial(x, y), Exact
	}
	m := new(big.Int).Mul(x.mant, y.mant)
	return round(m, mu.AddExp(x.exp, y.exp), prec, mode)
}

// MulExact returns the exact product x*y.
func (x Value) MulExact(y Value) Value {
	v, _ := x.Mul(y, PrecExact, ToZero)
	return v
}

func mulSpecial(x, y Value) Value {
	if x.form == ZeroForm {
		if y.form == ZeroForm || y.form == FiniteForm {
			return Zero()
		}
		return NaN()
	}
	if y.form == ZeroForm {
		if x.form == FiniteForm {
			return Zero()
		}
		return NaN()
	}
	if (x.IsInf() && (y.IsInf() || y.form == FiniteForm)) || (y.IsInf() && x.form == FiniteForm) {
		return Inf(x.Sign() != y.Sign())
	}
	return NaN()
}
