// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bfp

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// maxDecimalExp is the largest |exp| for which Decimal conversions are attempted.
// Larger exponents are printed in the mant*2^exp notation.
const maxDecimalExp = 1 << 16

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

// FromString parses a number rounded to prec bits.
// Accepted formats are decimal literals ("1.25", "-3e-7"), the binary
// notation "mant*2^exp" and the special values "0", "nan", "inf", "+inf", "-inf".
// With PrecExact, decimal literals which are not dyadic fractions give an error.
func FromString(s string, prec uint, mode RoundingMode) (Value, error) {
	checkPrec(prec)
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Zero(), fmt.Errorf("empty input")
	}
	switch strings.ToLower(s) {
	case "nan":
		return NaN(), nil
	case "inf", "+inf", "infinity", "+infinity":
		return PosInf(), nil
	case "-inf", "-infinity":
		return NegInf(), nil
	}
	if idx := strings.Index(s, "*2^"); idx >= 0 {
		v, err := parseBinary(s, idx)
		if err != nil {
			return Zero(), fmt.Errorf("parsing failed: %w", err)
		}
		v, _ = v.Round(prec, mode)
		return v, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero(), fmt.Errorf("parsing failed: %w", err)
	}
	return FromDecimal(d, prec, mode)
}

// MustFromString is like FromString, but panics on errors.
func MustFromString(s string, prec uint, mode RoundingMode) Value {
	v, err := FromString(s, prec, mode)
	if err != nil {
		panic(err)
	}
	return v
}

func parseBinary(s string, idx int) (Value, error) {
	m, ok := new(big.Int).SetString(s[:idx], 10)
	if !ok {
		return Zero(), newPosError("bad mantissa", 1)
	}
	expStr := s[idx+len("*2^"):]
	e, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return Zero(), newPosError(fmt.Sprintf("bad exponent %q", expStr), idx+len("*2^")+1)
	}
	return fromMant(m, e), nil
}

// FromDecimal returns d rounded to prec bits.
func FromDecimal(d decimal.Decimal, prec uint, mode RoundingMode) (Value, error) {
	checkPrec(prec)
	coef, e10 := d.Coefficient(), int64(d.Exponent())
	if coef.Sign() == 0 {
		return Zero(), nil
	}
	if e10 >= 0 {
		m := new(big.Int).Mul(coef, new(big.Int).Exp(big.NewInt(10), big.NewInt(e10), nil))
		v, _ := round(m, 0, prec, mode)
		return v, nil
	}
	// coef * 10^e10 = (coef / 5^k) * 2^-k
	k := -e10
	den := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	if prec == PrecExact {
		q, r := new(big.Int).QuoRem(coef, den, new(big.Int))
		if r.Sign() != 0 {
			return Zero(), fmt.Errorf("%s is not exactly representable", d.String())
		}
		return fromMant(q, -k), nil
	}
	v, _ := quoRound(coef, den, -k, prec, mode)
	return v, nil
}

// quoRound returns (num/den) * 2^exp rounded to prec bits. den must be positive.
func quoRound(num, den *big.Int, exp int64, prec uint, mode RoundingMode) (Value, Accuracy) {
	// scale num, so that the quotient has at least prec+2 bits,
	// then a nonzero remainder is represented by a sticky bit.
	s := int64(prec) + 3 + int64(den.BitLen()) - int64(num.BitLen())
	if s < 0 {
		s = 0
	}
	n := new(big.Int).Lsh(num, uint(s))
	q, r := n.QuoRem(n, den, new(big.Int))
	if r.Sign() != 0 {
		q.Lsh(q, 1)
		q.Add(q, big.NewInt(int64(num.Sign())))
		s++
	}
	return round(q, exp-s, prec, mode)
}

// Decimal returns the exact decimal representation of a finite x.
// ok is false for infinities, not-a-number, and exponents too large to convert.
func (x Value) Decimal() (d decimal.Decimal, ok bool) {
	switch x.form {
	case ZeroForm:
		return decimal.Zero, true
	case FiniteForm:
	default:
		return decimal.Zero, false
	}
	if x.exp > maxDecimalExp || x.exp < -maxDecimalExp {
		return decimal.Zero, false
	}
	if x.exp >= 0 {
		return decimal.NewFromBigInt(new(big.Int).Lsh(x.mant, uint(x.exp)), 0), true
	}
	// m * 2^-k = m * 5^k * 10^-k
	k := -x.exp
	coef := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	coef.Mul(coef, x.mant)
	return decimal.NewFromBigInt(coef, int32(x.exp)), true
}

// Rat returns the exact rational value of a finite x, or nil, false.
func (x Value) Rat() (*big.Rat, bool) {
	switch x.form {
	case ZeroForm:
		return new(big.Rat), true
	case FiniteForm:
	default:
		return nil, false
	}
	if x.exp >= 0 {
		return new(big.Rat).SetInt(new(big.Int).Lsh(x.mant, uint(x.exp))), true
	}
	den := new(big.Int).Lsh(big.NewInt(1), uint(-x.exp))
	return new(big.Rat).SetFrac(x.mant, den), true
}

// Float64 returns the float64 value nearest to x.
func (x Value) Float64() (float64, Accuracy) {
	switch x.form {
	case ZeroForm:
		return 0, Exact
	case PosInfForm:
		return math.Inf(1), Exact
	case NegInfForm:
		return math.Inf(-1), Exact
	case NaNForm:
		return math.NaN(), Exact
	}
	f := new(big.Float).SetInt(x.mant)
	if x.exp > math.MaxInt32 {
		return math.Inf(x.Sign()), makeAcc(x.Sign() > 0)
	}
	if x.exp < math.MinInt32 {
		// the result underflows. Copysign keeps the sign of a zero.
		return math.Copysign(0, float64(x.Sign())), makeAcc(x.Sign() < 0)
	}
	f.SetMantExp(f, int(x.exp))
	res, acc := f.Float64()
	return res, Accuracy(acc)
}

func makeAcc(above bool) Accuracy {
	if above {
		return Above
	}
	return Below
}

// Text returns x as a decimal string, rounded to digits significant digits.
// If digits <= 0, the exact value is written.
func (x Value) Text(digits int) string {
	switch x.form {
	case ZeroForm:
		return "0"
	case PosInfForm:
		return "+inf"
	case NegInfForm:
		return "-inf"
	case NaNForm:
		return "nan"
	}
	d, ok := x.Decimal()
	if !ok {
		return x.binaryString()
	}
	if digits > 0 {
		nd := len(new(big.Int).Abs(d.Coefficient()).String())
		if extra := nd - digits; extra > 0 {
			// keep 'digits' digits, the lowest one at position exp+extra.
			d = d.Round(-(d.Exponent() + int32(extra)))
		}
	}
	return d.String()
}

// String returns x with up to 20 significant digits.
func (x Value) String() string {
	return x.Text(20)
}

// GoString returns the exact representation of x in the mant*2^exp notation.
func (x Value) GoString() string {
	if x.form != FiniteForm {
		return x.Text(0)
	}
	return x.binaryString()
}

func (x Value) binaryString() string {
	return x.mant.String() + "*2^" + strconv.FormatInt(x.exp, 10)
}
