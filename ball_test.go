// Copyright 2020 Aleksandr Demakin. All rights reserved.

package ball

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/avdva/ball/bfp"
	"github.com/avdva/ball/mag"
	"github.com/stretchr/testify/assert"
)

func pow2(e int64) bfp.Value {
	return bfp.FromMantExp(big.NewInt(1), e)
}

func exactSum(terms ...bfp.Value) bfp.Value {
	v, _ := bfp.Sum(terms, bfp.PrecExact, bfp.ToZero)
	return v
}

func TestContains(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x, y string
		res  bool
	}{
		{"[1 +/- 1]", "[0.5 +/- 0.5]", true},
		{"[1 +/- 1]", "[1.5 +/- 0.5]", true},
		{"[1 +/- 1]", "[1.5 +/- 0.5000001]", false},
		{"[1 +/- 1]", "[1 +/- 1]", true},
		{"[1 +/- 1]", "[1 +/- 2]", false},
		{"[1 +/- 1]", "2", true},
		{"[1 +/- 1]", "0", true},
		{"[1 +/- 1]", "2.0000001", false},
		{"[1 +/- 1]", "-0.0001", false},
		{"[1 +/- 1]", "[-3 +/- 0.5]", false},
		{"1", "1", true},
		{"1", "[1 +/- 0.001]", false},
		{"nan", "[5 +/- 1]", true},
		{"nan", "nan", true},
		{"[5 +/- 1]", "nan", false},
		{"[5 +/- 1]", "[nan +/- 1]", false},
		{"[0 +/- inf]", "[1e100 +/- 1]", true},
		{"[0 +/- inf]", "inf", true},
		{"[0 +/- inf]", "nan", false},
		{"[1 +/- 1]", "[0 +/- inf]", false},
		{"[0 +/- inf]", "[7 +/- inf]", true},
		{"inf", "inf", true},
		{"[inf +/- 1]", "inf", true},
		{"[inf +/- 1]", "[inf +/- 3]", true},
		{"[1 +/- 1]", "inf", false},
		{"[1 +/- 1]", "[inf +/- 1]", false},
		{"[inf +/- 1]", "5", false},
		{"[inf +/- 1]", "[5 +/- 1]", false},
		{"[inf +/- 1]", "-inf", false},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x, y := MustParse(test.x, 53), MustParse(test.y, 53)
			a.Equal(test.res, x.Contains(y), "%s contains %s", test.x, test.y)
		})
	}
}

func TestContainsNearBoundary(t *testing.T) {
	a := assert.New(t)
	one, half, tiny := bfp.FromInt64(1), mag.Pow2(-1), pow2(-2000)
	x := New(one, half)

	// the upper bound of y exceeds the upper bound of x by 2^-2000.
	y := New(exactSum(one, tiny), half)
	a.False(x.Contains(y))
	a.True(x.Overlaps(y))
	a.True(y.Overlaps(x))

	// the lower bound of y is below the lower bound of x by 2^-2000.
	y = New(exactSum(one, tiny.Neg()), half)
	a.False(x.Contains(y))

	// coinciding lower bounds, y is shorter.
	y = New(exactSum(one, bfp.FromInt64(-1).MulPow2(-2), tiny.Neg()), mag.Pow2(-2))
	a.False(x.Contains(y))
	y = New(exactSum(one, bfp.FromInt64(-1).MulPow2(-2), tiny), mag.Pow2(-2))
	a.True(x.Contains(y))
	y = New(exactSum(one, bfp.FromInt64(-1).MulPow2(-2)), mag.Pow2(-2))
	a.True(x.Contains(y))

	// the gap between touching balls.
	z := New(exactSum(bfp.FromInt64(2), tiny), half)
	a.False(x.Overlaps(z))
	z = New(bfp.FromInt64(2), half)
	a.True(x.Overlaps(z))
	a.True(z.Overlaps(x))

	a.True(x.ContainsValue(exactSum(one, half.Value())))
	a.False(x.ContainsValue(exactSum(one, half.Value(), tiny)))
	a.True(x.ContainsValue(exactSum(one, half.Value().Neg(), tiny)))
	a.False(x.ContainsValue(exactSum(one, half.Value().Neg(), tiny.Neg())))

	// long midpoints far from the bounds.
	w := New(exactSum(one, tiny), mag.FromUint64(1))
	a.True(w.Contains(x))
	a.True(w.Contains(New(exactSum(one, tiny.Neg()), half)))
	a.False(x.Contains(w))
	a.False(New(exactSum(bfp.FromInt64(3), tiny), half).Overlaps(w))
}

func TestOverlaps(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x, y string
		res  bool
	}{
		{"[0 +/- 1]", "[2 +/- 1]", true},
		{"[0 +/- 1]", "[2.0000001 +/- 1]", false},
		{"[0 +/- 1]", "[-2.0000001 +/- 1]", false},
		{"[0 +/- 1]", "0.5", true},
		{"3", "3", true},
		{"3", "[3.5 +/- 0.25]", false},
		{"nan", "5", true},
		{"[0 +/- inf]", "[1e300 +/- 1]", true},
		{"inf", "inf", true},
		{"inf", "-inf", false},
		{"inf", "[5 +/- 1]", false},
		{"[0 +/- inf]", "-inf", true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x, y := MustParse(test.x, 53), MustParse(test.y, 53)
			a.Equal(test.res, x.Overlaps(y))
			a.Equal(test.res, y.Overlaps(x))
		})
	}
}

func TestPredicates(t *testing.T) {
	a := assert.New(t)
	var zero Ball
	a.True(zero.IsZero())
	a.True(zero.IsExact())
	a.True(zero.IsFinite())
	a.False(zero.IsWhole())
	a.True(Whole().IsWhole())
	a.False(Whole().IsFinite())
	a.True(Indeterminate().IsWhole())
	a.True(Indeterminate().IsExact())
	a.False(New(bfp.Zero(), mag.Pow2(-5)).IsZero())
	a.True(FromInt64(-3).Abs().Equal(FromInt64(3)))
	a.True(FromInt64(7).ContainsInt64(7))
	a.False(FromInt64(7).ContainsInt64(8))
	a.True(MustParse("[7 +/- 1]", 53).ContainsInt64(8))
}

func TestBounds(t *testing.T) {
	a := assert.New(t)
	x := MustParse("[1 +/- 0.5]", 53)
	a.Equal(0, x.Lower(53).Cmp(bfp.MustFromString("0.5", 53, bfp.ToZero)))
	a.Equal(0, x.Upper(53).Cmp(bfp.MustFromString("1.5", 53, bfp.ToZero)))
	a.True(Whole().Lower(53).Equal(bfp.NegInf()))
	a.True(Whole().Upper(53).Equal(bfp.PosInf()))
	a.True(Indeterminate().Lower(53).IsNaN())
	a.True(Indeterminate().Upper(53).IsNaN())

	// bounds are rounded outwards.
	x = New(bfp.FromInt64(1), mag.Pow2(-100))
	a.True(x.Lower(10).Cmp(bfp.FromInt64(1)) < 0)
	a.True(x.Upper(10).Cmp(bfp.FromInt64(1)) > 0)
}

func TestArith(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		res Ball
		exp string
	}{
		{MustParse("[1 +/- 0.5]", 53).Add(MustParse("[2 +/- 0.25]", 53), 53), "[3 +/- 0.75]"},
		{MustParse("[1 +/- 0.5]", 53).Sub(MustParse("[2 +/- 0.25]", 53), 53), "[-1 +/- 0.75]"},
		{MustParse("[2 +/- 1]", 53).Mul(MustParse("[3 +/- 1]", 53), 53), "[6 +/- 6]"},
		{MustParse("[2 +/- 1]", 53).Mul(FromInt64(-3), 53), "[-6 +/- 3]"},
		{FromInt64(-3).Mul(MustParse("[2 +/- 1]", 53), 53), "[-6 +/- 3]"},
		{MustParse("[1.5 +/- 0.25]", 53).MulUint64(3, 53), "[4.5 +/- 0.75]"},
		{MustParse("[1.5 +/- 0.25]", 53).MulInt64(-3, 53), "[-4.5 +/- 0.75]"},
		{MustParse("[1.5 +/- 0.25]", 53).MulPow2(2), "[6 +/- 1]"},
		{MustParse("[1.5 +/- 0.25]", 53).AddValue(bfp.FromInt64(1), 53), "[2.5 +/- 0.25]"},
		{MustParse("[1.5 +/- 0.25]", 53).MulValue(bfp.FromInt64(2), 53), "[3 +/- 0.5]"},
		{MustParse("[1.5 +/- 0.25]", 53).Neg(), "[-1.5 +/- 0.25]"},
		{FromInt64(5).MulUint64(0, 53), "0"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.exp, test.res.String())
		})
	}
}

func TestArithRounding(t *testing.T) {
	a := assert.New(t)
	one, tiny := FromInt64(1), FromValue(pow2(-100))
	sum := one.Add(tiny, 10)
	a.True(sum.Mid.Equal(bfp.FromInt64(1)))
	a.Equal(0, sum.Rad.Cmp(mag.Pow2(-9)))
	a.True(sum.ContainsValue(exactSum(bfp.FromInt64(1), pow2(-100))))

	// 3 * (2^20 + 1) needs 22 bits.
	x := FromValue(bfp.FromInt64(1<<20 + 1))
	prod := x.MulUint64(3, 8)
	a.False(prod.IsExact())
	a.True(prod.ContainsInt64(3 * (1<<20 + 1)))

	r := FromValue(bfp.FromInt64(1<<20 + 1)).Round(8)
	a.True(r.ContainsInt64(1<<20 + 1))
	a.False(r.IsExact())
	a.True(FromInt64(5).Round(8).IsExact())
}

func TestArithExact(t *testing.T) {
	a := assert.New(t)
	x := MustParse("[1.5 +/- 0.25]", 53)
	tiny := FromValue(pow2(-300))
	sum := x.Add(tiny, bfp.PrecExact)
	a.True(sum.Mid.Equal(exactSum(bfp.FromMantExp(big.NewInt(3), -1), pow2(-300))))
	a.Equal(0, sum.Rad.Cmp(mag.Pow2(-2)))

	diff := tiny.Sub(FromInt64(1), bfp.PrecExact)
	a.True(diff.IsExact())
	a.Equal(uint(300), diff.Mid.MinPrec())

	prod := sum.Mul(FromValue(pow2(-300)).AddValue(bfp.FromInt64(1), bfp.PrecExact), bfp.PrecExact)
	a.True(prod.ContainsValue(exactSum(bfp.FromMantExp(big.NewInt(3), -1), pow2(-300))))
	a.True(FromInt64(3).Mul(FromValue(bfp.FromMantExp(big.NewInt(1), -1)), bfp.PrecExact).Equal(MustParse("1.5", 53)))
}

func TestArithSpecial(t *testing.T) {
	a := assert.New(t)
	inf := FromValue(bfp.PosInf())
	a.True(inf.Mul(FromInt64(0), 53).Mid.IsNaN())
	a.True(inf.Add(FromValue(bfp.NegInf()), 53).Mid.IsNaN())
	a.True(inf.Mul(MustParse("[1 +/- 2]", 53), 53).IsWhole())
	a.True(FromInt64(0).Mul(Whole(), 53).IsZero())
	a.True(Indeterminate().Add(FromInt64(1), 53).IsWhole())
	a.True(Whole().MulUint64(3, 53).IsWhole())
	a.True(inf.AddValue(bfp.FromInt64(1), 53).Mid.Equal(bfp.PosInf()))
}

func TestParse(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s   string
		res Ball
		err string
	}{
		{"5", FromInt64(5), ""},
		{"  [5]  ", FromInt64(5), ""},
		{"[1.5 +/- 0.25]", New(bfp.MustFromString("1.5", 53, bfp.ToZero), mag.Pow2(-2)), ""},
		{"[1.5±0.25]", New(bfp.MustFromString("1.5", 53, bfp.ToZero), mag.Pow2(-2)), ""},
		{"[-3*2^-2 +/- 1*2^-3]", New(bfp.MustFromString("-0.75", 53, bfp.ToZero), mag.Pow2(-3)), ""},
		{"[nan +/- 1]", New(bfp.NaN(), mag.Pow2(0)), ""},
		{"[0 +/- inf]", Whole(), ""},
		{"", Ball{}, "empty input"},
		{"[1 +/- 2", Ball{}, "missing ']' at pos 8"},
		{"[abc]", Ball{}, "parsing failed"},
		{"[1 +/- -2]", Ball{}, "bad magnitude"},
		{"[1 +/- x]", Ball{}, "at pos 4"},
		{"1.2.3", Ball{}, "parsing failed"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			b, err := Parse(test.s, 53)
			if len(test.err) > 0 {
				if a.Error(err) {
					a.Contains(err.Error(), test.err)
				}
				return
			}
			if a.NoError(err) {
				a.True(test.res.Equal(b), "got %s", b)
			}
		})
	}
	a.Panics(func() { MustParse("[", 53) })

	// an inexact midpoint is rounded and the error is added to the radius.
	b, err := Parse("0.1", 20)
	a.NoError(err)
	a.False(b.IsExact())
	a.True(b.Contains(MustParse("0.1", 100)))
}

func TestText(t *testing.T) {
	a := assert.New(t)
	a.Equal("5", FromInt64(5).String())
	a.Equal("[1.5 +/- 0.25]", MustParse("[1.5 +/- 0.25]", 53).String())
	a.Equal("nan", Indeterminate().String())
	a.Equal("[0 +/- inf]", Whole().String())

	for _, s := range []string{"0.1", "[3.14159 +/- 0.001]", "[-2.718281828459045235360287 +/- 1e-30]", "[1e-40 +/- 1e-45]", "123456789.123456789"} {
		for _, digits := range []int{0, 3, 10, 20} {
			x := MustParse(s, 128)
			written := x.Text(digits)
			back, err := Parse(written, 128)
			if a.NoError(err, written) {
				a.True(back.Contains(x), "%s printed as %s", s, written)
			}
		}
	}
}
