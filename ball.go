// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package ball implements ball arithmetic: a real number is represented
// by a midpoint and a guaranteed error radius, [mid +/- rad].
//
// The midpoint is an arbitrary-precision binary floating-point value (see bfp),
// the radius is a 30-bit upper bound (see mag). Every operation returns a ball
// containing all results of the exact operation applied to the points of the
// arguments. Precision is always explicit: results are rounded to prec bits
// and the rounding error is added to the radius.
//
// A ball with a not-a-number midpoint, or with an infinite radius, represents
// the whole real line. A ball with a zero radius is exact.
package ball

import (
	"github.com/avdva/ball/bfp"
	"github.com/avdva/ball/mag"
)

// Ball is an enclosure [Mid +/- Rad] of a real number.
// The zero Ball is an exact 0.
type Ball struct {
	Mid bfp.Value
	Rad mag.Mag
}

// New returns a ball with given midpoint and radius.
func New(mid bfp.Value, rad mag.Mag) Ball {
	return Ball{Mid: mid, Rad: rad}
}

// FromValue returns an exact ball for given value.
func FromValue(v bfp.Value) Ball {
	return Ball{Mid: v}
}

// FromInt64 returns an exact ball for given integer.
func FromInt64(v int64) Ball {
	return FromValue(bfp.FromInt64(v))
}

// Whole returns a ball containing every real number.
func Whole() Ball {
	return Ball{Mid: bfp.Zero(), Rad: mag.Inf()}
}

// Indeterminate returns a ball with a not-a-number midpoint.
func Indeterminate() Ball {
	return Ball{Mid: bfp.NaN()}
}

// IsExact reports whether the radius is zero.
func (x Ball) IsExact() bool {
	return x.Rad.IsZero()
}

// IsZero reports whether x is an exact zero.
func (x Ball) IsZero() bool {
	return x.Mid.IsZero() && x.Rad.IsZero()
}

// IsFinite reports whether both the midpoint and the radius are finite.
func (x Ball) IsFinite() bool {
	return x.Mid.IsFinite() && x.Rad.IsFinite()
}

// IsWhole reports whether x represents the whole real line.
func (x Ball) IsWhole() bool {
	return x.Mid.IsNaN() || x.Rad.IsInf()
}

// Equal reports whether x and y have identical midpoints and radii.
func (x Ball) Equal(y Ball) bool {
	return x.Mid.Equal(y.Mid) && x.Rad.Cmp(y.Rad) == 0
}

// Lower returns a lower bound of x, rounded to prec bits.
// The whole line gives -Inf, a not-a-number midpoint gives NaN.
func (x Ball) Lower(prec uint) bfp.Value {
	switch {
	case x.Mid.IsNaN():
		return bfp.NaN()
	case x.Rad.IsInf():
		return bfp.NegInf()
	}
	v, _ := x.Mid.Sub(x.Rad.Value(), prec, bfp.ToNegativeInf)
	return v
}

// Upper returns an upper bound of x, rounded to prec bits.
// The whole line gives +Inf, a not-a-number midpoint gives NaN.
func (x Ball) Upper(prec uint) bfp.Value {
	switch {
	case x.Mid.IsNaN():
		return bfp.NaN()
	case x.Rad.IsInf():
		return bfp.PosInf()
	}
	v, _ := x.Mid.Add(x.Rad.Value(), prec, bfp.ToPositiveInf)
	return v
}

// Neg returns -x.
func (x Ball) Neg() Ball {
	return Ball{Mid: x.Mid.Neg(), Rad: x.Rad}
}

// Abs returns a ball containing |t| for every t in x.
func (x Ball) Abs() Ball {
	if x.Mid.Sign() < 0 {
		return x.Neg()
	}
	return x
}

// Round returns x with the midpoint rounded to prec bits.
func (x Ball) Round(prec uint) Ball {
	mid, acc := x.Mid.Round(prec, bfp.ToNearestEven)
	return Ball{Mid: mid, Rad: addErr(x.Rad, mid, prec, acc)}
}

// addErr adds the error of rounding mid to prec bits to rad.
func addErr(rad mag.Mag, mid bfp.Value, prec uint, acc bfp.Accuracy) mag.Mag {
	if acc == bfp.Exact {
		return rad
	}
	return rad.Add(mag.Ulp(mid, prec))
}
