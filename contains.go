// Copyright 2020 Aleksandr Demakin. All rights reserved.

package ball

import (
	"github.com/avdva/ball/bfp"
	"github.com/avdva/ball/mag"
)

// fastPrec is the working precision of the first comparison tier.
const fastPrec = 30

// Contains reports whether every number in y is also in x.
// Contains never returns true if the inclusion does not hold.
//
// For finite balls, each of the two bounds is first compared at fastPrec bits,
// rounding x's bound outwards and y's bound inwards. If that does not
// prove the inclusion, the sign of the exact difference of the bounds is used.
func (x Ball) Contains(y Ball) bool {
	if y.IsExact() {
		return x.ContainsValue(y.Mid)
	}
	switch {
	case y.Mid.IsNaN():
		return x.Mid.IsNaN()
	case x.IsWhole():
		return true
	case y.Rad.IsInf():
		return false
	case !y.Mid.IsFinite():
		return x.ContainsValue(y.Mid)
	case !x.Mid.IsFinite():
		return false
	}
	// x.Mid - x.Rad <= y.Mid - y.Rad
	lower := boundLE(x.Mid, x.Rad, -1, y.Mid, y.Rad, -1)
	// y.Mid + y.Rad <= x.Mid + x.Rad
	return lower && boundLE(y.Mid, y.Rad, 1, x.Mid, x.Rad, 1)
}

// ContainsValue reports whether v is in x.
func (x Ball) ContainsValue(v bfp.Value) bool {
	switch {
	case v.IsNaN():
		return x.Mid.IsNaN()
	case x.IsWhole():
		return true
	case !x.Mid.IsFinite():
		return x.Mid.Equal(v)
	case !v.IsFinite():
		return false
	case x.IsExact():
		return x.Mid.Cmp(v) == 0
	}
	zero := mag.Zero()
	return boundLE(x.Mid, x.Rad, -1, v, zero, 1) && boundLE(v, zero, 1, x.Mid, x.Rad, 1)
}

// ContainsInt64 reports whether v is in x.
func (x Ball) ContainsInt64(v int64) bool {
	return x.ContainsValue(bfp.FromInt64(v))
}

// Overlaps reports whether x and y have a common point.
// Overlaps never returns false if they do.
func (x Ball) Overlaps(y Ball) bool {
	switch {
	case x.IsWhole() || y.IsWhole():
		return true
	case !x.Mid.IsFinite() || !y.Mid.IsFinite():
		return x.Mid.Equal(y.Mid)
	}
	// x.Mid - x.Rad <= y.Mid + y.Rad && y.Mid - y.Rad <= x.Mid + x.Rad
	return boundLE(x.Mid, x.Rad, -1, y.Mid, y.Rad, 1) && boundLE(y.Mid, y.Rad, -1, x.Mid, x.Rad, 1)
}

// boundLE reports whether xm + xs*xr <= ym + ys*yr.
// All the arguments must be finite, xs and ys are +1 or -1.
func boundLE(xm bfp.Value, xr mag.Mag, xs int, ym bfp.Value, yr mag.Mag, ys int) bool {
	xb, yb := signedMag(xr, xs), signedMag(yr, ys)
	// fast tier: t >= xm + xb, u <= ym + yb.
	// The midpoints are rounded first, so the sums only see short mantissas.
	xu, _ := xm.Round(fastPrec, bfp.ToPositiveInf)
	yd, _ := ym.Round(fastPrec, bfp.ToNegativeInf)
	t, _ := xu.Add(xb, fastPrec, bfp.ToPositiveInf)
	u, _ := yd.Add(yb, fastPrec, bfp.ToNegativeInf)
	if t.Cmp(u) <= 0 {
		return true
	}
	// exact tier: the sign of a sum is always exact.
	s, _ := bfp.Sum([]bfp.Value{xm, xb, ym.Neg(), yb.Neg()}, fastPrec, bfp.ToZero)
	return s.Sign() <= 0
}

func signedMag(m mag.Mag, sign int) bfp.Value {
	v := m.Value()
	if sign < 0 {
		return v.Neg()
	}
	return v
}
