// Copyright 2020 Aleksandr Demakin. All rights reserved.

package ball

import (
	"github.com/avdva/ball/bfp"
	"github.com/avdva/ball/mag"
	mu "github.com/avdva/ball/internal/mathutil"
)

const midMode = bfp.ToNearestEven

// Add returns x + y.
func (x Ball) Add(y Ball, prec uint) Ball {
	mid, acc := x.Mid.Add(y.Mid, prec, midMode)
	return Ball{Mid: mid, Rad: addErr(x.Rad.Add(y.Rad), mid, prec, acc)}
}

// Sub returns x - y.
func (x Ball) Sub(y Ball, prec uint) Ball {
	return x.Add(y.Neg(), prec)
}

// AddValue returns x + v for an exact v.
func (x Ball) AddValue(v bfp.Value, prec uint) Ball {
	mid, acc := x.Mid.Add(v, prec, midMode)
	return Ball{Mid: mid, Rad: addErr(x.Rad, mid, prec, acc)}
}

// Mul returns x * y.
//	rad = |x.Mid|*y.Rad + |y.Mid|*x.Rad + x.Rad*y.Rad + rounding error
func (x Ball) Mul(y Ball, prec uint) Ball {
	if x.IsExact() {
		return y.MulValue(x.Mid, prec)
	}
	if y.IsExact() {
		return x.MulValue(y.Mid, prec)
	}
	mid, acc := x.Mid.Mul(y.Mid, prec, midMode)
	rad := mag.FromValue(x.Mid).Mul(y.Rad)
	rad = rad.Add(mag.FromValue(y.Mid).Mul(x.Rad))
	rad = rad.Add(x.Rad.Mul(y.Rad))
	return Ball{Mid: mid, Rad: addErr(rad, mid, prec, acc)}
}

// MulValue returns x * v for an exact v.
func (x Ball) MulValue(v bfp.Value, prec uint) Ball {
	mid, acc := x.Mid.Mul(v, prec, midMode)
	rad := mag.FromValue(v).Mul(x.Rad)
	return Ball{Mid: mid, Rad: addErr(rad, mid, prec, acc)}
}

// MulUint64 returns x * u. The integer is exact, so only the midpoint product
// adds a rounding error.
func (x Ball) MulUint64(u uint64, prec uint) Ball {
	mid, acc := x.Mid.Mul(bfp.FromUint64(u), prec, midMode)
	return Ball{Mid: mid, Rad: addErr(x.Rad.MulUint64(u), mid, prec, acc)}
}

// MulInt64 returns x * v.
func (x Ball) MulInt64(v int64, prec uint) Ball {
	res := x.MulUint64(mu.AbsUint64(v), prec)
	if v < 0 {
		return res.Neg()
	}
	return res
}

// MulPow2 returns x * 2^k exactly.
func (x Ball) MulPow2(k int64) Ball {
	return Ball{Mid: x.Mid.MulPow2(k), Rad: x.Rad.MulPow2(k)}
}
