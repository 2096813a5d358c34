// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package mathutil contains exponent and bit helpers shared by the
// floating-point, magnitude and ball packages.
package mathutil

import (
	"math"
	"math/big"
	"math/bits"
	"unsafe"
)

// BinaryDigits returns the number of significant bits in 'value'.
func BinaryDigits(value uint64) int {
	return int(8*unsafe.Sizeof(uint64(0))) - bits.LeadingZeros64(value)
}

// BigBinaryDigits returns the number of significant bits in |x|.
func BigBinaryDigits(x *big.Int) int64 {
	return int64(x.BitLen())
}

// AddExp returns a+b and panics on int64 overflow.
// Exponents are unbounded in the model, so an overflow is a programmer error.
func AddExp(a, b int64) int64 {
	c := a + b
	if (c > a) != (b > 0) {
		panic("mathutil: exponent overflow")
	}
	return c
}

// SubExp returns a-b and panics on int64 overflow.
func SubExp(a, b int64) int64 {
	if b == math.MinInt64 {
		panic("mathutil: exponent overflow")
	}
	return AddExp(a, -b)
}

// ExpDiff returns a-b as a shift count, saturating at MaxShift.
// a must not be less than b.
func ExpDiff(a, b int64) uint {
	d := a - b
	if d < 0 || d > MaxShift {
		return MaxShift
	}
	return uint(d)
}

// MaxShift is the largest shift ExpDiff reports.
const MaxShift = 1 << 40

// TrimBig removes trailing zero bits of x in place and returns their count.
// x must not be zero.
func TrimBig(x *big.Int) uint {
	tz := x.TrailingZeroBits()
	if tz > 0 {
		x.Rsh(x, tz)
	}
	return tz
}

// AbsUint64 returns |val| as uint64. Works for math.MinInt64.
func AbsUint64(val int64) uint64 {
	if val < 0 {
		return uint64(-(val + 1)) + 1
	}
	return uint64(val)
}

// CmpInt64 compares a and b. Unlike the sign of a-b, it never overflows.
func CmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MaxInt returns the larger of a and b.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MinInt64 returns the smaller of a and b.
func MinInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
