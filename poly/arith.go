// Copyright 2020 Aleksandr Demakin. All rights reserved.

package poly

import (
	"github.com/avdva/ball"
	mu "github.com/avdva/ball/internal/mathutil"
)

// Add sets z to p+q.
func (z *Poly) Add(p, q *Poly, prec uint) *Poly {
	n := mu.MaxInt(p.length, q.length)
	z.FitLength(n)
	addSlices(z.coeffs[:n], p.coeffs[:p.length], q.coeffs[:q.length], prec)
	return z.setLen(n)
}

// Sub sets z to p-q.
func (z *Poly) Sub(p, q *Poly, prec uint) *Poly {
	n := mu.MaxInt(p.length, q.length)
	z.FitLength(n)
	res, a, b := z.coeffs[:n], p.coeffs[:p.length], q.coeffs[:q.length]
	for i := range res {
		switch {
		case i < len(a) && i < len(b):
			res[i] = a[i].Sub(b[i], prec)
		case i < len(a):
			res[i] = a[i]
		default:
			res[i] = b[i].Neg()
		}
	}
	return z.setLen(n)
}

// ScalarMul sets z to c*p.
func (z *Poly) ScalarMul(p *Poly, c ball.Ball, prec uint) *Poly {
	n := p.length
	z.FitLength(n)
	scalarMulSlice(z.coeffs[:n], p.coeffs[:n], c, prec)
	return z.setLen(n)
}

// Mul sets z to the full product p*q.
func (z *Poly) Mul(p, q *Poly, prec uint) *Poly {
	if p.length == 0 || q.length == 0 {
		return z.Zero()
	}
	n := p.length + q.length - 1
	if z == p || z == q {
		t := New(n)
		mulSlices(t.coeffs[:n], p.coeffs[:p.length], q.coeffs[:q.length], prec)
		z.Swap(t.setLen(n))
		return z
	}
	z.SetLength(0).FitLength(n)
	mulSlices(z.coeffs[:n], p.coeffs[:p.length], q.coeffs[:q.length], prec)
	return z.setLen(n)
}

// Evaluate returns p(x).
func (p *Poly) Evaluate(x ball.Ball, prec uint) ball.Ball {
	return evaluate(p.coeffs[:p.length], x, prec)
}

// Derivative sets z to the derivative of p.
// The coefficients are multiplied by exact integers, so only the
// rounding of the midpoints to prec bits widens them.
func (z *Poly) Derivative(p *Poly, prec uint) *Poly {
	n := p.length - 1
	if n <= 0 {
		return z.Zero()
	}
	z.FitLength(n)
	// z may be p: coefficient i+1 is read before coefficient i is written.
	for i := 0; i < n; i++ {
		z.coeffs[i] = p.coeffs[i+1].MulUint64(uint64(i+1), prec)
	}
	return z.setLen(n)
}

// setLen sets the length to the number of coefficients just written,
// clears the stale ones past it and normalizes z.
func (z *Poly) setLen(n int) *Poly {
	for i := n; i < z.length; i++ {
		z.coeffs[i] = ball.Ball{}
	}
	z.length = n
	return z.Normalize()
}

// addSlices sets res to a+b, zero padded. len(res) must be max(len(a), len(b)).
// res may alias a or b.
func addSlices(res, a, b []ball.Ball, prec uint) {
	for i := range res {
		switch {
		case i < len(a) && i < len(b):
			res[i] = a[i].Add(b[i], prec)
		case i < len(a):
			res[i] = a[i]
		default:
			res[i] = b[i]
		}
	}
}

// scalarMulSlice sets res to c*a. res may alias a.
func scalarMulSlice(res, a []ball.Ball, c ball.Ball, prec uint) {
	for i := range a {
		res[i] = a[i].Mul(c, prec)
	}
}

// mulSlices sets res to the full product of a and b, both nonempty.
// len(res) must be len(a)+len(b)-1, res must not alias a or b.
func mulSlices(res, a, b []ball.Ball, prec uint) {
	for i := range res {
		res[i] = ball.Ball{}
	}
	for i := range a {
		if a[i].IsZero() {
			continue
		}
		for j := range b {
			if b[j].IsZero() {
				continue
			}
			res[i+j] = res[i+j].Add(a[i].Mul(b[j], prec), prec)
		}
	}
}

func evaluate(a []ball.Ball, x ball.Ball, prec uint) ball.Ball {
	if len(a) == 0 {
		return ball.Ball{}
	}
	y := a[len(a)-1]
	for i := len(a) - 2; i >= 0; i-- {
		y = y.Mul(x, prec).Add(a[i], prec)
	}
	return y
}
