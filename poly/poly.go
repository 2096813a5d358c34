// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package poly implements polynomials with ball coefficients.
//
// Operations follow the receiver-is-result convention: z.Op(x, y, prec) sets z
// to the result and returns z. Unless documented otherwise, z may be one of the
// arguments. Every coefficient operation is performed at the given precision,
// and the rounding errors are carried in the coefficient radii.
package poly

import (
	"strings"

	"github.com/avdva/ball"
)

// Poly is a polynomial c[0] + c[1]*x + ... + c[n-1]*x^(n-1).
// The storage may be larger than the length; coefficients past the length
// are exact zeros, and the last coefficient within the length is never an exact zero.
// The zero Poly is the zero polynomial.
type Poly struct {
	coeffs []ball.Ball
	length int
}

// New returns a zero polynomial with storage for capacity coefficients.
func New(capacity int) *Poly {
	if capacity < 0 {
		panic("poly: negative capacity")
	}
	return &Poly{coeffs: make([]ball.Ball, capacity)}
}

// FromBalls returns a polynomial with given coefficients, lowest degree first.
func FromBalls(coeffs ...ball.Ball) *Poly {
	p := New(len(coeffs))
	copy(p.coeffs, coeffs)
	p.length = len(coeffs)
	return p.Normalize()
}

// FromInt64s returns a polynomial with given exact integer coefficients.
func FromInt64s(coeffs ...int64) *Poly {
	p := New(len(coeffs))
	for i, c := range coeffs {
		p.coeffs[i] = ball.FromInt64(c)
	}
	p.length = len(coeffs)
	return p.Normalize()
}

// Len returns the number of coefficients.
func (p *Poly) Len() int {
	return p.length
}

// Cap returns the number of coefficients p can hold without reallocation.
func (p *Poly) Cap() int {
	return len(p.coeffs)
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p *Poly) Degree() int {
	return p.length - 1
}

// Coeff returns the coefficient of x^i. Coefficients past the length are zero.
func (p *Poly) Coeff(i int) ball.Ball {
	if i < 0 {
		panic("poly: negative index")
	}
	if i >= p.length {
		return ball.Ball{}
	}
	return p.coeffs[i]
}

// Coeffs returns a copy of the coefficients.
func (p *Poly) Coeffs() []ball.Ball {
	return append([]ball.Ball(nil), p.coeffs[:p.length]...)
}

// FitLength makes sure p can hold n coefficients. The length is not changed.
func (p *Poly) FitLength(n int) *Poly {
	if n < 0 {
		panic("poly: negative length")
	}
	if n <= len(p.coeffs) {
		return p
	}
	alloc := 2 * len(p.coeffs)
	if alloc < n {
		alloc = n
	}
	coeffs := make([]ball.Ball, alloc)
	copy(coeffs, p.coeffs[:p.length])
	p.coeffs = coeffs
	return p
}

// SetLength sets the length of p to n, growing the storage if needed.
// Coefficients past the new length are cleared, new ones are zero.
// SetLength does not normalize p.
func (p *Poly) SetLength(n int) *Poly {
	p.FitLength(n)
	for i := n; i < p.length; i++ {
		p.coeffs[i] = ball.Ball{}
	}
	p.length = n
	return p
}

// Normalize drops the trailing exact zero coefficients.
func (p *Poly) Normalize() *Poly {
	for p.length > 0 && p.coeffs[p.length-1].IsZero() {
		p.length--
	}
	return p
}

// SetCoeff sets the coefficient of x^i to c.
func (p *Poly) SetCoeff(i int, c ball.Ball) *Poly {
	if i < 0 {
		panic("poly: negative index")
	}
	if i >= p.length {
		if c.IsZero() {
			return p
		}
		p.SetLength(i + 1)
	}
	p.coeffs[i] = c
	return p.Normalize()
}

// Zero sets z to the zero polynomial.
func (z *Poly) Zero() *Poly {
	return z.SetLength(0)
}

// Set sets z to a copy of p.
func (z *Poly) Set(p *Poly) *Poly {
	if z == p {
		return z
	}
	n := p.length
	z.SetLength(0).FitLength(n)
	copy(z.coeffs, p.coeffs[:n])
	z.length = n
	return z
}

// SetBall sets z to the constant polynomial c.
func (z *Poly) SetBall(c ball.Ball) *Poly {
	z.SetLength(1)
	z.coeffs[0] = c
	return z.Normalize()
}

// Swap exchanges the contents of z and p.
func (z *Poly) Swap(p *Poly) {
	*z, *p = *p, *z
}

// Equal reports whether p and q have identical coefficients.
func (p *Poly) Equal(q *Poly) bool {
	if p.length != q.length {
		return false
	}
	for i := 0; i < p.length; i++ {
		if !p.coeffs[i].Equal(q.coeffs[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether every coefficient of q is contained in
// the corresponding coefficient of p. Missing coefficients are exact zeros.
func (p *Poly) Contains(q *Poly) bool {
	return p.all(q, ball.Ball.Contains)
}

// Overlaps reports whether every coefficient of p overlaps
// the corresponding coefficient of q. Missing coefficients are exact zeros.
func (p *Poly) Overlaps(q *Poly) bool {
	return p.all(q, ball.Ball.Overlaps)
}

func (p *Poly) all(q *Poly, pred func(x, y ball.Ball) bool) bool {
	n := p.length
	if q.length > n {
		n = q.length
	}
	for i := 0; i < n; i++ {
		if !pred(p.Coeff(i), q.Coeff(i)) {
			return false
		}
	}
	return true
}

// Text returns the coefficients of p, lowest degree first,
// with at most digits significant digits in each midpoint.
func (p *Poly) Text(digits int) string {
	var builder strings.Builder
	builder.WriteRune('[')
	for i := 0; i < p.length; i++ {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(p.coeffs[i].Text(digits))
	}
	builder.WriteRune(']')
	return builder.String()
}

// String returns p with up to 20 significant digits in each midpoint.
func (p *Poly) String() string {
	return p.Text(20)
}
