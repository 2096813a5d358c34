// Copyright 2020 Aleksandr Demakin. All rights reserved.

package poly

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/avdva/ball"
	"github.com/avdva/ball/bfp"
	mu "github.com/avdva/ball/internal/mathutil"
	"github.com/avdva/ball/internal/randtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var composers = []Composer{
	{Algorithm: Horner},
	{Algorithm: DivConquer},
	{Algorithm: DivConquer, Workers: 3},
	{Algorithm: Auto},
}

func TestAlgorithm(t *testing.T) {
	a := assert.New(t)
	for _, alg := range []Algorithm{Auto, Horner, DivConquer} {
		parsed, err := ParseAlgorithm(alg.String())
		a.NoError(err)
		a.Equal(alg, parsed)
	}
	parsed, err := ParseAlgorithm(" DC ")
	a.NoError(err)
	a.Equal(DivConquer, parsed)
	_, err = ParseAlgorithm("fast")
	a.Error(err)
	a.Equal("unknown", Algorithm(10).String())

	a.Equal(Horner, Choose(5, 10))
	a.Equal(Horner, Choose(10, 2))
	a.Equal(DivConquer, Choose(6, 3))
}

func TestComposeExact(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		p, q string
		res  string
	}{
		{"1, 2, 3", "0, 1", "[1, 2, 3]"},
		{"1, 1", "2, 3", "[3, 3]"},
		{"0, 0, 1", "1, 1", "[1, 2, 1]"},
		{"0, 0, 0, 0, 0, 0, 1", "1, 1", "[1, 6, 15, 20, 15, 6, 1]"},
		{"1, 0, 1, 0, 1, 0, 1", "0, 1, 1", "[1, 0, 1, 2, 2, 4, 7, 10, 16, 20, 15, 6, 1]"},
		{"1, -1, 1, -1, 1, -1, 1, -1, 1", "0, 0, 1", "[1, 0, -1, 0, 1, 0, -1, 0, 1, 0, -1, 0, 1, 0, -1, 0, 1]"},
		{"5, 4, 3, 2, 1", "-1", "[3]"},
		{"5, 4, 3, 2, 1", "", "[5]"},
		{"7", "1, 2, 3", "[7]"},
		{"", "1, 2, 3", "[]"},
		{"0, 1", "[1 +/- 1], 2", "[[1 +/- 1], 2]"},
	}
	for i, test := range tests {
		for _, c := range composers {
			t.Run(fmt.Sprintf("%d-%s-%d", i, c.Algorithm, c.Workers), func(t *testing.T) {
				p, q := MustParse(test.p, 53), MustParse(test.q, 53)
				a.Equal(test.res, c.Compose(New(0), p, q, 53).String())
			})
		}
	}
}

func TestComposeLengths(t *testing.T) {
	a := assert.New(t)
	src := randtest.New(2)
	for len1 := 0; len1 < 40; len1++ {
		for len2 := 0; len2 < 7; len2++ {
			p := FromBalls(exactBalls(src, len1)...)
			q := FromBalls(exactBalls(src, len2)...)
			expected := 0
			switch {
			case len1 == 0:
			case len1 == 1 || len2 <= 1:
				expected = 1
			default:
				expected = (len1-1)*(len2-1) + 1
			}
			for _, c := range composers {
				z := c.Compose(New(0), p, q, 64)
				if expected == 1 {
					// a constant result may be an exact zero.
					a.True(z.Len() <= 1, "%d %d", len1, len2)
					continue
				}
				a.Equal(expected, z.Len(), "%d %d %v", len1, len2, c)
			}
		}
	}
}

func TestComposeAgainstRat(t *testing.T) {
	src := randtest.New(3)
	for i := 0; i < 300; i++ {
		p := FromBalls(exactBalls(src, src.Intn(24))...)
		q := FromBalls(exactBalls(src, src.Intn(6))...)
		prec := src.Prec(120)
		exact := ratCompose(ratCoeffs(t, p), ratCoeffs(t, q))
		for _, c := range composers {
			z := c.Compose(New(0), p, q, prec)
			require.True(t, containsRat(t, z, exact), "iter %d %v: %v(%v) = %v", i, c, p, q, z)
		}
	}
}

func TestComposePrecExact(t *testing.T) {
	a := assert.New(t)
	src := randtest.New(6)
	for i := 0; i < 100; i++ {
		p := FromBalls(exactBalls(src, src.Intn(20))...)
		q := FromBalls(exactBalls(src, src.Intn(6))...)
		exact := ratCompose(ratCoeffs(t, p), ratCoeffs(t, q))
		expected := New(0).ComposeHorner(p, q, bfp.PrecExact)
		for _, c := range composers {
			z := c.Compose(New(0), p, q, bfp.PrecExact)
			for j := 0; j < z.Len(); j++ {
				a.True(z.Coeff(j).IsExact(), "iter %d %v: %v", i, c, z)
			}
			a.True(containsRat(t, z, exact), "iter %d %v: %v(%v) = %v", i, c, p, q, z)
			a.True(expected.Equal(z), "iter %d %v: %v and %v", i, c, expected, z)
		}
	}
}

func TestComposeOverlap(t *testing.T) {
	src := randtest.New(4)
	for i := 0; i < 300; i++ {
		p := FromBalls(src.Balls(1+src.Intn(30), 64, 16)...)
		q := FromBalls(src.Balls(1+src.Intn(8), 64, 4)...)
		prec := src.Prec(200)
		horner := New(0).ComposeHorner(p, q, prec)
		dc := New(0).ComposeDivConquer(p, q, prec)
		require.True(t, horner.Overlaps(dc), "iter %d: %v(%v): %v and %v", i, p, q, horner, dc)

		parallel := Composer{Algorithm: DivConquer, Workers: 1 + src.Intn(8)}.Compose(New(0), p, q, prec)
		require.True(t, dc.Equal(parallel), "iter %d: %v and %v", i, dc, parallel)
	}
}

func TestComposeAliasing(t *testing.T) {
	a := assert.New(t)
	src := randtest.New(5)
	for i := 0; i < 50; i++ {
		p := FromBalls(src.Balls(1+src.Intn(20), 40, 8)...)
		q := FromBalls(src.Balls(1+src.Intn(5), 40, 8)...)
		for _, c := range composers {
			expected := c.Compose(New(0), p, q, 80)

			z := New(0).Set(p)
			a.True(expected.Equal(c.Compose(z, z, q, 80)), "iter %d: %v", i, c)
			z = New(0).Set(q)
			a.True(expected.Equal(c.Compose(z, p, z, 80)), "iter %d: %v", i, c)

			// z is reused with stale storage.
			z = FromBalls(src.Balls(100, 8, 2)...)
			a.True(expected.Equal(c.Compose(z, p, q, 80)), "iter %d: %v", i, c)
			for j := z.Len(); j < z.Cap(); j++ {
				a.True(z.coeffs[j].IsZero())
			}
		}
		self := New(0).Compose(p, p, 80, DivConquer)
		a.True(self.Equal(New(0).Set(p).ComposeDivConquer(p, p, 80)))
		a.True(self.Equal(p.ComposeDivConquer(p, p, 80)))
	}
}

func TestComposeWide(t *testing.T) {
	a := assert.New(t)
	p := FromBalls(ball.FromInt64(1), ball.Whole(), ball.FromInt64(1))
	q := FromInt64s(1, 1)
	for _, c := range composers {
		z := c.Compose(New(0), p, q, 53)
		a.Equal(3, z.Len())
		a.True(z.Coeff(0).IsWhole())
		a.True(z.Coeff(1).IsWhole())
		a.True(z.Coeff(2).Equal(ball.FromInt64(1)))
	}
}

func TestComposeOverflow(t *testing.T) {
	a := assert.New(t)
	// the square of the inner polynomial at the second level overflows the exponent.
	p := FromInt64s(1, 1, 1, 1, 1, 1, 1)
	q := FromBalls(ball.Ball{}, ball.FromValue(bfp.FromMantExp(big.NewInt(1), 1<<61)))
	for _, workers := range []int{1, 3} {
		c := Composer{Algorithm: DivConquer, Workers: workers}
		a.Panics(func() { c.Compose(New(0), p, q, 53) }, "workers %d", workers)
	}
}

func exactBalls(src *randtest.Source, n int) []ball.Ball {
	res := make([]ball.Ball, n)
	for i := range res {
		if i != n-1 && src.Intn(4) == 0 {
			continue
		}
		res[i] = ball.FromValue(src.Finite(24, 8))
	}
	return res
}

func ratCoeffs(t testing.TB, p *Poly) []*big.Rat {
	res := make([]*big.Rat, p.Len())
	for i := range res {
		c := p.Coeff(i)
		require.True(t, c.IsExact())
		r, ok := c.Mid.Rat()
		require.True(t, ok)
		res[i] = r
	}
	return res
}

func ratMul(a, b []*big.Rat) []*big.Rat {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	res := make([]*big.Rat, len(a)+len(b)-1)
	for i := range res {
		res[i] = new(big.Rat)
	}
	for i := range a {
		for j := range b {
			res[i+j].Add(res[i+j], new(big.Rat).Mul(a[i], b[j]))
		}
	}
	return res
}

// ratCompose returns a(b(x)) computed with Horner's scheme.
func ratCompose(a, b []*big.Rat) []*big.Rat {
	var res []*big.Rat
	for i := len(a) - 1; i >= 0; i-- {
		res = ratMul(res, b)
		if len(res) == 0 {
			res = []*big.Rat{new(big.Rat)}
		}
		res[0].Add(res[0], a[i])
	}
	return res
}

func containsRat(t testing.TB, p *Poly, coeffs []*big.Rat) bool {
	n := mu.MaxInt(p.Len(), len(coeffs))
	for i := 0; i < n; i++ {
		c := new(big.Rat)
		if i < len(coeffs) {
			c = coeffs[i]
		}
		b := p.Coeff(i)
		m, ok := b.Mid.Rat()
		require.True(t, ok)
		r, ok := b.Rad.Value().Rat()
		require.True(t, ok)
		d := new(big.Rat).Sub(c, m)
		if d.Abs(d).Cmp(r) > 0 {
			return false
		}
	}
	return true
}
