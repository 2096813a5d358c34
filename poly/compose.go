// Copyright 2020 Aleksandr Demakin. All rights reserved.

package poly

import (
	"fmt"
	"strings"

	"github.com/avdva/ball"
	mu "github.com/avdva/ball/internal/mathutil"
	"golang.org/x/sync/errgroup"
)

// Algorithm selects the way polynomials are composed.
type Algorithm int

const (
	// Auto uses DivConquer for large polynomials, Horner otherwise.
	Auto Algorithm = iota
	// Horner evaluates the outer polynomial at the inner one with Horner's scheme.
	Horner
	// DivConquer combines pairs of coefficients in a binary tree,
	// multiplying by repeated squares of the inner polynomial.
	// It needs fewer multiplications, but keeps O(len(p)*len(q)) coefficients in memory.
	DivConquer
)

// Auto switches to DivConquer when both lengths reach these values.
const (
	autoMinOuter = 6
	autoMinInner = 3
)

func (a Algorithm) String() string {
	switch a {
	case Auto:
		return "auto"
	case Horner:
		return "horner"
	case DivConquer:
		return "divconquer"
	}
	return "unknown"
}

// ParseAlgorithm returns an algorithm by its name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "horner":
		return Horner, nil
	case "divconquer", "dc":
		return DivConquer, nil
	}
	return Auto, fmt.Errorf("unknown algorithm %q", s)
}

// Choose returns the algorithm Auto uses for polynomials of given lengths.
func Choose(len1, len2 int) Algorithm {
	if len1 >= autoMinOuter && len2 >= autoMinInner {
		return DivConquer
	}
	return Horner
}

// Compose sets z to p(q(x)) using the given algorithm.
func (z *Poly) Compose(p, q *Poly, prec uint, alg Algorithm) *Poly {
	return Composer{Algorithm: alg}.Compose(z, p, q, prec)
}

// ComposeHorner sets z to p(q(x)) using Horner's scheme.
func (z *Poly) ComposeHorner(p, q *Poly, prec uint) *Poly {
	return z.Compose(p, q, prec, Horner)
}

// ComposeDivConquer sets z to p(q(x)) using the divide-and-conquer algorithm.
func (z *Poly) ComposeDivConquer(p, q *Poly, prec uint) *Poly {
	return z.Compose(p, q, prec, DivConquer)
}

// Composer composes polynomials.
// With Workers > 1, the products of each level of the divide-and-conquer tree
// are computed concurrently by at most Workers goroutines. The results do not
// depend on the number of workers.
type Composer struct {
	Algorithm Algorithm
	Workers   int
}

// Compose sets z to p(q(x)) and returns z. z may be p or q.
//
// The result has (len(p)-1)*(len(q)-1)+1 coefficients before normalization.
// An empty p gives the zero polynomial, a constant p or an empty q give p[0].
func (c Composer) Compose(z, p, q *Poly, prec uint) *Poly {
	len1, len2 := p.length, q.length
	switch {
	case len1 == 0:
		return z.Zero()
	case len1 == 1 || len2 == 0:
		return z.SetBall(p.coeffs[0])
	}
	alg := c.Algorithm
	if alg == Auto {
		alg = Choose(len1, len2)
	}
	lenr := (len1-1)*(len2-1) + 1
	dst := z
	if z == p || z == q {
		dst = New(lenr)
	} else {
		z.SetLength(0).FitLength(lenr)
	}
	res, a, b := dst.coeffs[:lenr], p.coeffs[:len1], q.coeffs[:len2]
	if alg == DivConquer {
		composeDivConquer(res, a, b, prec, c.Workers)
	} else {
		composeHorner(res, a, b, prec)
	}
	dst.setLen(lenr)
	if dst != z {
		z.Swap(dst)
	}
	return z
}

// composeHorner sets res to a(b(x)). len(a) >= 2, len(b) >= 1.
func composeHorner(res, a, b []ball.Ball, prec uint) {
	len1, len2 := len(a), len(b)
	if len2 == 1 {
		res[0] = evaluate(a, b[0], prec)
		return
	}
	t := make([]ball.Ball, len(res))
	r := res
	// r = a[len1-1]*b + a[len1-2]
	n := len2
	scalarMulSlice(r[:n], b, a[len1-1], prec)
	r[0] = r[0].Add(a[len1-2], prec)
	for i := len1 - 3; i >= 0; i-- {
		// r = r*b + a[i]
		mulSlices(t[:n+len2-1], r[:n], b, prec)
		n += len2 - 1
		r, t = t, r
		r[0] = r[0].Add(a[i], prec)
	}
	if &r[0] != &res[0] {
		copy(res, r[:n])
	}
}

// node is a part of the divide-and-conquer arena, a polynomial of a fixed capacity.
type node struct {
	coeffs []ball.Ball
	length int
}

func (n *node) data() []ball.Ball {
	return n.coeffs[:n.length]
}

// arena holds the partial results and the two powers of the inner polynomial.
// All nodes share a single allocation.
type arena struct {
	h         []node
	pow, temp node
}

// newArena allocates the nodes for an outer polynomial of length len1 and an inner
// one of length len2. A node at index i of a tree level with 2^j coefficient pairs
// per node keeps at most (2^j-1)*(len2-1)+1 coefficients.
func newArena(len1, len2 int) *arena {
	k := 1
	for 2<<k < len1 {
		k++
	}
	caps := make([]int, (len1+1)/2)
	caps[0] = ((1<<k)-1)*(len2-1) + 1
	if len(caps) > 1 {
		caps[1] = caps[0]
	}
	for i := k - 1; i > 0; i-- {
		hi := (len1 + (1 << i) - 1) >> i
		for n := (hi + 1) / 2; n < hi; n++ {
			caps[n] = ((1<<i)-1)*(len2-1) + 1
		}
	}
	powCap := (1<<k)*(len2-1) + 1
	alloc := 2 * powCap
	for _, c := range caps {
		alloc += c
	}
	v := make([]ball.Ball, alloc)
	a := &arena{h: make([]node, len(caps))}
	off := 0
	take := func(c int) node {
		n := node{coeffs: v[off : off+c : off+c]}
		off += c
		return n
	}
	for i, c := range caps {
		a.h[i] = take(c)
	}
	a.pow, a.temp = take(powCap), take(powCap)
	return a
}

// composeDivConquer sets res to a(b(x)). len(a) >= 2, len(b) >= 1.
func composeDivConquer(res, a, b []ball.Ball, prec uint, workers int) {
	len1, len2 := len(a), len(b)
	if len2 == 1 {
		res[0] = evaluate(a, b[0], prec)
		return
	}
	if len1 == 2 {
		composeHorner(res, a, b, prec)
		return
	}
	ar := newArena(len1, len2)
	h := ar.h

	// h[i] = a[2i] + a[2i+1]*b
	i, j := 0, 0
	for ; i < len1/2; i, j = i+1, j+2 {
		switch {
		case !a[j+1].IsZero():
			scalarMulSlice(h[i].coeffs[:len2], b, a[j+1], prec)
			h[i].coeffs[0] = h[i].coeffs[0].Add(a[j], prec)
			h[i].length = len2
		case !a[j].IsZero():
			h[i].coeffs[0] = a[j]
			h[i].length = 1
		}
	}
	if len1%2 == 1 && !a[j].IsZero() {
		h[i].coeffs[0] = a[j]
		h[i].length = 1
	}

	powlen := 2*len2 - 1
	mulSlices(ar.pow.coeffs[:powlen], b, b, prec)
	ar.pow.length = powlen

	for n := (len1 + 1) / 2; n > 2; n = (n + 1) / 2 {
		if workers > 1 {
			combineLevelParallel(ar, n, prec, workers)
		} else {
			combineLevel(ar, n, prec)
		}
		ar.pow, ar.temp = ar.temp, ar.pow
	}

	// res = pow*h[1] + h[0]
	pow := ar.pow.data()
	n := 0
	if h[1].length > 0 {
		n = len(pow) + h[1].length - 1
		mulSlices(res[:n], pow, h[1].data(), prec)
	}
	if h[0].length > n {
		n = h[0].length
	}
	addSlices(res[:n], res[:n], h[0].data(), prec)
}

// combineLevel halves the number of partial results:
// h[i] = h[2i] + pow*h[2i+1], and squares pow into temp.
func combineLevel(ar *arena, n int, prec uint) {
	h, pow := ar.h, ar.pow.data()
	if h[1].length > 0 {
		tlen := len(pow) + h[1].length - 1
		mulSlices(ar.temp.coeffs[:tlen], pow, h[1].data(), prec)
		addTo(&h[0], ar.temp.coeffs[:tlen], prec)
	}
	i := 1
	for ; i < n/2; i++ {
		h[i].length = 0
		if hi := h[2*i+1]; hi.length > 0 {
			h[i].length = len(pow) + hi.length - 1
			mulSlices(h[i].coeffs[:h[i].length], pow, hi.data(), prec)
		}
		addTo(&h[i], h[2*i].data(), prec)
	}
	if n%2 == 1 {
		h[i].length = copy(h[i].coeffs, h[2*i].data())
	}
	squarePow(ar, prec)
}

// combineLevelParallel does the same as combineLevel. The products only read the
// previous level, so they run concurrently into separate buffers; the sums then
// overwrite the nodes in increasing order, after every node they read is consumed.
func combineLevelParallel(ar *arena, n int, prec uint, workers int) {
	h, pow := ar.h, ar.pow.data()
	prods := make([][]ball.Ball, n/2)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range prods {
		src := &h[2*i+1]
		if src.length == 0 {
			continue
		}
		i := i
		prods[i] = make([]ball.Ball, len(pow)+src.length-1)
		goCatch(&g, func() {
			mulSlices(prods[i], pow, src.data(), prec)
		})
	}
	goCatch(&g, func() {
		squarePow(ar, prec)
	})
	if err := g.Wait(); err != nil {
		panic(err)
	}

	if prods[0] != nil {
		addTo(&h[0], prods[0], prec)
	}
	i := 1
	for ; i < n/2; i++ {
		h[i].length = copy(h[i].coeffs, prods[i])
		addTo(&h[i], h[2*i].data(), prec)
	}
	if n%2 == 1 {
		h[i].length = copy(h[i].coeffs, h[2*i].data())
	}
}

func squarePow(ar *arena, prec uint) {
	pow := ar.pow.data()
	ar.temp.length = 2*len(pow) - 1
	mulSlices(ar.temp.coeffs[:ar.temp.length], pow, pow, prec)
}

// goCatch runs f in g. A panic in f becomes the error of g,
// so that it is raised again in the goroutine calling Compose.
func goCatch(g *errgroup.Group, f func()) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("poly: %v", r)
			}
		}()
		f()
		return nil
	})
}

// addTo sets dst to dst+src.
func addTo(dst *node, src []ball.Ball, prec uint) {
	n := mu.MaxInt(dst.length, len(src))
	addSlices(dst.coeffs[:n], dst.data(), src, prec)
	dst.length = n
}
