// Copyright 2020 Aleksandr Demakin. All rights reserved.

package poly

import (
	"fmt"
	"strings"

	"github.com/avdva/ball"
	"go.uber.org/multierr"
)

// Parse parses comma-separated coefficients, lowest degree first.
// Each coefficient is a number or a ball in the "[mid +/- rad]" notation.
// An optional pair of enclosing brackets, as written by String, is accepted.
// All malformed coefficients are reported in the returned error.
func Parse(s string, prec uint) (*Poly, error) {
	s = strings.TrimSpace(s)
	if inner, ok := unwrap(s); ok {
		s = inner
	}
	if len(strings.TrimSpace(s)) == 0 {
		return New(0), nil
	}
	parts := strings.Split(s, ",")
	coeffs := make([]ball.Ball, len(parts))
	var err error
	for i, part := range parts {
		c, perr := ball.Parse(part, prec)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("coefficient %d: %w", i, perr))
			continue
		}
		coeffs[i] = c
	}
	if err != nil {
		return nil, err
	}
	return FromBalls(coeffs...), nil
}

// unwrap removes the outer brackets of "[c0, c1, ...]".
// A single ball "[mid +/- rad]" is not unwrapped.
func unwrap(s string) (string, bool) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return s, false
	}
	inner := s[1 : len(s)-1]
	depth := 0
	for _, r := range inner {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return s, false
			}
		}
	}
	if depth != 0 {
		return s, false
	}
	if strings.Contains(inner, ",") || strings.Contains(inner, "[") || len(strings.TrimSpace(inner)) == 0 {
		return inner, true
	}
	// "[5]" is a single exact ball as well as a constant polynomial.
	return inner, !strings.Contains(inner, "+/-") && !strings.Contains(inner, "±")
}

// MustParse is like Parse, but panics on errors.
func MustParse(s string, prec uint) *Poly {
	p, err := Parse(s, prec)
	if err != nil {
		panic(err)
	}
	return p
}
