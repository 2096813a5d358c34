// Copyright 2020 Aleksandr Demakin. All rights reserved.

package ball

import (
	"fmt"
	"strings"

	"github.com/avdva/ball/bfp"
	"github.com/avdva/ball/mag"
	"github.com/shopspring/decimal"
)

const radDigits = 6

var radSeps = []string{"+/-", "±"}

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

// Parse parses a ball in the "[mid +/- rad]" notation, or a single number.
// The midpoint is rounded to prec bits, and the rounding error is added to the radius,
// so the result always contains the written ball.
func Parse(s string, prec uint) (Ball, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Ball{}, fmt.Errorf("empty input")
	}
	if s[0] != '[' {
		mid, rad, err := parseMid(s, prec)
		if err != nil {
			return Ball{}, fmt.Errorf("parsing failed: %w", err)
		}
		return New(mid, rad), nil
	}
	if s[len(s)-1] != ']' {
		return Ball{}, fmt.Errorf("parsing failed: %w", newPosError("missing ']'", len(s)))
	}
	inner := s[1 : len(s)-1]
	midStr, radStr := inner, ""
	for _, sep := range radSeps {
		if idx := strings.Index(inner, sep); idx >= 0 {
			midStr, radStr = inner[:idx], inner[idx+len(sep):]
			break
		}
	}
	mid, rad, err := parseMid(midStr, prec)
	if err != nil {
		return Ball{}, fmt.Errorf("parsing failed: %w", err)
	}
	if len(strings.TrimSpace(radStr)) > 0 {
		r, err := mag.FromString(radStr)
		if err != nil {
			return Ball{}, fmt.Errorf("parsing failed: %w", newPosError(err.Error(), len(midStr)+2))
		}
		rad = rad.Add(r)
	}
	return New(mid, rad), nil
}

// MustParse is like Parse, but panics on errors.
func MustParse(s string, prec uint) Ball {
	b, err := Parse(s, prec)
	if err != nil {
		panic(err)
	}
	return b
}

func parseMid(s string, prec uint) (bfp.Value, mag.Mag, error) {
	if exact, err := bfp.FromString(s, bfp.PrecExact, bfp.ToZero); err == nil {
		mid, acc := exact.Round(prec, midMode)
		return mid, addErr(mag.Zero(), mid, prec, acc), nil
	}
	mid, err := bfp.FromString(s, prec, midMode)
	if err != nil {
		return bfp.Zero(), mag.Zero(), err
	}
	return mid, mag.Ulp(mid, prec), nil
}

// Text returns x with the midpoint written with at most digits significant digits.
// If the midpoint is shortened, the radius is enlarged, so the written ball still contains x.
// Exact balls whose midpoint is written exactly are printed as a single number.
func (x Ball) Text(digits int) string {
	midStr := x.Mid.Text(digits)
	rad := x.Rad
	if digits > 0 && rad.IsFinite() {
		rad = rad.Add(textErr(x.Mid, midStr))
	}
	if rad.IsZero() {
		return midStr
	}
	var builder strings.Builder
	builder.WriteRune('[')
	builder.WriteString(midStr)
	builder.WriteString(" +/- ")
	builder.WriteString(rad.Text(radDigits))
	builder.WriteRune(']')
	return builder.String()
}

// textErr returns an upper bound of the distance between v and its decimal text.
func textErr(v bfp.Value, text string) mag.Mag {
	exact, ok := v.Decimal()
	if !ok {
		return mag.Zero()
	}
	written, err := decimal.NewFromString(text)
	if err != nil {
		return mag.Zero()
	}
	diff := exact.Sub(written).Abs()
	if diff.IsZero() {
		return mag.Zero()
	}
	m, err := mag.FromString(diff.String())
	if err != nil {
		return mag.Inf()
	}
	return m
}

// String returns x with up to 20 significant digits in the midpoint.
func (x Ball) String() string {
	return x.Text(20)
}
