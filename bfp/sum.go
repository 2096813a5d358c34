// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bfp

import (
	"math/big"
	"math/bits"
	"sort"

	mu "github.com/avdva/ball/internal/mathutil"
)

// maxSplitPrec is the precision above which Sum never separates small terms
// and always aligns every term exactly.
const maxSplitPrec = 1 << 40

// Add returns x+y rounded to prec bits.
func (x Value) Add(y Value, prec uint, mode RoundingMode) (Value, Accuracy) {
	return Sum([]Value{x, y}, prec, mode)
}

// Sub returns x-y rounded to prec bits.
func (x Value) Sub(y Value, prec uint, mode RoundingMode) (Value, Accuracy) {
	return Sum([]Value{x, y.Neg()}, prec, mode)
}

// Sum returns the sum of terms correctly rounded to prec bits.
// The result of Sum is as if the exact sum was computed first and rounded once,
// in particular its sign is always the sign of the exact sum.
// +Inf and -Inf together, or any NaN, give NaN. The sum of no terms is 0.
//
// Terms that are too small to influence the rounded result of the larger ones
// are replaced by a single sticky bit, so the work does not depend on the
// distance between exponents.
func Sum(terms []Value, prec uint, mode RoundingMode) (Value, Accuracy) {
	checkPrec(prec)
	var posInf, negInf bool
	finite := make([]Value, 0, len(terms))
	for _, t := range terms {
		switch t.form {
		case NaNForm:
			return NaN(), Exact
		case PosInfForm:
			posInf = true
		case NegInfForm:
			negInf = true
		case FiniteForm:
			finite = append(finite, t)
		}
	}
	switch {
	case posInf && negInf:
		return NaN(), Exact
	case posInf:
		return PosInf(), Exact
	case negInf:
		return NegInf(), Exact
	case len(finite) == 0:
		return Zero(), Exact
	}
	sort.SliceStable(finite, func(i, j int) bool {
		return finite[i].TopExp() > finite[j].TopExp()
	})
	return sumSorted(finite, prec, mode)
}

// sumSorted sums finite terms sorted by TopExp in descending order.
//
// The terms are split into a head, summed exactly as S = k * 2^low, and a tail,
// whose sum s satisfies |s| < 2^(low-prec-1). If S != 0, then S and every rounding
// boundary at prec bits around S lie on the grid 2^(low-prec-1), so S+s rounds exactly
// like S + sign(s)*2^(low-prec-2).
func sumSorted(terms []Value, prec uint, mode RoundingMode) (Value, Accuracy) {
	low := terms[0].exp
	split := len(terms)
	for i := 1; i < len(terms); i++ {
		if prec < maxSplitPrec {
			// the sum of the remaining terms is below 2^bound.
			bound := mu.AddExp(terms[i].TopExp(), int64(bits.Len(uint(len(terms)-i))))
			if bound <= mu.SubExp(low, int64(prec)+1) {
				split = i
				break
			}
		}
		low = mu.MinInt64(low, terms[i].exp)
	}
	s := new(big.Int)
	for _, t := range terms[:split] {
		s.Add(s, new(big.Int).Lsh(t.mant, uint(t.exp-low)))
	}
	if split == len(terms) {
		return round(s, low, prec, mode)
	}
	if s.Sign() == 0 {
		return sumSorted(terms[split:], prec, mode)
	}
	tail, _ := sumSorted(terms[split:], 2, ToZero)
	if tail.Sign() == 0 {
		return round(s, low, prec, mode)
	}
	s.Lsh(s, prec+2)
	s.Add(s, big.NewInt(int64(tail.Sign())))
	return round(s, mu.SubExp(low, int64(prec)+2), prec, mode)
}
