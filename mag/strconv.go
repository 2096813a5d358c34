// Copyright 2020 Aleksandr Demakin. All rights reserved.

package mag

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/avdva/ball/bfp"
	"github.com/shopspring/decimal"
)

// FromString parses a non-negative number and returns its upper bound.
// Any format accepted by bfp.FromString is valid.
func FromString(s string) (Mag, error) {
	v, err := bfp.FromString(s, Bits, bfp.ToPositiveInf)
	if err != nil {
		return Zero(), err
	}
	if v.Sign() < 0 || v.IsNaN() {
		return Zero(), fmt.Errorf("bad magnitude %q", strings.TrimSpace(s))
	}
	return FromValue(v), nil
}

// Text returns a decimal upper bound of m with at most digits significant digits.
func (m Mag) Text(digits int) string {
	switch {
	case m.inf:
		return "inf"
	case m.man == 0:
		return "0"
	}
	d, ok := m.Value().Decimal()
	if !ok {
		return m.Value().GoString()
	}
	if digits > 0 {
		coef := d.Coefficient()
		if extra := len(coef.String()) - digits; extra > 0 {
			scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(extra)), nil)
			q, r := coef.QuoRem(coef, scale, new(big.Int))
			if r.Sign() != 0 {
				q.Add(q, big.NewInt(1))
			}
			d = decimal.NewFromBigInt(q, d.Exponent()+int32(extra))
		}
	}
	return d.String()
}

// String returns m with 6 significant digits, rounded up.
func (m Mag) String() string {
	return m.Text(6)
}
