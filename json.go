// Copyright 2020 Aleksandr Demakin. All rights reserved.

package ball

import (
	"encoding/json"

	"github.com/avdva/ball/bfp"
)

// UnmarshalPrec is the midpoint precision used by UnmarshalJSON
// for the midpoints that are not exactly representable.
var UnmarshalPrec uint = 128

// ExactText returns x in the "[mid +/- rad]" notation, or as a single number for exact balls.
// Both mid and rad are written exactly.
func (x Ball) ExactText() string {
	mid := x.Mid.ExactText()
	if x.Rad.IsZero() {
		return mid
	}
	return "[" + mid + " +/- " + x.Rad.Text(0) + "]"
}

// MarshalJSON marshals x as a string, see ExactText.
func (x Ball) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.ExactText())
}

// UnmarshalJSON unmarshals a string or a number into a ball.
// Exactly representable midpoints are kept as is,
// others are rounded to UnmarshalPrec bits.
func (x *Ball) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	b, err := Parse(s, bfp.PrecExact)
	if err != nil {
		if b, err = Parse(s, UnmarshalPrec); err != nil {
			return err
		}
	}
	*x = b
	return nil
}
