// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bfp

import (
	"encoding/json"
)

// ExactText returns the exact value of x: the decimal form,
// or the mant*2^exp form when it is shorter.
func (x Value) ExactText() string {
	s := x.GoString()
	if x.form != FiniteForm {
		return s
	}
	if d, ok := x.Decimal(); ok {
		if ds := d.String(); len(ds) <= len(s) {
			return ds
		}
	}
	return s
}

// MarshalJSON marshals x as a string holding its exact value, see ExactText.
func (x Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.ExactText())
}

// UnmarshalJSON unmarshals a string or a number into a value.
// The value must be exactly representable.
func (x *Value) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	v, err := FromString(s, PrecExact, ToZero)
	if err != nil {
		return err
	}
	*x = v
	return nil
}
