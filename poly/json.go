// Copyright 2020 Aleksandr Demakin. All rights reserved.

package poly

import (
	"encoding/json"

	"github.com/avdva/ball"
)

// MarshalJSON marshals p as an array of exact coefficients, lowest degree first.
func (p *Poly) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Coeffs())
}

// UnmarshalJSON unmarshals an array of coefficients into p.
func (p *Poly) UnmarshalJSON(data []byte) error {
	var coeffs []ball.Ball
	if err := json.Unmarshal(data, &coeffs); err != nil {
		return err
	}
	*p = *FromBalls(coeffs...)
	return nil
}
