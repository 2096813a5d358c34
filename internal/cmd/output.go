// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/avdva/ball/poly"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// print writes a result to the command output as text, as JSON,
// or, for polynomials, as a table of coefficients.
func (a *app) print(cmd *cobra.Command, text string, v interface{}) error {
	switch a.conf.Output {
	case outputJSON:
		data, err := json.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "failed to encode the result")
		}
		text = string(data)
	case outputTable:
		if p, ok := v.(*poly.Poly); ok {
			text = a.coeffTable(p)
		}
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func (a *app) coeffTable(p *poly.Poly) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"degree", "coefficient"})
	for i := 0; i < p.Len(); i++ {
		t.AppendRow(table.Row{i, p.Coeff(i).Text(a.conf.Digits)})
	}
	return t.Render()
}
