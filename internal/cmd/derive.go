// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cmd

import (
	"github.com/avdva/ball/poly"
	"github.com/spf13/cobra"
)

func (a *app) deriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "derive",
		Short:        "differentiate a polynomial",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requiredString(cmd, "poly")
			if err != nil {
				return err
			}
			p, err := a.parsePoly("poly", s)
			if err != nil {
				return err
			}
			res := poly.New(0).Derivative(p, a.conf.Prec)
			return a.print(cmd, res.Text(a.conf.Digits), res)
		},
	}
	cmd.Flags().String("poly", "", "polynomial coefficients, lowest degree first")
	return cmd
}
