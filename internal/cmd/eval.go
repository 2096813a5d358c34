// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cmd

import (
	"github.com/avdva/ball"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func (a *app) evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "eval",
		Short:        "evaluate a polynomial at a ball",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			polyStr, err := requiredString(cmd, "poly")
			if err != nil {
				return err
			}
			atStr, err := requiredString(cmd, "at")
			if err != nil {
				return err
			}
			p, perr := a.parsePoly("poly", polyStr)
			x, xerr := a.parseBall("at", atStr)
			if err := multierr.Combine(perr, xerr); err != nil {
				return err
			}
			res := p.Evaluate(x, a.conf.Prec)
			return a.print(cmd, res.Text(a.conf.Digits), res)
		},
	}
	cmd.Flags().String("poly", "", "polynomial coefficients, lowest degree first")
	cmd.Flags().String("at", "", "the point, a number or a ball")
	return cmd
}

func (a *app) parseBall(name, s string) (ball.Ball, error) {
	b, err := ball.Parse(s, a.conf.Prec)
	if err != nil {
		return ball.Ball{}, errors.Wrapf(err, "invalid %s", name)
	}
	return b, nil
}
