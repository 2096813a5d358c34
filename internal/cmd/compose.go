// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cmd

import (
	"time"

	"github.com/avdva/ball/poly"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func (a *app) composeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "compose",
		Short:        "compose two polynomials",
		Long:         "compose prints the coefficients of outer(inner(x))",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			outerStr, err := requiredString(cmd, "outer")
			if err != nil {
				return err
			}
			innerStr, err := requiredString(cmd, "inner")
			if err != nil {
				return err
			}

			// both polynomials are parsed, so that all malformed coefficients are reported.
			outer, oerr := a.parsePoly("outer", outerStr)
			inner, ierr := a.parsePoly("inner", innerStr)
			if err := multierr.Combine(oerr, ierr); err != nil {
				return err
			}

			alg := a.alg
			if alg == poly.Auto {
				alg = poly.Choose(outer.Len(), inner.Len())
			}
			composer := poly.Composer{Algorithm: alg, Workers: a.conf.Workers}
			start := time.Now()
			res := composer.Compose(poly.New(0), outer, inner, a.conf.Prec)
			a.log.WithFields(log.Fields{
				"outer":     outer.Len(),
				"inner":     inner.Len(),
				"result":    res.Len(),
				"algorithm": alg,
				"elapsed":   time.Since(start),
			}).Debug("composed")

			return a.print(cmd, res.Text(a.conf.Digits), res)
		},
	}
	cmd.Flags().String("outer", "", "outer polynomial coefficients, lowest degree first")
	cmd.Flags().String("inner", "", "inner polynomial coefficients, lowest degree first")
	return cmd
}

func (a *app) parsePoly(name, s string) (*poly.Poly, error) {
	p, err := poly.Parse(s, a.conf.Prec)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s polynomial", name)
	}
	a.log.WithField(name, p.Len()).Debug("parsed polynomial")
	return p, nil
}

func requiredString(cmd *cobra.Command, name string) (string, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", err
	}
	if len(s) == 0 {
		return "", errors.Errorf("--%s option is required", name)
	}
	return s, nil
}
