// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cmd

import (
	"strconv"

	"github.com/avdva/ball"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func (a *app) containsCmd() *cobra.Command {
	return a.predicateCmd("contains X Y", "report whether ball X contains ball Y", ball.Ball.Contains)
}

func (a *app) overlapsCmd() *cobra.Command {
	return a.predicateCmd("overlaps X Y", "report whether balls X and Y overlap", ball.Ball.Overlaps)
}

func (a *app) predicateCmd(use, short string, pred func(x, y ball.Ball) bool) *cobra.Command {
	return &cobra.Command{
		Use:          use,
		Short:        short,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, xerr := a.parseBall("X", args[0])
			y, yerr := a.parseBall("Y", args[1])
			if err := multierr.Combine(xerr, yerr); err != nil {
				return err
			}
			res := pred(x, y)
			a.log.WithFields(log.Fields{
				"x":      x.String(),
				"y":      y.String(),
				"result": res,
			}).Debug(cmd.Name())
			return a.print(cmd, strconv.FormatBool(res), res)
		},
	}
}
