// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package cmd implements the ballpoly command line tool.
package cmd

import (
	"strings"

	"github.com/avdva/ball/poly"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "BALLPOLY"

// app holds the state shared by the commands of one command tree.
type app struct {
	v    *viper.Viper
	log  *log.Logger
	conf Config
	alg  poly.Algorithm
}

// NewRootCmd returns the ballpoly command with all of its subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: log.New()}
	root := &cobra.Command{
		Use:   "ballpoly",
		Short: "ball arithmetic polynomial calculator",
		Long:  "ballpoly composes, differentiates and evaluates polynomials with ball coefficients",

		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	addGlobalFlags(root.PersistentFlags())
	root.AddCommand(
		a.composeCmd(),
		a.deriveCmd(),
		a.evalCmd(),
		a.containsCmd(),
		a.overlapsCmd(),
		a.configCmd(),
	)
	return root
}

// addGlobalFlags defines the flags shared by all the commands.
// Each of them is a config key as well.
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug flag")
	flags.String("config", "", "config file")
	flags.Uint("prec", defaultPrec, "working precision in bits")
	flags.String("algorithm", poly.Auto.String(), "composition algorithm: auto, horner or divconquer")
	flags.Int("workers", 1, "number of goroutines combining a level of the divide-and-conquer composition")
	flags.Int("digits", defaultDigits, "significant digits of the printed midpoints")
	flags.String("log-formatter", "prefixed", "log formatter: prefixed, text or json")
	flags.String("output", outputText, "output format: text, json or table")
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	// cmd.Flags() contains the persistent flags of the parents as well.
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}

	conf, err := loadConfig(a.v)
	if err != nil {
		return err
	}
	a.conf = conf
	a.alg, _ = poly.ParseAlgorithm(conf.Algorithm)

	formatter, _ := newLogFormatter(conf.LogFormatter)
	a.log.SetFormatter(formatter)
	a.log.SetOutput(cmd.ErrOrStderr())
	if conf.Debug {
		a.log.SetLevel(log.DebugLevel)
	}
	a.log.WithFields(log.Fields{
		"prec":      conf.Prec,
		"algorithm": a.alg,
		"workers":   conf.Workers,
	}).Debug("config loaded")
	return nil
}

// Execute runs the ballpoly command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.WithError(err).Fatal("cannot execute command")
	}
}
