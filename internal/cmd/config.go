// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cmd

import (
	"github.com/avdva/ball/poly"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	defaultPrec   = 128
	defaultDigits = 20

	outputText  = "text"
	outputJSON  = "json"
	outputTable = "table"
)

// Config is the effective configuration of a command.
// Flags override environment variables, which override the config file.
type Config struct {
	Prec         uint   `mapstructure:"prec" yaml:"prec"`
	Algorithm    string `mapstructure:"algorithm" yaml:"algorithm"`
	Workers      int    `mapstructure:"workers" yaml:"workers"`
	Digits       int    `mapstructure:"digits" yaml:"digits"`
	Debug        bool   `mapstructure:"debug" yaml:"debug"`
	LogFormatter string `mapstructure:"log-formatter" yaml:"log-formatter"`
	Output       string `mapstructure:"output" yaml:"output"`
}

// Validate returns all the problems found in c.
func (c Config) Validate() error {
	var err error
	if c.Prec == 0 {
		err = multierr.Append(err, errors.New("prec must be positive"))
	}
	if _, perr := poly.ParseAlgorithm(c.Algorithm); perr != nil {
		err = multierr.Append(err, perr)
	}
	if c.Workers < 0 {
		err = multierr.Append(err, errors.Errorf("negative number of workers %d", c.Workers))
	}
	if c.Digits <= 0 {
		err = multierr.Append(err, errors.Errorf("digits must be positive, got %d", c.Digits))
	}
	if _, ferr := newLogFormatter(c.LogFormatter); ferr != nil {
		err = multierr.Append(err, ferr)
	}
	switch c.Output {
	case outputText, outputJSON, outputTable:
	default:
		err = multierr.Append(err, errors.Errorf("unknown output format %q", c.Output))
	}
	return err
}

func loadConfig(v *viper.Viper) (Config, error) {
	var conf Config
	if file := v.GetString("config"); len(file) > 0 {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return conf, errors.Wrapf(err, "failed to load config file %s", file)
		}
	}
	if err := v.Unmarshal(&conf); err != nil {
		return conf, errors.Wrap(err, "failed to decode config")
	}
	if err := conf.Validate(); err != nil {
		return conf, errors.Wrap(err, "invalid config")
	}
	return conf, nil
}

func newLogFormatter(name string) (log.Formatter, error) {
	switch name {
	case "", "prefixed":
		return &prefixed.TextFormatter{}, nil
	case "text":
		return &log.TextFormatter{}, nil
	case "json":
		return &log.JSONFormatter{}, nil
	}
	return nil, errors.Errorf("unknown log formatter %q", name)
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "config",
		Short:        "print the effective configuration",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(a.conf)
			if err != nil {
				return errors.Wrap(err, "failed to encode config")
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
