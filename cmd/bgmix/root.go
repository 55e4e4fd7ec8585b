// SPDX-License-Identifier: EPL-2.0

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/bgmix/config"
	"github.com/ik5/bgmix/internal/logging"
)

// app carries what PersistentPreRunE resolved to the subcommands.
type app struct {
	v   *viper.Viper
	cfg *config.Config
	log *slog.Logger
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"frame-size": "frame.size",
	"lowpass":    "lowpass.enabled",
	"cutoff":     "lowpass.cutoff",
	"mono":       "track.mono",
	"resample":   "track.resample",
}

func newRootCommand() *cobra.Command {
	a := &app{}
	var configFile string

	root := &cobra.Command{
		Use:   "bgmix",
		Short: "Mix background music into a microphone stream",
		Long: `bgmix lays a looping music bed under a microphone recording.
Each output sample is 0.7 x microphone + 0.3 x music, optionally smoothed
by a single-pole low-pass filter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, configFile)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./bgmix.yaml or $XDG_CONFIG_HOME/bgmix/bgmix.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "text", "log format: text or json")

	root.AddCommand(newMixCommand(a))
	root.AddCommand(newFormatsCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func (a *app) init(cmd *cobra.Command, configFile string) error {
	v, err := config.New(configFile)
	if err != nil {
		return err
	}

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.v, a.cfg, a.log = v, cfg, logger

	return nil
}
