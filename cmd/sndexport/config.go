// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errUsage = errors.New("usage: sndexport [flags] <input> <output.wav>")

type config struct {
	LogLevel  string
	LogFormat string
	Metrics   bool
	Engine    string
	Input     string
	Output    string
}

// loadConfig reads flags, then SNDEXPORT_* environment variables, then the
// optional config file. Flags set on the command line win.
func loadConfig(args []string) (*config, error) {
	fs := pflag.NewFlagSet("sndexport", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (yaml, json or toml)")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-format", "console", "log format: console or json")
	fs.Bool("metrics", false, "print handle and export metrics on exit")
	fs.String("engine", "soft", "audio engine: soft or native")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("SNDEXPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if fs.NArg() != 2 {
		return nil, errUsage
	}

	return &config{
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
		Metrics:   v.GetBool("metrics"),
		Engine:    v.GetString("engine"),
		Input:     fs.Arg(0),
		Output:    fs.Arg(1),
	}, nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = lvl

	return cfg.Build()
}
