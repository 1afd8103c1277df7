// SPDX-License-Identifier: EPL-2.0

// Command sndexport loads a sound file and writes its sample data out as a
// PCM WAV file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/fmodgo"
	"github.com/ik5/fmodgo/engine"
	"github.com/ik5/fmodgo/engine/native"
	"github.com/ik5/fmodgo/engine/soft"
	"github.com/ik5/fmodgo/handle"
	"github.com/ik5/fmodgo/internal/status"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) (err error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	eng, err := newEngine(cfg.Engine, logger)
	if err != nil {
		return err
	}

	promReg := prometheus.NewRegistry()
	sys, err := fmodgo.Open(eng, handle.WithLogger(logger), handle.WithMetrics(status.NewMetrics(promReg)))
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, sys.Close())
		if cfg.Metrics {
			err = multierr.Append(err, printMetrics(stdout, promReg))
		}
	}()

	sound, err := sys.CreateSound(cfg.Input, engine.ModeCreateSample)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.Input, err)
	}

	if err := describe(stdout, cfg.Input, sound); err != nil {
		return err
	}

	if err := sound.SaveToWAV(cfg.Output); err != nil {
		return err
	}
	logger.Info("exported", zap.String("input", cfg.Input), zap.String("output", cfg.Output))
	return nil
}

// describe prints the format line for sound.
func describe(w io.Writer, name string, sound *fmodgo.Sound) error {
	format, err := sound.Format()
	if err != nil {
		return err
	}
	defaults, err := sound.Defaults()
	if err != nil {
		return err
	}
	ms, err := sound.Length(engine.TimeUnitMS)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s: %d ch, %d bit, %g Hz, %d ms\n", name, format.Channels, format.Bits, defaults.Frequency, ms)
	return err
}

func newEngine(name string, logger *zap.Logger) (engine.Engine, error) {
	switch name {
	case "soft":
		return soft.New(soft.WithLogger(logger)), nil
	case "native":
		return native.New(native.WithLogger(logger))
	}
	return nil, fmt.Errorf("unknown engine %q", name)
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetCounter().GetValue() + m.GetGauge().GetValue()
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			if _, err := fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), labels, value); err != nil {
				return err
			}
		}
	}
	return nil
}
