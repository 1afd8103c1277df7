// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/fmodgo/formats/wav"
)

func writeInput(t *testing.T, dir string) []byte {
	t.Helper()

	payload := make([]byte, 400)
	for i := range payload {
		payload[i] = byte(i * 3)
	}
	buf := new(bytes.Buffer)
	h := wav.Header{Channels: 2, SampleRate: 8000, BitsPerSample: 16, DataLen: len(payload)}
	if err := wav.Write(buf, h, payload); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "in.wav"), buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := writeInput(t, dir)
	out := filepath.Join(dir, "out.wav")

	stdout := new(bytes.Buffer)
	if err := run([]string{"--log-level", "error", "--metrics", filepath.Join(dir, "in.wav"), out}, stdout); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("output differs from input")
	}

	for _, line := range []string{
		"in.wav: 2 ch, 16 bit, 8000 Hz, 12 ms",
		"fmodgo_wav_exports_total 1",
		"fmodgo_wav_export_bytes_total 400",
		"fmodgo_handles_live 0",
	} {
		if !strings.Contains(stdout.String(), line) {
			t.Errorf("metrics output missing %q:\n%s", line, stdout)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeInput(t, dir)
	in := filepath.Join(dir, "in.wav")

	tests := []struct {
		name string
		args []string
	}{
		{"missing output", []string{in}},
		{"missing input file", []string{filepath.Join(dir, "nope.wav"), filepath.Join(dir, "out.wav")}},
		{"unknown engine", []string{"--engine", "hardware", in, filepath.Join(dir, "out.wav")}},
		{"bad log level", []string{"--log-level", "loud", in, filepath.Join(dir, "out.wav")}},
		{"bad log format", []string{"--log-format", "xml", in, filepath.Join(dir, "out.wav")}},
		{"missing config file", []string{"--config", filepath.Join(dir, "none.yaml"), in, filepath.Join(dir, "out.wav")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := run(tt.args, new(bytes.Buffer)); err == nil {
				t.Error("run() error = nil")
			}
		})
	}

	if err := run([]string{in}, new(bytes.Buffer)); !errors.Is(err, errUsage) {
		t.Errorf("run() error = %v, want errUsage", err)
	}
}

func TestLoadConfig_Sources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sndexport.yaml")
	if err := os.WriteFile(path, []byte("log-format: json\nmetrics: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SNDEXPORT_LOG_LEVEL", "debug")

	cfg, err := loadConfig([]string{"--config", path, "--engine", "native", "a.ogg", "b.wav"})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	want := config{
		LogLevel:  "debug",
		LogFormat: "json",
		Metrics:   true,
		Engine:    "native",
		Input:     "a.ogg",
		Output:    "b.wav",
	}
	if *cfg != want {
		t.Errorf("loadConfig() = %+v, want %+v", *cfg, want)
	}
}
