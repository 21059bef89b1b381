// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		name  string
		flag  string
		env   string
		level zerolog.Level
	}{
		{"flag", "debug", "", zerolog.DebugLevel},
		{"env wins", "debug", "warn", zerolog.WarnLevel},
		{"mixed case", "ERROR", "", zerolog.ErrorLevel},
		{"invalid", "loud", "", zerolog.InfoLevel},
		{"empty", "", "", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envLogLevel, tt.env)
			l := newLogger(&bytes.Buffer{}, tt.flag)
			if got := l.GetLevel(); got != tt.level {
				t.Errorf("level = %v, want %v", got, tt.level)
			}
		})
	}
}

func TestNewLogger_NoColor(t *testing.T) {
	t.Setenv(envLogLevel, "")
	t.Setenv(envLogNoColor, "1")

	var buf bytes.Buffer
	l := newLogger(&buf, "info")
	l.Info().Str("port", "/dev/ttyUSB0").Msg("connected")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output contains colour codes: %q", out)
	}
	if !strings.Contains(out, "connected") || !strings.Contains(out, "port=/dev/ttyUSB0") {
		t.Errorf("unexpected output: %q", out)
	}
}
