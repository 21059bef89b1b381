// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment overrides for logging
const (
	envLogLevel   = "RIDERCTL_LOG_LEVEL"
	envLogNoColor = "RIDERCTL_LOG_NOCOLOR"
)

// logger is the command logger; stdout is kept for command output
var logger = zerolog.Nop()

// initLogger configures the global logger on stderr
func initLogger(level string) zerolog.Logger {
	logger = newLogger(os.Stderr, level)
	log.Logger = logger
	return logger
}

func newLogger(out io.Writer, level string) zerolog.Logger {
	if env := strings.TrimSpace(os.Getenv(envLogLevel)); env != "" {
		level = env
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    os.Getenv(envLogNoColor) != "",
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", "riderctl").Logger()
}
