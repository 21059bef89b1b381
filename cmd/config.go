// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Thermoquad/riderctl/pkg/rider"
	"github.com/Thermoquad/riderctl/pkg/xgo"
	"github.com/spf13/cobra"
)

// Config holds the resolved connection and rider settings
type Config struct {
	Port     string
	BaudRate int

	URL         string
	Username    string
	NoSSLVerify bool

	Position    int
	Strict      bool
	SettleDelay time.Duration
	Handshake   bool
	Record      string
}

// DefaultConfig returns the settings used when neither file nor flags set a value
func DefaultConfig() Config {
	return Config{
		BaudRate:    xgo.DefaultBaudRate,
		Position:    rider.DefaultPosition,
		SettleDelay: rider.DefaultSettleDelay,
		Handshake:   true,
	}
}

type fileConfig struct {
	Serial struct {
		Port string `toml:"port"`
		Baud int    `toml:"baud"`
	} `toml:"serial"`

	WebSocket struct {
		URL         string `toml:"url"`
		Username    string `toml:"username"`
		NoSSLVerify bool   `toml:"no_ssl_verify"`
	} `toml:"websocket"`

	Rider struct {
		Position  int    `toml:"position"`
		Strict    bool   `toml:"strict"`
		SettleMS  int64  `toml:"settle_ms"`
		Handshake bool   `toml:"handshake"`
		Record    string `toml:"record"`
	} `toml:"rider"`
}

// loadConfigFile overlays the keys defined in a TOML file onto cfg
func loadConfigFile(path string, cfg Config) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("serial", "port") {
		cfg.Port = strings.TrimSpace(raw.Serial.Port)
	}
	if meta.IsDefined("serial", "baud") {
		cfg.BaudRate = raw.Serial.Baud
	}

	if meta.IsDefined("websocket", "url") {
		cfg.URL = strings.TrimSpace(raw.WebSocket.URL)
	}
	if meta.IsDefined("websocket", "username") {
		cfg.Username = strings.TrimSpace(raw.WebSocket.Username)
	}
	if meta.IsDefined("websocket", "no_ssl_verify") {
		cfg.NoSSLVerify = raw.WebSocket.NoSSLVerify
	}

	if meta.IsDefined("rider", "position") {
		cfg.Position = raw.Rider.Position
	}
	if meta.IsDefined("rider", "strict") {
		cfg.Strict = raw.Rider.Strict
	}
	if meta.IsDefined("rider", "settle_ms") {
		cfg.SettleDelay = time.Duration(raw.Rider.SettleMS) * time.Millisecond
	}
	if meta.IsDefined("rider", "handshake") {
		cfg.Handshake = raw.Rider.Handshake
	}
	if meta.IsDefined("rider", "record") {
		cfg.Record = strings.TrimSpace(raw.Rider.Record)
	}

	return cfg, nil
}

// resolveConfig builds the settings: defaults, then the config file, then flags set
// on the command line
func resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		var err error
		cfg, err = loadConfigFile(configPath, cfg)
		if err != nil {
			return Config{}, err
		}
		logger.Debug().Str("path", configPath).Msg("config loaded")
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = portName
	}
	if flags.Changed("baud") {
		cfg.BaudRate = baudRate
	}
	if flags.Changed("url") {
		cfg.URL = wsURL
	}
	if flags.Changed("username") {
		cfg.Username = wsUsername
	}
	if flags.Changed("no-ssl-verify") {
		cfg.NoSSLVerify = wsNoSSLVerify
	}
	if flags.Changed("position") {
		cfg.Position = riderPosition
	}
	if flags.Changed("strict") {
		cfg.Strict = strictFrames
	}
	if flags.Changed("record") {
		cfg.Record = recordPath
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	if c.Position < 1 || c.Position > 9 {
		return fmt.Errorf("invalid position %d (use 1..9)", c.Position)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("invalid settle delay %v", c.SettleDelay)
	}
	return nil
}
