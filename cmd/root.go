// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Rider flags
	configPath    string
	riderPosition int
	strictFrames  bool
	recordPath    string
	logLevel      string

	// settings is resolved from defaults, the config file and flags before every command
	settings Config
)

var rootCmd = &cobra.Command{
	Use:   "riderctl",
	Short: "XGO Rider Command Tool",
	Long: `riderctl - A CLI tool for driving XGO rider robots over their 9-byte serial protocol.

Sends single operations, runs TOML choreography scripts, drives a rider
interactively and inspects recorded frame captures. Riders in a group
start a wave one after another based on their --position.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the RIDERCTL_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.

Settings may also come from a TOML file (--config); flags given on the
command line override the file.`,
	Version:      "1.0.0",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogger(logLevel)

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		settings = cfg
		return nil
	},
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Rider flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().IntVar(&riderPosition, "position", 1, "Position in the group (1 = leader, up to 9)")
	rootCmd.PersistentFlags().BoolVar(&strictFrames, "strict", false, "Reject malformed reply frames")
	rootCmd.PersistentFlags().StringVar(&recordPath, "record", "", "Record all frames to a CBOR capture file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
