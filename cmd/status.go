// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/riderctl/pkg/xgo"
	"github.com/spf13/cobra"
)

var (
	statusTimeout int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Test the connection with the startup handshake",
	Long: `Run the startup handshake and read the battery level.

The handshake reads the action status register and enters action mode when
the rider is not already in it. A rider that never answers would block
forever, so the command gives up after --timeout seconds.

Exit codes:
  0 - Handshake completed and battery read
  1 - Timeout reached without a reply
  2 - Connection error

Useful for testing connectivity to a rider or a WebSocket bridge.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().IntVar(&statusTimeout, "timeout", 10, "Timeout in seconds to wait for the rider")
}

type statusResult struct {
	battery byte
	err     error
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := openSession(settings, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer s.Close()

	fmt.Printf("riderctl - Status\n")
	fmt.Printf("Connection: %s\n", s.connInfo)
	fmt.Printf("Timeout: %d seconds\n", statusTimeout)
	fmt.Printf("Waiting for the rider...\n\n")

	// The reads block without a deadline; the main goroutine owns the timeout
	resultChan := make(chan statusResult, 1)
	go func() {
		if err := s.ctrl.Handshake(); err != nil {
			resultChan <- statusResult{err: err}
			return
		}
		level, err := s.ctrl.Battery()
		resultChan <- statusResult{battery: level, err: err}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "Read error: %v\n", res.err)
			os.Exit(2)
		}
		snap := s.link.Statistics().Snapshot()
		fmt.Printf("SUCCESS: Rider is in action mode\n")
		fmt.Printf("  Battery: %d%%\n", res.battery)
		fmt.Printf("  Frames: %d written, %d read, %d anomalies\n",
			snap.FramesWritten, snap.FramesRead, snap.Anomalies)
		if s.link.Strict() {
			fmt.Printf("  Replies: validated (strict)\n")
		}
		s.Close()
		os.Exit(0)

	case <-time.After(time.Duration(statusTimeout) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: No reply from the rider within %d seconds (%s)\n",
			statusTimeout, xgo.FormatRegister(xgo.RegActionStatus))
		os.Exit(1)
	}

	return nil
}
