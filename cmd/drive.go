// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Drive the rider interactively",
	Long: `Interactive terminal interface for driving a rider with the keyboard.

Arrow keys ride and turn, space stops, +/- change the speed. Stretch, lean,
waves and raw message codes are available too; press ? for all keys.

A key is ignored while the previous operation is still running, so every
operation completes before the next one starts.`,
	RunE: runDrive,
}

func init() {
	rootCmd.AddCommand(driveCmd)
}

func runDrive(cmd *cobra.Command, args []string) error {
	s, err := openSession(settings, settings.Handshake)
	if err != nil {
		return err
	}
	defer s.Close()

	p := tea.NewProgram(initialDriveModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fmt.Print(s.link.Statistics())
	return nil
}
