// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"

	"github.com/Thermoquad/riderctl/pkg/rider"
	"github.com/spf13/cobra"
)

var (
	sendPerformance bool
)

var sendCmd = &cobra.Command{
	Use:   "send <op> [arg]",
	Short: "Send a single operation to the rider",
	Long: `Run one rider operation and print the resulting rider state.

Operations and arguments:
  position <1..9>           wave <slow|normal|fast>   action <pee>
  stretch <mm>              shrink <mm>               lean_left <deg>
  lean_right <deg>          turn <left|right>         move <forward|backward>
  speed <percent>           speed_up                  slow_down
  turn_off                  stop                      wait <seconds>
  code <message code>       squat <2..4 s>            shuffle <2..4 s>
  comment <text>

The argument is checked before connecting. Unless disabled in the config file,
the startup handshake puts the rider into action mode first.`,
	Example: `  riderctl send -p /dev/ttyUSB0 move forward
  riderctl send -p /dev/ttyUSB0 speed 80
  riderctl send -u ws://bridge.local/rider --username admin code 10002`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().BoolVar(&sendPerformance, "performance", false, "Enter performance mode before the operation")
}

func runSend(cmd *cobra.Command, args []string) error {
	step := rider.ScriptStep{Op: args[0]}
	if len(args) == 2 {
		step.Arg = rider.ParseStepArg(args[1])
	}

	// Reject bad input before touching the rider
	check := rider.Script{Steps: []rider.ScriptStep{step}}
	if err := check.Validate(); err != nil {
		return err
	}

	s, err := openSession(settings, settings.Handshake)
	if err != nil {
		return err
	}
	defer s.Close()

	if sendPerformance {
		if err := s.ctrl.EnterPerformanceMode(); err != nil {
			return err
		}
	}

	if err := rider.Apply(s.ctrl, step.Op, step.Arg); err != nil {
		return err
	}

	fmt.Printf("Sent: %s\n", step)
	fmt.Print(formatRiderState(s.ctrl))
	return nil
}

// formatRiderState renders the controller state for command output
func formatRiderState(c *rider.Controller) string {
	motion := c.Motion()
	group := c.Group()

	var b strings.Builder
	fmt.Fprintf(&b, "  Movement:   %s\n", motion.Movement)
	fmt.Fprintf(&b, "  Speed:      %d%%\n", motion.Speed)
	fmt.Fprintf(&b, "  Stretch:    %d mm\n", motion.Stretch)
	fmt.Fprintf(&b, "  Lean:       %d\n", motion.LeanAngle)
	fmt.Fprintf(&b, "  Position:   %d\n", group.Position)
	if group.WaveDelay > 0 {
		fmt.Fprintf(&b, "  Wave delay: %v (paid by the next operation)\n", group.WaveDelay)
	}
	return b.String()
}
