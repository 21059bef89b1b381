// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/Thermoquad/riderctl/pkg/rider"
	"github.com/spf13/cobra"
)

var (
	runDryRun      bool
	runPerformance bool
	runShowStats   bool
)

var runCmd = &cobra.Command{
	Use:   "run <script.toml>",
	Short: "Run a choreography script",
	Long: `Execute a TOML choreography script step by step.

A script is a list of [[step]] tables, each with an op and an optional arg
(see 'riderctl send --help' for the operations):

  name = "wave demo"

  [[step]]
  op = "wave"
  arg = "fast"

  [[step]]
  op = "move"
  arg = "forward"

Every step is checked before the first frame is sent. Start the same script
on every rider of a group with a different --position to run it as a wave.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the frames and pauses of every step without connecting")
	runCmd.Flags().BoolVar(&runPerformance, "performance", false, "Enter performance mode before the first step")
	runCmd.Flags().BoolVar(&runShowStats, "stats", false, "Print link statistics when the script ends")
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := rider.LoadScript(args[0])
	if err != nil {
		return err
	}

	name := script.Name
	if name == "" {
		name = args[0]
	}
	total := len(script.Steps)

	if runDryRun {
		return dryRunScript(script, name)
	}

	s, err := openSession(settings, settings.Handshake)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Printf("riderctl - %s\n", name)
	fmt.Printf("Connection: %s\n", s.connInfo)
	fmt.Printf("Position: %d\n\n", s.ctrl.Position())

	if runPerformance {
		if err := s.ctrl.EnterPerformanceMode(); err != nil {
			return err
		}
	}

	err = script.Run(s.ctrl, func(i int, st rider.ScriptStep) {
		fmt.Printf("[%d/%d] %s\n", i, total, st)
	})

	if runShowStats {
		fmt.Println()
		fmt.Print(s.link.Statistics())
	}

	if err != nil {
		return err
	}

	fmt.Printf("\nDone.\n")
	return nil
}

// dryRunScript runs the script against an offline device that prints every frame
func dryRunScript(script *rider.Script, name string) error {
	dev := &dryRunDevice{out: os.Stdout, status: 1}
	ctrl := rider.NewController(dev,
		rider.WithSleeper(dev),
		rider.WithLogger(logger),
		rider.WithSettleDelay(settings.SettleDelay),
	)
	ctrl.SetPosition(settings.Position)

	total := len(script.Steps)
	fmt.Printf("Dry run: %s (%d steps, position %d)\n", name, total, settings.Position)

	err := script.Run(ctrl, func(i int, st rider.ScriptStep) {
		fmt.Printf("  [%d/%d] %s\n", i, total, st)
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n%d frames, %v of pauses\n", dev.frames, dev.paused)
	return nil
}
