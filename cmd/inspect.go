// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/Thermoquad/riderctl/pkg/xgo"
	"github.com/spf13/cobra"
)

var (
	inspectAnomaliesOnly bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <capture.cbor>",
	Short: "Display a frame capture in human-readable format",
	Long: `Decode a CBOR frame capture written with --record.

Each frame is shown with its timestamp, direction, register and decoded
value. Reply frames are validated and anomalies are listed below them.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectAnomaliesOnly, "anomalies", false, "Only show frames with anomalies")
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := xgo.ReadCapture(f)
	if err != nil {
		// Show what was readable before the damage
		logger.Warn().Err(err).Int("records", len(records)).Msg("capture truncated")
	}

	fmt.Printf("riderctl - Capture %s\n\n", args[0])

	var written, read, anomalous int
	for _, r := range records {
		bad := len(xgo.ValidateFrame(r.Data)) > 0
		if r.Direction == xgo.DirectionOut {
			written++
		} else {
			read++
		}
		if bad {
			anomalous++
		}
		if inspectAnomaliesOnly && !bad {
			continue
		}
		fmt.Print(xgo.FormatRecord(r))
	}

	fmt.Printf("\n%d frames: %d written, %d read, %d with anomalies\n",
		len(records), written, read, anomalous)
	return nil
}
