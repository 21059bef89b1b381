// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// riderctl - XGO Rider Command Tool
//
// A CLI tool for driving XGO rider robots and choreographing groups of
// riders over the 9-byte serial register protocol.

package main

import (
	"os"

	"github.com/Thermoquad/riderctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
