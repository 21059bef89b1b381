// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/Thermoquad/riderctl/pkg/xgo"
)

// dryRunDevice prints the frames a controller would send instead of sending them.
// Reads answer with status, which makes the handshake see a rider in action mode.
type dryRunDevice struct {
	out    io.Writer
	status byte
	frames int
	paused time.Duration
}

func (d *dryRunDevice) WriteRegister(address, data byte) error {
	d.print(xgo.BuildWriteFrame(address, data))
	return nil
}

func (d *dryRunDevice) ReadRegister(address, readLen byte) (byte, error) {
	d.print(xgo.BuildReadFrame(address, readLen))
	return d.status, nil
}

// Sleep reports the pause without waiting
func (d *dryRunDevice) Sleep(dur time.Duration) {
	d.paused += dur
	fmt.Fprintf(d.out, "      pause %v\n", dur)
}

func (d *dryRunDevice) print(f xgo.Frame) {
	d.frames++
	fmt.Fprintf(d.out, "      %s  [% X]\n", xgo.FormatFrame(f), f.Bytes())
}
