// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Thermoquad/riderctl/pkg/rider"
)

func TestDryRunDevice(t *testing.T) {
	var out bytes.Buffer
	dev := &dryRunDevice{out: &out, status: 1}
	c := rider.NewController(dev, rider.WithSleeper(dev))
	c.SetPosition(2)

	if err := c.Handshake(); err != nil {
		t.Fatalf("Handshake failed: %v", err)
	}
	if err := c.SetWave(rider.WaveNormal); err != nil {
		t.Fatal(err)
	}
	if err := c.Move(rider.MoveForward); err != nil {
		t.Fatal(err)
	}

	if dev.frames != 3 {
		t.Errorf("frames = %d, want 3", dev.frames)
	}
	if want := 600 * time.Millisecond; dev.paused != want {
		t.Errorf("paused = %v, want %v", dev.paused, want)
	}

	text := out.String()
	for _, want := range []string{"READ ACTION_STATUS", "pause 500ms", "WRITE LINEAR_SPEED", "55 00 09"} {
		if !strings.Contains(text, want) {
			t.Errorf("output does not contain %q:\n%s", want, text)
		}
	}
}
