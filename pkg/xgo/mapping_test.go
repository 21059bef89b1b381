// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import "testing"

func TestMapRange(t *testing.T) {
	tests := []struct {
		name            string
		x, inMin, inMax float64
		outMin, outMax  float64
		expect          int
	}{
		{"speed zero rounds half up", 0, -100, 100, 0, 255, 128},
		{"forward default speed", -50, -100, 100, 0, 255, 64},
		{"backward default speed", 50, -100, 100, 0, 255, 191},
		{"full reverse", -100, -100, 100, 0, 255, 0},
		{"full ahead", 100, -100, 100, 0, 255, 255},
		{"stretch 10", 10, -20, 20, 0, 255, 191},
		{"lean -50", -50, -100, 100, 0, 255, 64},
		{"below range not clamped", -120, -100, 100, 0, 255, -26},
		{"above range not clamped", 120, -100, 100, 0, 255, 281},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRange(tt.x, tt.inMin, tt.inMax, tt.outMin, tt.outMax)
			if got != tt.expect {
				t.Errorf("MapRange(%v) = %d, want %d", tt.x, got, tt.expect)
			}
		})
	}
}

func TestToByte_Wraps(t *testing.T) {
	tests := []struct {
		in     int
		expect byte
	}{
		{0, 0},
		{255, 255},
		{256, 0},
		{281, 25},
		{-1, 255},
		{-26, 230},
	}
	for _, tt := range tests {
		if got := ToByte(tt.in); got != tt.expect {
			t.Errorf("ToByte(%d) = %d, want %d", tt.in, got, tt.expect)
		}
	}
}

func TestRegisterByteHelpers(t *testing.T) {
	if got := SpeedByte(0); got != 128 {
		t.Errorf("SpeedByte(0) = %d, want 128", got)
	}
	if got := HeightByte(10); got != 191 {
		t.Errorf("HeightByte(10) = %d, want 191", got)
	}
	if got := HeightByte(-20); got != 0 {
		t.Errorf("HeightByte(-20) = %d, want 0", got)
	}
	if got := LeanByte(90); got != 242 {
		t.Errorf("LeanByte(90) = %d, want 242", got)
	}
	if got := TimingByte(4); got != 1 {
		t.Errorf("TimingByte(4) = %d, want 1", got)
	}
	if got := TimingByte(2); got != 255 {
		t.Errorf("TimingByte(2) = %d, want 255", got)
	}
	if got := TimingByte(3); got != 128 {
		t.Errorf("TimingByte(3) = %d, want 128", got)
	}
}
