// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rider

import "testing"

func TestDecodeIntent(t *testing.T) {
	tests := []struct {
		code int
		want Intent
	}{
		{10005, WithArg(KindWait, 5)},
		{10000, WithArg(KindWait, 0)},
		{9999, WithArg(KindSetSpeed, 8999)},
		{1075, WithArg(KindSetSpeed, 75)},
		{1000, WithArg(KindSetSpeed, 0)},
		{999, WithArg(KindAngle, 299)},
		{650, WithArg(KindAngle, -50)},
		{700, WithArg(KindAngle, 0)},
		{600, WithArg(KindAngle, -100)},
		{599, WithArg(KindStretch, 79)},
		{530, WithArg(KindStretch, 10)},
		{500, WithArg(KindStretch, -20)},
		{499, Plain(Kind(499))},
		{6, Plain(KindForward)},
		{0, Plain(KindStop)},
		{-1, Idle},
		{-500, Idle},
	}

	for _, tt := range tests {
		if got := DecodeIntent(tt.code); got != tt.want {
			t.Errorf("DecodeIntent(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIntent_Code(t *testing.T) {
	for _, code := range []int{-1, 0, 6, 18, 500, 520, 540, 600, 700, 800, 1000, 1050, 1100, 10000, 10030} {
		if got := DecodeIntent(code).Code(); got != code {
			t.Errorf("DecodeIntent(%d).Code() = %d", code, got)
		}
	}

	if got := Plain(KindSpeedUp).Code(); got != 11 {
		t.Errorf("SpeedUp code = %d, want 11", got)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindIdle, "IDLE"},
		{KindStop, "STOP"},
		{KindTurnLeft, "TURN_LEFT"},
		{KindPee, "PEE"},
		{Kind(99), "KIND(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}

	if got := WithArg(KindWait, 3).String(); got != "WAIT(3)" {
		t.Errorf("intent string = %q, want WAIT(3)", got)
	}
}

func TestKind_Values(t *testing.T) {
	// Plain message codes are part of the numeric wire of Submit
	codes := map[Kind]int{
		KindStop: 0, KindWait: 1, KindFastWave: 2, KindNormalWave: 3, KindSlowWave: 4,
		KindAction: 5, KindForward: 6, KindBackward: 7, KindLeft: 8, KindRight: 9,
		KindSetSpeed: 10, KindSpeedUp: 11, KindSlowDown: 12, KindTurnLeft: 13,
		KindTurnRight: 14, KindTurnOff: 15, KindStretch: 16, KindAngle: 17, KindPee: 18,
	}
	for k, want := range codes {
		if int(k) != want {
			t.Errorf("%v = %d, want %d", k, int(k), want)
		}
	}
}
