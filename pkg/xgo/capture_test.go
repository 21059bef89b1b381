// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestCapture_PreservesOrderAndTime(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCaptureWriter(&buf)
	if err != nil {
		t.Fatalf("NewCaptureWriter failed: %v", err)
	}

	base := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)
	tick := 0
	w.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}

	frames := []Frame{
		BuildReadFrame(RegActionStatus, 1),
		BuildWriteFrame(RegActionMode, ActionModeEnter),
		BuildWriteFrame(RegRotationSpeed, SpeedByte(0)),
	}
	for _, f := range frames {
		if err := w.Record(DirectionOut, f.Bytes()); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	records, err := ReadCapture(&buf)
	if err != nil {
		t.Fatalf("ReadCapture failed: %v", err)
	}
	if len(records) != len(frames) {
		t.Fatalf("got %d records, want %d", len(records), len(frames))
	}
	for i, r := range records {
		if r.Frame() != frames[i] {
			t.Errorf("record %d = %s, want %s", i, r.Frame(), frames[i])
		}
		want := base.Add(time.Duration(i+1) * time.Millisecond)
		if !r.Time().Equal(want) {
			t.Errorf("record %d time = %v, want %v", i, r.Time(), want)
		}
	}
}

func TestReadCapture_Corrupt(t *testing.T) {
	_, err := ReadCapture(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF}))
	if err == nil {
		t.Fatal("expected error for corrupt capture")
	}
}

func TestReadCapture_Empty(t *testing.T) {
	records, err := ReadCapture(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("ReadCapture failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestFormatRecord(t *testing.T) {
	rec := CaptureRecord{
		TimeNs:    time.Now().UnixNano(),
		Direction: DirectionOut,
		Data:      BuildWriteFrame(RegLinearSpeed, SpeedByte(-50)).Bytes(),
	}
	out := FormatRecord(rec)
	for _, want := range []string{"TX", "WRITE", "LINEAR_SPEED", "0x30", "data=0x40", "speed -50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatRecord output missing %q:\n%s", want, out)
		}
	}

	bad := CaptureRecord{Direction: DirectionIn, Data: []byte{0x55, 0x00, 0x09}}
	out = FormatRecord(bad)
	if !strings.Contains(out, "RX") || !strings.Contains(out, "SHORT_FRAME") {
		t.Errorf("FormatRecord did not flag short reply:\n%s", out)
	}
}
