// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import (
	"bytes"
	"testing"
)

func TestChecksum_AllInputs(t *testing.T) {
	modes := []byte{ModeWrite, ModeRead}
	for _, mode := range modes {
		for addr := 0; addr < 256; addr++ {
			for data := 0; data < 256; data++ {
				want := byte((^(FrameSize + int(mode) + addr + data)) & 0xFF)
				got := Checksum(FrameSize, mode, byte(addr), byte(data))
				if got != want {
					t.Fatalf("Checksum(9, %d, 0x%02X, 0x%02X) = 0x%02X, want 0x%02X", mode, addr, data, got, want)
				}
			}
		}
	}
}

func TestBuildWriteFrame(t *testing.T) {
	tests := []struct {
		name    string
		address byte
		data    byte
		expect  []byte
	}{
		{
			name:    "action mode",
			address: RegActionMode,
			data:    ActionModeEnter,
			expect:  []byte{0x55, 0x00, 0x09, 0x00, 0x3E, 0xFF, 0xB9, 0x00, 0xAA},
		},
		{
			name:    "linear speed stop",
			address: RegLinearSpeed,
			data:    0x80,
			expect:  []byte{0x55, 0x00, 0x09, 0x00, 0x30, 0x80, 0x46, 0x00, 0xAA},
		},
		{
			name:    "zero register zero data",
			address: 0x00,
			data:    0x00,
			expect:  []byte{0x55, 0x00, 0x09, 0x00, 0x00, 0x00, 0xF6, 0x00, 0xAA},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := BuildWriteFrame(tt.address, tt.data)
			if !bytes.Equal(f.Bytes(), tt.expect) {
				t.Errorf("BuildWriteFrame = % X, want % X", f.Bytes(), tt.expect)
			}
			if !f.IsWrite() {
				t.Error("IsWrite() = false, want true")
			}
		})
	}
}

func TestBuildReadFrame(t *testing.T) {
	f := BuildReadFrame(RegActionStatus, 1)
	expect := []byte{0x55, 0x00, 0x09, 0x02, 0x02, 0x01, 0xF1, 0x00, 0xAA}
	if !bytes.Equal(f.Bytes(), expect) {
		t.Errorf("BuildReadFrame = % X, want % X", f.Bytes(), expect)
	}
	if !f.IsRead() {
		t.Error("IsRead() = false, want true")
	}
	if f.Payload() != 1 {
		t.Errorf("Payload() = %d, want 1", f.Payload())
	}
}

func TestBuiltFrames_HeaderTrailerAndChecksum(t *testing.T) {
	for addr := 0; addr < 256; addr++ {
		for data := 0; data < 256; data += 7 {
			for _, f := range []Frame{BuildWriteFrame(byte(addr), byte(data)), BuildReadFrame(byte(addr), byte(data))} {
				if f[0] != 0x55 || f[1] != 0x00 || f[7] != 0x00 || f[8] != 0xAA {
					t.Fatalf("bad framing: % X", f.Bytes())
				}
				if f.Checksum() != f.ExpectedChecksum() {
					t.Fatalf("checksum mismatch in % X", f.Bytes())
				}
				if errs := ValidateFrame(f.Bytes()); len(errs) != 0 {
					t.Fatalf("built frame % X failed validation: %v", f.Bytes(), errs[0].Message)
				}
			}
		}
	}
}

func TestExtractPayload(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		expect byte
	}{
		{
			name:   "full frame",
			input:  []byte{0x55, 0x00, 0x09, 0x02, 0x02, 0x01, 0xF1, 0x00, 0xAA},
			expect: 0x01,
		},
		{
			name:   "garbage is trusted",
			input:  []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x42, 0x00, 0x00, 0x00},
			expect: 0x42,
		},
		{
			name:   "nil input",
			input:  nil,
			expect: 0x00,
		},
		{
			name:   "cut before payload",
			input:  []byte{0x55, 0x00, 0x09, 0x02, 0x02},
			expect: 0x00,
		},
		{
			name:   "cut right after payload",
			input:  []byte{0x55, 0x00, 0x09, 0x02, 0x02, 0x37},
			expect: 0x37,
		},
		{
			name:   "long input truncated",
			input:  []byte{0x55, 0x00, 0x09, 0x02, 0x02, 0x64, 0x00, 0x00, 0xAA, 0xFF, 0xFF},
			expect: 0x64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPayload(tt.input); got != tt.expect {
				t.Errorf("ExtractPayload(% X) = 0x%02X, want 0x%02X", tt.input, got, tt.expect)
			}
		})
	}
}

func TestParseFrame_PadsAndTruncates(t *testing.T) {
	short := ParseFrame([]byte{0x55, 0x00, 0x09})
	if !bytes.Equal(short.Bytes(), []byte{0x55, 0x00, 0x09, 0, 0, 0, 0, 0, 0}) {
		t.Errorf("short ParseFrame = % X", short.Bytes())
	}

	long := ParseFrame(bytes.Repeat([]byte{0xAB}, 20))
	if len(long.Bytes()) != FrameSize {
		t.Errorf("long ParseFrame length = %d, want %d", len(long.Bytes()), FrameSize)
	}
}
