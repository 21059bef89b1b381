// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import (
	"bytes"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// newFuzzRng creates a random number generator and logs the seed (FUZZ_SEED reproduces it)
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := time.Now().UnixNano()
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if s, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			seed = s
		}
	}
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// TestFuzzFrame_RandomBytes feeds random slices to the frame helpers
// and verifies they never panic
func TestFuzzFrame_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)

	for i := 0; i < rounds; i++ {
		data := make([]byte, rng.Intn(2*FrameSize+1))
		rng.Read(data)

		f := ParseFrame(data)
		if got := ExtractPayload(data); got != f.Payload() {
			t.Fatalf("Round %d: ExtractPayload = 0x%02X, ParseFrame payload = 0x%02X", i, got, f.Payload())
		}
		if len(data) != FrameSize && len(ValidateFrame(data)) == 0 {
			t.Fatalf("Round %d: %d-byte input validated clean", i, len(data))
		}
		_ = FormatFrame(f)
	}
}

// TestFuzzFrame_RandomWrites builds random write frames and verifies they validate clean
func TestFuzzFrame_RandomWrites(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)

	for i := 0; i < rounds; i++ {
		addr := byte(rng.Intn(256))
		data := byte(rng.Intn(256))
		f := BuildWriteFrame(addr, data)

		if errs := ValidateFrame(f.Bytes()); len(errs) != 0 {
			t.Fatalf("Round %d: frame % X has anomalies: %v", i, f.Bytes(), errs)
		}
		if f.Address() != addr || f.Payload() != data {
			t.Fatalf("Round %d: got addr=0x%02X data=0x%02X, want 0x%02X/0x%02X",
				i, f.Address(), f.Payload(), addr, data)
		}
	}
}

// TestFuzzFrame_CorruptedFrames flips one byte of a valid frame and verifies the
// validator reports it
func TestFuzzFrame_CorruptedFrames(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)

	for i := 0; i < rounds; i++ {
		f := BuildWriteFrame(byte(rng.Intn(256)), byte(rng.Intn(256)))
		b := f.Bytes()

		idx := rng.Intn(FrameSize)
		b[idx] ^= byte(rng.Intn(255) + 1)

		if errs := ValidateFrame(b); len(errs) == 0 {
			t.Fatalf("Round %d: corruption at byte %d not detected in % X", i, idx, b)
		}
	}
}

// TestFuzzCapture_RoundTrip records random frames and reads them back
func TestFuzzCapture_RoundTrip(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	var buf bytes.Buffer
	w, err := NewCaptureWriter(&buf)
	if err != nil {
		t.Fatalf("NewCaptureWriter failed: %v", err)
	}

	want := make([][]byte, rounds)
	for i := range want {
		data := make([]byte, rng.Intn(2*FrameSize+1))
		rng.Read(data)
		want[i] = data
		if err := w.Record(Direction(i%2), data); err != nil {
			t.Fatalf("Round %d: Record failed: %v", i, err)
		}
	}

	records, err := ReadCapture(&buf)
	if err != nil {
		t.Fatalf("ReadCapture failed: %v", err)
	}
	if len(records) != rounds {
		t.Fatalf("got %d records, want %d", len(records), rounds)
	}
	for i, r := range records {
		if !bytes.Equal(r.Data, want[i]) {
			t.Fatalf("Round %d: data % X, want % X", i, r.Data, want[i])
		}
		if r.Direction != Direction(i%2) {
			t.Fatalf("Round %d: direction %v, want %v", i, r.Direction, Direction(i%2))
		}
	}
}
