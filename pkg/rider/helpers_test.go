// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rider

import (
	"math"
	"testing"
)

func TestRandomInt(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		lo, hi   int
	}{
		{"ordered", 1, 6, 1, 6},
		{"reversed", 6, 1, 1, 6},
		{"negative", -10, -5, -10, -5},
		{"single", 4, 4, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[int]bool)
			for i := 0; i < 500; i++ {
				got := RandomInt(tt.min, tt.max)
				if got < tt.lo || got > tt.hi {
					t.Fatalf("RandomInt(%d, %d) = %d, want in [%d, %d]", tt.min, tt.max, got, tt.lo, tt.hi)
				}
				seen[got] = true
			}
			if len(seen) != tt.hi-tt.lo+1 {
				t.Errorf("saw %d distinct values, want %d", len(seen), tt.hi-tt.lo+1)
			}
		})
	}
}

func TestRandomInt_WideRanges(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		lo, hi   int
	}{
		{"zero to max", 0, math.MaxInt, 0, math.MaxInt},
		{"full range", math.MinInt, math.MaxInt, math.MinInt, math.MaxInt},
		{"reversed zero to max", math.MaxInt, 0, 0, math.MaxInt},
		{"reversed full range", math.MaxInt, math.MinInt, math.MinInt, math.MaxInt},
		{"min to zero", math.MinInt, 0, math.MinInt, 0},
		{"top two", math.MaxInt - 1, math.MaxInt, math.MaxInt - 1, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RandomInt(%d, %d) panicked: %v", tt.min, tt.max, r)
				}
			}()
			for i := 0; i < 200; i++ {
				got := RandomInt(tt.min, tt.max)
				if got < tt.lo || got > tt.hi {
					t.Fatalf("RandomInt(%d, %d) = %d, want in [%d, %d]", tt.min, tt.max, got, tt.lo, tt.hi)
				}
			}
		})
	}
}
