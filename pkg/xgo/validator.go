// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import "fmt"

// AnomalyType represents different types of frame anomalies
type AnomalyType int

const (
	AnomalyShortFrame AnomalyType = iota
	AnomalyLongFrame
	AnomalyBadHeader
	AnomalyBadTrailer
	AnomalyLengthMismatch
	AnomalyUnknownMode
	AnomalyChecksum
)

// String returns a short name for the anomaly type
func (a AnomalyType) String() string {
	switch a {
	case AnomalyShortFrame:
		return "SHORT_FRAME"
	case AnomalyLongFrame:
		return "LONG_FRAME"
	case AnomalyBadHeader:
		return "BAD_HEADER"
	case AnomalyBadTrailer:
		return "BAD_TRAILER"
	case AnomalyLengthMismatch:
		return "LENGTH_MISMATCH"
	case AnomalyUnknownMode:
		return "UNKNOWN_MODE"
	case AnomalyChecksum:
		return "CHECKSUM"
	default:
		return "UNKNOWN"
	}
}

// ValidationError represents a frame validation failure
type ValidationError struct {
	Type    AnomalyType
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	return v.Message
}

// ValidateFrame checks the structure of raw frame bytes.
// Returns a slice of validation errors (empty if the frame is well formed).
//
// The link does not call this unless it runs in strict mode: replies from the rider
// are otherwise consumed positionally.
func ValidateFrame(b []byte) []ValidationError {
	errors := []ValidationError{}

	if len(b) < FrameSize {
		errors = append(errors, ValidationError{
			Type:    AnomalyShortFrame,
			Message: fmt.Sprintf("frame too short: %d bytes (expected %d)", len(b), FrameSize),
			Details: map[string]interface{}{"length": len(b), "expected": FrameSize},
		})
	} else if len(b) > FrameSize {
		errors = append(errors, ValidationError{
			Type:    AnomalyLongFrame,
			Message: fmt.Sprintf("frame too long: %d bytes (expected %d)", len(b), FrameSize),
			Details: map[string]interface{}{"length": len(b), "expected": FrameSize},
		})
	}

	f := ParseFrame(b)

	if f[offsetHeaderHi] != HeaderHi || f[offsetHeaderLo] != HeaderLo {
		errors = append(errors, ValidationError{
			Type:    AnomalyBadHeader,
			Message: fmt.Sprintf("bad header: %02X %02X", f[offsetHeaderHi], f[offsetHeaderLo]),
			Details: map[string]interface{}{"hi": f[offsetHeaderHi], "lo": f[offsetHeaderLo]},
		})
	}

	if f[offsetTrailerHi] != TrailerHi || f[offsetTrailerLo] != TrailerLo {
		errors = append(errors, ValidationError{
			Type:    AnomalyBadTrailer,
			Message: fmt.Sprintf("bad trailer: %02X %02X", f[offsetTrailerHi], f[offsetTrailerLo]),
			Details: map[string]interface{}{"hi": f[offsetTrailerHi], "lo": f[offsetTrailerLo]},
		})
	}

	if f.Length() != FrameSize {
		errors = append(errors, ValidationError{
			Type:    AnomalyLengthMismatch,
			Message: fmt.Sprintf("length byte=%d (expected %d)", f.Length(), FrameSize),
			Details: map[string]interface{}{"length": f.Length(), "expected": FrameSize},
		})
	}

	if f.Mode() != ModeWrite && f.Mode() != ModeRead {
		errors = append(errors, ValidationError{
			Type:    AnomalyUnknownMode,
			Message: fmt.Sprintf("unknown mode 0x%02X", f.Mode()),
			Details: map[string]interface{}{"mode": f.Mode()},
		})
	}

	if f.Checksum() != f.ExpectedChecksum() {
		errors = append(errors, ValidationError{
			Type:    AnomalyChecksum,
			Message: fmt.Sprintf("checksum mismatch: expected 0x%02X, got 0x%02X", f.ExpectedChecksum(), f.Checksum()),
			Details: map[string]interface{}{"expected": f.ExpectedChecksum(), "got": f.Checksum()},
		})
	}

	return errors
}
