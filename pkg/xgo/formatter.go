// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import (
	"fmt"
	"strings"
)

// FormatRegister returns the human-readable name for a register address
func FormatRegister(address byte) string {
	switch address {
	// Status
	case RegBattery:
		return "BATTERY"
	case RegActionStatus:
		return "ACTION_STATUS"

	// Mode control
	case RegPerformanceMode:
		return "PERFORMANCE_MODE"
	case RegActionMode:
		return "ACTION_MODE"

	// Motion
	case RegLinearSpeed:
		return "LINEAR_SPEED"
	case RegRotationSpeed:
		return "ROTATION_SPEED"
	case RegHeight:
		return "HEIGHT"
	case RegLean:
		return "LEAN"
	case RegShuffleTiming:
		return "SHUFFLE_TIMING"
	case RegSquatTiming:
		return "SQUAT_TIMING"

	default:
		return "UNKNOWN"
	}
}

// FormatMode returns the human-readable name for a frame mode
func FormatMode(mode byte) string {
	switch mode {
	case ModeWrite:
		return "WRITE"
	case ModeRead:
		return "READ"
	default:
		return "UNKNOWN"
	}
}

// FormatFrame formats a frame into a one-line human-readable string
func FormatFrame(f Frame) string {
	return fmt.Sprintf("%s %s (0x%02X) data=0x%02X%s",
		FormatMode(f.Mode()), FormatRegister(f.Address()), f.Address(), f.Payload(), formatValue(f))
}

// FormatRecord formats a captured frame with timestamp, direction and any anomalies
func FormatRecord(r CaptureRecord) string {
	timestamp := r.Time().Format("15:04:05.000")

	var s strings.Builder
	s.WriteString(fmt.Sprintf("[%s] %s ", timestamp, r.Direction))

	if r.Direction == DirectionIn {
		// Replies carry the register value in the data byte
		f := r.Frame()
		s.WriteString(fmt.Sprintf("REPLY data=0x%02X (%d)", f.Payload(), f.Payload()))
	} else {
		s.WriteString(FormatFrame(r.Frame()))
	}
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("  Raw: % X\n", r.Data))

	for _, v := range ValidateFrame(r.Data) {
		s.WriteString(fmt.Sprintf("  !! %s: %s\n", v.Type, v.Message))
	}

	return s.String()
}

// formatValue renders the decoded physical value of a write frame
func formatValue(f Frame) string {
	if !f.IsWrite() {
		if f.IsRead() {
			return fmt.Sprintf(" (read %d byte)", f.Payload())
		}
		return ""
	}

	b := float64(f.Payload())
	switch f.Address() {
	case RegLinearSpeed, RegRotationSpeed:
		return fmt.Sprintf(" (speed %+d%%)", MapRange(b, 0, 255, SpeedMin, SpeedMax))
	case RegHeight:
		return fmt.Sprintf(" (height %+d mm)", MapRange(b, 0, 255, HeightMin, HeightMax))
	case RegLean:
		return fmt.Sprintf(" (lean %+d deg)", MapRange(b, 0, 255, LeanMin, LeanMax))
	case RegActionMode:
		if f.Payload() == ActionModeEnter {
			return " (enter action mode)"
		}
	case RegPerformanceMode:
		if f.Payload() == PerformanceModeEnter {
			return " (enter performance mode)"
		}
	}
	return ""
}
