// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package xgo implements the XGO rider serial command protocol.
//
// Every exchange on the link is a fixed 9-byte frame:
//
//	55 00 <len> <mode> <addr> <data> <checksum> 00 AA
//
// where checksum = ^(len + mode + addr + data) truncated to 8 bits. Write frames carry a
// register value in the data byte; read frames carry the number of bytes requested and
// are answered by a 9-byte frame whose data byte holds the register value.
package xgo

// Protocol framing bytes
const (
	HeaderHi  = 0x55
	HeaderLo  = 0x00
	TrailerHi = 0x00
	TrailerLo = 0xAA
)

// FrameSize is the length of every frame on the wire, in both directions
const FrameSize = 9

// Byte offsets within a frame
const (
	offsetHeaderHi  = 0
	offsetHeaderLo  = 1
	offsetLength    = 2
	offsetMode      = 3
	offsetAddress   = 4
	offsetPayload   = 5
	offsetChecksum  = 6
	offsetTrailerHi = 7
	offsetTrailerLo = 8
)

// Frame modes
const (
	ModeWrite = 0x00
	ModeRead  = 0x02
)

// Registers - status (read)
const (
	RegBattery      = 0x01 // Battery level in percent
	RegActionStatus = 0x02 // Non-zero when the rider is in action mode
)

// Registers - mode control (write)
const (
	RegPerformanceMode = 0x03 // Data 0x00 enters performance mode
	RegActionMode      = 0x3E // Data 0xFF enters action mode
)

// Registers - motion (write)
const (
	RegLinearSpeed   = 0x30
	RegRotationSpeed = 0x32
	RegHeight        = 0x35
	RegLean          = 0x36
	RegShuffleTiming = 0x39
	RegSquatTiming   = 0x82
)

// Register data values
const (
	ActionModeEnter      = 0xFF
	PerformanceModeEnter = 0x00
)

// Physical ranges used when mapping values onto a register byte
const (
	SpeedMin  = -100 // percent, signed by direction
	SpeedMax  = 100
	HeightMin = -20 // mm
	HeightMax = 20
	LeanMin   = -100 // degrees
	LeanMax   = 100
)

// DefaultBaudRate is the rider's UART speed
const DefaultBaudRate = 115200
