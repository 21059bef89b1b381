// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import "math"

// MapRange linearly re-maps x from [inMin, inMax] onto [outMin, outMax] and rounds to the
// nearest integer (halves away from zero).
//
// Inputs outside [inMin, inMax] are NOT clamped: the result simply lies outside
// [outMin, outMax]. Callers writing the result to a register go through ToByte, which
// wraps it.
func MapRange(x, inMin, inMax, outMin, outMax float64) int {
	return int(math.Round((x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin))
}

// ToByte truncates a mapped value to a register byte (two's complement wrap)
func ToByte(v int) byte {
	return byte(v)
}

// SpeedByte maps a signed speed percentage onto the linear/rotation register range
func SpeedByte(speed int) byte {
	return ToByte(MapRange(float64(speed), SpeedMin, SpeedMax, 0, 255))
}

// HeightByte maps a stretch offset in mm onto the height register range
func HeightByte(mm int) byte {
	return ToByte(MapRange(float64(mm), HeightMin, HeightMax, 0, 255))
}

// LeanByte maps a lean angle in degrees onto the lean register range
func LeanByte(degrees int) byte {
	return ToByte(MapRange(float64(degrees), LeanMin, LeanMax, 0, 255))
}

// TimingByte maps a squat/shuffle period in seconds onto the timing registers.
// The registers count the other way round: a period of 4 s maps to 1, 2 s maps to 255.
func TimingByte(period float64) byte {
	return ToByte(MapRange(4-period, 0, 2, 1, 255))
}
