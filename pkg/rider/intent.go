// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rider

import "fmt"

// Kind enumerates the messages understood by the dispatcher.
// The numeric values are the plain message codes used by Submit.
type Kind int

// KindIdle marks an empty pending slot
const KindIdle Kind = -1

// Message kinds
const (
	KindStop Kind = iota // stops the rider
	KindWait             // suspend for Arg seconds

	KindFastWave // delay the next message by position
	KindNormalWave
	KindSlowWave

	KindAction // reserved

	KindForward // ride in a direction
	KindBackward
	KindLeft  // reserved
	KindRight // reserved

	KindSetSpeed // set speed to Arg percent
	KindSpeedUp  // speed +10 %
	KindSlowDown // speed -10 %

	KindTurnLeft // continuous rotation, ended by a
	KindTurnRight
	KindTurnOff // movement or stop message

	KindStretch // body height offset Arg mm
	KindAngle   // lean angle Arg degrees

	KindPee // standard action
)

// Band boundaries of the numeric message encoding
const (
	codeWaitBand    = 10000
	codeSpeedBand   = 1000
	codeAngleBand   = 600
	codeAngleBase   = 700
	codeStretchBand = 500
	codeStretchBase = 520
	codeIdle        = -1
)

var kindNames = map[Kind]string{
	KindIdle:       "IDLE",
	KindStop:       "STOP",
	KindWait:       "WAIT",
	KindFastWave:   "FAST_WAVE",
	KindNormalWave: "NORMAL_WAVE",
	KindSlowWave:   "SLOW_WAVE",
	KindAction:     "ACTION",
	KindForward:    "FORWARD",
	KindBackward:   "BACKWARD",
	KindLeft:       "LEFT",
	KindRight:      "RIGHT",
	KindSetSpeed:   "SET_SPEED",
	KindSpeedUp:    "SPEED_UP",
	KindSlowDown:   "SLOW_DOWN",
	KindTurnLeft:   "TURN_LEFT",
	KindTurnRight:  "TURN_RIGHT",
	KindTurnOff:    "TURN_OFF",
	KindStretch:    "STRETCH",
	KindAngle:      "ANGLE",
	KindPee:        "PEE",
}

// String returns the message name
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// IsMovement reports whether the kind is remembered as the rider's current movement
func (k Kind) IsMovement() bool {
	switch k {
	case KindStop, KindForward, KindBackward, KindTurnLeft, KindTurnRight, KindTurnOff:
		return true
	}
	return false
}

// Intent is one pending message: a kind plus an optional argument.
//
// Only KindWait (seconds), KindSetSpeed (percent), KindAngle (degrees) and
// KindStretch (mm) use Arg. A payload kind without HasArg re-applies the value already
// stored in the motion state.
type Intent struct {
	Kind   Kind
	Arg    int
	HasArg bool
}

// Idle is the empty pending slot
var Idle = Intent{Kind: KindIdle}

// Plain creates an intent without argument
func Plain(k Kind) Intent {
	return Intent{Kind: k}
}

// WithArg creates an intent carrying an argument
func WithArg(k Kind, arg int) Intent {
	return Intent{Kind: k, Arg: arg, HasArg: true}
}

// IsIdle reports whether the intent is the empty slot
func (in Intent) IsIdle() bool {
	return in.Kind == KindIdle
}

// String implements fmt.Stringer
func (in Intent) String() string {
	if in.HasArg {
		return fmt.Sprintf("%s(%d)", in.Kind, in.Arg)
	}
	return in.Kind.String()
}

// DecodeIntent converts a numeric message code into an Intent.
//
// Codes use disjoint magnitude bands:
//
//	>= 10000        wait,    seconds = code - 10000
//	[1000, 10000)   speed,   percent = code - 1000
//	[600, 1000)     angle,   degrees = code - 700
//	[500, 600)      stretch, mm      = code - 520
//	[0, 500)        plain message kind
//	< 0             idle
func DecodeIntent(code int) Intent {
	switch {
	case code >= codeWaitBand:
		return WithArg(KindWait, code-codeWaitBand)
	case code >= codeSpeedBand:
		return WithArg(KindSetSpeed, code-codeSpeedBand)
	case code >= codeAngleBand:
		return WithArg(KindAngle, code-codeAngleBase)
	case code >= codeStretchBand:
		return WithArg(KindStretch, code-codeStretchBase)
	case code >= 0:
		return Plain(Kind(code))
	default:
		return Idle
	}
}

// Code encodes the intent back into its numeric message code.
// Arguments that fall outside their band produce a code that decodes differently
// (e.g. an angle of 400 lands in the speed band); typed intents never go through
// this path internally.
func (in Intent) Code() int {
	if in.IsIdle() {
		return codeIdle
	}
	if !in.HasArg {
		return int(in.Kind)
	}
	switch in.Kind {
	case KindWait:
		return codeWaitBand + in.Arg
	case KindSetSpeed:
		return codeSpeedBand + in.Arg
	case KindAngle:
		return codeAngleBase + in.Arg
	case KindStretch:
		return codeStretchBase + in.Arg
	default:
		return int(in.Kind)
	}
}
