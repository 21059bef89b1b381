// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rider

import (
	"fmt"
	"strings"
	"time"
)

// Defaults for a freshly started rider
const (
	DefaultSpeed    = 50
	DefaultPosition = 1 // leader
	MinSpeed        = 0
	MaxSpeed        = 100
	SpeedStep       = 10
)

// MotionState is the motion configuration remembered between messages
type MotionState struct {
	Movement  Kind // latest movement message
	Speed     int  // percent; clamped only by SpeedUp/SlowDown
	Stretch   int  // mm, -20..20
	LeanAngle int  // degrees, -100..100
}

// GroupState is the rider's place in a group choreography
type GroupState struct {
	Position  int           // 1-based, 1 = leader
	WaveDelay time.Duration // paid before the next non-stop message
}

func defaultMotion() MotionState {
	return MotionState{
		Movement: KindStop,
		Speed:    DefaultSpeed,
	}
}

func defaultGroup() GroupState {
	return GroupState{Position: DefaultPosition}
}

// Wave selects how far apart followers start in a wave
type Wave int

const (
	WaveSlow Wave = iota
	WaveNormal
	WaveFast
)

// Delay per position step behind the leader
var waveSteps = map[Kind]time.Duration{
	KindFastWave:   300 * time.Millisecond,
	KindNormalWave: 500 * time.Millisecond,
	KindSlowWave:   1000 * time.Millisecond,
}

// WaveDelay returns the delay a rider at the given position pays for a wave kind
func WaveDelay(kind Kind, position int) time.Duration {
	return time.Duration(position-1) * waveSteps[kind]
}

func (w Wave) kind() (Kind, bool) {
	switch w {
	case WaveSlow:
		return KindSlowWave, true
	case WaveNormal:
		return KindNormalWave, true
	case WaveFast:
		return KindFastWave, true
	}
	return KindIdle, false
}

// Movement is a riding direction
type Movement int

const (
	MoveForward Movement = iota
	MoveBackward
)

func (m Movement) kind() (Kind, bool) {
	switch m {
	case MoveForward:
		return KindForward, true
	case MoveBackward:
		return KindBackward, true
	}
	return KindIdle, false
}

// Rotation is a continuous turning direction
type Rotation int

const (
	TurnLeft Rotation = iota
	TurnRight
)

func (r Rotation) kind() (Kind, bool) {
	switch r {
	case TurnLeft:
		return KindTurnLeft, true
	case TurnRight:
		return KindTurnRight, true
	}
	return KindIdle, false
}

// Action is a standard action
type Action int

const (
	ActionPee Action = iota
)

func (a Action) kind() (Kind, bool) {
	switch a {
	case ActionPee:
		return KindPee, true
	}
	return KindIdle, false
}

// ParseWave parses "slow", "normal" or "fast"
func ParseWave(s string) (Wave, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return WaveSlow, nil
	case "normal":
		return WaveNormal, nil
	case "fast":
		return WaveFast, nil
	}
	return 0, fmt.Errorf("%w: wave %q (use slow, normal or fast)", ErrInvalidArgument, s)
}

// ParseMovement parses "forward" or "backward"
func ParseMovement(s string) (Movement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward":
		return MoveForward, nil
	case "backward":
		return MoveBackward, nil
	}
	return 0, fmt.Errorf("%w: movement %q (use forward or backward)", ErrInvalidArgument, s)
}

// ParseRotation parses "left" or "right"
func ParseRotation(s string) (Rotation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return TurnLeft, nil
	case "right":
		return TurnRight, nil
	}
	return 0, fmt.Errorf("%w: rotation %q (use left or right)", ErrInvalidArgument, s)
}

// ParseAction parses a standard action name
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pee":
		return ActionPee, nil
	}
	return 0, fmt.Errorf("%w: action %q (use pee)", ErrInvalidArgument, s)
}
