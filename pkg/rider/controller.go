// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package rider turns high level intents into XGO rider command frames.
//
// A Controller owns the rider's motion and group state and a single pending intent
// slot. Every public operation records an intent and dispatches it synchronously:
// the call returns only after all frames were written and any wave, wait or settle
// delay was paid. A Controller is meant to be driven by one goroutine.
package rider

import (
	"errors"
	"fmt"
	"time"

	"github.com/Thermoquad/riderctl/pkg/xgo"
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// ErrInvalidArgument is returned for enum values or script arguments that do not exist
var ErrInvalidArgument = errors.New("rider: invalid argument")

// DefaultSettleDelay is the pause after linear speed, height and lean writes
const DefaultSettleDelay = 100 * time.Millisecond

// Device is the register interface of a rider. *xgo.Link implements it.
type Device interface {
	WriteRegister(address, data byte) error
	ReadRegister(address, readLen byte) (byte, error)
}

// Sleeper is the blocking pause primitive. clock.Clock implements it.
type Sleeper interface {
	Sleep(d time.Duration)
}

// Controller drives one rider
type Controller struct {
	dev     Device
	sleeper Sleeper
	logger  zerolog.Logger
	settle  time.Duration

	motion  MotionState
	group   GroupState
	pending Intent

	// hold records intents without dispatching them. Nothing sets it yet; it is
	// checked so a future toggle only has to flip it.
	hold bool
}

// Option configures a Controller
type Option func(*Controller)

// WithSleeper replaces the real-time clock used for all pauses
func WithSleeper(s Sleeper) Option {
	return func(c *Controller) {
		c.sleeper = s
	}
}

// WithLogger sets the controller logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSettleDelay sets the pause after linear speed, height and lean writes (0 disables it)
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.settle = d
	}
}

// NewController creates a controller with default state. No frames are sent.
func NewController(dev Device, opts ...Option) *Controller {
	c := &Controller{
		dev:     dev,
		sleeper: clock.New(),
		logger:  zerolog.Nop(),
		settle:  DefaultSettleDelay,
		motion:  defaultMotion(),
		group:   defaultGroup(),
		pending: Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start creates a controller and runs the startup handshake
func Start(dev Device, opts ...Option) (*Controller, error) {
	c := NewController(dev, opts...)
	if err := c.Handshake(); err != nil {
		return nil, err
	}
	return c, nil
}

// Motion returns a copy of the motion state
func (c *Controller) Motion() MotionState {
	return c.motion
}

// Group returns a copy of the group state
func (c *Controller) Group() GroupState {
	return c.group
}

// Pending returns the intent waiting for dispatch (Idle after every dispatch)
func (c *Controller) Pending() Intent {
	return c.pending
}

// submit records an intent and dispatches it unless dispatch is on hold
func (c *Controller) submit(in Intent) error {
	c.pending = in
	if c.hold {
		return nil
	}
	return c.Dispatch()
}

// Submit records a numeric message code and dispatches it.
// This is the compatibility entry point for the banded code format (see DecodeIntent).
func (c *Controller) Submit(code int) error {
	return c.submit(DecodeIntent(code))
}

//////////////////////////////////////////////////////////////
// Group
//////////////////////////////////////////////////////////////

// SetPosition sets the rider's 1-based position in the group (1..9)
func (c *Controller) SetPosition(position int) {
	c.group.Position = position
}

// Position returns the rider's position in the group
func (c *Controller) Position() int {
	return c.group.Position
}

// SetWave makes the next message start after a delay proportional to the position.
// No frame is sent.
func (c *Controller) SetWave(w Wave) error {
	kind, ok := w.kind()
	if !ok {
		return fmt.Errorf("%w: wave %d", ErrInvalidArgument, int(w))
	}
	return c.submit(Plain(kind))
}

//////////////////////////////////////////////////////////////
// Motion
//////////////////////////////////////////////////////////////

// PerformAction performs a standard action
func (c *Controller) PerformAction(a Action) error {
	kind, ok := a.kind()
	if !ok {
		return fmt.Errorf("%w: action %d", ErrInvalidArgument, int(a))
	}
	return c.submit(Plain(kind))
}

// Stretch raises the body by mm (0..20)
func (c *Controller) Stretch(mm int) error {
	return c.submit(WithArg(KindStretch, mm))
}

// Shrink lowers the body by mm (0..20)
func (c *Controller) Shrink(mm int) error {
	return c.submit(WithArg(KindStretch, -mm))
}

// LeanLeft tilts the body to the left by degrees (0..45)
func (c *Controller) LeanLeft(degrees int) error {
	return c.submit(WithArg(KindAngle, 2*degrees))
}

// LeanRight tilts the body to the right by degrees (0..45)
func (c *Controller) LeanRight(degrees int) error {
	return c.submit(WithArg(KindAngle, -2*degrees))
}

//////////////////////////////////////////////////////////////
// Ride
//////////////////////////////////////////////////////////////

// Turn starts a continuous rotation
func (c *Controller) Turn(r Rotation) error {
	kind, ok := r.kind()
	if !ok {
		return fmt.Errorf("%w: rotation %d", ErrInvalidArgument, int(r))
	}
	return c.submit(Plain(kind))
}

// TurnOff ends a rotation
func (c *Controller) TurnOff() error {
	return c.submit(Plain(KindTurnOff))
}

// Move starts riding in a direction at the current speed
func (c *Controller) Move(m Movement) error {
	kind, ok := m.kind()
	if !ok {
		return fmt.Errorf("%w: movement %d", ErrInvalidArgument, int(m))
	}
	return c.submit(Plain(kind))
}

// SetSpeed sets the speed in percent and re-issues the latest movement.
// The value is not clamped.
func (c *Controller) SetSpeed(percent int) error {
	return c.submit(WithArg(KindSetSpeed, percent))
}

// SpeedUp raises the speed by 10 % (max 100) and re-issues the latest movement
func (c *Controller) SpeedUp() error {
	return c.submit(Plain(KindSpeedUp))
}

// SlowDown lowers the speed by 10 % (min 0) and re-issues the latest movement
func (c *Controller) SlowDown() error {
	return c.submit(Plain(KindSlowDown))
}

// Stop stops riding and turning. A pending wave delay is kept for the next message.
func (c *Controller) Stop() error {
	return c.submit(Plain(KindStop))
}

//////////////////////////////////////////////////////////////
// General
//////////////////////////////////////////////////////////////

// Wait blocks for the given number of seconds
func (c *Controller) Wait(seconds int) error {
	return c.submit(WithArg(KindWait, seconds))
}

// Comment does nothing; it documents a step in a program
func (c *Controller) Comment(string) {}

//////////////////////////////////////////////////////////////
// Direct register access
//////////////////////////////////////////////////////////////

// Battery reads the battery level in percent
func (c *Controller) Battery() (byte, error) {
	return c.dev.ReadRegister(xgo.RegBattery, 1)
}

// Squat sets the squat cycle period in seconds (2..4)
func (c *Controller) Squat(period float64) error {
	return c.dev.WriteRegister(xgo.RegSquatTiming, xgo.TimingByte(period))
}

// Shuffle sets the shuffle cycle period in seconds (2..4)
func (c *Controller) Shuffle(period float64) error {
	return c.dev.WriteRegister(xgo.RegShuffleTiming, xgo.TimingByte(period))
}
