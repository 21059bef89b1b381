// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rider

import (
	"time"

	"github.com/Thermoquad/riderctl/pkg/xgo"
)

// Dispatch executes the pending intent and clears the slot.
//
// Order of work:
//  1. payload intents store their argument (speed, lean angle, stretch) and turn into
//     the message that applies it; a speed change re-issues the latest movement
//  2. a pending wave delay is paid, unless the message is a stop
//  3. the message is executed
//
// The slot is Idle afterwards, also when a register write failed.
func (c *Controller) Dispatch() error {
	in := c.pending
	defer func() { c.pending = Idle }()

	if in.IsIdle() {
		return nil
	}

	var wait time.Duration
	if in.HasArg {
		switch in.Kind {
		case KindWait:
			wait = time.Duration(in.Arg) * time.Second
		case KindSetSpeed:
			c.motion.Speed = in.Arg
			in = Plain(c.motion.Movement)
		case KindAngle:
			c.motion.LeanAngle = in.Arg
			in = Plain(KindAngle)
		case KindStretch:
			c.motion.Stretch = in.Arg
			in = Plain(KindStretch)
		}
	}

	if c.group.WaveDelay > 0 && in.Kind != KindStop {
		c.logger.Debug().
			Dur("delay", c.group.WaveDelay).
			Int("position", c.group.Position).
			Msg("wave delay")
		c.sleeper.Sleep(c.group.WaveDelay)
		c.group.WaveDelay = 0
	}

	c.logger.Debug().
		Str("kind", in.Kind.String()).
		Int("speed", c.motion.Speed).
		Str("movement", c.motion.Movement.String()).
		Msg("dispatch")

	switch in.Kind {
	case KindWait:
		c.pause(wait)
		return nil

	case KindFastWave, KindNormalWave, KindSlowWave:
		c.group.WaveDelay = WaveDelay(in.Kind, c.group.Position)
		return nil

	case KindSpeedUp:
		c.motion.Speed = clampSpeed(c.motion.Speed + SpeedStep)
		return c.resendMovement()

	case KindSlowDown:
		c.motion.Speed = clampSpeed(c.motion.Speed - SpeedStep)
		return c.resendMovement()

	case KindStretch:
		return c.setHeight(c.motion.Stretch)

	case KindAngle:
		return c.setLean(c.motion.LeanAngle)

	case KindPee, KindAction:
		// Standard actions have no frames yet
		return nil
	}

	if in.Kind.IsMovement() {
		return c.drive(in.Kind)
	}

	c.logger.Debug().Str("kind", in.Kind.String()).Msg("message ignored")
	return nil
}

// resendMovement re-issues the latest movement at the current speed.
// The latest movement is always one of the kinds drive handles, so this never
// dispatches another speed change.
func (c *Controller) resendMovement() error {
	return c.drive(c.motion.Movement)
}

// drive executes a movement message and remembers it
func (c *Controller) drive(kind Kind) error {
	speed := c.motion.Speed

	switch kind {
	case KindStop:
		// Stop is not remembered: a later speed change resumes the previous movement
		return c.stopMoving()

	case KindForward:
		c.motion.Movement = kind
		if err := c.rotate(0); err != nil {
			return err
		}
		return c.ride(-speed)

	case KindBackward:
		c.motion.Movement = kind
		if err := c.rotate(0); err != nil {
			return err
		}
		return c.ride(speed)

	case KindTurnLeft:
		c.motion.Movement = kind
		if err := c.ride(0); err != nil {
			return err
		}
		return c.rotate(speed)

	case KindTurnRight:
		c.motion.Movement = kind
		if err := c.ride(0); err != nil {
			return err
		}
		return c.rotate(-speed)

	case KindTurnOff:
		c.motion.Movement = kind
		return c.rotate(0)
	}

	return nil
}

// stopMoving zeroes both the linear and rotation speed
func (c *Controller) stopMoving() error {
	data := xgo.SpeedByte(0)
	if err := c.dev.WriteRegister(xgo.RegLinearSpeed, data); err != nil {
		return err
	}
	return c.dev.WriteRegister(xgo.RegRotationSpeed, data)
}

// ride writes a signed linear speed (negative is forward) and settles
func (c *Controller) ride(speed int) error {
	if err := c.dev.WriteRegister(xgo.RegLinearSpeed, xgo.SpeedByte(speed)); err != nil {
		return err
	}
	c.pause(c.settle)
	return nil
}

// rotate writes a signed rotation speed (positive is counter-clockwise)
func (c *Controller) rotate(speed int) error {
	return c.dev.WriteRegister(xgo.RegRotationSpeed, xgo.SpeedByte(speed))
}

// setHeight writes the stretch offset and settles
func (c *Controller) setHeight(mm int) error {
	if err := c.dev.WriteRegister(xgo.RegHeight, xgo.HeightByte(mm)); err != nil {
		return err
	}
	c.pause(c.settle)
	return nil
}

// setLean writes the lean angle and settles
func (c *Controller) setLean(degrees int) error {
	if err := c.dev.WriteRegister(xgo.RegLean, xgo.LeanByte(degrees)); err != nil {
		return err
	}
	c.pause(c.settle)
	return nil
}

func (c *Controller) pause(d time.Duration) {
	if d > 0 {
		c.sleeper.Sleep(d)
	}
}

func clampSpeed(speed int) int {
	if speed > MaxSpeed {
		return MaxSpeed
	}
	if speed < MinSpeed {
		return MinSpeed
	}
	return speed
}
