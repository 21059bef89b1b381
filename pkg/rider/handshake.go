// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rider

import (
	"fmt"
	"time"

	"github.com/Thermoquad/riderctl/pkg/xgo"
)

// ModeSwitchDelay is how long the rider needs after a mode change
const ModeSwitchDelay = 1000 * time.Millisecond

// Handshake puts the rider into action mode if it is not already there.
//
// It reads the action status register once; a non-zero status means nothing else to
// do. Otherwise it enters action mode and waits ModeSwitchDelay. The handshake is not
// retried, and the status read blocks until the rider answers.
func (c *Controller) Handshake() error {
	status, err := c.dev.ReadRegister(xgo.RegActionStatus, 1)
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}

	if status != 0 {
		c.logger.Info().Uint8("status", status).Msg("rider already in action mode")
		return nil
	}

	c.logger.Info().Msg("entering action mode")
	if err := c.dev.WriteRegister(xgo.RegActionMode, xgo.ActionModeEnter); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	c.sleeper.Sleep(ModeSwitchDelay)
	return nil
}

// EnterPerformanceMode switches the rider to performance mode and waits ModeSwitchDelay
func (c *Controller) EnterPerformanceMode() error {
	c.logger.Info().Msg("entering performance mode")
	if err := c.dev.WriteRegister(xgo.RegPerformanceMode, xgo.PerformanceModeEnter); err != nil {
		return err
	}
	c.sleeper.Sleep(ModeSwitchDelay)
	return nil
}
