// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rider

import (
	"errors"
	"testing"
	"time"

	"github.com/Thermoquad/riderctl/pkg/xgo"
	"github.com/benbjohnson/clock"
)

func TestHandshake(t *testing.T) {
	tests := []struct {
		name   string
		status byte
		want   []event
	}{
		{
			name:   "already in action mode",
			status: 0x01,
			want:   []event{read(xgo.RegActionStatus, 1)},
		},
		{
			name:   "enters action mode",
			status: 0x00,
			want: []event{
				read(xgo.RegActionStatus, 1),
				write(xgo.RegActionMode, 0xFF),
				sleep(time.Second),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := newTestController()
			r.status = tt.status
			mustNoErr(t, c.Handshake())
			expectEvents(t, r, tt.want)
		})
	}
}

func TestHandshake_ReadError(t *testing.T) {
	c, r := newTestController()
	r.readErr = &xgo.LinkError{Op: "read", Register: xgo.RegActionStatus, Err: xgo.ErrShortFrame}

	err := c.Handshake()
	if !errors.Is(err, xgo.ErrShortFrame) {
		t.Fatalf("Handshake error = %v, want ErrShortFrame", err)
	}
	expectEvents(t, r, nil)
}

func TestStart(t *testing.T) {
	r := &recorder{status: 0}
	c, err := Start(r, WithSleeper(r))
	mustNoErr(t, err)

	if !c.Pending().IsIdle() {
		t.Errorf("pending = %v, want idle", c.Pending())
	}
	expectEvents(t, r, []event{
		read(xgo.RegActionStatus, 1),
		write(xgo.RegActionMode, 0xFF),
		sleep(time.Second),
	})

	r.writeErr = errors.New("write failed")
	if _, err := Start(r, WithSleeper(r)); err == nil {
		t.Error("Start succeeded with a failing device")
	}
}

func TestHandshake_MockClock(t *testing.T) {
	mock := clock.NewMock()
	r := &recorder{status: 0}
	c := NewController(r, WithSleeper(mock))

	start := mock.Now()
	done := make(chan error, 1)
	go func() { done <- c.Handshake() }()

	for {
		select {
		case err := <-done:
			mustNoErr(t, err)
			if elapsed := mock.Now().Sub(start); elapsed < ModeSwitchDelay {
				t.Errorf("handshake returned after %v, want at least %v", elapsed, ModeSwitchDelay)
			}
			return
		case <-time.After(time.Millisecond):
			mock.Add(100 * time.Millisecond)
		}
	}
}

func TestEnterPerformanceMode(t *testing.T) {
	c, r := newTestController()
	mustNoErr(t, c.EnterPerformanceMode())
	expectEvents(t, r, []event{
		write(xgo.RegPerformanceMode, 0x00),
		sleep(time.Second),
	})
}
