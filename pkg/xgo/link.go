// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

var (
	// ErrShortFrame is returned when the transport ends before a full reply frame arrived
	ErrShortFrame = errors.New("xgo: short reply frame")
	// ErrInvalidFrame is returned in strict mode when a reply frame fails validation
	ErrInvalidFrame = errors.New("xgo: invalid reply frame")
)

// LinkError describes a failed register access
type LinkError struct {
	Op       string // "write" or "read"
	Register byte
	Err      error
}

// Error implements the error interface
func (e *LinkError) Error() string {
	return fmt.Sprintf("%s register 0x%02X: %v", e.Op, e.Register, e.Err)
}

// Unwrap returns the underlying error
func (e *LinkError) Unwrap() error {
	return e.Err
}

// Link sends command frames to a rider over a byte transport.
//
// Reads block until a full reply frame arrives. There is no timeout: a silent or
// disconnected rider hangs ReadRegister for as long as the transport blocks.
type Link struct {
	rw      io.ReadWriter
	strict  bool
	logger  zerolog.Logger
	stats   *Statistics
	capture *CaptureWriter
}

// LinkOption configures a Link
type LinkOption func(*Link)

// WithStrict makes ReadRegister reject reply frames that fail ValidateFrame.
// By default replies are consumed positionally without any checks.
func WithStrict(strict bool) LinkOption {
	return func(l *Link) {
		l.strict = strict
	}
}

// WithLogger sets the logger used for per-frame debug output
func WithLogger(logger zerolog.Logger) LinkOption {
	return func(l *Link) {
		l.logger = logger
	}
}

// WithStatistics shares an existing statistics tracker with the link
func WithStatistics(stats *Statistics) LinkOption {
	return func(l *Link) {
		l.stats = stats
	}
}

// WithCapture records every frame sent and received
func WithCapture(c *CaptureWriter) LinkOption {
	return func(l *Link) {
		l.capture = c
	}
}

// NewLink creates a link over the given transport
func NewLink(rw io.ReadWriter, opts ...LinkOption) *Link {
	l := &Link{
		rw:     rw,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.stats == nil {
		l.stats = NewStatistics()
	}
	return l
}

// Statistics returns the link's statistics tracker
func (l *Link) Statistics() *Statistics {
	return l.stats
}

// Strict reports whether reply frames are validated
func (l *Link) Strict() bool {
	return l.strict
}

// Send writes one frame to the transport
func (l *Link) Send(f Frame) error {
	if _, err := l.rw.Write(f.Bytes()); err != nil {
		l.stats.RecordIOError()
		return err
	}
	l.stats.RecordWrite()
	l.record(DirectionOut, f.Bytes())
	l.logger.Debug().
		Str("dir", "out").
		Str("reg", FormatRegister(f.Address())).
		Hex("frame", f.Bytes()).
		Msg("frame sent")
	return nil
}

// WriteRegister stores data in a register. No reply is expected.
func (l *Link) WriteRegister(address, data byte) error {
	if err := l.Send(BuildWriteFrame(address, data)); err != nil {
		return &LinkError{Op: "write", Register: address, Err: err}
	}
	return nil
}

// ReadRegister requests readLen bytes from a register and returns the data byte of the
// reply frame.
//
// If the transport ends mid-frame the zero-padded payload is returned together with
// ErrShortFrame.
func (l *Link) ReadRegister(address, readLen byte) (byte, error) {
	if err := l.Send(BuildReadFrame(address, readLen)); err != nil {
		return 0, &LinkError{Op: "read", Register: address, Err: err}
	}

	buf := make([]byte, FrameSize)
	n, err := io.ReadFull(l.rw, buf)
	raw := buf[:n]
	if err != nil {
		if !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			l.stats.RecordIOError()
			return 0, &LinkError{Op: "read", Register: address, Err: err}
		}
		// A truncated reply counts once, as a short frame.
		l.stats.RecordRead(ValidateFrame(raw))
		l.record(DirectionIn, raw)
		return ExtractPayload(raw), &LinkError{Op: "read", Register: address, Err: ErrShortFrame}
	}

	l.record(DirectionIn, raw)
	validationErrors := ValidateFrame(raw)
	l.stats.RecordRead(validationErrors)

	payload := ExtractPayload(raw)
	l.logger.Debug().
		Str("dir", "in").
		Str("reg", FormatRegister(address)).
		Hex("frame", raw).
		Uint8("data", payload).
		Int("anomalies", len(validationErrors)).
		Msg("frame received")

	if len(validationErrors) > 0 && l.strict {
		return payload, &LinkError{
			Op:       "read",
			Register: address,
			Err:      fmt.Errorf("%w: %s", ErrInvalidFrame, validationErrors[0].Message),
		}
	}

	return payload, nil
}

// record appends a frame to the capture, if any.
// Capture failures are logged and never fail the register access.
func (l *Link) record(dir Direction, data []byte) {
	if l.capture == nil {
		return
	}
	if err := l.capture.Record(dir, data); err != nil {
		l.logger.Warn().Err(err).Msg("capture write failed")
	}
}
