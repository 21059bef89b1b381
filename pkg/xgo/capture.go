// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Direction tells whether a captured frame was sent or received
type Direction uint8

const (
	DirectionOut Direction = iota
	DirectionIn
)

// String returns "TX" or "RX"
func (d Direction) String() string {
	if d == DirectionIn {
		return "RX"
	}
	return "TX"
}

// CaptureRecord is one captured frame. A capture file is a CBOR sequence of records.
type CaptureRecord struct {
	TimeNs    int64     `cbor:"0,keyasint"`
	Direction Direction `cbor:"1,keyasint"`
	Data      []byte    `cbor:"2,keyasint"`
}

// Time returns the capture timestamp
func (r CaptureRecord) Time() time.Time {
	return time.Unix(0, r.TimeNs)
}

// Frame returns the captured bytes as a Frame (padded/truncated like ParseFrame)
func (r CaptureRecord) Frame() Frame {
	return ParseFrame(r.Data)
}

// CaptureWriter appends frames to a CBOR capture stream
type CaptureWriter struct {
	mu  sync.Mutex
	enc *cbor.Encoder
	now func() time.Time
}

// NewCaptureWriter creates a capture writer using deterministic CBOR encoding
func NewCaptureWriter(w io.Writer) (*CaptureWriter, error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	return &CaptureWriter{
		enc: em.NewEncoder(w),
		now: time.Now,
	}, nil
}

// Record appends one frame to the capture
func (c *CaptureWriter) Record(dir Direction, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := CaptureRecord{
		TimeNs:    c.now().UnixNano(),
		Direction: dir,
		Data:      append([]byte(nil), data...),
	}
	if err := c.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode capture record: %w", err)
	}
	return nil
}

// CaptureReader reads records back from a CBOR capture stream
type CaptureReader struct {
	dec *cbor.Decoder
}

// NewCaptureReader creates a capture reader
func NewCaptureReader(r io.Reader) *CaptureReader {
	return &CaptureReader{dec: cbor.NewDecoder(r)}
}

// Next returns the next record, or io.EOF at the end of the stream
func (c *CaptureReader) Next() (CaptureRecord, error) {
	var rec CaptureRecord
	if err := c.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return CaptureRecord{}, io.EOF
		}
		return CaptureRecord{}, fmt.Errorf("failed to decode capture record: %w", err)
	}
	return rec, nil
}

// ReadCapture reads all records from a capture stream
func ReadCapture(r io.Reader) ([]CaptureRecord, error) {
	reader := NewCaptureReader(r)
	var records []CaptureRecord
	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
