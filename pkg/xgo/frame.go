// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import "fmt"

// Frame is one complete 9-byte command frame
type Frame [FrameSize]byte

// Checksum computes the frame checksum over the length, mode, address and data bytes
func Checksum(length, mode, address, data byte) byte {
	return ^(length + mode + address + data)
}

// newFrame assembles a frame with the given mode, address and data byte
func newFrame(mode, address, data byte) Frame {
	var f Frame
	f[offsetHeaderHi] = HeaderHi
	f[offsetHeaderLo] = HeaderLo
	f[offsetLength] = FrameSize
	f[offsetMode] = mode
	f[offsetAddress] = address
	f[offsetPayload] = data
	f[offsetChecksum] = Checksum(FrameSize, mode, address, data)
	f[offsetTrailerHi] = TrailerHi
	f[offsetTrailerLo] = TrailerLo
	return f
}

// BuildWriteFrame creates a frame that stores data in the given register
func BuildWriteFrame(address, data byte) Frame {
	return newFrame(ModeWrite, address, data)
}

// BuildReadFrame creates a frame that requests readLen bytes from the given register
func BuildReadFrame(address, readLen byte) Frame {
	return newFrame(ModeRead, address, readLen)
}

// ParseFrame copies raw bytes into a Frame.
// Input shorter than FrameSize is zero-padded, longer input is truncated.
// No structural validation is performed; use ValidateFrame for that.
func ParseFrame(b []byte) Frame {
	var f Frame
	copy(f[:], b)
	return f
}

// ExtractPayload returns the data byte (offset 5) of an inbound frame.
// Short or long input is padded/truncated exactly like ParseFrame, so a frame cut
// off before the data byte yields 0.
func ExtractPayload(b []byte) byte {
	return ParseFrame(b).Payload()
}

// Bytes returns the frame as a byte slice ready for transmission
func (f Frame) Bytes() []byte {
	return f[:]
}

// Length returns the length byte
func (f Frame) Length() byte {
	return f[offsetLength]
}

// Mode returns the mode byte (ModeWrite or ModeRead)
func (f Frame) Mode() byte {
	return f[offsetMode]
}

// Address returns the register address
func (f Frame) Address() byte {
	return f[offsetAddress]
}

// Payload returns the data byte
func (f Frame) Payload() byte {
	return f[offsetPayload]
}

// Checksum returns the checksum byte carried by the frame
func (f Frame) Checksum() byte {
	return f[offsetChecksum]
}

// ExpectedChecksum recomputes the checksum from the frame's own fields
func (f Frame) ExpectedChecksum() byte {
	return Checksum(f.Length(), f.Mode(), f.Address(), f.Payload())
}

// IsWrite returns true for write frames
func (f Frame) IsWrite() bool {
	return f.Mode() == ModeWrite
}

// IsRead returns true for read frames
func (f Frame) IsRead() bool {
	return f.Mode() == ModeRead
}

// String implements fmt.Stringer with a hex dump of the frame
func (f Frame) String() string {
	return fmt.Sprintf("% X", f[:])
}
