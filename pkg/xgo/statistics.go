// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package xgo

import (
	"fmt"
	"sync"
	"time"
)

// Counters holds the link counters and derived rates
type Counters struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	FramesWritten  uint64
	FramesRead     uint64
	ValidReplies   uint64
	ShortReplies   uint64
	Anomalies      uint64
	ChecksumErrors uint64
	HeaderErrors   uint64
	IOErrors       uint64

	// Rates (calculated)
	FrameRate float64 // frames/sec, both directions
	ErrorRate float64 // errors/sec
}

// Statistics tracks frame counts and error rates on a link.
// It is safe to read from a UI goroutine while the link is in use.
type Statistics struct {
	mu sync.Mutex
	Counters
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		Counters: Counters{
			StartTime:      now,
			LastUpdateTime: now,
		},
	}
}

// RecordWrite counts an outbound frame
func (s *Statistics) RecordWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FramesWritten++
	s.LastUpdateTime = time.Now()
}

// RecordRead counts an inbound frame and classifies its validation errors
func (s *Statistics) RecordRead(validationErrors []ValidationError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FramesRead++
	s.LastUpdateTime = time.Now()

	if len(validationErrors) == 0 {
		s.ValidReplies++
		return
	}

	for _, err := range validationErrors {
		s.Anomalies++
		switch err.Type {
		case AnomalyShortFrame:
			s.ShortReplies++
		case AnomalyChecksum:
			s.ChecksumErrors++
		case AnomalyBadHeader, AnomalyBadTrailer:
			s.HeaderErrors++
		}
	}
}

// RecordIOError counts a failed transport read or write
func (s *Statistics) RecordIOError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.IOErrors++
	s.LastUpdateTime = time.Now()
}

// Snapshot returns a copy of the counters with rates calculated
func (s *Statistics) Snapshot() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculateRates()
	return s.Counters
}

// calculateRates calculates frame and error rates; caller holds the lock
func (s *Statistics) calculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.FrameRate = float64(s.FramesWritten+s.FramesRead) / elapsed
		s.ErrorRate = float64(s.Anomalies+s.IOErrors) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	snap := s.Snapshot()

	var validPercent float64
	if snap.FramesRead > 0 {
		validPercent = float64(snap.ValidReplies) * 100.0 / float64(snap.FramesRead)
	}

	elapsed := time.Since(snap.StartTime)

	result := fmt.Sprintf("=== Link Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Frames Written:  %8d\n", snap.FramesWritten)
	result += fmt.Sprintf("Frames Read:     %8d\n", snap.FramesRead)
	result += fmt.Sprintf("Valid Replies:   %8d (%.1f%%)\n", snap.ValidReplies, validPercent)

	if snap.Anomalies > 0 {
		result += fmt.Sprintf("Anomalies:       %8d\n", snap.Anomalies)
		if snap.ShortReplies > 0 {
			result += fmt.Sprintf("  Short Replies:    %5d\n", snap.ShortReplies)
		}
		if snap.ChecksumErrors > 0 {
			result += fmt.Sprintf("  Checksum Errors:  %5d\n", snap.ChecksumErrors)
		}
		if snap.HeaderErrors > 0 {
			result += fmt.Sprintf("  Framing Errors:   %5d\n", snap.HeaderErrors)
		}
	}
	if snap.IOErrors > 0 {
		result += fmt.Sprintf("I/O Errors:      %8d\n", snap.IOErrors)
	}

	result += fmt.Sprintf("Frame Rate:      %8.1f frames/sec\n", snap.FrameRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", snap.ErrorRate)
	result += "====================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.Counters = Counters{
		StartTime:      now,
		LastUpdateTime: now,
	}
}
