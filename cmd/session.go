// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/Thermoquad/riderctl/pkg/rider"
	"github.com/Thermoquad/riderctl/pkg/xgo"
)

// session is an open rider: transport, frame link and controller
type session struct {
	conn     Connection
	connInfo string
	link     *xgo.Link
	ctrl     *rider.Controller
	capture  *os.File
}

// openSession connects to the rider described by cfg. The startup handshake runs when
// handshake is true.
func openSession(cfg Config, handshake bool) (*session, error) {
	conn, connInfo, err := OpenConnection(cfg)
	if err != nil {
		return nil, err
	}

	s := &session{conn: conn, connInfo: connInfo}

	linkOpts := []xgo.LinkOption{
		xgo.WithStrict(cfg.Strict),
		xgo.WithLogger(logger.With().Str("component", "link").Logger()),
		xgo.WithStatistics(xgo.NewStatistics()),
	}

	if cfg.Record != "" {
		f, err := os.Create(cfg.Record)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create capture file: %w", err)
		}
		cw, err := xgo.NewCaptureWriter(f)
		if err != nil {
			f.Close()
			conn.Close()
			return nil, err
		}
		s.capture = f
		linkOpts = append(linkOpts, xgo.WithCapture(cw))
		logger.Info().Str("file", cfg.Record).Msg("recording frames")
	}

	s.link = xgo.NewLink(conn, linkOpts...)
	s.ctrl = rider.NewController(s.link,
		rider.WithLogger(logger.With().Str("component", "rider").Logger()),
		rider.WithSettleDelay(cfg.SettleDelay),
	)
	s.ctrl.SetPosition(cfg.Position)

	logger.Info().Str("connection", connInfo).Int("position", cfg.Position).Msg("connected")

	if handshake {
		if err := s.ctrl.Handshake(); err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

// Close closes the capture file and the transport
func (s *session) Close() error {
	if s.capture != nil {
		if err := s.capture.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close capture file")
		}
	}
	return s.conn.Close()
}
