// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/Thermoquad/riderctl/pkg/xgo"
	"github.com/gorilla/websocket"
	"go.bug.st/serial"
	"golang.org/x/term"
)

// Password environment variable for WebSocket Basic auth
const envPassword = "RIDERCTL_PASSWORD"

// Connection carries rider frames over serial or a WebSocket bridge
type Connection interface {
	io.Reader
	io.Writer
	io.Closer
}

// SerialConnection is a serial port attached to a rider
type SerialConnection struct {
	serial.Port
}

// ErrConnectionClosed is returned by every read after the WebSocket failed
var ErrConnectionClosed = errors.New("websocket connection closed")

// WebSocketConnection carries rider frames over a WebSocket bridge.
// Every binary message holds one or more whole frames; text messages are skipped.
type WebSocketConnection struct {
	conn    *websocket.Conn
	pending []byte
	err     error
}

func (w *WebSocketConnection) Read(p []byte) (int, error) {
	for len(w.pending) == 0 {
		if w.err != nil {
			return 0, w.err
		}
		if err := w.nextMessage(); err != nil {
			return 0, err
		}
	}

	n := copy(p, w.pending)
	w.pending = w.pending[n:]
	return n, nil
}

// nextMessage buffers the next binary message.
// A message that splits a frame is dropped and reported as xgo.ErrShortFrame.
func (w *WebSocketConnection) nextMessage() error {
	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.err = fmt.Errorf("%w: %w", ErrConnectionClosed, err)
			return w.err
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		if len(data)%xgo.FrameSize != 0 {
			logger.Debug().Int("len", len(data)).Hex("data", data).Msg("dropping partial websocket frame")
			return fmt.Errorf("%w: websocket message of %d bytes", xgo.ErrShortFrame, len(data))
		}
		w.pending = data
		return nil
	}
}

// Write sends p as one binary message. p must hold whole frames.
func (w *WebSocketConnection) Write(p []byte) (int, error) {
	if len(p) == 0 || len(p)%xgo.FrameSize != 0 {
		return 0, fmt.Errorf("websocket write of %d bytes is not a whole number of %d-byte frames", len(p), xgo.FrameSize)
	}
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *WebSocketConnection) Close() error {
	return w.conn.Close()
}

// OpenSerialConnection opens a serial port connection
func OpenSerialConnection(portName string, baudRate int) (Connection, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %v", portName, err)
	}

	// Stale bytes would be taken for the first reply frame
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to reset serial port %s: %v", portName, err)
	}
	logger.Debug().Str("port", portName).Int("baud", baudRate).Msg("serial port open")

	return &SerialConnection{Port: port}, nil
}

// OpenWebSocketConnection opens a WebSocket connection with HTTP Basic auth
func OpenWebSocketConnection(wsURL, username, password string, skipSSLVerify bool) (Connection, error) {
	// Parse and validate URL
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	// Validate scheme
	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	// Create dialer with timeout
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	// Configure TLS for wss://
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: skipSSLVerify,
		}
	}

	// Build HTTP headers with Basic auth
	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	// Connect
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %v", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %v", err)
	}

	return &WebSocketConnection{conn: conn}, nil
}

// GetPassword retrieves password from environment or prompts user
func GetPassword() (string, error) {
	// First check environment variable
	if pw := os.Getenv(envPassword); pw != "" {
		return pw, nil
	}

	// Prompt user for password (hide input)
	fmt.Fprint(os.Stderr, "Password: ")

	// Read password without echo
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr) // newline after password
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr) // newline after password
	return string(passwordBytes), nil
}

// OpenConnection opens either a serial or WebSocket connection from the resolved settings
func OpenConnection(cfg Config) (Connection, string, error) {
	if cfg.URL != "" {
		// WebSocket mode
		password := ""
		if cfg.Username != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		conn, err := OpenWebSocketConnection(cfg.URL, cfg.Username, password, cfg.NoSSLVerify)
		if err != nil {
			return nil, "", err
		}

		return conn, fmt.Sprintf("WebSocket: %s", cfg.URL), nil
	}

	if cfg.Port != "" {
		// Serial mode
		conn, err := OpenSerialConnection(cfg.Port, cfg.BaudRate)
		if err != nil {
			return nil, "", err
		}

		return conn, fmt.Sprintf("Serial: %s @ %d baud", cfg.Port, cfg.BaudRate), nil
	}

	return nil, "", fmt.Errorf("either --port or --url must be specified")
}
