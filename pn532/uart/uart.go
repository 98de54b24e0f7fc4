// go-cardlog
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-cardlog.
//
// go-cardlog is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-cardlog is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-cardlog; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package uart provides the high speed UART transport for PN532 boards
// wired to a serial port or a USB-serial bridge
package uart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ZaparooProject/go-cardlog/internal/frame"
	"github.com/ZaparooProject/go-cardlog/pn532"
	"go.bug.st/serial"
)

const (
	// BaudRate is the PN532 HSU default.
	BaudRate = 115200

	defaultTimeout = 100 * time.Millisecond
	// readSlice bounds a single blocking read so ctx and the deadline
	// are checked regularly.
	readSlice     = 10 * time.Millisecond
	maxFrameTries = 3
)

// wakeUp brings the chip out of power down before the first command.
var wakeUp = []byte{
	0x55, 0x55, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// SerialPort is the part of serial.Port the transport uses
type SerialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	ResetInputBuffer() error
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Transport implements pn532.Transport over a serial port.
//
// Thread Safety: commands are serialized with an internal mutex.
type Transport struct {
	port     SerialPort
	portName string
	timeout  time.Duration
	mu       sync.Mutex
	awake    bool
}

// New opens portName at 115200 8N1
func New(portName string) (*Transport, error) {
	mode := &serial.Mode{
		BaudRate: BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, pn532.NewTransportError("open", portName, fmt.Errorf("%w: %w", pn532.ErrDeviceNotFound, err), pn532.ErrorTypePermanent)
	}
	t, err := NewWithPort(port, portName)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	return t, nil
}

// NewWithPort creates a transport on an open port. Close closes it.
func NewWithPort(port SerialPort, portName string) (*Transport, error) {
	if err := port.SetReadTimeout(readSlice); err != nil {
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", portName, err)
	}
	return &Transport{
		port:     port,
		portName: portName,
		timeout:  defaultTimeout,
	}, nil
}

// SendCommand sends a command to the PN532 and waits for response
func (t *Transport) SendCommand(cmd byte, args []byte) ([]byte, error) {
	return t.SendCommandContext(context.Background(), cmd, args)
}

// SendCommandContext sends a command and waits for the response, giving
// up when ctx is done or the transport timeout passes
func (t *Transport) SendCommandContext(ctx context.Context, cmd byte, args []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return nil, pn532.NewTransportError("SendCommand", t.portName, pn532.ErrTransportClosed, pn532.ErrorTypePermanent)
	}

	frm, err := frame.Build(cmd, args)
	if err != nil {
		return nil, pn532.NewDataTooLargeError("SendCommand", t.portName)
	}
	if !t.awake {
		frm = append(append([]byte(nil), wakeUp...), frm...)
	}

	// Stale bytes from an abandoned command would be taken for the ACK.
	if err := t.port.ResetInputBuffer(); err != nil {
		return nil, t.ioError("reset", pn532.ErrTransportRead, err)
	}
	if err := t.write(frm); err != nil {
		return nil, err
	}
	t.awake = true

	rest, err := t.waitAck(ctx)
	if err != nil {
		return nil, err
	}
	return t.receiveFrame(ctx, rest)
}

// SetTimeout sets the ACK and response timeout
func (t *Transport) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return pn532.ErrInvalidParameter
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = timeout
	return nil
}

// Close closes the serial port
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return nil
	}
	port := t.port
	t.port = nil
	if err := port.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", t.portName, err)
	}
	return nil
}

// IsConnected returns true until Close
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port != nil
}

// Type returns the transport type
func (*Transport) Type() pn532.TransportType {
	return pn532.TransportUART
}

// String returns the port name
func (t *Transport) String() string {
	return t.portName
}

func (t *Transport) write(p []byte) error {
	for len(p) > 0 {
		n, err := t.port.Write(p)
		if err != nil {
			return t.ioError("write", pn532.ErrTransportWrite, err)
		}
		p = p[n:]
	}
	return nil
}

// readMore appends whatever arrives within one read slice to buf
func (t *Transport) readMore(ctx context.Context, buf []byte, deadline time.Time) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !time.Now().Before(deadline) {
		return nil, errDeadline
	}

	chunk := frame.GetBuffer(64)
	defer frame.PutBuffer(chunk)
	n, err := t.port.Read(chunk)
	if err != nil {
		return nil, t.ioError("read", pn532.ErrTransportRead, err)
	}
	return append(buf, chunk[:n]...), nil
}

var errDeadline = errors.New("deadline passed")

// waitAck reads until an ACK frame arrives. Bytes after the ACK are
// returned; they are the start of the response.
func (t *Transport) waitAck(ctx context.Context) ([]byte, error) {
	deadline := time.Now().Add(t.timeout)
	var buf []byte
	for {
		if idx := bytes.Index(buf, frame.AckFrame); idx >= 0 {
			return buf[idx+len(frame.AckFrame):], nil
		}
		var err error
		buf, err = t.readMore(ctx, buf, deadline)
		if errors.Is(err, errDeadline) {
			pn532.Debugf("uart: no ACK on %s, got % X", t.portName, buf)
			return nil, pn532.NewNoACKError("waitAck", t.portName)
		}
		if err != nil {
			return nil, err
		}
	}
}

// receiveFrame reads the response frame, asking for a resend with a NACK
// when it arrives corrupted
func (t *Transport) receiveFrame(ctx context.Context, buf []byte) ([]byte, error) {
	deadline := time.Now().Add(t.timeout)
	tries := 0
	for {
		data, consumed, err := frame.ParseN(buf)
		switch {
		case err == nil:
			return data, nil
		case errors.Is(err, frame.ErrIncomplete), errors.Is(err, frame.ErrNoStartCode):
			buf, err = t.readMore(ctx, buf, deadline)
			if errors.Is(err, errDeadline) {
				return nil, pn532.NewTimeoutError("receiveFrame", t.portName)
			}
			if err != nil {
				return nil, err
			}
		case errors.Is(err, frame.ErrControlFrame):
			buf = buf[consumed:]
		case errors.Is(err, frame.ErrLengthChecksum), errors.Is(err, frame.ErrDataChecksum):
			tries++
			if tries >= maxFrameTries {
				return nil, pn532.NewTransportError("receiveFrame", t.portName, pn532.ErrCommunicationFailed, pn532.ErrorTypeTransient)
			}
			pn532.Debugf("uart: corrupted frame on %s: %v", t.portName, err)
			buf = nil
			if err := t.write(frame.NackFrame); err != nil {
				return nil, err
			}
		case errors.Is(err, frame.ErrApplicationError):
			return nil, fmt.Errorf("%w: %w", pn532.ErrCommandFailed, err)
		default:
			return nil, pn532.NewTransportError("receiveFrame", t.portName, fmt.Errorf("%w: %w", pn532.ErrFrameCorrupted, err), pn532.ErrorTypeTransient)
		}
	}
}

// ioError classifies a port error. A closed or vanished port will not
// come back by retrying.
func (t *Transport) ioError(op string, kind, err error) error {
	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortClosed, serial.PortNotFound:
			return pn532.NewTransportError(op, t.portName, fmt.Errorf("%w: %w", pn532.ErrTransportClosed, err), pn532.ErrorTypePermanent)
		}
	}
	return pn532.NewTransportError(op, t.portName, fmt.Errorf("%w: %w", kind, err), pn532.ErrorTypeTransient)
}

// Ensure Transport implements pn532.TransportContext
var _ pn532.TransportContext = (*Transport)(nil)
