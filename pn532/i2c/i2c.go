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

// Package i2c provides I2C transport implementation for PN532
package i2c

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ZaparooProject/go-cardlog/internal/frame"
	"github.com/ZaparooProject/go-cardlog/pn532"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	// Address is the 7-bit I2C address of the PN532.
	Address = 0x24

	// pn532Ready is the status byte prefixed to every read once the chip
	// has data.
	pn532Ready = 0x01

	// Max clock frequency (400 kHz).
	maxClockFreq = 400 * physic.KiloHertz

	// responseReadLen covers the status byte and the largest frame.
	responseReadLen = 1 + frame.Overhead + frame.MaxFrameDataLength
	ackReadLen      = 1 + 6

	defaultTimeout = 50 * time.Millisecond
	pollInterval   = time.Millisecond
	maxFrameTries  = 3
)

// Transport implements the pn532.Transport interface for I2C communication.
//
// Thread Safety: commands are serialized with an internal mutex.
type Transport struct {
	dev     *i2c.Dev
	closer  io.Closer
	busName string
	timeout time.Duration
	mu      sync.Mutex
}

// New opens busName (e.g. "/dev/i2c-1" or "1") through periph and
// returns a transport for the PN532 on it
func New(busName string) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %s: %w", busName, err)
	}

	// Ignore error, continue with default speed
	_ = bus.SetSpeed(maxClockFreq)

	t := NewWithBus(bus, busName)
	t.closer = bus
	return t, nil
}

// NewWithBus creates a transport on an already opened bus. The bus is
// not closed by Close.
func NewWithBus(bus i2c.Bus, busName string) *Transport {
	return &Transport{
		dev:     &i2c.Dev{Addr: Address, Bus: bus},
		busName: busName,
		timeout: defaultTimeout,
	}
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

	if t.dev == nil {
		return nil, pn532.NewTransportError("SendCommand", t.busName, pn532.ErrTransportClosed, pn532.ErrorTypePermanent)
	}

	if err := t.sendFrame(cmd, args); err != nil {
		return nil, err
	}
	if err := t.waitAck(ctx); err != nil {
		return nil, err
	}
	return t.receiveFrame(ctx)
}

// SetTimeout sets the read timeout for the transport
func (t *Transport) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return pn532.ErrInvalidParameter
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = timeout
	return nil
}

// Close releases the bus if New opened it
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dev = nil
	if t.closer == nil {
		return nil
	}
	closer := t.closer
	t.closer = nil
	if err := closer.Close(); err != nil {
		return fmt.Errorf("failed to close I2C bus %s: %w", t.busName, err)
	}
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dev != nil
}

// Type returns the transport type
func (*Transport) Type() pn532.TransportType {
	return pn532.TransportI2C
}

// sendFrame sends a frame to the PN532 via I2C
func (t *Transport) sendFrame(cmd byte, args []byte) error {
	frm, err := frame.Build(cmd, args)
	if err != nil {
		return pn532.NewDataTooLargeError("sendFrame", t.busName)
	}
	if err := t.dev.Tx(frm, nil); err != nil {
		return pn532.NewTransportError("sendFrame", t.busName, fmt.Errorf("%w: %w", pn532.ErrTransportWrite, err), pn532.ErrorTypeTransient)
	}
	return nil
}

// waitReady polls the status byte until the chip has data
func (t *Transport) waitReady(ctx context.Context, deadline time.Time) error {
	status := frame.GetSmallBuffer(1)
	defer frame.PutBuffer(status)

	for {
		if err := t.dev.Tx(nil, status); err != nil {
			return pn532.NewTransportError("waitReady", t.busName, fmt.Errorf("%w: %w", pn532.ErrTransportRead, err), pn532.ErrorTypeTransient)
		}
		if status[0] == pn532Ready {
			return nil
		}
		if !time.Now().Before(deadline) {
			return pn532.NewTransportNotReadyError("waitReady", t.busName)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// waitAck waits for an ACK frame from the PN532
func (t *Transport) waitAck(ctx context.Context) error {
	if err := t.waitReady(ctx, time.Now().Add(t.timeout)); err != nil {
		if errors.Is(err, pn532.ErrTransportNotReady) {
			return pn532.NewNoACKError("waitAck", t.busName)
		}
		return err
	}

	buf := frame.GetSmallBuffer(ackReadLen)
	defer frame.PutBuffer(buf)
	if err := t.dev.Tx(nil, buf); err != nil {
		return pn532.NewTransportError("waitAck", t.busName, fmt.Errorf("%w: %w", pn532.ErrTransportRead, err), pn532.ErrorTypeTransient)
	}
	if !frame.IsAck(buf[1:]) {
		pn532.Debugf("i2c: expected ACK, got % X", buf[1:])
		return pn532.NewNoACKError("waitAck", t.busName)
	}
	return nil
}

// receiveFrame reads the response frame, asking for a resend with a NACK
// when it arrives corrupted
func (t *Transport) receiveFrame(ctx context.Context) ([]byte, error) {
	deadline := time.Now().Add(t.timeout)

	for tries := 0; tries < maxFrameTries; tries++ {
		if err := t.waitReady(ctx, deadline); err != nil {
			if errors.Is(err, pn532.ErrTransportNotReady) {
				return nil, pn532.NewTimeoutError("receiveFrame", t.busName)
			}
			return nil, err
		}

		data, retry, err := t.receiveFrameAttempt()
		if err != nil || !retry {
			return data, err
		}

		if err := t.dev.Tx(frame.NackFrame, nil); err != nil {
			return nil, pn532.NewTransportError("sendNack", t.busName, fmt.Errorf("%w: %w", pn532.ErrTransportWrite, err), pn532.ErrorTypeTransient)
		}
	}

	return nil, pn532.NewTransportError("receiveFrame", t.busName, pn532.ErrCommunicationFailed, pn532.ErrorTypeTransient)
}

// receiveFrameAttempt reads and decodes one response. retry is set when
// the frame was damaged in transit.
func (t *Transport) receiveFrameAttempt() (data []byte, retry bool, err error) {
	buf := frame.GetBuffer(responseReadLen)
	defer frame.PutBuffer(buf)

	if err := t.dev.Tx(nil, buf); err != nil {
		return nil, false, pn532.NewTransportError("receiveFrame", t.busName, fmt.Errorf("%w: %w", pn532.ErrTransportRead, err), pn532.ErrorTypeTransient)
	}

	data, err = frame.Parse(buf[1:])
	switch {
	case err == nil:
	case errors.Is(err, frame.ErrLengthChecksum), errors.Is(err, frame.ErrDataChecksum):
		pn532.Debugf("i2c: corrupted frame: %v", err)
		return nil, true, nil
	case errors.Is(err, frame.ErrApplicationError):
		return nil, false, fmt.Errorf("%w: %w", pn532.ErrCommandFailed, err)
	default:
		return nil, false, pn532.NewTransportError("receiveFrame", t.busName, fmt.Errorf("%w: %w", pn532.ErrFrameCorrupted, err), pn532.ErrorTypeTransient)
	}

	// Acknowledge so the chip drops the response.
	if err := t.dev.Tx(frame.AckFrame, nil); err != nil {
		return nil, false, pn532.NewTransportError("sendAck", t.busName, fmt.Errorf("%w: %w", pn532.ErrTransportWrite, err), pn532.ErrorTypeTransient)
	}
	return data, false, nil
}

// Ensure Transport implements pn532.TransportContext
var _ pn532.TransportContext = (*Transport)(nil)
