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

package i2c

import (
	"context"
	"testing"
	"time"

	"github.com/ZaparooProject/go-cardlog/internal/frame"
	testutil "github.com/ZaparooProject/go-cardlog/internal/testing"
	"github.com/ZaparooProject/go-cardlog/pn532"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

// responseFrame builds an information frame from the PN532.
func responseFrame(data ...byte) []byte {
	n := byte(len(data) + 1)
	frm := []byte{0x00, 0x00, 0xFF, n, frame.CalculateLengthChecksum(n), frame.Pn532ToHost}
	frm = append(frm, data...)
	return append(frm, frame.CalculateDataChecksum(frame.Pn532ToHost, data), 0x00)
}

// readOf pads a frame into a full response read with the ready byte.
func readOf(frm []byte) []byte {
	buf := make([]byte, responseReadLen)
	buf[0] = pn532Ready
	copy(buf[1:], frm)
	return buf
}

func mustBuild(t *testing.T, cmd byte, args ...byte) []byte {
	t.Helper()
	frm, err := frame.Build(cmd, args)
	require.NoError(t, err)
	return frm
}

func ready() i2ctest.IO    { return i2ctest.IO{Addr: Address, R: []byte{pn532Ready}} }
func notReady() i2ctest.IO { return i2ctest.IO{Addr: Address, R: []byte{0x00}} }
func ack() i2ctest.IO {
	return i2ctest.IO{Addr: Address, R: append([]byte{pn532Ready}, frame.AckFrame...)}
}

func TestSendCommand(t *testing.T) {
	t.Parallel()
	firmware := testutil.BuildFirmwareVersionResponse()
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: Address, W: mustBuild(t, testutil.CmdGetFirmwareVersion)},
			notReady(),
			ready(),
			ack(),
			ready(),
			{Addr: Address, R: readOf(responseFrame(firmware...))},
			{Addr: Address, W: frame.AckFrame},
		},
		DontPanic: true,
	}

	transport := NewWithBus(bus, "playback")
	resp, err := transport.SendCommand(testutil.CmdGetFirmwareVersion, nil)
	require.NoError(t, err)
	assert.Equal(t, firmware, resp)
	require.NoError(t, bus.Close())
}

func TestSendCommand_CorruptedFrameIsResent(t *testing.T) {
	t.Parallel()
	response := testutil.BuildTagDetectionResponse(0x08, testutil.TestMIFARE1KUID)
	corrupted := responseFrame(response...)
	corrupted[len(corrupted)-2] ^= 0xFF

	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: Address, W: mustBuild(t, testutil.CmdInListPassiveTarget, 0x01, 0x00)},
			ready(),
			ack(),
			ready(),
			{Addr: Address, R: readOf(corrupted)},
			{Addr: Address, W: frame.NackFrame},
			ready(),
			{Addr: Address, R: readOf(responseFrame(response...))},
			{Addr: Address, W: frame.AckFrame},
		},
		DontPanic: true,
	}

	transport := NewWithBus(bus, "playback")
	resp, err := transport.SendCommand(testutil.CmdInListPassiveTarget, []byte{0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, response, resp)
	require.NoError(t, bus.Close())
}

func TestSendCommand_ApplicationError(t *testing.T) {
	t.Parallel()
	errFrame := []byte{0x00, 0x00, 0xFF, 0x01, 0xFF, 0x7F, 0x81, 0x00}
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: Address, W: mustBuild(t, testutil.CmdInRelease, 0x00)},
			ready(),
			ack(),
			ready(),
			{Addr: Address, R: readOf(errFrame)},
		},
		DontPanic: true,
	}

	_, err := NewWithBus(bus, "playback").SendCommand(testutil.CmdInRelease, []byte{0x00})
	require.ErrorIs(t, err, pn532.ErrCommandFailed)
	assert.False(t, pn532.IsRetryable(err))
}

func TestSendCommand_NoACK(t *testing.T) {
	t.Parallel()
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: Address, W: mustBuild(t, testutil.CmdGetFirmwareVersion)},
			ready(),
			{Addr: Address, R: append([]byte{pn532Ready}, frame.NackFrame...)},
		},
		DontPanic: true,
	}

	_, err := NewWithBus(bus, "playback").SendCommand(testutil.CmdGetFirmwareVersion, nil)
	require.ErrorIs(t, err, pn532.ErrNoACK)
	assert.True(t, pn532.IsRetryable(err))
}

func TestSendCommand_NeverReady(t *testing.T) {
	t.Parallel()
	ops := []i2ctest.IO{{Addr: Address, W: mustBuild(t, testutil.CmdGetFirmwareVersion)}}
	for range 200 {
		ops = append(ops, notReady())
	}
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}

	transport := NewWithBus(bus, "playback")
	require.NoError(t, transport.SetTimeout(5*time.Millisecond))

	_, err := transport.SendCommand(testutil.CmdGetFirmwareVersion, nil)
	require.ErrorIs(t, err, pn532.ErrNoACK)
}

func TestSendCommand_BusError(t *testing.T) {
	t.Parallel()
	// An empty playback rejects every transfer.
	bus := &i2ctest.Playback{DontPanic: true}

	_, err := NewWithBus(bus, "playback").SendCommand(testutil.CmdGetFirmwareVersion, nil)
	require.ErrorIs(t, err, pn532.ErrTransportWrite)
	assert.True(t, pn532.IsRetryable(err))
}

func TestSendCommandContext_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bus := &i2ctest.Playback{DontPanic: true}
	_, err := NewWithBus(bus, "playback").SendCommandContext(ctx, testutil.CmdGetFirmwareVersion, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, bus.Count)
}

func TestTransportLifecycle(t *testing.T) {
	t.Parallel()
	bus := &i2ctest.Playback{DontPanic: true}
	transport := NewWithBus(bus, "playback")

	assert.Equal(t, pn532.TransportI2C, transport.Type())
	assert.True(t, transport.IsConnected())
	require.ErrorIs(t, transport.SetTimeout(0), pn532.ErrInvalidParameter)

	require.NoError(t, transport.Close())
	assert.False(t, transport.IsConnected())

	_, err := transport.SendCommand(testutil.CmdGetFirmwareVersion, nil)
	require.ErrorIs(t, err, pn532.ErrTransportClosed)
}
