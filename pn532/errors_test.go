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

package pn532

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "transport timeout", err: ErrTransportTimeout, want: true},
		{name: "transport read", err: ErrTransportRead, want: true},
		{name: "transport write", err: ErrTransportWrite, want: true},
		{name: "not ready", err: ErrTransportNotReady, want: true},
		{name: "communication failed", err: ErrCommunicationFailed, want: true},
		{name: "no ACK", err: ErrNoACK, want: true},
		{name: "frame corrupted", err: ErrFrameCorrupted, want: true},
		{name: "checksum mismatch", err: ErrChecksumMismatch, want: true},
		{name: "wrapped retryable", err: fmt.Errorf("poll: %w", ErrNoACK), want: true},
		{name: "device not found", err: ErrDeviceNotFound, want: false},
		{name: "tag not found", err: ErrTagNotFound, want: false},
		{name: "data too large", err: ErrDataTooLarge, want: false},
		{name: "invalid parameter", err: ErrInvalidParameter, want: false},
		{name: "invalid response", err: NewInvalidResponseError("InRelease", "short"), want: false},
		{name: "closed", err: ErrTransportClosed, want: false},
		{name: "message only", err: errors.New("outer: " + ErrTransportTimeout.Error()), want: false},
		{
			name: "transport error flag wins",
			err:  &TransportError{Err: ErrTransportTimeout, Op: "read", Type: ErrorTypeTimeout, Retryable: false},
			want: false,
		},
		{
			name: "transport error retryable",
			err:  &TransportError{Err: errors.New("bus glitch"), Op: "read", Type: ErrorTypeTransient, Retryable: true},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestGetErrorType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		name string
		want ErrorType
	}{
		{name: "nil error", err: nil, want: ErrorTypePermanent},
		{name: "transport timeout", err: ErrTransportTimeout, want: ErrorTypeTimeout},
		{name: "wrapped timeout", err: fmt.Errorf("read: %w", ErrTransportTimeout), want: ErrorTypeTimeout},
		{name: "transport read", err: ErrTransportRead, want: ErrorTypeTransient},
		{name: "no ACK", err: ErrNoACK, want: ErrorTypeTransient},
		{name: "checksum mismatch", err: ErrChecksumMismatch, want: ErrorTypeTransient},
		{name: "device not found", err: ErrDeviceNotFound, want: ErrorTypePermanent},
		{name: "unknown error", err: errors.New("unknown error"), want: ErrorTypePermanent},
		{name: "transport error", err: NewNoACKError("waitAck", "/dev/i2c-1"), want: ErrorTypeTransient},
		{name: "permanent transport error", err: NewDataTooLargeError("write", ""), want: ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetErrorType(tt.err))
		})
	}
}

func TestErrorType_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "permanent", ErrorTypePermanent.String())
	assert.Equal(t, "transient", ErrorTypeTransient.String())
	assert.Equal(t, "timeout", ErrorTypeTimeout.String())
	assert.Equal(t, "unknown", ErrorType(42).String())
}

func TestTransportErrorConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err       *TransportError
		wantErr   error
		name      string
		wantType  ErrorType
		retryable bool
	}{
		{name: "timeout", err: NewTimeoutError("read", "/dev/ttyUSB0"), wantErr: ErrTransportTimeout, wantType: ErrorTypeTimeout, retryable: true},
		{name: "frame corrupted", err: NewFrameCorruptedError("read", "/dev/ttyUSB0"), wantErr: ErrFrameCorrupted, wantType: ErrorTypeTransient, retryable: true},
		{name: "data too large", err: NewDataTooLargeError("write", "/dev/ttyUSB0"), wantErr: ErrDataTooLarge, wantType: ErrorTypePermanent},
		{name: "no ack", err: NewNoACKError("waitAck", "/dev/ttyUSB0"), wantErr: ErrNoACK, wantType: ErrorTypeTransient, retryable: true},
		{name: "not ready", err: NewTransportNotReadyError("waitReady", "/dev/ttyUSB0"), wantErr: ErrTransportNotReady, wantType: ErrorTypeTransient, retryable: true},
		{
			name:     "generic permanent",
			err:      NewTransportError("open", "/dev/ttyUSB0", errors.New("permission denied"), ErrorTypePermanent),
			wantType: ErrorTypePermanent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, "/dev/ttyUSB0", tt.err.Port)
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			if tt.wantErr != nil {
				require.ErrorIs(t, tt.err, tt.wantErr)
			}
		})
	}
}

func TestTransportError_Error(t *testing.T) {
	t.Parallel()

	withPort := &TransportError{Err: errors.New("connection failed"), Op: "read", Port: "/dev/ttyUSB0"}
	assert.Equal(t, "read on /dev/ttyUSB0: connection failed", withPort.Error())

	withoutPort := &TransportError{Err: errors.New("device busy"), Op: "write"}
	assert.Equal(t, "write: device busy", withoutPort.Error())

	original := errors.New("original error")
	assert.Equal(t, original, (&TransportError{Err: original}).Unwrap())
}
