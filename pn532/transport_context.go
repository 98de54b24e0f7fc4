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
	"context"
	"fmt"
)

// TransportContext is a Transport whose commands can be abandoned through a
// context. The i2c and uart transports implement it natively.
type TransportContext interface {
	Transport

	SendCommandContext(ctx context.Context, cmd byte, args []byte) ([]byte, error)
}

// detachedTransport gives a plain Transport context support by running each
// command on its own goroutine. An abandoned command keeps running; the
// transport's own locking makes the next command wait for it.
type detachedTransport struct {
	Transport
}

type commandResult struct {
	err  error
	data []byte
}

func (t *detachedTransport) SendCommandContext(ctx context.Context, cmd byte, args []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("command 0x%02X not sent: %w", cmd, err)
	}

	done := make(chan commandResult, 1)
	go func() {
		data, err := t.SendCommand(cmd, args)
		done <- commandResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("command 0x%02X abandoned: %w", cmd, ctx.Err())
	case res := <-done:
		return res.data, res.err
	}
}

// AsTransportContext returns t itself when it already supports contexts.
func AsTransportContext(t Transport) TransportContext {
	if tc, ok := t.(TransportContext); ok {
		return tc
	}
	return &detachedTransport{Transport: t}
}
