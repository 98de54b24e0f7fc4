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
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hangingTransport answers every command after a fixed delay
type hangingTransport struct {
	hang  time.Duration
	calls atomic.Int32
}

func (h *hangingTransport) SendCommand(cmd byte, _ []byte) ([]byte, error) {
	h.calls.Add(1)
	time.Sleep(h.hang)
	return []byte{cmd + 1}, nil
}

func (*hangingTransport) Close() error                   { return nil }
func (*hangingTransport) SetTimeout(time.Duration) error { return nil }
func (*hangingTransport) IsConnected() bool              { return true }
func (*hangingTransport) Type() TransportType            { return TransportMock }

func TestSendCommandContext_Cancellation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		hang       time.Duration
		ctxTimeout time.Duration
		expectErr  bool
	}{
		{name: "quick cancellation", hang: time.Second, ctxTimeout: 10 * time.Millisecond, expectErr: true},
		{name: "fast enough", hang: 10 * time.Millisecond, ctxTimeout: 200 * time.Millisecond},
		{name: "immediate cancellation", hang: 100 * time.Millisecond, ctxTimeout: time.Millisecond, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			transport := AsTransportContext(&hangingTransport{hang: tt.hang})

			ctx, cancel := context.WithTimeout(context.Background(), tt.ctxTimeout)
			defer cancel()

			start := time.Now()
			result, err := transport.SendCommandContext(ctx, 0x4A, []byte{0x01, 0x00})
			elapsed := time.Since(start)

			if tt.expectErr {
				require.ErrorIs(t, err, context.DeadlineExceeded)
				assert.Less(t, elapsed, tt.ctxTimeout+50*time.Millisecond)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte{0x4B}, result)
		})
	}
}

func TestSendCommandContext_RepeatedPolls(t *testing.T) {
	t.Parallel()
	hanging := &hangingTransport{hang: 100 * time.Millisecond}
	transport := AsTransportContext(hanging)

	for i := range 5 {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		_, err := transport.SendCommandContext(ctx, 0x4A, []byte{0x01, 0x00})
		cancel()
		require.Error(t, err, "poll %d", i)
	}

	assert.Equal(t, int32(5), hanging.calls.Load(), "each poll reaches the transport once")
}

func TestSendCommandContext_AbandonedCallsFinish(t *testing.T) {
	t.Parallel()
	hanging := &hangingTransport{hang: 50 * time.Millisecond}
	transport := AsTransportContext(hanging)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
			defer cancel()
			_, _ = transport.SendCommandContext(ctx, 0x02, nil)
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool {
		return hanging.calls.Load() == 10
	}, time.Second, 10*time.Millisecond)
}

func TestAsTransportContext_PassThrough(t *testing.T) {
	t.Parallel()
	wrapped := NewTransportWithRetry(NewMockTransport(), nil)
	assert.Same(t, wrapped, AsTransportContext(wrapped))
}

func TestBlockingTransport_ReaderCancel(t *testing.T) {
	t.Parallel()
	blocking := NewBlockingMockTransport([]byte{0x4B, 0x00})
	reader, err := New(blocking, WithRetryConfig(fastRetryConfig(1)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = blocking.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, pollErr := reader.HasNewCard(ctx)
		done <- pollErr
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case pollErr := <-done:
		require.ErrorIs(t, pollErr, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("HasNewCard did not return after cancel")
	}

	// A later poll gets the answer once the transport is released.
	go func() {
		time.Sleep(10 * time.Millisecond)
		blocking.Unblock()
	}()
	found, err := reader.HasNewCard(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}
