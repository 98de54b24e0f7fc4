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
	"sync"
	"time"
)

// MockCall records one command sent to a MockTransport
type MockCall struct {
	Args []byte
	Cmd  byte
}

// MockTransport is a scripted transport for tests. Responses are looked up
// by command byte: queued responses are consumed first, then the fixed
// response set with SetResponse is repeated.
type MockTransport struct {
	responses map[byte][]byte
	queued    map[byte][][]byte
	errors    map[byte][]error
	calls     []MockCall
	timeout   time.Duration
	mu        sync.Mutex
	closed    bool
}

// NewMockTransport creates an empty mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		responses: make(map[byte][]byte),
		queued:    make(map[byte][][]byte),
		errors:    make(map[byte][]error),
	}
}

// SetResponse sets the response returned for every cmd call
func (m *MockTransport) SetResponse(cmd byte, response []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmd] = response
}

// QueueResponse adds one-shot responses for cmd, returned in order
func (m *MockTransport) QueueResponse(cmd byte, responses ...[]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued[cmd] = append(m.queued[cmd], responses...)
}

// QueueError makes the next cmd calls fail with errs, in order
func (m *MockTransport) QueueError(cmd byte, errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[cmd] = append(m.errors[cmd], errs...)
}

// SendCommand implements Transport
func (m *MockTransport) SendCommand(cmd byte, args []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Cmd: cmd, Args: append([]byte(nil), args...)})
	if m.closed {
		return nil, ErrTransportClosed
	}
	if errs := m.errors[cmd]; len(errs) > 0 {
		m.errors[cmd] = errs[1:]
		return nil, errs[0]
	}
	if queue := m.queued[cmd]; len(queue) > 0 {
		m.queued[cmd] = queue[1:]
		return append([]byte(nil), queue[0]...), nil
	}
	if resp, ok := m.responses[cmd]; ok {
		return append([]byte(nil), resp...), nil
	}
	return nil, NewTimeoutError("SendCommand", "mock")
}

// Calls returns every command sent so far
func (m *MockTransport) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns how many times cmd was sent
func (m *MockTransport) CallCount(cmd byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Cmd == cmd {
			n++
		}
	}
	return n
}

// Close implements Transport
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// SetTimeout implements Transport
func (m *MockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return nil
}

// Timeout returns the last timeout set
func (m *MockTransport) Timeout() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeout
}

// IsConnected implements Transport
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Type implements Transport
func (*MockTransport) Type() TransportType {
	return TransportMock
}

// BlockingMockTransport is a simple mock transport that can block operations on demand
// This is used for testing context cancellation
type BlockingMockTransport struct {
	blockChan chan struct{}
	Response  []byte
	timeout   time.Duration
	mu        sync.Mutex
	closed    bool
}

// NewBlockingMockTransport creates a new blocking mock transport
func NewBlockingMockTransport(response []byte) *BlockingMockTransport {
	return &BlockingMockTransport{
		blockChan: make(chan struct{}),
		Response:  response,
		timeout:   5 * time.Second,
	}
}

// SendCommand blocks until Unblock() is called, timeout expires, or the transport is closed
func (m *BlockingMockTransport) SendCommand(_ byte, _ []byte) ([]byte, error) {
	m.mu.Lock()
	blockChan := m.blockChan
	closed := m.closed
	timeout := m.timeout
	m.mu.Unlock()

	if closed {
		return nil, ErrTransportClosed
	}

	select {
	case <-blockChan:
	case <-time.After(timeout):
		return nil, NewTimeoutError("SendCommand", "mock")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrTransportClosed
	}
	return append([]byte(nil), m.Response...), nil
}

// Unblock allows blocked SendCommand calls to proceed
func (m *BlockingMockTransport) Unblock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		close(m.blockChan)
		m.blockChan = make(chan struct{})
	}
}

// Close unblocks all operations and marks transport as closed
func (m *BlockingMockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.blockChan)
	}
	return nil
}

// SetTimeout configures the timeout for blocking operations
func (m *BlockingMockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return nil
}

// IsConnected returns true until the transport is closed
func (m *BlockingMockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Type returns TransportMock
func (*BlockingMockTransport) Type() TransportType {
	return TransportMock
}
