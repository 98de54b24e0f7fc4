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

package frame

import "sync"

const (
	smallBufferSize = 16
	largeBufferSize = MaxFrameDataLength + Overhead
)

var (
	smallPool = sync.Pool{New: func() any { b := make([]byte, smallBufferSize); return &b }}
	largePool = sync.Pool{New: func() any { b := make([]byte, largeBufferSize); return &b }}
)

// GetBuffer returns a zeroed buffer of length n from the pool.
// Return it with PutBuffer when done.
func GetBuffer(n int) []byte {
	if n > largeBufferSize {
		return make([]byte, n)
	}
	if n <= smallBufferSize {
		return GetSmallBuffer(n)
	}
	bp, _ := largePool.Get().(*[]byte)
	buf := (*bp)[:n]
	clear(buf)
	return buf
}

// GetSmallBuffer returns a zeroed buffer for short reads such as the
// I2C ready byte or an ACK frame.
func GetSmallBuffer(n int) []byte {
	if n > smallBufferSize {
		return GetBuffer(n)
	}
	bp, _ := smallPool.Get().(*[]byte)
	buf := (*bp)[:n]
	clear(buf)
	return buf
}

// PutBuffer returns buf to its pool. Buffers not obtained from the pool
// are dropped.
func PutBuffer(buf []byte) {
	switch cap(buf) {
	case smallBufferSize:
		buf = buf[:smallBufferSize]
		smallPool.Put(&buf)
	case largeBufferSize:
		buf = buf[:largeBufferSize]
		largePool.Put(&buf)
	}
}
