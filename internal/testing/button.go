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

package testing

import "sync"

// Button is a settable input level
type Button struct {
	err   error
	mu    sync.Mutex
	level bool
	reads int
}

// NewButton creates a button reading level
func NewButton(level bool) *Button {
	return &Button{level: level}
}

// Set changes the electrical level
func (b *Button) Set(level bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.level = level
}

// SetError makes Read fail with err
func (b *Button) SetError(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

// Read implements cardlog.Button
func (b *Button) Read() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reads++
	if b.err != nil {
		return false, b.err
	}
	return b.level, nil
}

// Reads returns how many times the button was sampled
func (b *Button) Reads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reads
}
