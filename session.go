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

package cardlog

// Mode is the menu option the action button currently triggers.
type Mode int

const (
	ModeScan Mode = iota
	ModeView
)

// String returns the menu label of the mode
func (m Mode) String() string {
	switch m {
	case ModeScan:
		return "Scan Card"
	case ModeView:
		return "View UIDs"
	default:
		return "Unknown"
	}
}

// Next returns the mode that follows m in the menu.
func (m Mode) Next() Mode {
	if m == ModeScan {
		return ModeView
	}
	return ModeScan
}

// SessionState is all mutable state of a reader session. It is created once
// at startup and passed by pointer to every controller call.
//
// SessionState is NOT safe for concurrent use. The controller loop is its
// only user; anything that drives it from another goroutine must add its
// own locking around registry and cursor mutation.
type SessionState struct {
	Registry *Registry
	// LastSeen suppresses repeated detections of a card still in the field.
	LastSeen UID
	// TagCount counts new detections, including ones refused for capacity.
	TagCount int
	Mode     Mode
	// Cursor is the next registry index ShowNext renders.
	Cursor int
}

// NewSessionState creates a session with an empty registry.
func NewSessionState(capacity int) (*SessionState, error) {
	registry, err := NewRegistry(capacity)
	if err != nil {
		return nil, err
	}
	return &SessionState{Registry: registry, Mode: ModeScan}, nil
}
