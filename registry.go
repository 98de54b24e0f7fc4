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

import "fmt"

// DefaultCapacity is the number of UIDs kept per session.
const DefaultCapacity = 5

// Registry is a bounded, insertion-ordered list of UIDs. It only grows:
// once full, inserts are refused and existing entries are never replaced.
type Registry struct {
	entries  []UID
	capacity int
}

// NewRegistry creates an empty registry holding at most capacity UIDs.
func NewRegistry(capacity int) (*Registry, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Registry{
		entries:  make([]UID, 0, capacity),
		capacity: capacity,
	}, nil
}

// Insert appends uid and returns its index, or ErrRegistryFull without
// mutating the registry.
func (r *Registry) Insert(uid UID) (int, error) {
	if len(r.entries) >= r.capacity {
		return -1, ErrRegistryFull
	}
	r.entries = append(r.entries, uid)
	return len(r.entries) - 1, nil
}

// EntryAt returns the UID stored at index.
func (r *Registry) EntryAt(index int) (UID, error) {
	if index < 0 || index >= len(r.entries) {
		return UID{}, fmt.Errorf("%w: %d (size %d)", ErrOutOfRange, index, len(r.entries))
	}
	return r.entries[index], nil
}

// NextCursor returns the index following current, wrapping at Len.
func (r *Registry) NextCursor(current int) (int, error) {
	if len(r.entries) == 0 {
		return 0, ErrEmptyRegistry
	}
	next := (current + 1) % len(r.entries)
	if next < 0 {
		next += len(r.entries)
	}
	return next, nil
}

// Len returns the number of stored UIDs.
func (r *Registry) Len() int {
	return len(r.entries)
}

// IsEmpty reports whether nothing has been stored yet.
func (r *Registry) IsEmpty() bool {
	return len(r.entries) == 0
}

// IsFull reports whether further inserts will be refused.
func (r *Registry) IsFull() bool {
	return len(r.entries) >= r.capacity
}

// Capacity returns the maximum number of entries.
func (r *Registry) Capacity() int {
	return r.capacity
}

// Entries returns a copy of the stored UIDs in insertion order.
func (r *Registry) Entries() []UID {
	out := make([]UID, len(r.entries))
	copy(out, r.entries)
	return out
}
