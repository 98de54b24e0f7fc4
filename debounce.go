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

import "time"

// DefaultDebounceDelay is the time a raw level must hold before it is committed.
const DefaultDebounceDelay = 200 * time.Millisecond

// Edge is a change of a debounced input level.
type Edge int

const (
	EdgeNone Edge = iota
	// EdgeRising means the committed level became the active level (press).
	EdgeRising
	// EdgeFalling means the committed level returned to idle (release).
	EdgeFalling
)

// String returns a human-readable edge name
func (e Edge) String() string {
	switch e {
	case EdgeNone:
		return "none"
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// Debouncer turns noisy raw samples of one input into edge events.
//
// A level is committed only after the raw input has held it for strictly
// longer than the delay. Actions are meant to fire on EdgeRising, so a held
// button triggers once per press.
type Debouncer struct {
	lastChange time.Time
	delay      time.Duration
	lastRaw    bool
	committed  bool
	active     bool
}

// NewDebouncer creates a debouncer. With activeLow the input reads false
// while pressed (pulled-up pin wired to ground through the button).
func NewDebouncer(delay time.Duration, activeLow bool) *Debouncer {
	active := !activeLow
	return &Debouncer{
		delay:     delay,
		active:    active,
		lastRaw:   !active,
		committed: !active,
	}
}

// Sample feeds one raw reading taken at now and returns the resulting edge.
func (d *Debouncer) Sample(raw bool, now time.Time) Edge {
	if raw != d.lastRaw {
		d.lastRaw = raw
		d.lastChange = now
	}

	if now.Sub(d.lastChange) > d.delay && raw != d.committed {
		d.committed = raw
		if raw == d.active {
			return EdgeRising
		}
		return EdgeFalling
	}

	return EdgeNone
}

// Pressed reports whether the committed level is the active level.
func (d *Debouncer) Pressed() bool {
	return d.committed == d.active
}

// Delay returns the debounce window.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
