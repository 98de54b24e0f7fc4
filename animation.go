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

// Animation is a pure visual effect with a fixed timing contract: playing
// it takes Frames()*Interval() and cannot be interrupted.
type Animation interface {
	Frames() int
	Interval() time.Duration
	DrawFrame(d Display, step int)
}

// AnimationDuration returns how long a full playback of a blocks the loop.
func AnimationDuration(a Animation) time.Duration {
	if a == nil {
		return 0
	}
	return time.Duration(a.Frames()) * a.Interval()
}

// Play runs a to completion on d. Inputs are not sampled while it
// runs; presses during playback are lost.
func Play(d Display, clock Clock, a Animation) error {
	if a == nil {
		return nil
	}
	var firstErr error
	for step := 0; step < a.Frames(); step++ {
		d.Clear()
		a.DrawFrame(d, step)
		if err := d.Present(); err != nil && firstErr == nil {
			firstErr = err
		}
		clock.Sleep(a.Interval())
	}
	return firstErr
}
