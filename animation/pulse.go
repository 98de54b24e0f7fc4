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

package animation

import (
	"time"

	"github.com/ZaparooProject/go-cardlog"
)

const (
	// PulseFrames is the number of frames in one scan pulse.
	PulseFrames = 120
	// PulseInterval is the delay between scan pulse frames.
	PulseInterval = 20 * time.Millisecond

	pulseRings    = 3
	ringSpacing   = 8
	radiusPerStep = 1
)

// ScanPulse draws concentric rings expanding from the centre of the
// screen, a horizontal line sweeping top to bottom and a frame border.
type ScanPulse struct {
	frames   int
	interval time.Duration
}

// NewScanPulse returns the standard 120 x 20 ms feedback effect.
func NewScanPulse() ScanPulse {
	return ScanPulse{frames: PulseFrames, interval: PulseInterval}
}

// NewScanPulseWithTiming returns a pulse with a custom frame count and
// interval. Non-positive values fall back to the defaults.
func NewScanPulseWithTiming(frames int, interval time.Duration) ScanPulse {
	p := NewScanPulse()
	if frames > 0 {
		p.frames = frames
	}
	if interval > 0 {
		p.interval = interval
	}
	return p
}

// Frames implements cardlog.Animation
func (p ScanPulse) Frames() int { return p.frames }

// Interval implements cardlog.Animation
func (p ScanPulse) Interval() time.Duration { return p.interval }

// DrawFrame implements cardlog.Animation
func (p ScanPulse) DrawFrame(d cardlog.Display, step int) {
	width, height := d.Size()
	if width <= 0 || height <= 0 {
		return
	}
	cx, cy := width/2, height/2

	d.Rect(0, 0, width, height)

	maxRadius := max(cx, cy)
	span := pulseRings * ringSpacing
	for ring := range pulseRings {
		r := ring*ringSpacing + (step*radiusPerStep)%span
		if r > 0 && r <= maxRadius {
			d.Circle(cx, cy, r)
		}
	}

	d.HorizontalLine(0, SweepRow(step, height), width)
}

// SweepRow returns the row of the scan line at step. The line bounces
// between the first and last row.
func SweepRow(step, height int) int {
	if height <= 1 {
		return 0
	}
	period := 2 * (height - 1)
	pos := step % period
	if pos < 0 {
		pos += period
	}
	if pos >= height {
		pos = period - pos
	}
	return pos
}

var _ cardlog.Animation = ScanPulse{}
