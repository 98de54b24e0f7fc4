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

// glyphWidth approximates the advance of the display font for centring.
const glyphWidth = 7

// Banner is a single static frame of centred text lines inside a border.
type Banner struct {
	Lines []string
	Hold  time.Duration
	Pitch int
}

// NewBanner creates a banner held for hold after drawing.
func NewBanner(hold time.Duration, lines ...string) Banner {
	return Banner{Lines: lines, Hold: hold, Pitch: cardlog.DefaultLinePitch}
}

// Frames implements cardlog.Animation
func (Banner) Frames() int { return 1 }

// Interval implements cardlog.Animation
func (b Banner) Interval() time.Duration { return b.Hold }

// DrawFrame implements cardlog.Animation
func (b Banner) DrawFrame(d cardlog.Display, _ int) {
	width, height := d.Size()
	d.Rect(0, 0, width, height)

	pitch := b.Pitch
	if pitch <= 0 {
		pitch = cardlog.DefaultLinePitch
	}
	top := max((height-len(b.Lines)*pitch)/2, 0)
	for i, line := range b.Lines {
		x := max((width-len(line)*glyphWidth)/2, 0)
		d.SetCursor(x, top+i*pitch)
		d.Print(line)
	}
}

var _ cardlog.Animation = Banner{}
