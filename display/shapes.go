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

package display

import "periph.io/x/devices/v3/ssd1306/image1bit"

func (f *Framebuffer) set(x, y int) {
	if x < f.img.Rect.Min.X || y < f.img.Rect.Min.Y || x >= f.img.Rect.Max.X || y >= f.img.Rect.Max.Y {
		return
	}
	f.img.SetBit(x, y, image1bit.On)
}

// HorizontalLine implements cardlog.Display
func (f *Framebuffer) HorizontalLine(x, y, w int) {
	for i := range w {
		f.set(x+i, y)
	}
}

func (f *Framebuffer) verticalLine(x, y, h int) {
	for i := range h {
		f.set(x, y+i)
	}
}

// Rect implements cardlog.Display
func (f *Framebuffer) Rect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	f.HorizontalLine(x, y, w)
	f.HorizontalLine(x, y+h-1, w)
	f.verticalLine(x, y, h)
	f.verticalLine(x+w-1, y, h)
}

// FilledRect implements cardlog.Display
func (f *Framebuffer) FilledRect(x, y, w, h int) {
	for i := range h {
		f.HorizontalLine(x, y+i, w)
	}
}

// Line implements cardlog.Display using Bresenham's algorithm.
func (f *Framebuffer) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		f.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Circle implements cardlog.Display using the midpoint algorithm.
func (f *Framebuffer) Circle(cx, cy, r int) {
	if r < 0 {
		return
	}
	x, y := r, 0
	e := 1 - r
	for x >= y {
		f.set(cx+x, cy+y)
		f.set(cx-x, cy+y)
		f.set(cx+x, cy-y)
		f.set(cx-x, cy-y)
		f.set(cx+y, cy+x)
		f.set(cx-y, cy+x)
		f.set(cx+y, cy-x)
		f.set(cx-y, cy-x)
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
