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

// Display is the drawing capability of a small monochrome screen.
// Draw calls mutate an off-screen frame; Present flushes it to hardware.
type Display interface {
	Clear()
	SetCursor(x, y int)
	Print(text string)
	Rect(x, y, w, h int)
	FilledRect(x, y, w, h int)
	Circle(x, y, r int)
	Line(x0, y0, x1, y1 int)
	HorizontalLine(x, y, w int)
	Size() (width, height int)
	Present() error
}

// DisplayInitializer is implemented by displays that need explicit
// bring-up before the first frame.
type DisplayInitializer interface {
	Init() error
}
