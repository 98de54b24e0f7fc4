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

// Package display implements the reader screen.
//
// A Framebuffer holds a 1-bit canvas and implements cardlog.Display. On
// Present it hands the canvas to a Sink: an SSD1306 OLED on real hardware
// or a Console that prints ASCII frames for bench testing.
//
//	oled, err := display.OpenSSD1306("", display.DefaultWidth, display.DefaultHeight)
//	if err != nil {
//		return err
//	}
//	defer oled.Close()
//	fb, err := display.NewFramebuffer(oled, display.DefaultWidth, display.DefaultHeight)
package display
