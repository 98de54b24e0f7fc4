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

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"sync"
)

// ErrClosed is returned when drawing to a closed sink.
var ErrClosed = errors.New("display closed")

const ansiHome = "\x1b[H\x1b[2J"

// Console renders frames as ASCII art, one character per pixel. It lets
// the reader run on a bench without a panel attached.
type Console struct {
	w    io.Writer
	last []byte
	mu   sync.Mutex
	ansi bool
}

// ConsoleOption configures a Console
type ConsoleOption func(*Console)

// WithANSI redraws in place using terminal escape codes.
func WithANSI(enabled bool) ConsoleOption {
	return func(c *Console) {
		c.ansi = enabled
	}
}

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{w: w}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Draw implements Sink. Frames identical to the previous one are skipped.
func (c *Console) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	frame := Render(r, src, sp)

	c.mu.Lock()
	defer c.mu.Unlock()
	if bytes.Equal(frame, c.last) {
		return nil
	}
	c.last = frame

	if c.ansi {
		if _, err := io.WriteString(c.w, ansiHome); err != nil {
			return err
		}
	}
	_, err := c.w.Write(frame)
	return err
}

// Render draws the r-sized region of src starting at sp as text: '#' for
// lit pixels, ' ' otherwise, framed by a border.
func Render(r image.Rectangle, src image.Image, sp image.Point) []byte {
	var buf bytes.Buffer
	border := "+" + string(bytes.Repeat([]byte{'-'}, r.Dx())) + "+\n"

	buf.WriteString(border)
	for y := 0; y < r.Dy(); y++ {
		buf.WriteByte('|')
		for x := 0; x < r.Dx(); x++ {
			if lit(src.At(sp.X+x, sp.Y+y)) {
				buf.WriteByte('#')
			} else {
				buf.WriteByte(' ')
			}
		}
		buf.WriteString("|\n")
	}
	buf.WriteString(border)
	return buf.Bytes()
}

func lit(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y >= 0x80
}
