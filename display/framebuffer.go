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
	"errors"
	"image"

	"github.com/ZaparooProject/go-cardlog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Default panel geometry: a 128x32 SSD1306.
const (
	DefaultWidth  = 128
	DefaultHeight = 32
)

const (
	// lineHeight matches cardlog.DefaultLinePitch so wrapped text lines
	// up with lines placed by the controllers.
	lineHeight = cardlog.DefaultLinePitch
	// baseline is the offset from the cursor row to the font baseline.
	// The 7x13 face leaves two blank rows above its capitals.
	baseline = 9
)

// ErrInvalidSize is returned for a framebuffer with no pixels.
var ErrInvalidSize = errors.New("display size must be positive")

// Sink receives presented frames. Its signature matches the periph
// display.Drawer so hardware drivers plug in directly.
type Sink interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// Framebuffer is an off-screen 1-bit canvas implementing cardlog.Display.
// Drawing is clipped to the canvas; Present flushes it to the sink.
//
// Thread Safety: Framebuffer is NOT thread-safe.
type Framebuffer struct {
	sink   Sink
	img    *image1bit.VerticalLSB
	face   font.Face
	src    *image.Uniform
	cursor image.Point
}

// NewFramebuffer creates a blank canvas of the given size flushing to sink.
func NewFramebuffer(sink Sink, width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	if sink == nil {
		return nil, errors.New("sink cannot be nil")
	}
	return &Framebuffer{
		sink: sink,
		img:  image1bit.NewVerticalLSB(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
		src:  image.NewUniform(image1bit.On),
	}, nil
}

// Init blanks the panel, which also proves the sink is reachable.
func (f *Framebuffer) Init() error {
	if initializer, ok := f.sink.(cardlog.DisplayInitializer); ok {
		if err := initializer.Init(); err != nil {
			return err
		}
	}
	f.Clear()
	return f.Present()
}

// Image returns the canvas. Callers must not keep it across draws.
func (f *Framebuffer) Image() *image1bit.VerticalLSB {
	return f.img
}

// Pixel reports whether the pixel at x, y is lit.
func (f *Framebuffer) Pixel(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(f.img.Rect) {
		return false
	}
	return f.img.BitAt(x, y) == image1bit.On
}

// Cursor returns the position the next Print starts at.
func (f *Framebuffer) Cursor() image.Point {
	return f.cursor
}

// Size implements cardlog.Display
func (f *Framebuffer) Size() (width, height int) {
	return f.img.Rect.Dx(), f.img.Rect.Dy()
}

// Clear implements cardlog.Display
func (f *Framebuffer) Clear() {
	clear(f.img.Pix)
	f.cursor = image.Point{}
}

// SetCursor implements cardlog.Display
func (f *Framebuffer) SetCursor(x, y int) {
	f.cursor = image.Point{X: x, Y: y}
}

// Print implements cardlog.Display. Text wraps at the right edge and at
// newlines; the cursor is left after the last glyph.
func (f *Framebuffer) Print(text string) {
	width, _ := f.Size()
	drawer := font.Drawer{Dst: f.img, Src: f.src, Face: f.face}

	for _, r := range text {
		if r == '\n' {
			f.newline()
			continue
		}
		advance, ok := f.face.GlyphAdvance(r)
		if !ok {
			advance, _ = f.face.GlyphAdvance('?')
		}
		step := advance.Ceil()
		if f.cursor.X > 0 && f.cursor.X+step > width {
			f.newline()
		}
		drawer.Dot = fixed.P(f.cursor.X, f.cursor.Y+baseline)
		drawer.DrawString(string(r))
		f.cursor.X += step
	}
}

func (f *Framebuffer) newline() {
	f.cursor.X = 0
	f.cursor.Y += lineHeight
}

// Present implements cardlog.Display
func (f *Framebuffer) Present() error {
	return f.sink.Draw(f.img.Bounds(), f.img, image.Point{})
}

var (
	_ cardlog.Display            = (*Framebuffer)(nil)
	_ cardlog.DisplayInitializer = (*Framebuffer)(nil)
)
