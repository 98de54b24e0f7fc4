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
	"strings"
	"testing"

	"github.com/ZaparooProject/go-cardlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	err     error
	inits   int
	initErr error
	frames  [][]byte
	rects   []image.Rectangle
}

func (s *recordingSink) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if s.err != nil {
		return s.err
	}
	s.rects = append(s.rects, r)
	s.frames = append(s.frames, Render(r, src, sp))
	return nil
}

type initSink struct {
	recordingSink
}

func (s *initSink) Init() error {
	s.inits++
	return s.initErr
}

func newTestFramebuffer(t *testing.T) (*Framebuffer, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	fb, err := NewFramebuffer(sink, DefaultWidth, DefaultHeight)
	require.NoError(t, err)
	return fb, sink
}

func litCount(fb *Framebuffer, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if fb.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestNewFramebuffer_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewFramebuffer(&recordingSink{}, 0, 32)
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewFramebuffer(nil, 128, 32)
	require.Error(t, err)

	fb, err := NewFramebuffer(&recordingSink{}, 128, 64)
	require.NoError(t, err)
	w, h := fb.Size()
	assert.Equal(t, 128, w)
	assert.Equal(t, 64, h)
}

func TestFramebuffer_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		draw func(fb *Framebuffer)
		name string
		lit  []image.Point
		dark []image.Point
		want int
	}{
		{
			name: "horizontal line",
			draw: func(fb *Framebuffer) { fb.HorizontalLine(10, 5, 20) },
			lit:  []image.Point{{10, 5}, {29, 5}},
			dark: []image.Point{{9, 5}, {30, 5}, {10, 6}},
			want: 20,
		},
		{
			name: "rect outline",
			draw: func(fb *Framebuffer) { fb.Rect(0, 0, 10, 5) },
			lit:  []image.Point{{0, 0}, {9, 0}, {0, 4}, {9, 4}},
			dark: []image.Point{{5, 2}, {10, 0}},
			want: 26,
		},
		{
			name: "filled rect",
			draw: func(fb *Framebuffer) { fb.FilledRect(2, 2, 4, 3) },
			lit:  []image.Point{{2, 2}, {5, 4}, {3, 3}},
			dark: []image.Point{{6, 2}, {2, 5}},
			want: 12,
		},
		{
			name: "diagonal line",
			draw: func(fb *Framebuffer) { fb.Line(0, 0, 7, 7) },
			lit:  []image.Point{{0, 0}, {3, 3}, {7, 7}},
			dark: []image.Point{{1, 0}, {0, 1}},
			want: 8,
		},
		{
			name: "reversed line",
			draw: func(fb *Framebuffer) { fb.Line(20, 10, 10, 10) },
			lit:  []image.Point{{10, 10}, {15, 10}, {20, 10}},
			want: 11,
		},
		{
			name: "circle",
			draw: func(fb *Framebuffer) { fb.Circle(64, 16, 5) },
			lit:  []image.Point{{69, 16}, {59, 16}, {64, 11}, {64, 21}},
			dark: []image.Point{{64, 16}},
		},
		{
			name: "clipped",
			draw: func(fb *Framebuffer) {
				fb.Rect(-5, -5, 300, 100)
				fb.Circle(0, 0, 40)
				fb.Line(-10, -10, 200, 200)
			},
			lit: []image.Point{{0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fb, _ := newTestFramebuffer(t)

			tt.draw(fb)

			for _, p := range tt.lit {
				assert.True(t, fb.Pixel(p.X, p.Y), "expected %v lit", p)
			}
			for _, p := range tt.dark {
				assert.False(t, fb.Pixel(p.X, p.Y), "expected %v dark", p)
			}
			if tt.want > 0 {
				assert.Equal(t, tt.want, litCount(fb, fb.Image().Bounds()))
			}
		})
	}
}

func TestFramebuffer_PrintWraps(t *testing.T) {
	t.Parallel()
	fb, _ := newTestFramebuffer(t)

	fb.SetCursor(0, 0)
	fb.Print("Card Stored:")
	assert.Equal(t, image.Point{X: 12 * 7, Y: 0}, fb.Cursor())
	assert.Positive(t, litCount(fb, image.Rect(0, 0, 128, 10)))

	fb.Clear()
	fb.Print(strings.Repeat("A", 20))
	// 18 glyphs of 7 px fit on 128 columns.
	assert.Equal(t, image.Point{X: 2 * 7, Y: cardlog.DefaultLinePitch}, fb.Cursor())
	assert.Positive(t, litCount(fb, image.Rect(0, 10, 14, 20)))
	assert.Zero(t, litCount(fb, image.Rect(14, 10, 128, 32)))
}

func TestFramebuffer_PrintNewline(t *testing.T) {
	t.Parallel()
	fb, _ := newTestFramebuffer(t)

	fb.Print("UID:\n04A13F")

	assert.Equal(t, image.Point{X: 6 * 7, Y: cardlog.DefaultLinePitch}, fb.Cursor())
}

func TestFramebuffer_TextStaysInLine(t *testing.T) {
	t.Parallel()
	fb, _ := newTestFramebuffer(t)

	fb.SetCursor(0, 10)
	fb.Print("SCAN")

	assert.Positive(t, litCount(fb, image.Rect(0, 10, 28, 20)))
	assert.Zero(t, litCount(fb, image.Rect(0, 0, 128, 10)))
	assert.Zero(t, litCount(fb, image.Rect(0, 20, 128, 32)))
}

func TestFramebuffer_ClearAndPresent(t *testing.T) {
	t.Parallel()
	fb, sink := newTestFramebuffer(t)

	fb.FilledRect(0, 0, 128, 32)
	fb.SetCursor(40, 20)
	require.NoError(t, fb.Present())

	fb.Clear()
	require.NoError(t, fb.Present())

	require.Len(t, sink.frames, 2)
	assert.Equal(t, image.Rect(0, 0, 128, 32), sink.rects[0])
	assert.Equal(t, 128*32, strings.Count(string(sink.frames[0]), "#"))
	assert.Zero(t, strings.Count(string(sink.frames[1]), "#"))
	assert.Equal(t, image.Point{}, fb.Cursor())
}

func TestFramebuffer_PresentError(t *testing.T) {
	t.Parallel()
	sinkErr := errors.New("i2c nack")
	fb, err := NewFramebuffer(&recordingSink{err: sinkErr}, 128, 32)
	require.NoError(t, err)

	require.ErrorIs(t, fb.Present(), sinkErr)
	require.ErrorIs(t, fb.Init(), sinkErr)
}

func TestFramebuffer_InitCallsSink(t *testing.T) {
	t.Parallel()
	sink := &initSink{}
	fb, err := NewFramebuffer(sink, 128, 32)
	require.NoError(t, err)

	fb.FilledRect(0, 0, 4, 4)
	require.NoError(t, fb.Init())

	assert.Equal(t, 1, sink.inits)
	require.Len(t, sink.frames, 1)
	assert.Zero(t, litCount(fb, fb.Image().Bounds()))

	sink.initErr = errors.New("panel missing")
	require.ErrorIs(t, fb.Init(), sink.initErr)
}
