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

package testing

import (
	"sync"

	"github.com/ZaparooProject/go-cardlog"
)

// Text is one Print call with the cursor position it was drawn at
type Text struct {
	Value string
	X, Y  int
}

// Frame is a presented frame
type Frame struct {
	Texts  []Text
	Shapes int
}

// Lines returns the printed strings of the frame in draw order
func (f Frame) Lines() []string {
	lines := make([]string, len(f.Texts))
	for i, t := range f.Texts {
		lines[i] = t.Value
	}
	return lines
}

// RecordingDisplay records every presented frame instead of drawing it
type RecordingDisplay struct {
	InitErr    error
	PresentErr error
	frames     []Frame
	current    Frame
	width      int
	height     int
	cursorX    int
	cursorY    int
	mu         sync.Mutex
	inits      int
}

// NewRecordingDisplay creates a recorder reporting the given size
func NewRecordingDisplay(width, height int) *RecordingDisplay {
	return &RecordingDisplay{width: width, height: height}
}

// Init implements cardlog.DisplayInitializer
func (d *RecordingDisplay) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inits++
	return d.InitErr
}

// Clear implements cardlog.Display
func (d *RecordingDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = Frame{}
	d.cursorX, d.cursorY = 0, 0
}

// SetCursor implements cardlog.Display
func (d *RecordingDisplay) SetCursor(x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursorX, d.cursorY = x, y
}

// Print implements cardlog.Display
func (d *RecordingDisplay) Print(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current.Texts = append(d.current.Texts, Text{Value: text, X: d.cursorX, Y: d.cursorY})
}

func (d *RecordingDisplay) shape() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current.Shapes++
}

// Rect implements cardlog.Display
func (d *RecordingDisplay) Rect(_, _, _, _ int) { d.shape() }

// FilledRect implements cardlog.Display
func (d *RecordingDisplay) FilledRect(_, _, _, _ int) { d.shape() }

// Circle implements cardlog.Display
func (d *RecordingDisplay) Circle(_, _, _ int) { d.shape() }

// Line implements cardlog.Display
func (d *RecordingDisplay) Line(_, _, _, _ int) { d.shape() }

// HorizontalLine implements cardlog.Display
func (d *RecordingDisplay) HorizontalLine(_, _, _ int) { d.shape() }

// Size implements cardlog.Display
func (d *RecordingDisplay) Size() (width, height int) {
	return d.width, d.height
}

// Present implements cardlog.Display
func (d *RecordingDisplay) Present() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.PresentErr != nil {
		return d.PresentErr
	}
	frame := Frame{Shapes: d.current.Shapes}
	frame.Texts = append([]Text(nil), d.current.Texts...)
	d.frames = append(d.frames, frame)
	return nil
}

// Frames returns all presented frames
func (d *RecordingDisplay) Frames() []Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Frame(nil), d.frames...)
}

// LastFrame returns the most recently presented frame
func (d *RecordingDisplay) LastFrame() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return Frame{}
	}
	return d.frames[len(d.frames)-1]
}

// TextFrames returns the lines of every presented frame that printed text
func (d *RecordingDisplay) TextFrames() [][]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out [][]string
	for _, f := range d.frames {
		if len(f.Texts) > 0 {
			out = append(out, f.Lines())
		}
	}
	return out
}

// Reset forgets the recorded frames
func (d *RecordingDisplay) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = nil
}

// Inits returns how many times Init was called
func (d *RecordingDisplay) Inits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inits
}

var (
	_ cardlog.Display            = (*RecordingDisplay)(nil)
	_ cardlog.DisplayInitializer = (*RecordingDisplay)(nil)
)
