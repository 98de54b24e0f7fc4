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

import (
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultLinePitch is the vertical distance between text lines in pixels.
const DefaultLinePitch = 10

// DefaultGlyphWidth is the horizontal advance of one character in pixels.
// It matches the 7x13 face of display.Framebuffer.
const DefaultGlyphWidth = 7

// DefaultMessageDuration is how long a status message holds the screen.
const DefaultMessageDuration = 2 * time.Second

// screen renders the text layouts shared by the controllers.
type screen struct {
	display         Display
	clock           Clock
	log             logrus.FieldLogger
	linePitch       int
	messageDuration time.Duration
}

// show draws lines top to bottom and presents the frame.
func (s *screen) show(lines ...string) error {
	s.display.Clear()
	for i, line := range lines {
		s.display.SetCursor(0, i*s.linePitch)
		s.display.Print(s.fit(line))
	}
	if err := s.display.Present(); err != nil {
		s.log.WithError(err).Warn("failed to present frame")
		return err
	}
	return nil
}

// fit shortens text that would wrap into the next line. The middle is
// replaced with "..", so long UIDs keep their first and last bytes.
func (s *screen) fit(text string) string {
	width, _ := s.display.Size()
	cols := width / DefaultGlyphWidth
	if cols <= 0 || len(text) <= cols {
		return text
	}
	if cols < 4 {
		return text[:cols]
	}
	keep := cols - 2
	head := (keep + 1) / 2
	return text[:head] + ".." + text[len(text)-(keep-head):]
}

// message shows lines and blocks for the message duration.
func (s *screen) message(lines ...string) {
	s.log.WithField("lines", lines).Debug("message")
	_ = s.show(lines...)
	s.clock.Sleep(s.messageDuration)
}

// play runs an animation to completion.
func (s *screen) play(a Animation) {
	if err := Play(s.display, s.clock, a); err != nil {
		s.log.WithError(err).Warn("failed to present animation frame")
	}
}
