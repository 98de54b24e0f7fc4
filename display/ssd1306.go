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
	"fmt"
	"image"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// SSD1306 is a sink driving an SSD1306 OLED panel over I2C.
type SSD1306 struct {
	bus    i2c.BusCloser
	dev    *ssd1306.Dev
	name   string
	mu     sync.Mutex
	closed bool
}

// OpenSSD1306 opens the named I2C bus ("" selects the first one) and
// initializes a panel of the given size at the default 0x3C address.
func OpenSSD1306(busName string, width, height int) (*SSD1306, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %q: %w", busName, err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = width
	opts.H = height
	// 128x32 panels wire their COM pins sequentially.
	opts.Sequential = height <= 32

	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("failed to initialize SSD1306 on %s: %w", bus, err)
	}

	return &SSD1306{bus: bus, dev: dev, name: bus.String()}, nil
}

// Draw implements Sink
func (s *SSD1306) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("SSD1306 on %s: %w", s.name, ErrClosed)
	}
	if err := s.dev.Draw(r, src, sp); err != nil {
		return fmt.Errorf("SSD1306 draw failed: %w", err)
	}
	return nil
}

// String returns the bus the panel is attached to.
func (s *SSD1306) String() string {
	return "SSD1306@" + s.name
}

// Close turns the panel off and releases the bus.
func (s *SSD1306) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	haltErr := s.dev.Halt()
	if err := s.bus.Close(); err != nil {
		return fmt.Errorf("failed to close I2C bus: %w", err)
	}
	return haltErr
}
