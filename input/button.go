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

// Package input reads the reader's push buttons from GPIO pins.
package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZaparooProject/go-cardlog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// ErrPinNotFound is returned when no GPIO pin has the requested name.
var ErrPinNotFound = errors.New("gpio pin not found")

// GPIOButton is a push button on a GPIO input. Read reports the raw
// electrical level; whether high means pressed is decided by the
// debouncer's polarity.
type GPIOButton struct {
	pin  gpio.PinIn
	name string
}

// NewGPIOButton configures pin as an input with the given pull and no
// edge detection. The loop samples it on every iteration.
func NewGPIOButton(pin gpio.PinIn, pull gpio.Pull) (*GPIOButton, error) {
	if pin == nil {
		return nil, errors.New("pin cannot be nil")
	}
	if err := pin.In(pull, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("failed to configure %s as input: %w", pin, err)
	}
	return &GPIOButton{pin: pin, name: pin.Name()}, nil
}

// OpenButton initializes the host drivers and opens the pin registered
// under name, for example "GPIO8".
func OpenButton(name string, pull gpio.Pull) (*GPIOButton, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("%w: %s", ErrPinNotFound, name)
	}
	return NewGPIOButton(pin, pull)
}

// Read implements cardlog.Button
func (b *GPIOButton) Read() (bool, error) {
	return b.pin.Read() == gpio.High, nil
}

// Name returns the pin name.
func (b *GPIOButton) Name() string {
	return b.name
}

// String implements fmt.Stringer
func (b *GPIOButton) String() string {
	return "button(" + b.name + ")"
}

// ParsePull converts a configuration value to a pull resistor setting.
// The empty string leaves the pin's pull unchanged.
func ParsePull(s string) (gpio.Pull, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return gpio.PullNoChange, nil
	case "up":
		return gpio.PullUp, nil
	case "down":
		return gpio.PullDown, nil
	case "float", "none":
		return gpio.Float, nil
	default:
		return gpio.PullNoChange, fmt.Errorf("unknown pull %q", s)
	}
}

var _ cardlog.Button = (*GPIOButton)(nil)
