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
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is the pause between loop iterations.
const DefaultPollInterval = 10 * time.Millisecond

// DefaultPlainSAK is the select-acknowledge value of a MIFARE Classic 1K.
// Cards answering with anything else are flagged as possibly protected.
const DefaultPlainSAK byte = 0x08

// Variant selects how the loop drives scanning.
type Variant string

const (
	// VariantMenu uses a mode button and an action button with a two-entry menu.
	VariantMenu Variant = "menu"
	// VariantContinuous scans on every iteration and has no menu.
	VariantContinuous Variant = "continuous"
)

var errInvalidOption = errors.New("invalid option")

// Config contains the settings of a Controller
type Config struct {
	Animation       Animation
	Clock           Clock
	Logger          logrus.FieldLogger
	Variant         Variant
	Capacity        int
	DebounceDelay   time.Duration
	MessageDuration time.Duration
	PollInterval    time.Duration
	LinePitch       int
	ActiveLow       bool
	PlainSAK        byte
}

// DefaultConfig returns the stock settings: menu variant, five UIDs, 200 ms debounce
func DefaultConfig() *Config {
	return &Config{
		Clock:           SystemClock(),
		Logger:          logrus.StandardLogger(),
		Variant:         VariantMenu,
		Capacity:        DefaultCapacity,
		DebounceDelay:   DefaultDebounceDelay,
		MessageDuration: DefaultMessageDuration,
		PollInterval:    DefaultPollInterval,
		LinePitch:       DefaultLinePitch,
		PlainSAK:        DefaultPlainSAK,
	}
}

// Option is a functional option for configuring a Controller
type Option func(*Config) error

// WithCapacity sets how many UIDs the session keeps
func WithCapacity(capacity int) Option {
	return func(c *Config) error {
		if capacity < 1 {
			return ErrInvalidCapacity
		}
		c.Capacity = capacity
		return nil
	}
}

// WithDebounceDelay sets the debounce window of both buttons
func WithDebounceDelay(delay time.Duration) Option {
	return func(c *Config) error {
		if delay < 0 {
			return errInvalidOption
		}
		c.DebounceDelay = delay
		return nil
	}
}

// WithActiveLow marks the buttons as reading low while pressed
func WithActiveLow(activeLow bool) Option {
	return func(c *Config) error {
		c.ActiveLow = activeLow
		return nil
	}
}

// WithMessageDuration sets how long status messages block the loop
func WithMessageDuration(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return errInvalidOption
		}
		c.MessageDuration = d
		return nil
	}
}

// WithPollInterval sets the pause between loop iterations
func WithPollInterval(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return errInvalidOption
		}
		c.PollInterval = d
		return nil
	}
}

// WithLinePitch sets the text line spacing in pixels
func WithLinePitch(pitch int) Option {
	return func(c *Config) error {
		if pitch < 1 {
			return errInvalidOption
		}
		c.LinePitch = pitch
		return nil
	}
}

// WithPlainSAK sets the SAK value that is not flagged as protected
func WithPlainSAK(sak byte) Option {
	return func(c *Config) error {
		c.PlainSAK = sak
		return nil
	}
}

// WithVariant selects menu or continuous scanning
func WithVariant(v Variant) Option {
	return func(c *Config) error {
		switch v {
		case VariantMenu, VariantContinuous:
			c.Variant = v
			return nil
		default:
			return errInvalidOption
		}
	}
}

// WithAnimation sets the feedback played after a card is stored.
// A nil animation disables feedback.
func WithAnimation(a Animation) Option {
	return func(c *Config) error {
		c.Animation = a
		return nil
	}
}

// WithClock replaces the wall clock, mostly for tests
func WithClock(clock Clock) Option {
	return func(c *Config) error {
		if clock == nil {
			return errInvalidOption
		}
		c.Clock = clock
		return nil
	}
}

// WithLogger sets the logger used by the controllers
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Config) error {
		if logger == nil {
			return errInvalidOption
		}
		c.Logger = logger
		return nil
	}
}
