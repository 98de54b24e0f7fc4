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
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Button is a raw digital input. Read returns the electrical level;
// polarity is handled by the debouncer.
type Button interface {
	Read() (bool, error)
}

// Controller runs the reader loop: it samples the buttons, dispatches
// debounced presses to the scan and menu controllers and keeps the screen
// current.
//
// Thread Safety: Controller is NOT thread-safe. Boot, Step and Run must be
// called from a single goroutine.
type Controller struct {
	reader  CardReader
	display Display
	config  *Config
	session *SessionState
	scan    *ScanController
	menu    *MenuController
	screen  *screen
	log     logrus.FieldLogger
	modeBtn Button
	readBtn Button
	modeDeb *Debouncer
	readDeb *Debouncer
	dirty   bool
	booted  bool
}

// NewController wires a controller. modeButton and readButton may be nil
// for the continuous variant.
func NewController(reader CardReader, display Display, modeButton, readButton Button, opts ...Option) (*Controller, error) {
	if reader == nil {
		return nil, errors.New("card reader cannot be nil")
	}
	if display == nil {
		return nil, errors.New("display cannot be nil")
	}

	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if config.Variant == VariantMenu && (modeButton == nil || readButton == nil) {
		return nil, errors.New("menu variant needs a mode and a read button")
	}

	session, err := NewSessionState(config.Capacity)
	if err != nil {
		return nil, err
	}

	scr := &screen{
		display:         display,
		clock:           config.Clock,
		log:             config.Logger,
		linePitch:       config.LinePitch,
		messageDuration: config.MessageDuration,
	}

	return &Controller{
		reader:  reader,
		display: display,
		config:  config,
		session: session,
		screen:  scr,
		log:     config.Logger,
		modeBtn: modeButton,
		readBtn: readButton,
		modeDeb: NewDebouncer(config.DebounceDelay, config.ActiveLow),
		readDeb: NewDebouncer(config.DebounceDelay, config.ActiveLow),
		scan: &ScanController{
			reader:      reader,
			screen:      scr,
			feedback:    config.Animation,
			log:         config.Logger,
			plainSAK:    config.PlainSAK,
			interactive: config.Variant == VariantMenu,
		},
		menu: &MenuController{
			screen: scr,
			log:    config.Logger,
		},
		dirty: true,
	}, nil
}

// Session returns the session state owned by the loop.
func (c *Controller) Session() *SessionState {
	return c.session
}

// Scanner returns the scan controller.
func (c *Controller) Scanner() *ScanController {
	return c.scan
}

// Menu returns the menu controller.
func (c *Controller) Menu() *MenuController {
	return c.menu
}

// Boot brings up the display and shows the welcome screen. A failure here
// is fatal and wraps ErrDisplayInit.
func (c *Controller) Boot(_ context.Context) error {
	if initializer, ok := c.display.(DisplayInitializer); ok {
		if err := initializer.Init(); err != nil {
			return fmt.Errorf("%w: %w", ErrDisplayInit, err)
		}
	}

	if err := c.screen.show("RFID Reader Ready"); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplayInit, err)
	}
	width, height := c.display.Size()
	c.log.WithFields(logrus.Fields{
		"variant":  c.config.Variant,
		"capacity": c.config.Capacity,
		"display":  fmt.Sprintf("%dx%d", width, height),
	}).Info("reader ready")
	c.config.Clock.Sleep(c.config.MessageDuration)

	c.booted = true
	c.dirty = true
	return nil
}

// Step runs one loop iteration. Within an iteration the mode button is
// handled before the read button.
func (c *Controller) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if c.config.Variant == VariantContinuous {
		c.stepContinuous(ctx)
	} else {
		c.stepMenu(ctx)
	}

	if c.dirty {
		c.redraw()
	}
	return nil
}

// Run boots the controller and loops until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	if !c.booted {
		if err := c.Boot(ctx); err != nil {
			return err
		}
	}

	for {
		if err := c.Step(ctx); err != nil {
			return err
		}
		c.config.Clock.Sleep(c.config.PollInterval)
	}
}

func (c *Controller) stepMenu(ctx context.Context) {
	if c.sample(c.modeBtn, c.modeDeb, "mode") == EdgeRising {
		c.menu.Cycle(c.session)
		c.dirty = true
	}

	if c.sample(c.readBtn, c.readDeb, "read") != EdgeRising {
		return
	}

	switch c.session.Mode {
	case ModeScan:
		c.scan.Attempt(ctx, c.session)
		c.dirty = true
	case ModeView:
		if _, err := c.menu.ShowNext(c.session); err != nil {
			c.dirty = true
		} else {
			c.dirty = false
		}
	}
}

func (c *Controller) stepContinuous(ctx context.Context) {
	result := c.scan.Attempt(ctx, c.session)
	if result.Outcome == OutcomeStored || result.Outcome == OutcomeRejected {
		c.dirty = true
	}
}

func (c *Controller) sample(button Button, deb *Debouncer, name string) Edge {
	level, err := button.Read()
	if err != nil {
		c.log.WithError(err).WithField("button", name).Debug("button read failed")
		return EdgeNone
	}
	edge := deb.Sample(level, c.config.Clock.Now())
	if edge != EdgeNone {
		c.log.WithFields(logrus.Fields{"button": name, "edge": edge}).Debug("button edge")
	}
	return edge
}

func (c *Controller) redraw() {
	var err error
	if c.config.Variant == VariantContinuous {
		registry := c.session.Registry
		err = c.screen.show("Scan a card", fmt.Sprintf("Stored: %d/%d", registry.Len(), registry.Capacity()))
	} else {
		err = c.menu.Render(c.session)
	}
	if err == nil {
		c.dirty = false
	}
}
