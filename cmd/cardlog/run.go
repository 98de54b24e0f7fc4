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

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZaparooProject/go-cardlog"
	"github.com/ZaparooProject/go-cardlog/animation"
	"github.com/ZaparooProject/go-cardlog/internal/config"
	"github.com/spf13/cobra"
)

// runReader is the root command: it wires the hardware into a controller
// and loops until interrupted.
func runReader(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	// The display comes first: without it there is nothing to show.
	fb, closeDisplay, err := openDisplay(cfg.Display, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = closeDisplay.Close() }()

	reader, err := openReader(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	opts := controllerOptions(cfg)

	var modeButton, readButton cardlog.Button
	if cardlog.Variant(cfg.Scan.Variant) == cardlog.VariantMenu {
		mode, read, err := openButtons(cfg.Buttons)
		if err != nil {
			return err
		}
		modeButton, readButton = mode, read
		log.WithField("mode", mode).WithField("read", read).Debug("buttons ready")
	}

	controller, err := cardlog.NewController(reader, fb, modeButton, readButton, opts...)
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}

	err = controller.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.WithField("stored", controller.Session().Registry.Len()).Info("shutting down")
		return nil
	}
	return err
}

// controllerOptions maps the loaded configuration onto controller options.
func controllerOptions(c config.Config) []cardlog.Option {
	opts := []cardlog.Option{
		cardlog.WithCapacity(c.Scan.Capacity),
		cardlog.WithDebounceDelay(c.DebounceDelay()),
		cardlog.WithActiveLow(c.Buttons.ActiveLow),
		cardlog.WithMessageDuration(c.MessageDuration()),
		cardlog.WithPollInterval(c.PollInterval()),
		cardlog.WithPlainSAK(byte(c.Scan.PlainSAK)),
		cardlog.WithVariant(cardlog.Variant(c.Scan.Variant)),
		cardlog.WithLogger(log),
	}
	if c.Display.Animation {
		opts = append(opts, cardlog.WithAnimation(animation.NewScanPulse()))
	}
	return opts
}
