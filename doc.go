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

/*
Package cardlog implements the control loop of a handheld proximity-card
reader with a small monochrome display and two buttons.

The reader detects cards, normalizes each card's UID, suppresses repeated
detections of a card that is still in the field and keeps a bounded,
insertion-ordered history of the UIDs it has seen. A two-entry menu selects
whether the action button scans a card or shows the next stored UID.

The package is hardware independent. It talks to a CardReader and a Display
and samples Button levels; concrete implementations live in the pn532,
display and input packages.

Basic Usage:

	reader, err := pn532.New(transport)
	if err != nil {
	    log.Fatal(err)
	}
	if err := reader.Init(ctx); err != nil {
	    log.Fatal(err)
	}

	fb := display.NewFramebuffer(128, 32, sink)
	mode, _ := input.OpenButton("GPIO7", gpio.PullUp)
	read, _ := input.OpenButton("GPIO8", gpio.PullUp)

	controller, err := cardlog.NewController(reader, fb, mode, read,
	    cardlog.WithAnimation(animation.NewScanPulse()),
	)
	if err != nil {
	    log.Fatal(err)
	}
	err = controller.Run(ctx)

Inputs:

Buttons are debounced independently. A level is committed once the raw
input has held it for strictly longer than the debounce delay (200 ms by
default), and actions fire once per press on the committed rising edge.

Blocking:

Status messages hold the screen for the message duration and the scan
feedback animation runs to completion. The loop does not sample inputs
meanwhile, so presses during those periods are lost.

Error Handling:

Expected conditions are sentinel errors that can be inspected:

	if errors.Is(err, cardlog.ErrRegistryFull) {
	    // card was seen but not stored
	}

Only ErrDisplayInit is fatal.
*/
package cardlog
