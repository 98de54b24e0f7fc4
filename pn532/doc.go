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
Package pn532 drives a PN532 NFC controller as the card reader of a
cardlog controller.

The PN532 is a 13.56 MHz transceiver supporting ISO14443A/B and FeliCa.
This package only needs the ISO14443A subset: find a card in the field,
report its UID and SAK, then release it so the next card can be found.

Features:
  - UART and I2C transports (see the uart and i2c subpackages)
  - Retry logic with configurable backoff
  - Context support on every command
  - Structured transport errors with retry classification

Basic Usage:

	import (
	    "github.com/ZaparooProject/go-cardlog/pn532"
	    "github.com/ZaparooProject/go-cardlog/pn532/uart"
	)

	transport, err := uart.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}

	reader, err := pn532.New(transport, pn532.WithTimeout(time.Second))
	if err != nil {
	    log.Fatal(err)
	}
	defer reader.Close()

	if err := reader.Init(ctx); err != nil {
	    log.Fatal(err)
	}

	present, err := reader.HasNewCard(ctx)
	if err == nil && present {
	    card, _ := reader.ReadSerial(ctx)
	    fmt.Printf("UID: %X\n", card.UID)
	    _ = reader.Halt(ctx)
	    _ = reader.StopCrypto(ctx)
	}

Error Handling:

Transport failures are returned as *TransportError and classified with
IsRetryable and GetErrorType:

	if errors.Is(err, pn532.ErrTransportTimeout) {
	    // Handle timeout
	}

Thread Safety:

Reader operations are not thread-safe. Transports serialize their own
I/O, but the cached target is owned by a single goroutine.
*/
package pn532
