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

import "context"

// Card is what a reader reports for the card in its field.
type Card struct {
	// UID holds 4, 7 or 10 identifier bytes.
	UID []byte
	// ATQA is the answer-to-request word from anticollision.
	ATQA uint16
	// SAK is the select-acknowledge byte. It loosely indicates card type.
	SAK byte
}

// CardReader is the capability a proximity-card transceiver provides.
type CardReader interface {
	// HasNewCard polls the field and reports whether a card answered.
	HasNewCard(ctx context.Context) (bool, error)

	// ReadSerial returns the card found by the last successful HasNewCard.
	// It returns ErrNoCard when there is none.
	ReadSerial(ctx context.Context) (Card, error)

	// Halt puts the selected card into the halt state.
	Halt(ctx context.Context) error

	// StopCrypto ends any authenticated session with the card so the next
	// card can be detected.
	StopCrypto(ctx context.Context) error
}
