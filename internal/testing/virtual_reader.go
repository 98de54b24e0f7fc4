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
	"context"
	"sync"

	"github.com/ZaparooProject/go-cardlog"
)

// SAK values of common card families
const (
	SAKMIFARE1K byte = 0x08
	SAKMIFARE4K byte = 0x18
	SAKNTAG     byte = 0x00
)

// VirtualCard is a simulated card that can be placed on a VirtualReader
type VirtualCard struct {
	UID  []byte
	ATQA uint16
	SAK  byte
}

// NewVirtualMIFARE1K creates a MIFARE Classic 1K card
func NewVirtualMIFARE1K(uid []byte) *VirtualCard {
	if uid == nil {
		uid = TestMIFARE1KUID
	}
	return &VirtualCard{UID: uid, ATQA: 0x0004, SAK: SAKMIFARE1K}
}

// NewVirtualNTAG213 creates an NTAG213 card
func NewVirtualNTAG213(uid []byte) *VirtualCard {
	if uid == nil {
		uid = TestNTAG213UID
	}
	return &VirtualCard{UID: uid, ATQA: 0x0044, SAK: SAKNTAG}
}

// VirtualReader simulates a card reader. Like real hardware it keeps
// reporting a card for as long as the card stays in the field.
type VirtualReader struct {
	present    *VirtualCard
	selected   *VirtualCard
	probeErr   error
	readErr    error
	mu         sync.Mutex
	probes     int
	halts      int
	stopCrypto int
}

// NewVirtualReader creates a reader with an empty field
func NewVirtualReader() *VirtualReader {
	return &VirtualReader{}
}

// Place puts card into the field, replacing any card already there
func (r *VirtualReader) Place(card *VirtualCard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.present = card
}

// Remove takes the card out of the field
func (r *VirtualReader) Remove() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.present = nil
}

// SetProbeError makes HasNewCard fail with err
func (r *VirtualReader) SetProbeError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probeErr = err
}

// SetReadError makes ReadSerial fail with err
func (r *VirtualReader) SetReadError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readErr = err
}

// HasNewCard implements cardlog.CardReader
func (r *VirtualReader) HasNewCard(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probes++
	if r.probeErr != nil {
		return false, r.probeErr
	}
	r.selected = r.present
	return r.present != nil, nil
}

// ReadSerial implements cardlog.CardReader
func (r *VirtualReader) ReadSerial(_ context.Context) (cardlog.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return cardlog.Card{}, r.readErr
	}
	if r.selected == nil {
		return cardlog.Card{}, cardlog.ErrNoCard
	}
	return cardlog.Card{
		UID:  append([]byte(nil), r.selected.UID...),
		ATQA: r.selected.ATQA,
		SAK:  r.selected.SAK,
	}, nil
}

// Halt implements cardlog.CardReader
func (r *VirtualReader) Halt(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.halts++
	return nil
}

// StopCrypto implements cardlog.CardReader
func (r *VirtualReader) StopCrypto(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopCrypto++
	r.selected = nil
	return nil
}

// Probes returns how many times HasNewCard was called
func (r *VirtualReader) Probes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.probes
}

// Releases returns how many Halt and StopCrypto calls were made
func (r *VirtualReader) Releases() (halts, stopCrypto int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.halts, r.stopCrypto
}

var _ cardlog.CardReader = (*VirtualReader)(nil)
