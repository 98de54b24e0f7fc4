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

package pn532

import (
	"context"
	"fmt"
)

// PN532 command codes
const (
	cmdGetFirmwareVersion  = 0x02
	cmdSAMConfiguration    = 0x14
	cmdRFConfiguration     = 0x32
	cmdInListPassiveTarget = 0x4A
	cmdInDeselect          = 0x44
	cmdInRelease           = 0x52
)

const (
	// samModeNormal disables the security access module.
	samModeNormal = 0x01
	// samTimeout is the virtual card timeout in 50 ms units.
	samTimeout = 0x14
	samUseIRQ  = 0x01

	// rfItemMaxRetries selects the MaxRetries RFConfiguration item.
	rfItemMaxRetries = 0x05
	rfRetryATR       = 0xFF
	rfRetryPSL       = 0x01

	// baudTypeA is 106 kbps ISO/IEC 14443 Type A.
	baudTypeA = 0x00
	// allTargets releases or deselects every active target.
	allTargets = 0x00
)

// FirmwareVersion is the answer to GetFirmwareVersion
type FirmwareVersion struct {
	IC       byte
	Version  byte
	Revision byte
	Support  byte
}

// String renders the chip and version, e.g. "PN532 v1.6"
func (f FirmwareVersion) String() string {
	return fmt.Sprintf("PN5%02X v%d.%d", f.IC, f.Version, f.Revision)
}

// SupportsISO14443A reports whether the chip can talk to Type A cards
func (f FirmwareVersion) SupportsISO14443A() bool {
	return f.Support&0x01 != 0
}

// sendCommand issues cmd and checks the response code.
func (r *Reader) sendCommand(ctx context.Context, cmd byte, args []byte) ([]byte, error) {
	debugf("TX %02X % X", cmd, args)
	resp, err := AsTransportContext(r.transport).SendCommandContext(ctx, cmd, args)
	if err != nil {
		return nil, err
	}
	debugf("RX % X", resp)
	if len(resp) == 0 || resp[0] != cmd+1 {
		return nil, NewInvalidResponseError(fmt.Sprintf("command %02X", cmd), fmt.Sprintf("unexpected response % X", resp))
	}
	return resp, nil
}

// statusCommand issues a command whose response is a single status byte.
func (r *Reader) statusCommand(ctx context.Context, name string, cmd byte, args []byte) error {
	resp, err := r.sendCommand(ctx, cmd, args)
	if err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	if len(resp) < 2 {
		return NewInvalidResponseError(name, "response too short")
	}
	// Bits 0-5 carry the error code; bit 6 is the NAD flag.
	if status := resp[1] & 0x3F; status != 0 {
		return fmt.Errorf("%s: %w: status %02X", name, ErrCommandFailed, status)
	}
	return nil
}

// GetFirmwareVersion queries the chip version
func (r *Reader) GetFirmwareVersion(ctx context.Context) (*FirmwareVersion, error) {
	resp, err := r.sendCommand(ctx, cmdGetFirmwareVersion, nil)
	if err != nil {
		return nil, fmt.Errorf("GetFirmwareVersion failed: %w", err)
	}
	if len(resp) < 5 {
		return nil, NewInvalidResponseError("GetFirmwareVersion", "response too short")
	}
	return &FirmwareVersion{IC: resp[1], Version: resp[2], Revision: resp[3], Support: resp[4]}, nil
}

// SAMConfiguration puts the chip in normal mode
func (r *Reader) SAMConfiguration(ctx context.Context) error {
	if _, err := r.sendCommand(ctx, cmdSAMConfiguration, []byte{samModeNormal, samTimeout, samUseIRQ}); err != nil {
		return fmt.Errorf("SAMConfiguration failed: %w", err)
	}
	return nil
}

// SetPassiveRetries bounds how often InListPassiveTarget retries before
// reporting no target. 0xFF retries forever, which would block polling.
func (r *Reader) SetPassiveRetries(ctx context.Context, retries byte) error {
	args := []byte{rfItemMaxRetries, rfRetryATR, rfRetryPSL, retries}
	if _, err := r.sendCommand(ctx, cmdRFConfiguration, args); err != nil {
		return fmt.Errorf("RFConfiguration failed: %w", err)
	}
	return nil
}

// InListPassiveTarget looks for one Type A card. It returns nil and no
// error when the field is empty.
func (r *Reader) InListPassiveTarget(ctx context.Context) (*Target, error) {
	resp, err := r.sendCommand(ctx, cmdInListPassiveTarget, []byte{0x01, baudTypeA})
	if err != nil {
		return nil, fmt.Errorf("InListPassiveTarget failed: %w", err)
	}
	return parsePassiveTarget(resp)
}

// InDeselect deselects target tg, keeping its data for a later reselect
func (r *Reader) InDeselect(ctx context.Context, tg byte) error {
	return r.statusCommand(ctx, "InDeselect", cmdInDeselect, []byte{tg})
}

// InRelease releases target tg, ending any MIFARE crypto session
func (r *Reader) InRelease(ctx context.Context, tg byte) error {
	return r.statusCommand(ctx, "InRelease", cmdInRelease, []byte{tg})
}
