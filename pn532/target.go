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
	"encoding/hex"
	"fmt"
	"strings"
)

// Target is a Type A card found by InListPassiveTarget
type Target struct {
	UID    []byte
	ATQA   uint16
	Number byte
	SAK    byte
}

// UIDString returns the UID as uppercase hex
func (t *Target) UIDString() string {
	return strings.ToUpper(hex.EncodeToString(t.UID))
}

// maxUIDLength is the longest ISO/IEC 14443-3 UID (triple size).
const maxUIDLength = 10

// parsePassiveTarget decodes an InListPassiveTarget response:
// [0x4B, NbTg, Tg, ATQA(2), SAK, UIDLen, UID...]. Anything after the
// UID (ATS of ISO-DEP cards) is ignored.
func parsePassiveTarget(resp []byte) (*Target, error) {
	if len(resp) < 2 {
		return nil, NewInvalidResponseError("InListPassiveTarget", "response too short")
	}
	if resp[1] == 0 {
		return nil, nil
	}
	if len(resp) < 7 {
		return nil, NewInvalidResponseError("InListPassiveTarget", fmt.Sprintf("target data too short: %d bytes", len(resp)))
	}

	uidLen := int(resp[6])
	if uidLen == 0 || uidLen > maxUIDLength {
		return nil, NewInvalidResponseError("InListPassiveTarget", fmt.Sprintf("invalid UID length %d", uidLen))
	}
	if len(resp) < 7+uidLen {
		return nil, NewInvalidResponseError("InListPassiveTarget", "UID truncated")
	}

	uid := make([]byte, uidLen)
	copy(uid, resp[7:7+uidLen])
	return &Target{
		Number: resp[2],
		ATQA:   uint16(resp[3])<<8 | uint16(resp[4]),
		SAK:    resp[5],
		UID:    uid,
	}, nil
}
