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
	"encoding/hex"
	"fmt"
	"strings"
)

// MaxUIDLength is the longest UID a proximity card reports (triple size).
const MaxUIDLength = 10

const hexDigits = "0123456789ABCDEF"

// UID is an immutable card identifier. It is a comparable value type, so
// two UIDs are equal with == exactly when their normalized strings match.
// The zero UID means "no card".
type UID struct {
	buf [MaxUIDLength]byte
	n   uint8
}

// NewUID builds a UID from the bytes reported by the reader.
func NewUID(b []byte) (UID, error) {
	if len(b) == 0 || len(b) > MaxUIDLength {
		return UID{}, fmt.Errorf("%w: length %d", ErrInvalidUID, len(b))
	}
	var u UID
	u.n = uint8(copy(u.buf[:], b))
	return u, nil
}

// MustUID is like NewUID but panics on invalid input.
func MustUID(b ...byte) UID {
	u, err := NewUID(b)
	if err != nil {
		panic(err)
	}
	return u
}

// ParseUID parses a hexadecimal UID string in either case.
func ParseUID(s string) (UID, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return UID{}, fmt.Errorf("%w: %w", ErrInvalidUID, err)
	}
	return NewUID(b)
}

// Bytes returns a copy of the UID bytes.
func (u UID) Bytes() []byte {
	return append([]byte(nil), u.buf[:u.n]...)
}

// Len returns the number of UID bytes.
func (u UID) Len() int {
	return int(u.n)
}

// IsZero reports whether u is the zero UID.
func (u UID) IsZero() bool {
	return u.n == 0
}

// String returns the normalized form: two uppercase hex digits per byte,
// in the order the reader reported them.
func (u UID) String() string {
	var out [MaxUIDLength * 2]byte
	for i := 0; i < int(u.n); i++ {
		out[2*i] = hexDigits[u.buf[i]>>4]
		out[2*i+1] = hexDigits[u.buf[i]&0x0F]
	}
	return string(out[:2*int(u.n)])
}
