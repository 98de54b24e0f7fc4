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

package frame

import (
	"bytes"
	"errors"
	"fmt"
)

// Frame errors
var (
	ErrDataTooLarge     = errors.New("frame data too large")
	ErrIncomplete       = errors.New("incomplete frame")
	ErrNoStartCode      = errors.New("frame start code not found")
	ErrLengthChecksum   = errors.New("frame length checksum mismatch")
	ErrDataChecksum     = errors.New("frame data checksum mismatch")
	ErrUnexpectedTFI    = errors.New("unexpected frame identifier")
	ErrApplicationError = errors.New("PN532 application error frame")
	ErrControlFrame     = errors.New("control frame, not an information frame")
)

// Build encodes cmd and args as a host to PN532 information frame.
func Build(cmd byte, args []byte) ([]byte, error) {
	dataLen := 2 + len(args) // TFI + cmd + args
	if dataLen > MaxFrameDataLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrDataTooLarge, dataLen)
	}

	frm := make([]byte, 0, Overhead+dataLen)
	frm = append(frm, Preamble, StartCode1, StartCode2)
	frm = append(frm, byte(dataLen), CalculateLengthChecksum(byte(dataLen)))
	frm = append(frm, HostToPn532, cmd)
	frm = append(frm, args...)
	frm = append(frm, CalculateDataChecksum(HostToPn532, append([]byte{cmd}, args...)), Postamble)
	return frm, nil
}

// FindStart returns the index of the LEN byte of the first frame in buf,
// or -1 when no start code is present.
func FindStart(buf []byte) int {
	idx := bytes.Index(buf, []byte{StartCode1, StartCode2})
	if idx < 0 {
		return -1
	}
	return idx + 2
}

// IsAck reports whether buf contains an ACK frame.
func IsAck(buf []byte) bool {
	return bytes.Contains(buf, AckFrame)
}

// Parse decodes the first PN532 to host information frame in buf and
// returns its data without the TFI, starting with the response code.
// ErrIncomplete means more bytes are needed.
func Parse(buf []byte) ([]byte, error) {
	data, _, err := ParseN(buf)
	return data, err
}

// ParseN is Parse that also returns how many bytes of buf the frame
// consumed, including any garbage before it.
func ParseN(buf []byte) (data []byte, consumed int, err error) {
	start := FindStart(buf)
	if start < 0 {
		return nil, 0, ErrNoStartCode
	}
	if start+2 > len(buf) {
		return nil, 0, ErrIncomplete
	}

	length, lcs := buf[start], buf[start+1]
	if length == 0x00 && lcs == 0xFF {
		return nil, start + 3, ErrControlFrame // ACK
	}
	if length == 0xFF && lcs == 0x00 {
		return nil, start + 3, ErrControlFrame // NACK
	}
	if length+lcs != 0 {
		return nil, start + 2, ErrLengthChecksum
	}

	body := start + 2
	end := body + int(length) + 1 // data + DCS
	if end > len(buf) {
		return nil, 0, ErrIncomplete
	}
	if ValidateChecksum(buf[body:end]) {
		return nil, end, ErrDataChecksum
	}

	switch buf[body] {
	case Pn532ToHost:
	case ErrorFrame:
		return nil, end, ErrApplicationError
	default:
		return nil, end, fmt.Errorf("%w: %02X", ErrUnexpectedTFI, buf[body])
	}

	data = make([]byte, int(length)-1)
	copy(data, buf[body+1:end-1])
	return data, end, nil
}
