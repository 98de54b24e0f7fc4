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

package cardlog_test

import (
	"testing"

	"github.com/ZaparooProject/go-cardlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    string
		input   []byte
		wantErr bool
	}{
		{name: "ShortUID", input: []byte{0x04, 0xA1, 0x3F}, want: "04A13F"},
		{name: "SingleSize", input: []byte{0x12, 0x34, 0x56, 0x78}, want: "12345678"},
		{name: "DoubleSize", input: []byte{0x04, 0xAB, 0xCD, 0xEF, 0x12, 0x34, 0x56}, want: "04ABCDEF123456"},
		{
			name:  "TripleSize",
			input: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A},
			want:  "0102030405060708090A",
		},
		{name: "LeadingZeroNibbles", input: []byte{0x00, 0x0F, 0xF0, 0x01}, want: "000FF001"},
		{name: "Empty", input: nil, wantErr: true},
		{name: "TooLong", input: make([]byte, cardlog.MaxUIDLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uid, err := cardlog.NewUID(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, cardlog.ErrInvalidUID)
				assert.True(t, uid.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, uid.String())
			assert.Equal(t, len(tt.input), uid.Len())
			assert.Equal(t, tt.input, uid.Bytes())
		})
	}
}

func TestUID_Equality(t *testing.T) {
	t.Parallel()

	a := cardlog.MustUID(0x04, 0xA1, 0x3F)
	b, err := cardlog.ParseUID("04a13f")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.NotEqual(t, a, cardlog.MustUID(0x04, 0xA1, 0x3F, 0x00))
	assert.NotEqual(t, a, cardlog.UID{})
}

func TestUID_BytesIsCopy(t *testing.T) {
	t.Parallel()

	src := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	uid := cardlog.MustUID(src...)
	src[0] = 0x00

	out := uid.Bytes()
	out[1] = 0x00

	assert.Equal(t, "DEADBEEF", uid.String())
}

func TestParseUID_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "0", "XYZ1", "0102030405060708090A0B"} {
		_, err := cardlog.ParseUID(input)
		require.ErrorIs(t, err, cardlog.ErrInvalidUID, "input %q", input)
	}
}
