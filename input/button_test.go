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

package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

type failingPin struct {
	gpiotest.Pin
}

func (*failingPin) In(gpio.Pull, gpio.Edge) error {
	return errors.New("pin busy")
}

func TestNewGPIOButton_ReadsLevel(t *testing.T) {
	t.Parallel()
	pin := &gpiotest.Pin{N: "GPIO8", Num: 8, L: gpio.Low}

	btn, err := NewGPIOButton(pin, gpio.PullDown)
	require.NoError(t, err)
	assert.Equal(t, "GPIO8", btn.Name())
	assert.Equal(t, "button(GPIO8)", btn.String())
	assert.Equal(t, gpio.PullDown, pin.Pull())

	level, err := btn.Read()
	require.NoError(t, err)
	assert.False(t, level)

	pin.Lock()
	pin.L = gpio.High
	pin.Unlock()

	level, err = btn.Read()
	require.NoError(t, err)
	assert.True(t, level)
}

func TestNewGPIOButton_PullUpIdlesHigh(t *testing.T) {
	t.Parallel()
	pin := &gpiotest.Pin{N: "GPIO7", Num: 7}

	btn, err := NewGPIOButton(pin, gpio.PullUp)
	require.NoError(t, err)

	level, err := btn.Read()
	require.NoError(t, err)
	assert.True(t, level)
}

func TestNewGPIOButton_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewGPIOButton(nil, gpio.PullDown)
	require.Error(t, err)

	_, err = NewGPIOButton(&failingPin{Pin: gpiotest.Pin{N: "GPIO9"}}, gpio.PullDown)
	require.ErrorContains(t, err, "pin busy")
}

func TestParsePull(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    gpio.Pull
		wantErr bool
	}{
		{in: "", want: gpio.PullNoChange},
		{in: "up", want: gpio.PullUp},
		{in: " Down ", want: gpio.PullDown},
		{in: "float", want: gpio.Float},
		{in: "none", want: gpio.Float},
		{in: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePull(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
