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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cardlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	d := Defaults()

	assert.Equal(t, "GPIO8", d.Buttons.Read)
	assert.Equal(t, "GPIO7", d.Buttons.Mode)
	assert.Equal(t, "up", d.Buttons.Pull)
	assert.True(t, d.Buttons.ActiveLow, "a pulled-up button reads low while pressed")
	assert.Equal(t, 5, d.Scan.Capacity)
	assert.Equal(t, 200*time.Millisecond, d.DebounceDelay())
	assert.Equal(t, 2*time.Second, d.MessageDuration())
	assert.Equal(t, 10*time.Millisecond, d.PollInterval())
	assert.Equal(t, time.Second, d.ReaderTimeout())
	assert.Equal(t, 128, d.Display.Width)
	assert.Equal(t, 32, d.Display.Height)
	assert.Equal(t, 0x08, d.Scan.PlainSAK)
	require.NoError(t, d.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `reader:
  transport: i2c
  bus: /dev/i2c-3
scan:
  capacity: 8
  variant: continuous
display:
  sink: console
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, TransportI2C, cfg.Reader.Transport)
	assert.Equal(t, "/dev/i2c-3", cfg.Reader.Bus)
	assert.Equal(t, 8, cfg.Scan.Capacity)
	assert.Equal(t, "continuous", cfg.Scan.Variant)
	assert.Equal(t, SinkConsole, cfg.Display.Sink)

	// Untouched keys keep their defaults.
	assert.Equal(t, "GPIO8", cfg.Buttons.Read)
	assert.True(t, cfg.Buttons.ActiveLow)
	assert.Equal(t, 200, cfg.Scan.DebounceMS)
	assert.Equal(t, 32, cfg.Display.Height)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "reader:\n  port: /dev/ttyUSB0\n")
	t.Setenv("CARDLOG_READER_PORT", "/dev/ttyACM1")
	t.Setenv("CARDLOG_SCAN_CAPACITY", "3")
	t.Setenv("CARDLOG_BUTTONS_ACTIVE_LOW", "false")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyACM1", cfg.Reader.Port)
	assert.Equal(t, 3, cfg.Scan.Capacity)
	assert.False(t, cfg.Buttons.ActiveLow)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"transport": "reader:\n  transport: spi\n",
		"sink":      "display:\n  sink: lcd\n",
		"variant":   "scan:\n  variant: hybrid\n",
		"capacity":  "scan:\n  capacity: 0\n",
		"sak":       "scan:\n  plain_sak: 300\n",
		"duration":  "scan:\n  poll_ms: -1\n",
		"size":      "display:\n  width: 0\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(viper.New(), writeConfig(t, content))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "cardlog.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "read: GPIO8")
	assert.Contains(t, string(data), "debounce_ms: 200")
	assert.NotContains(t, string(data), "blocklist")

	var parsed Config
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, Defaults(), parsed)

	// The written file loads back to the defaults.
	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	require.Error(t, WriteDefaultConfig(path), "existing files are not overwritten")
}
