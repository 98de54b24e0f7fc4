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

// Package config provides configuration types, defaults and persistence
// for the cardlog command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. CARDLOG_READER_PORT.
const EnvPrefix = "CARDLOG"

// Reader transports
const (
	TransportUART = "uart"
	TransportI2C  = "i2c"
)

// Display sinks
const (
	SinkSSD1306 = "ssd1306"
	SinkConsole = "console"
)

// ErrInvalid is wrapped by Validate failures
var ErrInvalid = errors.New("invalid configuration")

// Config is the effective configuration of the cardlog command
type Config struct {
	Reader   ReaderConfig  `mapstructure:"reader" yaml:"reader"`
	Buttons  ButtonsConfig `mapstructure:"buttons" yaml:"buttons"`
	Display  DisplayConfig `mapstructure:"display" yaml:"display"`
	Scan     ScanConfig    `mapstructure:"scan" yaml:"scan"`
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"`
}

// ReaderConfig selects and tunes the PN532 connection
type ReaderConfig struct {
	// Transport is "uart" or "i2c".
	Transport string `mapstructure:"transport" yaml:"transport"`
	// Port is the serial port; empty means detect.
	Port        string   `mapstructure:"port" yaml:"port"`
	Bus         string   `mapstructure:"bus" yaml:"bus"`
	TimeoutMS   int      `mapstructure:"timeout_ms" yaml:"timeout_ms"`
	Retries     int      `mapstructure:"retries" yaml:"retries"`
	Blocklist   []string `mapstructure:"blocklist" yaml:"blocklist,omitempty"`
	IgnorePaths []string `mapstructure:"ignore_paths" yaml:"ignore_paths,omitempty"`
}

// ButtonsConfig names the GPIO pins of the two buttons
type ButtonsConfig struct {
	Read      string `mapstructure:"read" yaml:"read"`
	Mode      string `mapstructure:"mode" yaml:"mode"`
	Pull      string `mapstructure:"pull" yaml:"pull"`
	ActiveLow bool   `mapstructure:"active_low" yaml:"active_low"`
}

// DisplayConfig selects the panel
type DisplayConfig struct {
	Sink      string `mapstructure:"sink" yaml:"sink"`
	Bus       string `mapstructure:"bus" yaml:"bus"`
	Width     int    `mapstructure:"width" yaml:"width"`
	Height    int    `mapstructure:"height" yaml:"height"`
	Animation bool   `mapstructure:"animation" yaml:"animation"`
}

// ScanConfig holds the controller settings
type ScanConfig struct {
	Variant    string `mapstructure:"variant" yaml:"variant"`
	Capacity   int    `mapstructure:"capacity" yaml:"capacity"`
	DebounceMS int    `mapstructure:"debounce_ms" yaml:"debounce_ms"`
	MessageMS  int    `mapstructure:"message_ms" yaml:"message_ms"`
	PollMS     int    `mapstructure:"poll_ms" yaml:"poll_ms"`
	PlainSAK   int    `mapstructure:"plain_sak" yaml:"plain_sak"`
}

// Defaults returns the stock settings: read button on GPIO8 and mode
// button on GPIO7, both pulled up and pressed when low, five UIDs and a
// 128x32 panel.
func Defaults() Config {
	return Config{
		Reader: ReaderConfig{
			Transport: TransportUART,
			Bus:       "/dev/i2c-1",
			TimeoutMS: 1000,
			Retries:   3,
		},
		Buttons: ButtonsConfig{
			Read:      "GPIO8",
			Mode:      "GPIO7",
			Pull:      "up",
			ActiveLow: true,
		},
		Display: DisplayConfig{
			Sink:      SinkSSD1306,
			Bus:       "/dev/i2c-1",
			Width:     128,
			Height:    32,
			Animation: true,
		},
		Scan: ScanConfig{
			Variant:    "menu",
			Capacity:   5,
			DebounceMS: 200,
			MessageMS:  2000,
			PollMS:     10,
			PlainSAK:   0x08,
		},
		LogLevel: "info",
	}
}

// SetDefaults registers every default with v so env vars and flags can
// override keys absent from the file.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("reader.transport", d.Reader.Transport)
	v.SetDefault("reader.port", d.Reader.Port)
	v.SetDefault("reader.bus", d.Reader.Bus)
	v.SetDefault("reader.timeout_ms", d.Reader.TimeoutMS)
	v.SetDefault("reader.retries", d.Reader.Retries)
	v.SetDefault("buttons.read", d.Buttons.Read)
	v.SetDefault("buttons.mode", d.Buttons.Mode)
	v.SetDefault("buttons.pull", d.Buttons.Pull)
	v.SetDefault("buttons.active_low", d.Buttons.ActiveLow)
	v.SetDefault("display.sink", d.Display.Sink)
	v.SetDefault("display.bus", d.Display.Bus)
	v.SetDefault("display.width", d.Display.Width)
	v.SetDefault("display.height", d.Display.Height)
	v.SetDefault("display.animation", d.Display.Animation)
	v.SetDefault("scan.variant", d.Scan.Variant)
	v.SetDefault("scan.capacity", d.Scan.Capacity)
	v.SetDefault("scan.debounce_ms", d.Scan.DebounceMS)
	v.SetDefault("scan.message_ms", d.Scan.MessageMS)
	v.SetDefault("scan.poll_ms", d.Scan.PollMS)
	v.SetDefault("scan.plain_sak", d.Scan.PlainSAK)
	v.SetDefault("log_level", d.LogLevel)
}

// Load reads the configuration into v. An empty path looks for
// cardlog.yaml in the working directory and ~/.config/cardlog; a missing
// file is not an error then. Env vars override the file.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cardlog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "cardlog"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the command cannot run with
func (c Config) Validate() error {
	switch c.Reader.Transport {
	case TransportUART, TransportI2C:
	default:
		return fmt.Errorf("%w: reader.transport %q", ErrInvalid, c.Reader.Transport)
	}
	switch c.Display.Sink {
	case SinkSSD1306, SinkConsole:
	default:
		return fmt.Errorf("%w: display.sink %q", ErrInvalid, c.Display.Sink)
	}
	switch c.Scan.Variant {
	case "menu", "continuous":
	default:
		return fmt.Errorf("%w: scan.variant %q", ErrInvalid, c.Scan.Variant)
	}
	if c.Scan.Capacity < 1 {
		return fmt.Errorf("%w: scan.capacity must be at least 1", ErrInvalid)
	}
	if c.Scan.PlainSAK < 0 || c.Scan.PlainSAK > 0xFF {
		return fmt.Errorf("%w: scan.plain_sak must fit in a byte", ErrInvalid)
	}
	if c.Scan.DebounceMS < 0 || c.Scan.MessageMS < 0 || c.Scan.PollMS < 0 || c.Reader.TimeoutMS < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalid)
	}
	if c.Display.Width < 1 || c.Display.Height < 1 {
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	}
	return nil
}

// ReaderTimeout returns the per-command reader timeout
func (c Config) ReaderTimeout() time.Duration {
	return time.Duration(c.Reader.TimeoutMS) * time.Millisecond
}

// DebounceDelay returns the button debounce window
func (c Config) DebounceDelay() time.Duration {
	return time.Duration(c.Scan.DebounceMS) * time.Millisecond
}

// MessageDuration returns how long status messages stay up
func (c Config) MessageDuration() time.Duration {
	return time.Duration(c.Scan.MessageMS) * time.Millisecond
}

// PollInterval returns the loop pause
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Scan.PollMS) * time.Millisecond
}

// Marshal renders c as YAML
func Marshal(c Config) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteDefaultConfig writes the defaults to path, creating parent
// directories. An existing file is left alone.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := Marshal(Defaults())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
