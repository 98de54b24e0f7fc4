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

package uart

import (
	"path/filepath"
	"slices"
	"strings"

	"go.bug.st/serial/enumerator"
)

// KnownBridges lists USB-serial bridges commonly found on PN532 boards
// and adapters, as VID:PID. Ports behind them are tried first.
func KnownBridges() []string {
	return []string{
		"1A86:7523", // WCH CH340
		"1A86:55D4", // WCH CH9102
		"10C4:EA60", // Silicon Labs CP210x
		"0403:6001", // FTDI FT232R
		"0403:6015", // FTDI FT231X
		"067B:2303", // Prolific PL2303
	}
}

// DetectOptions filters the ports DetectPorts returns
type DetectOptions struct {
	// Lister enumerates ports; enumerator.GetDetailedPortsList when nil.
	Lister func() ([]*enumerator.PortDetails, error)
	// Blocklist holds VID:PID pairs that must not be opened.
	Blocklist []string
	// IgnorePaths holds port paths that must not be opened.
	IgnorePaths []string
	// IncludeNonUSB keeps on-board UARTs such as /dev/ttyAMA0.
	IncludeNonUSB bool
}

// Port describes a candidate serial port
type Port struct {
	Name    string
	VIDPID  string
	Product string
	Serial  string
	IsUSB   bool
}

// DetectPorts lists serial ports a PN532 may be attached to, known bridges
// first and otherwise in enumeration order.
func DetectPorts(opts DetectOptions) ([]Port, error) {
	lister := opts.Lister
	if lister == nil {
		lister = enumerator.GetDetailedPortsList
	}
	details, err := lister()
	if err != nil {
		return nil, err
	}

	bridges := KnownBridges()
	var ports []Port
	for _, d := range details {
		if d == nil || IsPathIgnored(d.Name, opts.IgnorePaths) {
			continue
		}
		if !d.IsUSB && !opts.IncludeNonUSB {
			continue
		}
		port := Port{Name: d.Name, Product: d.Product, Serial: d.SerialNumber, IsUSB: d.IsUSB}
		if d.IsUSB {
			port.VIDPID = ParseVIDPID("VID:" + d.VID + " PID:" + d.PID)
			if IsBlocked(port.VIDPID, opts.Blocklist) {
				continue
			}
		}
		ports = append(ports, port)
	}

	slices.SortStableFunc(ports, func(a, b Port) int {
		ka, kb := IsBlocked(a.VIDPID, bridges), IsBlocked(b.VIDPID, bridges)
		switch {
		case ka && !kb:
			return -1
		case kb && !ka:
			return 1
		}
		return 0
	})
	return ports, nil
}

// IsBlocked checks if a USB device is in the blocklist.
func IsBlocked(vidpid string, blocklist []string) bool {
	vidpid = strings.ToUpper(strings.TrimSpace(vidpid))
	if vidpid == "" {
		return false
	}

	for _, blocked := range blocklist {
		if normalized := ParseVIDPID(blocked); normalized != "" && vidpid == normalized {
			return true
		}
	}
	return false
}

// ParseVIDPID extracts VID:PID from various USB descriptor formats and
// returns it upper case, or "" when none is found.
func ParseVIDPID(descriptor string) string {
	// Handle common formats:
	// "VID:1234 PID:5678"
	// "1234:5678"
	// "vendor=1234 product=5678"

	descriptor = strings.ToUpper(strings.TrimSpace(descriptor))

	vid := valueAfter(descriptor, "VID:", "VENDOR=", "VID=")
	pid := valueAfter(descriptor, "PID:", "PRODUCT=", "PID=")
	if vid != "" && pid != "" {
		return vid + ":" + pid
	}

	if parts := strings.Split(descriptor, ":"); len(parts) == 2 && isHex(parts[0]) && isHex(parts[1]) {
		return descriptor
	}
	return ""
}

// valueAfter returns the hex digits following the first key found.
func valueAfter(s string, keys ...string) string {
	for _, key := range keys {
		if idx := strings.Index(s, key); idx >= 0 {
			return extractHex(s[idx+len(key):])
		}
	}
	return ""
}

// extractHex extracts the first sequence of hex digits from a string.
func extractHex(s string) string {
	var result strings.Builder
	foundHex := false

	for _, r := range s {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F') {
			_, _ = result.WriteRune(r)
			foundHex = true
		} else if foundHex {
			break
		}
	}
	return result.String()
}

// isHex checks if a string contains only hexadecimal characters.
func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// IsPathIgnored reports whether devicePath is in ignorePaths. Paths are
// cleaned and compared case-insensitively.
func IsPathIgnored(devicePath string, ignorePaths []string) bool {
	if devicePath == "" {
		return false
	}
	normalizedDevice := normalizedPath(devicePath)
	for _, ignorePath := range ignorePaths {
		if ignorePath != "" && normalizedPath(ignorePath) == normalizedDevice {
			return true
		}
	}
	return false
}

// normalizedPath normalizes a device path for comparison
func normalizedPath(path string) string {
	return strings.ToLower(filepath.Clean(path))
}
