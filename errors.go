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

import "errors"

// Session errors
var (
	// ErrNoCard indicates the reader had nothing to report. It is expected
	// and silently retried on the next iteration.
	ErrNoCard = errors.New("no card present")

	// ErrRegistryFull is returned by Registry.Insert once capacity is reached.
	ErrRegistryFull = errors.New("registry full")

	// ErrEmptyRegistry is returned when a cursor is requested with nothing stored.
	ErrEmptyRegistry = errors.New("registry empty")

	ErrOutOfRange      = errors.New("index out of range")
	ErrInvalidUID      = errors.New("invalid uid")
	ErrInvalidCapacity = errors.New("invalid registry capacity")

	// ErrDisplayInit is the only fatal condition: without a display no
	// meaningful operation or error reporting is possible.
	ErrDisplayInit = errors.New("display initialization failed")
)
