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
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var (
	debugEnabled atomic.Bool
	loggerMu     sync.RWMutex
	logger       logrus.FieldLogger = logrus.StandardLogger().WithField("component", "pn532")
)

// SetDebugEnabled turns protocol tracing on or off. Traces are logged at
// debug level, so the logger's level must allow them too.
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

// SetLogger replaces the logger used for protocol traces.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		return
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func currentLogger() logrus.FieldLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Debugf logs a protocol trace. Transports outside this package use it.
func Debugf(format string, args ...any) {
	debugf(format, args...)
}

func debugf(format string, args ...any) {
	if !debugEnabled.Load() {
		return
	}
	currentLogger().Debugf(format, args...)
}

func debugln(args ...any) {
	if !debugEnabled.Load() {
		return
	}
	currentLogger().Debugln(args...)
}
