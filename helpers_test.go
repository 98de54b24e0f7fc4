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
	"context"
	"testing"
	"time"

	"github.com/ZaparooProject/go-cardlog"
	testutil "github.com/ZaparooProject/go-cardlog/internal/testing"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const settle = cardlog.DefaultDebounceDelay + 50*time.Millisecond

// rig is a controller wired to virtual hardware
type rig struct {
	reader  *testutil.VirtualReader
	display *testutil.RecordingDisplay
	clock   *testutil.ManualClock
	mode    *testutil.Button
	read    *testutil.Button
	logs    *logtest.Hook
	ctrl    *cardlog.Controller
}

func newRig(t *testing.T, opts ...cardlog.Option) *rig {
	t.Helper()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r := &rig{
		reader:  testutil.NewVirtualReader(),
		display: testutil.NewRecordingDisplay(128, 32),
		clock:   testutil.NewManualClock(),
		mode:    testutil.NewButton(false),
		read:    testutil.NewButton(false),
		logs:    hook,
	}

	base := []cardlog.Option{cardlog.WithClock(r.clock), cardlog.WithLogger(logger)}
	ctrl, err := cardlog.NewController(r.reader, r.display, r.mode, r.read, append(base, opts...)...)
	require.NoError(t, err)
	r.ctrl = ctrl
	return r
}

func (r *rig) session() *cardlog.SessionState {
	return r.ctrl.Session()
}

func (r *rig) step(t *testing.T) {
	t.Helper()
	require.NoError(t, r.ctrl.Step(context.Background()))
}

// press drives a full debounced press and release of b
func (r *rig) press(t *testing.T, b *testutil.Button) {
	t.Helper()
	b.Set(true)
	r.step(t)
	r.clock.Advance(settle)
	r.step(t)
	b.Set(false)
	r.step(t)
	r.clock.Advance(settle)
	r.step(t)
}

func (r *rig) attempt() cardlog.ScanResult {
	return r.ctrl.Scanner().Attempt(context.Background(), r.session())
}

func findEntry(r *rig, message string) *logrus.Entry {
	for _, e := range r.logs.AllEntries() {
		if e.Message == message {
			return e
		}
	}
	return nil
}

func card(uid ...byte) *testutil.VirtualCard {
	return testutil.NewVirtualMIFARE1K(uid)
}

func uidOf(c *testutil.VirtualCard) cardlog.UID {
	return cardlog.MustUID(c.UID...)
}
