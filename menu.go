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
	"github.com/sirupsen/logrus"
)

// MenuController owns the two-entry menu and the stored-UID viewer.
type MenuController struct {
	screen *screen
	log    logrus.FieldLogger
}

// Cycle advances the menu to the next mode and returns it.
func (m *MenuController) Cycle(session *SessionState) Mode {
	session.Mode = session.Mode.Next()
	m.log.WithField("mode", session.Mode).Debug("menu mode changed")
	return session.Mode
}

// Render draws the menu with a cursor marker before the active option.
func (m *MenuController) Render(session *SessionState) error {
	return m.screen.show(menuLine(ModeScan, session.Mode), menuLine(ModeView, session.Mode))
}

func menuLine(option, active Mode) string {
	if option == active {
		return ">" + option.String()
	}
	return " " + option.String()
}

// ShowNext renders the UID under the cursor and advances the cursor.
// With nothing stored it shows a message and returns ErrEmptyRegistry.
func (m *MenuController) ShowNext(session *SessionState) (UID, error) {
	registry := session.Registry
	if registry.IsEmpty() {
		m.screen.message("No Cards Stored")
		return UID{}, ErrEmptyRegistry
	}

	if session.Cursor < 0 || session.Cursor >= registry.Len() {
		session.Cursor = 0
	}
	uid, err := registry.EntryAt(session.Cursor)
	if err != nil {
		return UID{}, err
	}
	_ = m.screen.show("UID:", uid.String())

	next, err := registry.NextCursor(session.Cursor)
	if err != nil {
		return UID{}, err
	}
	m.log.WithFields(logrus.Fields{"uid": uid, "index": session.Cursor}).Debug("showing stored uid")
	session.Cursor = next
	return uid, nil
}
