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
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Outcome is the terminal state of one scan attempt.
type Outcome int

const (
	// OutcomeNoCard means the reader reported nothing, or the read failed.
	OutcomeNoCard Outcome = iota
	// OutcomeDeduped means the card equals the last seen one and was ignored.
	OutcomeDeduped
	// OutcomeStored means the card was new and appended to the registry.
	OutcomeStored
	// OutcomeRejected means the card was new but the registry is full.
	OutcomeRejected
)

// String returns a human-readable outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeNoCard:
		return "no-card"
	case OutcomeDeduped:
		return "deduped"
	case OutcomeStored:
		return "stored"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ScanResult describes what a scan attempt did.
type ScanResult struct {
	UID      UID
	Outcome  Outcome
	Index    int // registry index for OutcomeStored, otherwise -1
	TagCount int
	// Protected is a weak hint derived from the SAK byte. It depends on
	// the card family and must never be used as a security decision.
	Protected bool
}

// ScanController runs one scan attempt: probe the reader, normalize the
// UID, consult the session and render the result.
type ScanController struct {
	reader      CardReader
	screen      *screen
	feedback    Animation
	log         logrus.FieldLogger
	plainSAK    byte
	interactive bool
}

// Attempt performs a single scan. It always releases a card that answered,
// whatever the outcome, so the reader can pick up the next one.
func (s *ScanController) Attempt(ctx context.Context, session *SessionState) ScanResult {
	result := ScanResult{Outcome: OutcomeNoCard, Index: -1, TagCount: session.TagCount}

	if s.interactive {
		_ = s.screen.show("Scanning...")
	}

	present, err := s.reader.HasNewCard(ctx)
	if err != nil && !errors.Is(err, ErrNoCard) {
		s.log.WithError(err).Debug("card probe failed")
	}
	if err != nil || !present {
		s.noCard()
		return result
	}
	defer s.release(ctx)

	card, err := s.reader.ReadSerial(ctx)
	if err != nil {
		s.log.WithError(err).Debug("reading card serial failed")
		s.noCard()
		return result
	}

	uid, err := NewUID(card.UID)
	if err != nil {
		s.log.WithError(err).Warn("reader returned an unusable uid")
		s.noCard()
		return result
	}
	result.UID = uid
	result.Protected = card.SAK != s.plainSAK

	if uid == session.LastSeen {
		result.Outcome = OutcomeDeduped
		return result
	}

	session.LastSeen = uid
	session.TagCount++
	result.TagCount = session.TagCount

	index, err := session.Registry.Insert(uid)
	if err != nil {
		result.Outcome = OutcomeRejected
		s.log.WithFields(logrus.Fields{"uid": uid, "count": result.TagCount}).Info("registry full, card not stored")
		s.screen.message("Memory Full")
		return result
	}

	result.Outcome = OutcomeStored
	result.Index = index
	s.log.WithFields(logrus.Fields{
		"uid":       uid,
		"index":     index,
		"count":     result.TagCount,
		"sak":       fmt.Sprintf("%02X", card.SAK),
		"protected": result.Protected,
	}).Info("card stored")

	s.screen.play(s.feedback)
	status := fmt.Sprintf("Tags: %d", result.TagCount)
	if result.Protected {
		status += " Encrypted?"
	}
	s.screen.message("Card Stored:", uid.String(), status)
	return result
}

func (s *ScanController) noCard() {
	if s.interactive {
		s.screen.message("No Card Detected")
	}
}

func (s *ScanController) release(ctx context.Context) {
	if err := s.reader.Halt(ctx); err != nil {
		s.log.WithError(err).Debug("halting card failed")
	}
	if err := s.reader.StopCrypto(ctx); err != nil {
		s.log.WithError(err).Debug("stopping card crypto failed")
	}
}
