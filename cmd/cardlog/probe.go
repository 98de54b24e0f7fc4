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

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZaparooProject/go-cardlog"
	"github.com/ZaparooProject/go-cardlog/animation"
	"github.com/spf13/cobra"
)

var (
	probeTimeout time.Duration
	probeShow    bool
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Connect to the reader, print its firmware and wait for one card",
	RunE:  runProbe,
}

func init() {
	probeCmd.Flags().DurationVarP(&probeTimeout, "timeout", "t", 30*time.Second, "how long to wait for a card")
	probeCmd.Flags().BoolVar(&probeShow, "show", false, "also show the result on the configured display")
}

func runProbe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	reader, err := openReader(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	out := cmd.OutOrStdout()
	firmware := reader.FirmwareVersion().String()
	_, _ = fmt.Fprintf(out, "Reader: %s\n", firmware)
	_, _ = fmt.Fprintf(out, "Waiting for a card (timeout: %s)...\n", probeTimeout)

	waitCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	card, err := waitForCard(waitCtx, reader, cfg.PollInterval())
	if errors.Is(err, context.DeadlineExceeded) {
		_, _ = fmt.Fprintln(out, "No card detected")
		return nil
	}
	if err != nil {
		return err
	}

	uid, err := cardlog.NewUID(card.UID)
	if err != nil {
		return err
	}
	hint := ""
	if card.SAK != byte(cfg.Scan.PlainSAK) {
		hint = " Encrypted?"
	}
	_, _ = fmt.Fprintf(out, "UID: %s\nSAK: %02X ATQA: %04X%s\n", uid, card.SAK, card.ATQA, hint)

	_ = reader.Halt(ctx)
	_ = reader.StopCrypto(ctx)

	if probeShow {
		return showProbe(cmd, firmware, uid.String())
	}
	return nil
}

// waitForCard polls until a card answers or ctx is done.
func waitForCard(ctx context.Context, reader cardlog.CardReader, interval time.Duration) (cardlog.Card, error) {
	for {
		found, err := reader.HasNewCard(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return cardlog.Card{}, ctx.Err()
			}
			log.WithError(err).Debug("poll failed")
		}
		if found {
			return reader.ReadSerial(ctx)
		}

		select {
		case <-ctx.Done():
			return cardlog.Card{}, ctx.Err()
		case <-time.After(interval):
		}
	}
}

func showProbe(cmd *cobra.Command, lines ...string) error {
	fb, closeDisplay, err := openDisplay(cfg.Display, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = closeDisplay.Close() }()

	if err := fb.Init(); err != nil {
		return fmt.Errorf("%w: %w", cardlog.ErrDisplayInit, err)
	}
	return cardlog.Play(fb, cardlog.SystemClock(), animation.NewBanner(cfg.MessageDuration(), lines...))
}
