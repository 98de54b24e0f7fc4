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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZaparooProject/go-cardlog"
)

// ReaderConfig contains configuration options for the Reader
type ReaderConfig struct {
	// RetryConfig configures retry behavior for transport operations
	RetryConfig *RetryConfig
	// Timeout is the transport timeout for a single command
	Timeout time.Duration
	// PassiveRetries is the activation retry count of a card poll
	PassiveRetries byte
}

// DefaultReaderConfig returns default reader configuration
func DefaultReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		RetryConfig:    DefaultRetryConfig(),
		Timeout:        1 * time.Second,
		PassiveRetries: 0x02,
	}
}

// Reader is a PN532 acting as a cardlog.CardReader. A successful
// HasNewCard caches the target; ReadSerial reports it and StopCrypto
// forgets it.
//
// Thread Safety: Reader is NOT thread-safe. All methods must be called from
// a single goroutine or protected with external synchronization.
type Reader struct {
	transport Transport
	config    *ReaderConfig
	firmware  *FirmwareVersion
	target    *Target
}

// New creates a reader on transport. Commands are retried according to
// the reader's RetryConfig.
func New(transport Transport, opts ...Option) (*Reader, error) {
	if transport == nil {
		return nil, errors.New("transport cannot be nil")
	}

	reader := &Reader{config: DefaultReaderConfig()}
	for _, opt := range opts {
		if err := opt(reader); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	reader.transport = NewTransportWithRetry(transport, reader.config.RetryConfig)
	if err := reader.transport.SetTimeout(reader.config.Timeout); err != nil {
		return nil, fmt.Errorf("failed to set timeout: %w", err)
	}
	return reader, nil
}

// Transport returns the underlying transport
func (r *Reader) Transport() Transport {
	return r.transport
}

// Config returns the reader configuration
func (r *Reader) Config() ReaderConfig {
	return *r.config
}

// Init checks the chip answers, disables the SAM and bounds card polls so
// HasNewCard returns promptly on an empty field.
func (r *Reader) Init(ctx context.Context) error {
	fw, err := r.GetFirmwareVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize reader: %w", err)
	}
	if !fw.SupportsISO14443A() {
		return fmt.Errorf("%w: %s does not support ISO14443A", ErrDeviceNotFound, fw)
	}
	r.firmware = fw
	debugf("found %s (support %02X)", fw, fw.Support)

	if err := r.SAMConfiguration(ctx); err != nil {
		return fmt.Errorf("failed to initialize reader: %w", err)
	}
	if err := r.SetPassiveRetries(ctx, r.config.PassiveRetries); err != nil {
		return fmt.Errorf("failed to initialize reader: %w", err)
	}
	return nil
}

// FirmwareVersion returns the version found by Init, or nil before Init
func (r *Reader) FirmwareVersion() *FirmwareVersion {
	return r.firmware
}

// HasNewCard implements cardlog.CardReader
func (r *Reader) HasNewCard(ctx context.Context) (bool, error) {
	target, err := r.InListPassiveTarget(ctx)
	if err != nil {
		r.target = nil
		return false, err
	}
	r.target = target
	if target == nil {
		return false, nil
	}
	debugf("target %d: UID %s SAK %02X ATQA %04X", target.Number, target.UIDString(), target.SAK, target.ATQA)
	return true, nil
}

// ReadSerial implements cardlog.CardReader
func (r *Reader) ReadSerial(_ context.Context) (cardlog.Card, error) {
	if r.target == nil {
		return cardlog.Card{}, cardlog.ErrNoCard
	}
	uid := make([]byte, len(r.target.UID))
	copy(uid, r.target.UID)
	return cardlog.Card{UID: uid, ATQA: r.target.ATQA, SAK: r.target.SAK}, nil
}

// Halt implements cardlog.CardReader by deselecting the cached target
func (r *Reader) Halt(ctx context.Context) error {
	if r.target == nil {
		return nil
	}
	return r.InDeselect(ctx, r.target.Number)
}

// StopCrypto implements cardlog.CardReader by releasing all targets.
// The cached target is forgotten even if the release fails.
func (r *Reader) StopCrypto(ctx context.Context) error {
	if r.target == nil {
		return nil
	}
	r.target = nil
	if err := r.InRelease(ctx, allTargets); err != nil {
		debugln("release failed:", err)
		return err
	}
	return nil
}

// Close closes the reader connection
func (r *Reader) Close() error {
	if r.transport != nil {
		if err := r.transport.Close(); err != nil {
			return fmt.Errorf("failed to close transport: %w", err)
		}
	}
	return nil
}

var _ cardlog.CardReader = (*Reader)(nil)
