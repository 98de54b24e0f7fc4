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
	"time"
)

// Option is a functional option for configuring a Reader
type Option func(*Reader) error

// WithRetryConfig sets the retry configuration for the reader
func WithRetryConfig(config *RetryConfig) Option {
	return func(r *Reader) error {
		if config == nil {
			return ErrInvalidParameter
		}
		if err := config.Validate(); err != nil {
			return err
		}
		r.config.RetryConfig = config
		return nil
	}
}

// WithTimeout sets the transport timeout for reader operations
func WithTimeout(timeout time.Duration) Option {
	return func(r *Reader) error {
		if timeout <= 0 {
			return ErrInvalidParameter
		}
		r.config.Timeout = timeout
		return nil
	}
}

// WithMaxRetries sets the maximum number of attempts per command
func WithMaxRetries(maxAttempts int) Option {
	return func(r *Reader) error {
		r.config.RetryConfig.MaxAttempts = maxAttempts
		return nil
	}
}

// WithRetryBackoff sets the initial backoff duration for retries
func WithRetryBackoff(initialBackoff time.Duration) Option {
	return func(r *Reader) error {
		if initialBackoff < 0 {
			return ErrInvalidParameter
		}
		r.config.RetryConfig.InitialBackoff = initialBackoff
		return nil
	}
}

// WithPassiveRetries sets how many activation retries a card poll makes
// before it reports an empty field
func WithPassiveRetries(retries byte) Option {
	return func(r *Reader) error {
		if retries == 0xFF {
			// Infinite retries would block the controller loop.
			return ErrInvalidParameter
		}
		r.config.PassiveRetries = retries
		return nil
	}
}
