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
	"io"
	"os"

	"github.com/ZaparooProject/go-cardlog"
	"github.com/ZaparooProject/go-cardlog/display"
	"github.com/ZaparooProject/go-cardlog/input"
	"github.com/ZaparooProject/go-cardlog/internal/config"
	"github.com/ZaparooProject/go-cardlog/pn532"
	"github.com/ZaparooProject/go-cardlog/pn532/i2c"
	"github.com/ZaparooProject/go-cardlog/pn532/uart"
	"github.com/sirupsen/logrus"
)

var errNoReader = errors.New("no PN532 reader found")

// openReader connects to the configured reader and initializes it. With
// the UART transport and no port configured every candidate port is tried.
func openReader(ctx context.Context, c config.Config) (*pn532.Reader, error) {
	rc := c.Reader
	opts := []pn532.Option{pn532.WithMaxRetries(rc.Retries)}
	if c.ReaderTimeout() > 0 {
		opts = append(opts, pn532.WithTimeout(c.ReaderTimeout()))
	}

	if rc.Transport == config.TransportI2C {
		transport, err := i2c.New(rc.Bus)
		if err != nil {
			return nil, fmt.Errorf("failed to open I2C transport: %w", err)
		}
		return initReader(ctx, transport, opts)
	}

	if rc.Port != "" {
		transport, err := uart.New(rc.Port)
		if err != nil {
			return nil, fmt.Errorf("failed to open UART transport: %w", err)
		}
		return initReader(ctx, transport, opts)
	}

	ports, err := uart.DetectPorts(uart.DetectOptions{
		Blocklist:   rc.Blocklist,
		IgnorePaths: rc.IgnorePaths,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	for _, port := range ports {
		entry := log.WithFields(logrus.Fields{"port": port.Name, "usb": port.VIDPID})
		transport, err := uart.New(port.Name)
		if err != nil {
			entry.WithError(err).Debug("cannot open port")
			continue
		}
		reader, err := initReader(ctx, transport, opts)
		if err != nil {
			entry.WithError(err).Debug("no PN532 on port")
			continue
		}
		entry.Info("reader detected")
		return reader, nil
	}
	return nil, errNoReader
}

func initReader(ctx context.Context, transport pn532.Transport, opts []pn532.Option) (*pn532.Reader, error) {
	reader, err := pn532.New(transport, opts...)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}
	if err := reader.Init(ctx); err != nil {
		_ = reader.Close()
		return nil, err
	}
	log.WithField("firmware", reader.FirmwareVersion().String()).Info("PN532 initialized")
	return reader, nil
}

// openDisplay opens the configured sink behind a framebuffer. Failures
// wrap cardlog.ErrDisplayInit.
func openDisplay(dc config.DisplayConfig, out io.Writer) (*display.Framebuffer, io.Closer, error) {
	var (
		sink   display.Sink
		closer io.Closer = nopCloser{}
	)
	switch dc.Sink {
	case config.SinkConsole:
		sink = display.NewConsole(out, display.WithANSI(out == os.Stdout))
	default:
		oled, err := display.OpenSSD1306(dc.Bus, dc.Width, dc.Height)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", cardlog.ErrDisplayInit, err)
		}
		sink, closer = oled, oled
	}

	fb, err := display.NewFramebuffer(sink, dc.Width, dc.Height)
	if err != nil {
		_ = closer.Close()
		return nil, nil, fmt.Errorf("%w: %w", cardlog.ErrDisplayInit, err)
	}
	return fb, closer, nil
}

// openButtons opens the mode and read buttons.
func openButtons(bc config.ButtonsConfig) (mode, read *input.GPIOButton, err error) {
	pull, err := input.ParsePull(bc.Pull)
	if err != nil {
		return nil, nil, err
	}
	mode, err = input.OpenButton(bc.Mode, pull)
	if err != nil {
		return nil, nil, fmt.Errorf("mode button: %w", err)
	}
	read, err = input.OpenButton(bc.Read, pull)
	if err != nil {
		return nil, nil, fmt.Errorf("read button: %w", err)
	}
	return mode, read, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
