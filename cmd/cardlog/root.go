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
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/go-cardlog/internal/config"
	"github.com/ZaparooProject/go-cardlog/pn532"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
	v       = viper.New()
	log     = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:     "cardlog",
	Short:   "Log proximity card UIDs from a PN532 to a small display",
	Version: version,
	Long: `cardlog polls a PN532 reader, stores the UIDs of the last few cards
presented and shows them on an SSD1306 OLED or the terminal. The read button
scans or pages through stored UIDs; the mode button switches between the two.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runReader,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./cardlog.yaml or ~/.config/cardlog/cardlog.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging and PN532 traces")
	rootCmd.PersistentFlags().String("transport", "", "reader transport: uart or i2c")
	rootCmd.PersistentFlags().StringP("port", "p", "", "serial port of the reader (empty: detect)")
	rootCmd.PersistentFlags().String("sink", "", "display sink: ssd1306 or console")
	rootCmd.Flags().String("variant", "", "scan variant: menu or continuous")

	_ = v.BindPFlag("reader.transport", rootCmd.PersistentFlags().Lookup("transport"))
	_ = v.BindPFlag("reader.port", rootCmd.PersistentFlags().Lookup("port"))
	_ = v.BindPFlag("display.sink", rootCmd.PersistentFlags().Lookup("sink"))
	_ = v.BindPFlag("scan.variant", rootCmd.Flags().Lookup("variant"))

	rootCmd.AddCommand(probeCmd, configCmd)
}

// loadConfig reads the configuration and sets up logging before any
// subcommand runs.
func loadConfig(cmd *cobra.Command, _ []string) error {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	pn532.SetLogger(log.WithField("component", "pn532"))
	pn532.SetDebugEnabled(debug)

	log.WithField("config", v.ConfigFileUsed()).Debug("configuration loaded")
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Execute runs the root command and logs a failure.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("cardlog failed")
		return err
	}
	return nil
}
