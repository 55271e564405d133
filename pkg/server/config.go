// Copyright (c) 2026, The nutrilens Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/defaults"
)

const (
	// DefaultPort is the listening port when PORT is not set.
	DefaultPort = 8000
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Additional Handlers to be added to the server
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Request limits
	MaxRequestBytes int64

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a new Config with defaults overridden by the
// environment. Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return parseConfig()
}

// parseConfig returns defaults overridden by PORT, ADDRESS and
// SHUTDOWN_TIMEOUT_SECONDS. Invalid values are logged and ignored.
func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Address:           "",
		Port:              DefaultPort,
		MaxRequestBytes:   defaults.ServerMaxRequestBytes,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if portStr := strings.TrimSpace(os.Getenv("PORT")); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err == nil && port > 0 && port <= 65535 {
			cfg.Port = port
		} else {
			slog.Warn("ignoring invalid PORT", "value", portStr)
		}
	}

	if addr := strings.TrimSpace(os.Getenv("ADDRESS")); addr != "" {
		cfg.Address = addr
	}

	// Allow customization of shutdown timeout to match K8s eviction grace period
	if shutdownStr := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT_SECONDS")); shutdownStr != "" {
		seconds, err := strconv.Atoi(shutdownStr)
		if err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		} else {
			slog.Warn("ignoring invalid SHUTDOWN_TIMEOUT_SECONDS", "value", shutdownStr)
		}
	}

	return cfg
}
