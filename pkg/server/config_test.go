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
	"testing"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/defaults"
)

func TestParseConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("ADDRESS", "")
		t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")

		cfg := parseConfig()

		if cfg.Address != "" {
			t.Errorf("expected empty address, got %s", cfg.Address)
		}

		if cfg.Port != 8000 {
			t.Errorf("expected port 8000, got %d", cfg.Port)
		}

		if cfg.MaxRequestBytes != defaults.ServerMaxRequestBytes {
			t.Errorf("expected max request bytes %d, got %d", defaults.ServerMaxRequestBytes, cfg.MaxRequestBytes)
		}

		if cfg.ReadTimeout != defaults.ServerReadTimeout {
			t.Errorf("expected read timeout %v, got %v", defaults.ServerReadTimeout, cfg.ReadTimeout)
		}

		if cfg.WriteTimeout != defaults.ServerWriteTimeout {
			t.Errorf("expected write timeout %v, got %v", defaults.ServerWriteTimeout, cfg.WriteTimeout)
		}

		if cfg.IdleTimeout != defaults.ServerIdleTimeout {
			t.Errorf("expected idle timeout %v, got %v", defaults.ServerIdleTimeout, cfg.IdleTimeout)
		}

		if cfg.ShutdownTimeout != defaults.ServerShutdownTimeout {
			t.Errorf("expected shutdown timeout %v, got %v", defaults.ServerShutdownTimeout, cfg.ShutdownTimeout)
		}
	})

	t.Run("custom port from environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")

		cfg := parseConfig()

		if cfg.Port != 9090 {
			t.Errorf("expected port 9090 from env, got %d", cfg.Port)
		}
	})

	t.Run("invalid port from environment uses default", func(t *testing.T) {
		for _, v := range []string{"invalid", "0", "70000", "-1"} {
			t.Setenv("PORT", v)

			cfg := parseConfig()

			if cfg.Port != DefaultPort {
				t.Errorf("PORT=%q: expected default port %d, got %d", v, DefaultPort, cfg.Port)
			}
		}
	})

	t.Run("address from environment", func(t *testing.T) {
		t.Setenv("ADDRESS", "127.0.0.1")

		cfg := parseConfig()

		if cfg.Address != "127.0.0.1" {
			t.Errorf("expected address 127.0.0.1, got %s", cfg.Address)
		}
	})

	t.Run("shutdown timeout from environment", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "45")

		cfg := parseConfig()

		if cfg.ShutdownTimeout.Seconds() != 45 {
			t.Errorf("expected shutdown timeout 45s, got %v", cfg.ShutdownTimeout)
		}
	})
}
