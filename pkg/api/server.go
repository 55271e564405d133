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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/logging"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/model"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/prediction"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/server"
)

const (
	name           = "nutrilensd"
	versionDefault = "dev"

	// EnvModelPath names the environment variable holding the model location.
	EnvModelPath = "MODEL_PATH"

	// DefaultModelPath is used when MODEL_PATH is not set.
	DefaultModelPath = "model.yaml"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/AakashTiwari-nitp/nutrilens/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads the model and runs the API server until shutdown.
// Returns an error if the model cannot be loaded or the server fails.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s, err := newServer(ctx, modelLocation())
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// modelLocation returns MODEL_PATH or the default.
func modelLocation() string {
	if loc := strings.TrimSpace(os.Getenv(EnvModelPath)); loc != "" {
		return loc
	}
	return DefaultModelPath
}

// newServer loads the model once and wires it into the server routes.
func newServer(ctx context.Context, location string) (*server.Server, error) {
	m, err := model.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	svc := prediction.FromModel(m)

	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes(svc)),
	), nil
}

func routes(svc *prediction.Service) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/predict": svc.HandlePredict,
		"/model":   svc.HandleModel,
	}
}
