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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/urfave/cli/v3"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/artifact"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/model"
)

func modelCmd() *cli.Command {
	return &cli.Command{
		Name:                  "model",
		EnableShellCompletion: true,
		Usage:                 "Inspect a model artifact",
		Description: `Load, validate and compile a model artifact and print its metadata:
name, version, type, outputs, source and sha256 digest.

# Examples

  nutrilens model --model model.yaml
  nutrilens model --model oci://ghcr.io/example/food-rater:1.0.0 --format json`,
		Flags: []cli.Flag{
			modelFlag(),
			kubeconfigFlag(),
			plainHTTPFlag(),
			insecureTLSFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			m, err := model.Load(ctx, cmd.String("model"), fetchOptions(cmd)...)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, m.Info)
		},
		Commands: []*cli.Command{
			modelPushCmd(),
		},
	}
}

func modelPushCmd() *cli.Command {
	return &cli.Command{
		Name:                  "push",
		EnableShellCompletion: true,
		Usage:                 "Publish a local model artifact to an OCI registry",
		Description: `Validate a local model document and push it as a single-layer OCI
artifact. The model name and version are recorded as manifest annotations.
Registry credentials are read from the Docker credential store. The model,
registry and output flags are shared with the parent command.

# Examples

  nutrilens model push --model model.yaml --target oci://ghcr.io/example/food-rater:1.0.0
  nutrilens model push --model model.yaml --target oci://localhost:5000/food-rater --plain-http`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "target",
				Required: true,
				Usage:    "Destination reference (oci://registry/repo[:tag])",
			},
			&cli.StringSliceFlag{
				Name:  "annotation",
				Usage: "Additional manifest annotation as key=value (repeatable)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			path := cmd.String("model")
			if !artifact.IsLocal(path) {
				return fmt.Errorf("model push requires a local file, got %q", path)
			}

			// refuse to publish something the service could not load
			m, err := model.Load(ctx, path, fetchOptions(cmd)...)
			if err != nil {
				return err
			}

			annotations, err := parseAnnotations(cmd.StringSlice("annotation"))
			if err != nil {
				return err
			}
			annotations[ociv1.AnnotationTitle] = m.Info.Name
			if m.Info.Version != "" {
				annotations[ociv1.AnnotationVersion] = m.Info.Version
			}

			res, err := artifact.Push(ctx, artifact.PushOptions{
				Path:        path,
				Target:      cmd.String("target"),
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
				Annotations: annotations,
			})
			if err != nil {
				return fmt.Errorf("failed to push model: %w", err)
			}

			slog.Info("model pushed", "reference", res.Reference, "digest", res.Digest)
			return writeOutput(ctx, cmd, res)
		},
	}
}

// parseAnnotations converts key=value pairs into a map.
func parseAnnotations(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs)+2)
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid annotation %q: expected key=value", p)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
