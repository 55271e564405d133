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

	"github.com/urfave/cli/v3"
	"k8s.io/client-go/kubernetes"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/artifact"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/serializer"
)

const defaultModelPath = "model.yaml"

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func modelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "model",
		Aliases: []string{"m"},
		Value:   defaultModelPath,
		Sources: cli.EnvVars("MODEL_PATH"),
		Usage: `Path/URI to the model artifact.
	Supports: file paths, HTTP/HTTPS URLs, ConfigMap URIs (cm://namespace/name)
	or OCI references (oci://registry/repo:tag).`,
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig file used for cm:// sources (default: KUBECONFIG, ~/.kube/config or in-cluster)",
	}
}

func plainHTTPFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "plain-http",
		Usage: "Use HTTP instead of HTTPS for OCI registries",
	}
}

func insecureTLSFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "insecure-tls",
		Usage: "Skip TLS certificate verification for OCI registries",
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %s",
			cmd.String("format"), strings.Join(serializer.SupportedFormats(), ", "))
	}
	return format, nil
}

// fetchOptions builds artifact fetch options from the source flags.
func fetchOptions(cmd *cli.Command) []artifact.Option {
	opts := []artifact.Option{
		artifact.WithPlainHTTP(cmd.Bool("plain-http")),
		artifact.WithInsecureTLS(cmd.Bool("insecure-tls")),
	}
	if kubeconfig := cmd.String("kubeconfig"); kubeconfig != "" {
		opts = append(opts, artifact.WithKubeClient(func() (kubernetes.Interface, error) {
			client, _, err := artifact.BuildKubeClient(kubeconfig)
			if err != nil {
				return nil, err
			}
			return client, nil
		}))
	}
	return opts
}

// writeOutput serializes v using the --format and --output flags.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	if err := ser.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}
	return nil
}
