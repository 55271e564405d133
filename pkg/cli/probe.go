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

	"github.com/urfave/cli/v3"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/probe"
)

func probeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "probe",
		EnableShellCompletion: true,
		Usage:                 "Send the example request to a running model service",
		Description: `Post the fixed example payload to the predict endpoint and print the
decoded response. Intended for manual smoke testing only.

With --repeat the identical payload is sent several times, paced by --qps,
and the full report is printed, including whether every response matched.

# Examples

Probe a local service:
  nutrilens probe

Check determinism against a remote service:
  nutrilens probe --url http://nutrilens.example.com/predict --repeat 20 --qps 5 --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Value:   probe.DefaultURL,
				Sources: cli.EnvVars("NUTRILENS_URL"),
				Usage:   "Predict endpoint URL",
			},
			&cli.IntFlag{
				Name:  "repeat",
				Value: 1,
				Usage: "Number of identical requests to send",
			},
			&cli.FloatFlag{
				Name:  "qps",
				Value: 10,
				Usage: "Maximum requests per second when repeating (0 for unpaced)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			repeat := cmd.Int("repeat")
			if repeat < 1 {
				return fmt.Errorf("invalid --repeat %d: must be at least 1", repeat)
			}

			report, err := probe.Run(ctx, probe.Options{
				URL:    cmd.String("url"),
				Repeat: repeat,
				QPS:    cmd.Float("qps"),
			})
			if err != nil {
				return fmt.Errorf("probe failed: %w", err)
			}

			slog.Info("probe completed",
				"url", report.URL,
				"status", report.Status,
				"requests", report.Requests,
				"identical", report.Identical,
				"duration", report.Duration.String())

			if repeat == 1 {
				return writeOutput(ctx, cmd, report.Response)
			}
			return writeOutput(ctx, cmd, report)
		},
	}
}
