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
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/artifact"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/features"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/model"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/prediction"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/serializer"
)

// stdinName selects YAML decoding for piped input; YAML also accepts JSON.
const stdinName = "stdin.yaml"

func predictCmd() *cli.Command {
	return &cli.Command{
		Name:                  "predict",
		EnableShellCompletion: true,
		Usage:                 "Run a model offline against a feature document",
		Description: `Load a model artifact, decode a JSON or YAML document holding the 28
features and print the predicted rating and disease label, exactly as the
service would answer POST /predict.

# Examples

Predict from a file:
  nutrilens predict --model model.yaml --input features.json

Predict from stdin using a model stored in a ConfigMap:
  cat features.json | nutrilens predict --model cm://ml/food-rater --input -`,
		Flags: []cli.Flag{
			modelFlag(),
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Value:   "-",
				Usage: `Path/URI to the feature document, or "-" for stdin.
	Supports: file paths, HTTP/HTTPS URLs or ConfigMap URIs (cm://namespace/name).`,
			},
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

			opts := fetchOptions(cmd)

			m, err := model.Load(ctx, cmd.String("model"), opts...)
			if err != nil {
				return err
			}

			obj, err := readFeatures(ctx, cmd, opts)
			if err != nil {
				return err
			}

			v, err := features.Decode(obj)
			if err != nil {
				return err
			}

			res, err := prediction.FromModel(m).Predict(ctx, v)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, res.Response())
		},
	}
}

// readFeatures decodes the --input document into a feature object.
func readFeatures(ctx context.Context, cmd *cli.Command, opts []artifact.Option) (map[string]any, error) {
	input := cmd.String("input")

	var (
		name string
		data []byte
	)
	if input == "" || input == "-" {
		r := cmd.Root().Reader
		if r == nil {
			r = os.Stdin
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		name, data = stdinName, b
	} else {
		a, err := artifact.NewFetcher(opts...).Fetch(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to read input %q: %w", input, err)
		}
		name, data = a.Name, a.Data
	}

	obj, err := serializer.FromBytes[map[string]any](name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode input %q: %w", input, err)
	}
	if obj == nil || *obj == nil {
		return nil, fmt.Errorf("input %q is not an object", input)
	}
	return *obj, nil
}
