// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/discovery"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/serializer"
)

func printCmd() *cli.Command {
	return &cli.Command{
		Name:  "print",
		Usage: "Collect node features and print them without writing the feature file",
		Description: `Runs the same collection as the default action and prints the selected
record instead of publishing it.

The text format prints the label lines exactly as they would be written.
The json and yaml formats include the run id and the source that produced
the record.

# Examples

  rbln-npu-feature-discovery print
  rbln-npu-feature-discovery print --format json --output features.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagFormat,
				Aliases: []string{"t"},
				Usage:   "output format (text, json, yaml)",
				Value:   string(serializer.FormatText),
			},
			&cli.StringFlag{
				Name:  flagOutput,
				Usage: "output file path (default: stdout)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := configFrom(ctx, cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
			defer cancel()

			res, err := (&discovery.Discoverer{Factory: newFactory(cfg), Version: version}).Collect(ctx)
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String(flagOutput))
			defer func() {
				if closeErr := w.Close(); closeErr != nil {
					slog.Warn("failed to close output", "error", closeErr)
				}
			}()

			// label lines carry no run metadata
			if outFormat == serializer.FormatText {
				return w.Serialize(ctx, res.Record)
			}
			return w.Serialize(ctx, res)
		},
	}
}
