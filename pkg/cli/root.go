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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/collector"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/config"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/discovery"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/logging"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/metrics"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/serializer"
)

const (
	name           = "rbln-npu-feature-discovery"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

const (
	exitError    = 1
	exitCanceled = 2
)

// Execute runs the command tree against os.Args and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewCommand().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return exitCanceled
	}
	return exitError
}

// NewCommand returns the root command. Without a subcommand it runs a single
// discovery pass and publishes the NFD feature file.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Publish RBLN NPU node features for Node Feature Discovery",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Discovers Rebellions NPUs on the node and writes them as labels to a
Node Feature Discovery feature file.

Devices are queried from rbln-daemon first. When the daemon is unreachable or
does not implement the device listing, devices are enumerated from sysfs instead.

# Examples

Run once with defaults:
  rbln-npu-feature-discovery

Read host sysfs mounted into a container:
  rbln-npu-feature-discovery --sysfs-root /host/sys

Show what would be published:
  rbln-npu-feature-discovery print --format yaml`,
		Flags:  rootFlags(),
		Before: setup,
		Action: runDiscovery,
		Commands: []*cli.Command{
			printCmd(),
		},
	}
}

// setup resolves configuration and installs the logger before any action runs.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return ctx, err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"rblnDaemonURL", cfg.DaemonURL,
		"outputFile", cfg.OutputFile,
		"sysfsRoot", cfg.SysfsRoot)

	return withConfig(ctx, cfg), nil
}

func runDiscovery(ctx context.Context, cmd *cli.Command) error {
	cfg, err := configFrom(ctx, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
	defer cancel()

	w := serializer.NewLabelFileWriter(cfg.OutputFile)
	w.NoTimestamp = cfg.NoTimestamp

	d := &discovery.Discoverer{
		Factory:    newFactory(cfg),
		Serializer: w,
		Version:    version,
	}
	if cfg.MetricsFile != "" {
		d.Metrics = metrics.NewRecorder()
		d.MetricsFile = cfg.MetricsFile
	}

	_, err = d.Run(ctx)
	return err
}

func newFactory(cfg *config.Config) collector.Factory {
	return collector.NewDefaultFactory(
		collector.WithDaemonAddress(cfg.DaemonURL),
		collector.WithDaemonDialTimeout(cfg.DaemonDialTimeout),
		collector.WithDaemonCallTimeout(cfg.DaemonTimeout),
		collector.WithSysfsRoot(cfg.SysfsRoot),
	)
}
