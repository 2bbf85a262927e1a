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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/config"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/serializer"
)

const envPrefix = "RBLN_NPU_FEATURE_DISCOVERY_"

const (
	flagConfig            = "config"
	flagLogLevel          = "log-level"
	flagDaemonURL         = "rbln-daemon-url"
	flagOutputFile        = "output-file"
	flagNoTimestamp       = "no-timestamp"
	flagSysfsRoot         = "sysfs-root"
	flagMetricsFile       = "metrics-file"
	flagDaemonDialTimeout = "daemon-dial-timeout"
	flagDaemonTimeout     = "daemon-timeout"
	flagFormat            = "format"
	flagOutput            = "output"
)

func envVar(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "YAML config file; flags and environment take precedence",
			Sources: cli.EnvVars(envVar(flagConfig)),
		},
		&cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "log level (debug, info, warn, error); defaults to LOG_LEVEL or info",
		},
		&cli.StringFlag{
			Name:    flagDaemonURL,
			Usage:   "rbln-daemon gRPC endpoint (host:port, http:// or https:// prefix accepted)",
			Sources: cli.EnvVars(envVar(flagDaemonURL)),
			Value:   defaults.DaemonAddress,
		},
		&cli.StringFlag{
			Name:    flagOutputFile,
			Aliases: []string{"o"},
			Usage:   "NFD feature file to write",
			Sources: cli.EnvVars(envVar(flagOutputFile)),
			Value:   defaults.OutputFile,
		},
		&cli.BoolFlag{
			Name:    flagNoTimestamp,
			Usage:   "do not write the expiry-time annotation",
			Sources: cli.EnvVars(envVar(flagNoTimestamp)),
		},
		&cli.StringFlag{
			Name:    flagSysfsRoot,
			Usage:   "sysfs mount point used for the fallback scan",
			Sources: cli.EnvVars(envVar(flagSysfsRoot)),
			Value:   defaults.SysfsRoot,
		},
		&cli.StringFlag{
			Name:    flagMetricsFile,
			Usage:   "write Prometheus metrics in text format to this file",
			Sources: cli.EnvVars(envVar(flagMetricsFile)),
		},
		&cli.DurationFlag{
			Name:  flagDaemonDialTimeout,
			Usage: "time allowed to connect to rbln-daemon",
			Value: defaults.DaemonDialTimeout,
		},
		&cli.DurationFlag{
			Name:  flagDaemonTimeout,
			Usage: "time allowed for each rbln-daemon call",
			Value: defaults.DaemonCallTimeout,
		},
	}
}

// resolveConfig layers the config file over the defaults, then any flag or
// environment variable that was set explicitly.
func resolveConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := strings.TrimSpace(cmd.String(flagConfig)); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.IsSet(flagLogLevel) {
		cfg.LogLevel = cmd.String(flagLogLevel)
	}
	if cmd.IsSet(flagDaemonURL) {
		cfg.DaemonURL = cmd.String(flagDaemonURL)
	}
	if cmd.IsSet(flagOutputFile) {
		cfg.OutputFile = cmd.String(flagOutputFile)
	}
	if cmd.IsSet(flagNoTimestamp) {
		cfg.NoTimestamp = cmd.Bool(flagNoTimestamp)
	}
	if cmd.IsSet(flagSysfsRoot) {
		cfg.SysfsRoot = cmd.String(flagSysfsRoot)
	}
	if cmd.IsSet(flagMetricsFile) {
		cfg.MetricsFile = cmd.String(flagMetricsFile)
	}
	if cmd.IsSet(flagDaemonDialTimeout) {
		cfg.DaemonDialTimeout = cmd.Duration(flagDaemonDialTimeout)
	}
	if cmd.IsSet(flagDaemonTimeout) {
		cfg.DaemonTimeout = cmd.Duration(flagDaemonTimeout)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration resolved by setup, resolving it again
// when the command runs without the root Before hook.
func configFrom(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg, nil
	}
	return resolveConfig(cmd)
}

// parseOutputFormat extracts and validates the output format from CLI flags.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String(flagFormat))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %s",
			outFormat, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return outFormat, nil
}
