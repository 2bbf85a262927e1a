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

// Package cli implements the rbln-npu-feature-discovery command line.
//
// # Commands
//
// Without a subcommand, a single discovery pass runs and the NFD feature file
// is published:
//
//	rbln-npu-feature-discovery [--rbln-daemon-url host:port] [--output-file path]
//
// Devices come from rbln-daemon when it answers. Otherwise the PCI devices in
// sysfs are scanned. A pass that cannot produce a record from either source
// leaves the feature file untouched and exits non-zero.
//
// print - Collect and print without writing the feature file:
//
//	rbln-npu-feature-discovery print [--format text|json|yaml] [--output path]
//
// # Global Flags
//
//	--config, -c             YAML config file
//	--log-level              debug, info, warn, error
//	--rbln-daemon-url        rbln-daemon endpoint (default: 127.0.0.1:50051)
//	--output-file, -o        feature file (default: /etc/kubernetes/node-feature-discovery/features.d/rbln-features)
//	--no-timestamp           omit the expiry-time annotation
//	--sysfs-root             sysfs mount point (default: /sys)
//	--metrics-file           Prometheus textfile output
//	--daemon-dial-timeout    connect budget (default: 10s)
//	--daemon-timeout         per-call budget (default: 10s)
//
// # Configuration
//
// Values resolve in this order, later wins: built-in defaults, the --config
// file, environment variables, command line flags.
//
// # Environment Variables
//
//	RBLN_NPU_FEATURE_DISCOVERY_CONFIG
//	RBLN_NPU_FEATURE_DISCOVERY_RBLN_DAEMON_URL
//	RBLN_NPU_FEATURE_DISCOVERY_OUTPUT_FILE
//	RBLN_NPU_FEATURE_DISCOVERY_NO_TIMESTAMP
//	RBLN_NPU_FEATURE_DISCOVERY_SYSFS_ROOT
//	RBLN_NPU_FEATURE_DISCOVERY_METRICS_FILE
//	LOG_LEVEL                                  used when --log-level is not set
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, discovery or publish failure)
//	2  Context canceled or timeout
package cli
