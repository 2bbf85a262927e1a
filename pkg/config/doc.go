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

// Package config holds the runtime configuration of a discovery pass.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables and flags (applied by the CLI). A file looks like:
//
//	rblnDaemonURL: http://127.0.0.1:50051
//	outputFile: /etc/kubernetes/node-feature-discovery/features.d/rbln-features
//	noTimestamp: false
//	sysfsRoot: /host/sys
//	metricsFile: /var/lib/node_exporter/textfile/rbln.prom
//	daemonDialTimeout: 10s
//	daemonTimeout: 10s
//	logLevel: info
//
// Unknown keys are rejected so that typos do not silently fall back to defaults.
package config
