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

// Package logging provides structured logging setup on top of log/slog.
//
// All logs are JSON on stderr and carry the module name and version of the
// binary. Debug level adds source locations.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger early in main:
//
//	logging.SetDefaultStructuredLogger("rbln-npu-feature-discovery", version)
//	slog.Info("discovery started", "run_id", runID)
//
// Setting an explicit log level (as the CLI does for --log-level):
//
//	logging.SetDefaultStructuredLoggerWithLevel("rbln-npu-feature-discovery", version, "debug")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no explicit level
// is passed:
//
//	LOG_LEVEL=debug rbln-npu-feature-discovery
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "labels written",
//	    "module": "rbln-npu-feature-discovery",
//	    "version": "v0.1.0",
//	    "path": "/etc/kubernetes/node-feature-discovery/features.d/rbln-features"
//	}
package logging
