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

// Package defaults provides centralized configuration constants for
// rbln-npu-feature-discovery.
//
// This package defines timeout values, default paths and endpoints used across
// the codebase. Configuration files and flags override the defaults; the
// defaults are what a daemonset on a stock node needs.
//
// # Timeout Categories
//
//   - Daemon timeouts: dialing rbln-daemon and each RPC against it
//   - Collector timeouts: the overall budget of a discovery pass
//   - Label timeouts: how long NFD treats published labels as fresh
//
// # Usage
//
//	import "github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.DaemonCallTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// The dial and call timeouts are both shorter than CollectorTimeout so the sysfs
// fallback still runs inside the pass budget when the daemon hangs.
package defaults
