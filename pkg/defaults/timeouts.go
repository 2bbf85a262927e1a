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

package defaults

import "time"

// Daemon timeouts for rbln-daemon gRPC operations.
const (
	// DaemonDialTimeout bounds establishing the connection to rbln-daemon.
	DaemonDialTimeout = 10 * time.Second

	// DaemonCallTimeout bounds each RPC, including draining the device stream.
	DaemonCallTimeout = 10 * time.Second
)

// Collector timeouts for a discovery pass.
const (
	// CollectorTimeout is the budget for a whole pass: daemon attempt, sysfs
	// fallback and label write.
	CollectorTimeout = 60 * time.Second
)

// Label timeouts.
const (
	// LabelExpiry is added to the current time for the expiry-time annotation.
	LabelExpiry = time.Hour
)
