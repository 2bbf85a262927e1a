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

// Package collector provides the interface and factory for NPU feature collectors.
//
// # Overview
//
// A node's features come from one of two sources. rbln-daemon is preferred
// because it knows which devices it can actually serve; sysfs is the fallback
// when the daemon is not running, is too old to implement the device list, or
// fails.
//
// # Core Interface
//
// The Collector interface defines a single method for gathering data:
//
//	type Collector interface {
//	    Collect(ctx context.Context) (*features.Record, error)
//	}
//
// Every call returns a freshly built record; collectors keep no state between
// calls.
//
// # Factory Pattern
//
// The Factory interface enables dependency injection and testing by abstracting
// collector creation:
//
//	type Factory interface {
//	    CreateDaemonCollector() Collector
//	    CreateSysfsCollector() Collector
//	}
//
// The DefaultFactory provides production implementations with configurable options:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithDaemonAddress("127.0.0.1:50051"),
//	    collector.WithSysfsRoot("/host/sys"),
//	)
//
// # Subpackages
//
//   - collector/daemon - rbln-daemon gRPC collector
//   - collector/sysfs - sysfs collector
//   - collector/file - bounded sysfs attribute reader
//
// # Error Handling
//
// Collectors return errors when:
//   - rbln-daemon is unreachable or fails to list devices (daemon only)
//   - PCI devices cannot be enumerated (sysfs only)
//   - A device id is not in the taxonomy
//   - Context is canceled or times out
//
// A missing or malformed driver version is not an error.
package collector
