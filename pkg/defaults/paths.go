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

// Default endpoints and filesystem locations.
const (
	// DaemonAddress is the rbln-daemon gRPC endpoint on the local node.
	DaemonAddress = "127.0.0.1:50051"

	// OutputFile is where NFD's local feature source picks up label files.
	OutputFile = "/etc/kubernetes/node-feature-discovery/features.d/rbln-features"

	// SysfsRoot is the sysfs mount point. Containers usually mount the host's
	// sysfs elsewhere, e.g. /host/sys.
	SysfsRoot = "/sys"

	// MaxAttributeSize caps how much of a single sysfs attribute is read.
	MaxAttributeSize = 4096
)
