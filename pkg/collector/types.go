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

package collector

import (
	"context"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/features"
)

// Collector produces a feature record for the node.
type Collector interface {
	Collect(ctx context.Context) (*features.Record, error)
}

// Source names where a record came from.
type Source string

const (
	SourceDaemon Source = "daemon"
	SourceSysfs  Source = "sysfs"
)

// String returns the source name.
func (s Source) String() string {
	return string(s)
}
