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

// Package discovery runs one feature discovery pass for the node.
//
// A pass asks rbln-daemon first and falls back to sysfs when the daemon cannot
// be reached or fails to list devices. Exactly one of the two records is used;
// they are never merged. The chosen record is checked against Kubernetes label
// rules (problems are logged, the record is published unchanged) and handed to
// the Serializer.
//
//	d := &discovery.Discoverer{
//	    Factory:    collector.NewDefaultFactory(),
//	    Serializer: serializer.NewLabelFileWriter(path),
//	}
//	res, err := d.Run(ctx)
//
// When the sysfs fallback fails as well the pass fails and nothing is written.
package discovery
