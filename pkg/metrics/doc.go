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

// Package metrics records Prometheus metrics for discovery passes.
//
// The binary runs once per invocation and exposes no HTTP endpoint, so metrics
// are written in the text exposition format to a file that the node
// exporter's textfile collector picks up:
//
//	rec := metrics.NewRecorder()
//	rec.ObserveCollection(collector.SourceDaemon, time.Since(start), err)
//	_ = rec.WriteTextfile("/var/lib/node_exporter/textfile/rbln.prom")
//
// Each Recorder owns its registry; nothing is registered globally.
package metrics
