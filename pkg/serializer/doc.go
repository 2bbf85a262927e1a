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

// Package serializer writes feature records for NFD and for people.
//
// Two Serializer implementations exist:
//
//   - LabelFileWriter publishes the record as an NFD local feature file. The
//     body is written to a hidden temp file next to the target and renamed
//     over it, so NFD never reads a half-written file. Unless disabled, the
//     first line is an expiry annotation.
//   - Writer prints a value as label text, JSON or YAML, e.g. for the print
//     command.
//
// Usage:
//
//	w := serializer.NewLabelFileWriter("/etc/kubernetes/node-feature-discovery/features.d/rbln-features")
//	if err := w.Serialize(ctx, record); err != nil {
//		return err
//	}
//
//	out := serializer.NewStdoutWriter(serializer.FormatYAML)
//	defer out.Close()
//	_ = out.Serialize(ctx, record)
package serializer
