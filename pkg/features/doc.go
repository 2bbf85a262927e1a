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

// Package features defines the record published for a node and its rendering
// as NFD local feature-source labels.
//
// A Record is always built by a collector through SetDevices and
// SetDriverVersion. Rendering follows a fixed key order:
//
//	rebellions.ai/npu.present=true
//	rebellions.ai/npu.count=4
//	rebellions.ai/npu.family=ATOM
//	rebellions.ai/npu.product=RBLN-CA22
//	rebellions.ai/driver-version.full=1.2.3
//	rebellions.ai/driver-version.major=1
//	rebellions.ai/driver-version.minor=2
//	rebellions.ai/driver-version.patch=3
//	rebellions.ai/driver-version.revision=rc1
//
// Unset fields are omitted. ParseLabels reads the same format back, ignoring
// comment lines such as the expiry annotation.
package features
