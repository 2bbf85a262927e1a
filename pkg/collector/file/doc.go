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

// Package file reads small sysfs attribute files.
//
// sysfs attributes are single values terminated by a newline. The Reader trims
// surrounding whitespace and refuses oversized or non UTF-8 content so a
// corrupted or unexpected file cannot flood the collector:
//
//	r := file.NewReader()
//	vendor, err := r.ReadAttribute("/sys/bus/pci/devices/0000:01:00.0/vendor")
//	// vendor == "0x1eff"
//
// Optional attributes, such as sriov_numvfs on devices without SR-IOV, are read
// with ReadOptionalAttribute, which reports absence instead of failing:
//
//	numVFs, ok, err := r.ReadOptionalAttribute(path)
//
// # Error Handling
//
// Errors are wrapped with the path; os.ErrNotExist and os.ErrPermission stay
// detectable with errors.Is.
package file
