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

// Package daemon collects NPU features from rbln-daemon.
//
// The collector lists the serviceable devices, classifies the first one and
// asks the daemon for the driver version of that device. Any failure to reach
// the daemon or to list devices is returned so the caller can fall back to
// sysfs. A failed version call or an unparseable version is not an error: the
// record is returned with whatever driver fields could be filled.
package daemon
