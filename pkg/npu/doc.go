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

// Package npu holds the RBLN device taxonomy.
//
// A PCI device id (as found in sysfs or reported by rbln-daemon) resolves to a
// Product, and every Product belongs to exactly one Family:
//
//	p, err := npu.ProductFromDeviceID("1220")
//	// p == npu.ProductCA22
//	f, err := p.Family()
//	// f == npu.FamilyATOM
//	p.Label()
//	// "RBLN-CA22"
//
// SR-IOV virtual functions use their own device ids but classify as the same
// product as their physical function.
//
// Unknown ids are reported as ErrUnknownDeviceID. Callers must treat that as a
// failure of the collection attempt rather than skipping the device.
package npu
