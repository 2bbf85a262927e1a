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

// Package sysfs collects NPU features straight from the kernel's sysfs.
//
// Devices are found under bus/pci/devices by vendor id. A physical function
// with SR-IOV virtual functions enabled is skipped, since its VFs show up as
// devices of their own. The driver version is read from
// class/rebellions/rbln0/kernel_version.
//
// All paths derive from a sysfs root so the collector can run inside a
// container against a host mount:
//
//	c := sysfs.NewCollector(sysfs.WithSysfsRoot("/host/sys"))
//	rec, err := c.Collect(ctx)
//
// Failing to enumerate or classify devices is an error. A missing or
// unparseable driver version is logged and leaves the driver fields unset or
// partially set.
package sysfs
