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

package sysfs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/collector/file"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/errors"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/features"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/npu"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/version"
)

const (
	attrVendor      = "vendor"
	attrDevice      = "device"
	attrSRIOVNumVFs = "sriov_numvfs"

	firstDriverDevice = "rbln0"
	attrKernelVersion = "kernel_version"
)

// Device is an RBLN device found on the PCI bus.
type Device struct {
	// Address is the PCI address, e.g. "0000:01:00.0".
	Address string
	// DeviceID is the PCI device id without 0x, e.g. "1220".
	DeviceID string
	Product  npu.Product
}

// Option configures a Collector.
type Option func(*Collector)

// WithSysfsRoot derives every path from root instead of /sys.
func WithSysfsRoot(root string) Option {
	return func(c *Collector) {
		c.pciDevicesPath = filepath.Join(root, "bus", "pci", "devices")
		c.driverClassPath = filepath.Join(root, "class", "rebellions")
	}
}

// WithPCIDevicesPath overrides the PCI devices directory.
func WithPCIDevicesPath(path string) Option {
	return func(c *Collector) {
		c.pciDevicesPath = path
	}
}

// WithDriverClassPath overrides the rebellions driver class directory.
func WithDriverClassPath(path string) Option {
	return func(c *Collector) {
		c.driverClassPath = path
	}
}

// WithVendorID overrides the PCI vendor id matched against the vendor attribute.
func WithVendorID(id string) Option {
	return func(c *Collector) {
		c.vendorID = id
	}
}

// Collector reads NPU features from sysfs.
type Collector struct {
	pciDevicesPath  string
	driverClassPath string
	vendorID        string
	reader          *file.Reader
}

// NewCollector returns a collector rooted at /sys unless configured otherwise.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		vendorID: npu.VendorID,
		reader:   file.NewReader(),
	}
	WithSysfsRoot(defaults.SysfsRoot)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect builds a fresh record from sysfs.
func (c *Collector) Collect(ctx context.Context) (*features.Record, error) {
	devices, err := c.DiscoverDevices(ctx)
	if err != nil {
		return nil, err
	}

	rec := features.NewRecord()
	if len(devices) > 0 {
		first := devices[0]
		for _, d := range devices[1:] {
			if d.Product != first.Product {
				slog.Warn("heterogeneous devices, publishing the first product",
					"product", first.Product.String(), "address", first.Address,
					"other_product", d.Product.String(), "other_address", d.Address)
				break
			}
		}
		if err := rec.SetDevices(len(devices), first.Product); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to set devices", err)
		}
	}

	raw, ok := c.readDriverVersion()
	if !ok {
		return rec, nil
	}

	v, err := version.ParseDriverVersion(raw)
	if err != nil {
		slog.Error("failed to parse driver version", "raw", raw, "error", err)
		if v.Full == "" && v.Revision == nil {
			return rec, nil
		}
	}
	rec.SetDriverVersion(v)

	return rec, nil
}

// DiscoverDevices lists the countable RBLN devices in PCI address order.
func (c *Collector) DiscoverDevices(ctx context.Context) ([]Device, error) {
	entries, err := os.ReadDir(c.pciDevicesPath)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to list PCI devices", err,
			map[string]any{"path": c.pciDevicesPath})
	}

	var devices []Device
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		d, ok, err := c.inspect(entry.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			devices = append(devices, d)
		}
	}

	slog.Debug("discovered devices from sysfs", "count", len(devices), "path", c.pciDevicesPath)
	return devices, nil
}

// inspect reports whether the PCI device at addr is a countable RBLN device.
func (c *Collector) inspect(addr string) (Device, bool, error) {
	dir := filepath.Join(c.pciDevicesPath, addr)

	vendor, err := c.reader.ReadAttribute(filepath.Join(dir, attrVendor))
	if err != nil {
		return Device{}, false, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read vendor", err,
			map[string]any{"pci_address": addr})
	}
	if !strings.EqualFold(vendor, c.vendorID) {
		return Device{}, false, nil
	}

	numVFs, present, err := c.reader.ReadOptionalAttribute(filepath.Join(dir, attrSRIOVNumVFs))
	if err != nil {
		return Device{}, false, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read sriov_numvfs", err,
			map[string]any{"pci_address": addr})
	}
	if present {
		n, err := strconv.Atoi(numVFs)
		if err != nil {
			return Device{}, false, errors.WrapWithContext(errors.ErrCodeInternal, "invalid sriov_numvfs", err,
				map[string]any{"pci_address": addr, "value": numVFs})
		}
		if n != 0 {
			slog.Debug("skipping physical function with SR-IOV enabled", "pci_address", addr, "num_vfs", n)
			return Device{}, false, nil
		}
	}

	raw, err := c.reader.ReadAttribute(filepath.Join(dir, attrDevice))
	if err != nil {
		return Device{}, false, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read device id", err,
			map[string]any{"pci_address": addr})
	}
	id := strings.TrimPrefix(strings.ToLower(raw), "0x")

	product, err := npu.ProductFromDeviceID(id)
	if err != nil {
		return Device{}, false, errors.WrapWithContext(errors.ErrCodeUnknownDevice, "failed to classify device", err,
			map[string]any{"pci_address": addr, "device_id": id})
	}

	return Device{Address: addr, DeviceID: id, Product: product}, true, nil
}

// readDriverVersion returns the raw kernel driver version. ok is false when
// the driver is not loaded or the attribute cannot be read.
func (c *Collector) readDriverVersion() (raw string, ok bool) {
	exists, err := file.Exists(c.driverClassPath)
	if err != nil || !exists {
		// devices without a loaded driver
		slog.Debug("rebellions sysfs not found", "path", c.driverClassPath, "error", err)
		return "", false
	}

	dev := filepath.Join(c.driverClassPath, firstDriverDevice)
	if exists, err := file.Exists(dev); err != nil || !exists {
		slog.Error("sysfs for device rbln0 not found", "path", dev, "error", err)
		return "", false
	}

	path := filepath.Join(dev, attrKernelVersion)
	v, present, err := c.reader.ReadOptionalAttribute(path)
	if err != nil {
		slog.Error("failed to read kernel_version", "path", path, "error", err)
		return "", false
	}
	if !present {
		slog.Error("kernel_version file not found in sysfs", "path", path)
		return "", false
	}

	return v, true
}
