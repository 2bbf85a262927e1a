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
	"time"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/collector/daemon"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/collector/sysfs"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/npu"
)

// Factory creates collectors.
type Factory interface {
	CreateDaemonCollector() Collector
	CreateSysfsCollector() Collector
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithDaemonAddress sets the rbln-daemon gRPC endpoint (host:port).
func WithDaemonAddress(address string) Option {
	return func(f *DefaultFactory) {
		f.DaemonAddress = address
	}
}

// WithDaemonDialTimeout sets the connection timeout for rbln-daemon.
func WithDaemonDialTimeout(d time.Duration) Option {
	return func(f *DefaultFactory) {
		f.DaemonDialTimeout = d
	}
}

// WithDaemonCallTimeout sets the per-RPC timeout for rbln-daemon.
func WithDaemonCallTimeout(d time.Duration) Option {
	return func(f *DefaultFactory) {
		f.DaemonCallTimeout = d
	}
}

// WithDaemonDialer replaces how the daemon collector connects.
func WithDaemonDialer(d daemon.Dialer) Option {
	return func(f *DefaultFactory) {
		f.DaemonDialer = d
	}
}

// WithSysfsRoot sets where sysfs is mounted.
func WithSysfsRoot(root string) Option {
	return func(f *DefaultFactory) {
		f.SysfsRoot = root
	}
}

// WithVendorID sets the PCI vendor id the sysfs collector matches.
func WithVendorID(id string) Option {
	return func(f *DefaultFactory) {
		f.VendorID = id
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	DaemonAddress     string
	DaemonDialTimeout time.Duration
	DaemonCallTimeout time.Duration
	DaemonDialer      daemon.Dialer

	SysfsRoot string
	VendorID  string
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		DaemonAddress:     defaults.DaemonAddress,
		DaemonDialTimeout: defaults.DaemonDialTimeout,
		DaemonCallTimeout: defaults.DaemonCallTimeout,
		SysfsRoot:         defaults.SysfsRoot,
		VendorID:          npu.VendorID,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateDaemonCollector creates an rbln-daemon collector.
func (f *DefaultFactory) CreateDaemonCollector() Collector {
	opts := []daemon.Option{
		daemon.WithDialTimeout(f.DaemonDialTimeout),
		daemon.WithCallTimeout(f.DaemonCallTimeout),
	}
	if f.DaemonDialer != nil {
		opts = append(opts, daemon.WithDialer(f.DaemonDialer))
	}
	return daemon.NewCollector(f.DaemonAddress, opts...)
}

// CreateSysfsCollector creates a sysfs collector.
func (f *DefaultFactory) CreateSysfsCollector() Collector {
	return sysfs.NewCollector(
		sysfs.WithSysfsRoot(f.SysfsRoot),
		sysfs.WithVendorID(f.VendorID),
	)
}
