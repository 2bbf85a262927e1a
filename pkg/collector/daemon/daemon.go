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

package daemon

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/errors"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/features"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/npu"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/rblnservices"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/version"
)

// Option configures a Collector.
type Option func(*Collector)

// WithDialer replaces the gRPC dialer, e.g. with a mock in tests.
func WithDialer(d Dialer) Option {
	return func(c *Collector) {
		c.dial = d
	}
}

// WithDialTimeout bounds connecting to the daemon.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Collector) {
		c.dialTimeout = d
	}
}

// WithCallTimeout bounds each RPC made by the default dialer's client.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Collector) {
		c.callTimeout = d
	}
}

// Collector reads NPU features from rbln-daemon.
type Collector struct {
	Address string

	dial        Dialer
	dialTimeout time.Duration
	callTimeout time.Duration
}

// NewCollector returns a collector for the daemon listening on address.
func NewCollector(address string, opts ...Option) *Collector {
	c := &Collector{
		Address:     address,
		dialTimeout: defaults.DaemonDialTimeout,
		callTimeout: defaults.DaemonCallTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dial == nil {
		c.dial = c.dialGRPC
	}
	return c
}

func (c *Collector) dialGRPC(ctx context.Context, address string) (DeviceService, error) {
	return rblnservices.Dial(ctx, address, rblnservices.WithCallTimeout(c.callTimeout))
}

// Collect builds a fresh record from the daemon's view of the node.
func (c *Collector) Collect(ctx context.Context) (*features.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	svc, err := c.connect(ctx)
	if err != nil {
		slog.Debug("rbln-daemon unreachable", "address", c.Address, "error", err)
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to connect to rbln-daemon", err,
			map[string]any{"address": c.Address})
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			slog.Debug("failed to close rbln-daemon connection", "error", cerr)
		}
	}()

	devices, err := svc.ServiceableDevices(ctx)
	if err != nil {
		if status.Code(err) == codes.Unimplemented {
			slog.Debug("getServiceableDeviceList is not implemented", "address", c.Address)
			return nil, errors.Wrap(errors.ErrCodeUnimplemented, "rbln-daemon does not list devices", err)
		}
		slog.Error("internal error in getServiceableDeviceList", "address", c.Address, "error", err)
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to list serviceable devices", err)
	}

	rec := features.NewRecord()
	if len(devices) == 0 {
		slog.Debug("rbln-daemon reports no serviceable devices")
		return rec, nil
	}

	first := devices[0]
	product, err := classify(devices)
	if err != nil {
		return nil, err
	}
	if err := rec.SetDevices(len(devices), product); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to set devices", err)
	}

	raw, err := svc.Version(ctx, first)
	if err != nil {
		slog.Debug("failed to get driver version from rbln-daemon", "error", err)
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

func (c *Collector) connect(ctx context.Context) (DeviceService, error) {
	dialCtx := ctx
	if c.dialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.dialTimeout)
		defer cancel()
	}
	return c.dial(dialCtx, c.Address)
}

// classify resolves the product of the first device. Other devices are only
// checked so that a mixed host is visible in the logs.
func classify(devices []*rblnservices.Device) (npu.Product, error) {
	product, err := npu.ProductFromDeviceID(devices[0].DevID)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeUnknownDevice, "failed to classify device", err,
			map[string]any{"dev_id": devices[0].DevID})
	}

	for _, d := range devices[1:] {
		p, err := npu.ProductFromDeviceID(d.DevID)
		if err != nil || p != product {
			slog.Warn("heterogeneous devices, publishing the first product",
				"product", product.String(), "other_dev_id", d.DevID)
			break
		}
	}

	return product, nil
}
