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

//go:generate mockgen -destination=mock_daemon.go -package=daemon github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/collector/daemon DeviceService

import (
	"context"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/rblnservices"
)

// DeviceService is the part of rbln-daemon the collector needs.
type DeviceService interface {
	// ServiceableDevices returns every device the daemon serves, in stream order.
	ServiceableDevices(ctx context.Context) ([]*rblnservices.Device, error)
	// Version returns the raw driver version reported for dev.
	Version(ctx context.Context, dev *rblnservices.Device) (string, error)
	Close() error
}

// Dialer connects to the daemon at address.
type Dialer func(ctx context.Context, address string) (DeviceService, error)
