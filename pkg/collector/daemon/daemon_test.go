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
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"k8s.io/utils/ptr"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/errors"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/features"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/npu"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/rblnservices"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/rblnservices/rblnservicestest"
)

func mockDialer(svc DeviceService) Dialer {
	return func(context.Context, string) (DeviceService, error) {
		return svc, nil
	}
}

func devices(ids ...string) []*rblnservices.Device {
	out := make([]*rblnservices.Device, 0, len(ids))
	for _, id := range ids {
		out = append(out, &rblnservices.Device{DevID: id})
	}
	return out
}

func TestCollect_Full(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockDeviceService(ctrl)

	devs := devices("1220", "1220", "1220", "1220")
	svc.EXPECT().ServiceableDevices(gomock.Any()).Return(devs, nil)
	svc.EXPECT().Version(gomock.Any(), gomock.Eq(devs[0])).Return("1.2.3-rc1", nil)
	svc.EXPECT().Close().Return(nil)

	rec, err := NewCollector("unused", WithDialer(mockDialer(svc))).Collect(t.Context())
	require.NoError(t, err)

	assert.True(t, rec.NPUPresent)
	assert.Equal(t, 4, rec.DeviceCount())
	assert.Equal(t, "ATOM", ptr.Deref(rec.NPUFamily, ""))
	assert.Equal(t, "RBLN-CA22", ptr.Deref(rec.NPUProduct, ""))
	assert.Equal(t, "1.2.3", ptr.Deref(rec.DriverVersionFull, ""))
	assert.Equal(t, "1", ptr.Deref(rec.DriverVersionMajor, ""))
	assert.Equal(t, "2", ptr.Deref(rec.DriverVersionMinor, ""))
	assert.Equal(t, "3", ptr.Deref(rec.DriverVersionPatch, ""))
	assert.Equal(t, "rc1", ptr.Deref(rec.DriverVersionRevision, ""))
}

func TestCollect_NoDevices(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockDeviceService(ctrl)

	svc.EXPECT().ServiceableDevices(gomock.Any()).Return(nil, nil)
	svc.EXPECT().Close().Return(nil)

	rec, err := NewCollector("unused", WithDialer(mockDialer(svc))).Collect(t.Context())
	require.NoError(t, err)
	assert.Equal(t, features.NewRecord(), rec)
}

func TestCollect_ListErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode errors.ErrorCode
	}{
		{"unimplemented", status.Error(codes.Unimplemented, "nope"), errors.ErrCodeUnimplemented},
		{"internal", status.Error(codes.Internal, "boom"), errors.ErrCodeUnavailable},
		{"plain", stderrors.New("stream broken"), errors.ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewMockDeviceService(ctrl)

			svc.EXPECT().ServiceableDevices(gomock.Any()).Return(nil, tt.err)
			svc.EXPECT().Close().Return(nil)

			rec, err := NewCollector("unused", WithDialer(mockDialer(svc))).Collect(t.Context())
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}

func TestCollect_DialError(t *testing.T) {
	dialErr := stderrors.New("connection refused")
	dial := func(context.Context, string) (DeviceService, error) { return nil, dialErr }

	_, err := NewCollector("127.0.0.1:1", WithDialer(dial)).Collect(t.Context())
	require.ErrorIs(t, err, dialErr)
	assert.Equal(t, errors.ErrCodeUnavailable, errors.CodeOf(err))
}

func TestCollect_DialTimeoutApplied(t *testing.T) {
	var deadline time.Time
	dial := func(ctx context.Context, _ string) (DeviceService, error) {
		deadline, _ = ctx.Deadline()
		return nil, stderrors.New("refused")
	}

	start := time.Now()
	_, _ = NewCollector("x", WithDialer(dial), WithDialTimeout(3*time.Second)).Collect(t.Context())
	require.False(t, deadline.IsZero())
	assert.WithinDuration(t, start.Add(3*time.Second), deadline, time.Second)
}

func TestCollect_UnknownDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockDeviceService(ctrl)

	svc.EXPECT().ServiceableDevices(gomock.Any()).Return(devices("dead"), nil)
	svc.EXPECT().Close().Return(nil)

	_, err := NewCollector("unused", WithDialer(mockDialer(svc))).Collect(t.Context())
	require.ErrorIs(t, err, npu.ErrUnknownDeviceID)
	assert.Equal(t, errors.ErrCodeUnknownDevice, errors.CodeOf(err))
}

func TestCollect_VersionErrorIsSoft(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockDeviceService(ctrl)

	svc.EXPECT().ServiceableDevices(gomock.Any()).Return(devices("1020"), nil)
	svc.EXPECT().Version(gomock.Any(), gomock.Any()).Return("", status.Error(codes.Unavailable, "gone"))
	svc.EXPECT().Close().Return(nil)

	rec, err := NewCollector("unused", WithDialer(mockDialer(svc))).Collect(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.DeviceCount())
	assert.Equal(t, "RBLN-CA02", ptr.Deref(rec.NPUProduct, ""))
	assert.False(t, rec.HasDriverVersion())
}

func TestCollect_VersionParseIsSoft(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockDeviceService(ctrl)

	svc.EXPECT().ServiceableDevices(gomock.Any()).Return(devices("1250"), nil)
	svc.EXPECT().Version(gomock.Any(), gomock.Any()).Return("1.2~dev", nil)
	svc.EXPECT().Close().Return(nil)

	rec, err := NewCollector("unused", WithDialer(mockDialer(svc))).Collect(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "1.2", ptr.Deref(rec.DriverVersionFull, ""))
	assert.Equal(t, "dev", ptr.Deref(rec.DriverVersionRevision, ""))
	assert.Nil(t, rec.DriverVersionMajor)
	assert.Nil(t, rec.DriverVersionMinor)
	assert.Nil(t, rec.DriverVersionPatch)
}

func TestCollect_HeterogeneousFirstWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockDeviceService(ctrl)

	svc.EXPECT().ServiceableDevices(gomock.Any()).Return(devices("1150", "1250"), nil)
	svc.EXPECT().Version(gomock.Any(), gomock.Any()).Return("2.0.0", nil)
	svc.EXPECT().Close().Return(nil)

	rec, err := NewCollector("unused", WithDialer(mockDialer(svc))).Collect(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, rec.DeviceCount())
	assert.Equal(t, "RBLN-CA15", ptr.Deref(rec.NPUProduct, ""))
}

func TestCollect_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewCollector("unused", WithDialer(func(context.Context, string) (DeviceService, error) {
		t.Fatal("dialer must not be called")
		return nil, nil
	})).Collect(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

type grpcDaemon struct {
	rblnservices.UnimplementedRBLNServicesServer
}

func (grpcDaemon) GetVersion(context.Context, *rblnservices.Device) (*rblnservices.VersionInfo, error) {
	return &rblnservices.VersionInfo{DrvVersion: "3.1.4"}, nil
}

func TestCollect_OverGRPC_Unimplemented(t *testing.T) {
	d := rblnservicestest.NewDaemon(t, grpcDaemon{})

	dial := func(ctx context.Context, address string) (DeviceService, error) {
		return rblnservices.Dial(ctx, address, d.ClientOption())
	}

	_, err := NewCollector(d.Target, WithDialer(dial)).Collect(t.Context())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnimplemented))
}
