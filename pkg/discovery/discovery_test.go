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

package discovery

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/collector"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/collector/daemon"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/errors"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/features"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/header"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/metrics"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/npu"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/rblnservices"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/rblnservices/rblnservicestest"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/serializer"
)

type mockCollector struct {
	rec    *features.Record
	err    error
	called bool
}

func (m *mockCollector) Collect(context.Context) (*features.Record, error) {
	m.called = true
	return m.rec, m.err
}

type mockFactory struct {
	daemon *mockCollector
	sysfs  *mockCollector
}

func (f *mockFactory) CreateDaemonCollector() collector.Collector { return f.daemon }
func (f *mockFactory) CreateSysfsCollector() collector.Collector { return f.sysfs }

type mockSerializer struct {
	data  any
	err   error
	calls int
}

func (m *mockSerializer) Serialize(_ context.Context, data any) error {
	m.calls++
	m.data = data
	return m.err
}

func record(t *testing.T, count int, product npu.Product) *features.Record {
	t.Helper()
	r := features.NewRecord()
	require.NoError(t, r.SetDevices(count, product))
	return r
}

func TestRun_DaemonPreferred(t *testing.T) {
	daemonRec := record(t, 4, npu.ProductCA22)
	f := &mockFactory{
		daemon: &mockCollector{rec: daemonRec},
		sysfs:  &mockCollector{rec: record(t, 1, npu.ProductCA02)},
	}
	s := &mockSerializer{}

	res, err := (&Discoverer{Factory: f, Serializer: s}).Run(t.Context())
	require.NoError(t, err)

	assert.Equal(t, collector.SourceDaemon, res.Source)
	assert.Same(t, daemonRec, res.Record)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, header.KindFeatureReport, res.Kind)
	assert.False(t, f.sysfs.called, "sysfs must not run when the daemon succeeds")
	assert.Equal(t, 1, s.calls)
	assert.Same(t, daemonRec, s.data)
}

func TestRun_FallbackToSysfs(t *testing.T) {
	sysfsRec := record(t, 2, npu.ProductCA25)
	f := &mockFactory{
		daemon: &mockCollector{
			rec: record(t, 9, npu.ProductCA02),
			err: errors.New(errors.ErrCodeUnimplemented, "no device list"),
		},
		sysfs: &mockCollector{rec: sysfsRec},
	}
	s := &mockSerializer{}

	res, err := (&Discoverer{Factory: f, Serializer: s}).Run(t.Context())
	require.NoError(t, err)

	assert.Equal(t, collector.SourceSysfs, res.Source)
	assert.Same(t, sysfsRec, res.Record, "a failed daemon candidate is discarded, not merged")
	assert.Same(t, sysfsRec, s.data)
}

func TestRun_SysfsFailureWritesNothing(t *testing.T) {
	sysErr := errors.New(errors.ErrCodeNotFound, "no pci devices")
	f := &mockFactory{
		daemon: &mockCollector{err: stderrors.New("unreachable")},
		sysfs:  &mockCollector{err: sysErr},
	}
	s := &mockSerializer{}

	_, err := (&Discoverer{Factory: f, Serializer: s}).Run(t.Context())
	require.ErrorIs(t, err, sysErr)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
	assert.Zero(t, s.calls)
}

func TestRun_SerializerError(t *testing.T) {
	f := &mockFactory{daemon: &mockCollector{rec: features.NewRecord()}}
	s := &mockSerializer{err: stderrors.New("read-only fs")}

	_, err := (&Discoverer{Factory: f, Serializer: s}).Run(t.Context())
	require.Error(t, err)
}

func TestRun_NoSerializer(t *testing.T) {
	f := &mockFactory{daemon: &mockCollector{rec: features.NewRecord()}}

	_, err := (&Discoverer{Factory: f}).Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestRun_NilRecordIsFailure(t *testing.T) {
	sysfsRec := features.NewRecord()
	f := &mockFactory{
		daemon: &mockCollector{},
		sysfs:  &mockCollector{rec: sysfsRec},
	}

	res, err := (&Discoverer{Factory: f, Serializer: &mockSerializer{}}).Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, collector.SourceSysfs, res.Source)
}

func TestRun_InvalidLabelsStillPublished(t *testing.T) {
	rec := features.NewRecord()
	rec.DriverVersionFull = ptr.To("1.0.0 beta")
	f := &mockFactory{daemon: &mockCollector{rec: rec}}
	s := &mockSerializer{}

	_, err := (&Discoverer{Factory: f, Serializer: s}).Run(t.Context())
	require.NoError(t, err)
	assert.Same(t, rec, s.data)
}

func TestRun_CanceledDuringDaemon(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	f := &mockFactory{
		daemon: &mockCollector{err: context.Canceled},
		sysfs:  &mockCollector{rec: features.NewRecord()},
	}

	_, err := (&Discoverer{Factory: f, Serializer: &mockSerializer{}}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, f.sysfs.called)
}

func TestCollect_DoesNotPublish(t *testing.T) {
	f := &mockFactory{daemon: &mockCollector{rec: record(t, 1, npu.ProductCA15)}}
	s := &mockSerializer{}

	res, err := (&Discoverer{Factory: f, Serializer: s}).Collect(t.Context())
	require.NoError(t, err)
	assert.Equal(t, collector.SourceDaemon, res.Source)
	assert.Zero(t, s.calls)
}

func TestRun_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "rbln.prom")
	f := &mockFactory{
		daemon: &mockCollector{err: errors.New(errors.ErrCodeUnavailable, "down")},
		sysfs:  &mockCollector{rec: record(t, 3, npu.ProductCA12)},
	}

	d := &Discoverer{
		Factory:     f,
		Serializer:  serializer.NewLabelFileWriter(filepath.Join(dir, "rbln-features")),
		Metrics:     metrics.NewRecorder(),
		MetricsFile: metricsPath,
	}
	_, err := d.Run(t.Context())
	require.NoError(t, err)

	b, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, "rbln_npu_feature_discovery_fallback_total 1")
	assert.Contains(t, out, "rbln_npu_feature_discovery_devices 3")
	assert.Contains(t, out, `rbln_npu_feature_discovery_label_writes_total{result="written"} 1`)
}

// writeSysfs lays out one CA22 device and a loaded driver under a temp root.
func writeSysfs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	dev := filepath.Join(root, "bus", "pci", "devices", "0000:01:00.0")
	require.NoError(t, os.MkdirAll(dev, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dev, "vendor"), []byte("0x1eff\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dev, "device"), []byte("0x1220\n"), 0o644))

	drv := filepath.Join(root, "class", "rebellions", "rbln0")
	require.NoError(t, os.MkdirAll(drv, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(drv, "kernel_version"), []byte("1.2.3-rc1\n"), 0o644))

	return root
}

func runToFile(t *testing.T, f collector.Factory, noTimestamp bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rbln-features")
	w := serializer.NewLabelFileWriter(path)
	w.NoTimestamp = noTimestamp

	_, err := (&Discoverer{Factory: f, Serializer: w}).Run(t.Context())
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRun_FallbackEquivalence(t *testing.T) {
	root := writeSysfs(t)
	d := rblnservicestest.NewDaemon(t, rblnservices.UnimplementedRBLNServicesServer{})

	unimplemented := collector.NewDefaultFactory(
		collector.WithDaemonAddress(d.Target),
		collector.WithDaemonDialer(func(ctx context.Context, address string) (daemon.DeviceService, error) {
			return rblnservices.Dial(ctx, address, d.ClientOption())
		}),
		collector.WithSysfsRoot(root),
	)
	unreachable := collector.NewDefaultFactory(
		collector.WithDaemonDialer(func(context.Context, string) (daemon.DeviceService, error) {
			return nil, stderrors.New("connection refused")
		}),
		collector.WithSysfsRoot(root),
	)

	got := runToFile(t, unimplemented, true)
	want := runToFile(t, unreachable, true)
	assert.Equal(t, want, got)
	assert.Equal(t,
		"rebellions.ai/npu.present=true\n"+
			"rebellions.ai/npu.count=1\n"+
			"rebellions.ai/npu.family=ATOM\n"+
			"rebellions.ai/npu.product=RBLN-CA22\n"+
			"rebellions.ai/driver-version.full=1.2.3\n"+
			"rebellions.ai/driver-version.major=1\n"+
			"rebellions.ai/driver-version.minor=2\n"+
			"rebellions.ai/driver-version.patch=3\n"+
			"rebellions.ai/driver-version.revision=rc1\n",
		got)
}

func TestRun_Idempotent(t *testing.T) {
	root := writeSysfs(t)
	f := collector.NewDefaultFactory(
		collector.WithDaemonDialer(func(context.Context, string) (daemon.DeviceService, error) {
			return nil, stderrors.New("connection refused")
		}),
		collector.WithSysfsRoot(root),
	)

	first := runToFile(t, f, false)
	second := runToFile(t, f, false)

	require.True(t, strings.HasPrefix(first, serializer.ExpiryPrefix))
	_, firstBody, _ := strings.Cut(first, "\n")
	_, secondBody, _ := strings.Cut(second, "\n")
	assert.Equal(t, firstBody, secondBody)
}
