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

package metrics

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/collector"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/errors"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/features"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/npu"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/version"
)

func TestRecorder_Collection(t *testing.T) {
	r := NewRecorder()

	r.ObserveCollection(collector.SourceDaemon, 20*time.Millisecond,
		errors.New(errors.ErrCodeUnimplemented, "no device list"))
	r.ObserveFallback()
	r.ObserveCollection(collector.SourceSysfs, 5*time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.collectionTotal.WithLabelValues("daemon", statusError, "UNIMPLEMENTED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.collectionTotal.WithLabelValues("sysfs", statusSuccess, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fallbackTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(r.collectionDuration))
}

func TestRecorder_Record(t *testing.T) {
	r := NewRecorder()

	rec := features.NewRecord()
	require.NoError(t, rec.SetDevices(8, npu.ProductCA22))
	rec.SetDriverVersion(version.DriverVersion{Full: "1.4.0", Major: ptr.To("1"), Minor: ptr.To("4"), Patch: ptr.To("0")})
	r.ObserveRecord(rec)
	r.ObserveRun(time.Unix(1700000000, 0))

	assert.Equal(t, 8.0, testutil.ToFloat64(r.devices))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.npuPresent))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.driverInfo.WithLabelValues("1.4.0", "RBLN-CA22")))
	assert.Equal(t, 1.7e9, testutil.ToFloat64(r.lastRun))

	// a later record without a driver clears the info series
	r.ObserveRecord(features.NewRecord())
	assert.Zero(t, testutil.ToFloat64(r.devices))
	assert.Zero(t, testutil.ToFloat64(r.npuPresent))
	assert.Zero(t, testutil.CollectAndCount(r.driverInfo))
}

func TestRecorder_LabelWrites(t *testing.T) {
	r := NewRecorder()
	r.ObserveLabelWrite(true, nil)
	r.ObserveLabelWrite(false, nil)
	r.ObserveLabelWrite(false, stderrors.New("disk full"))

	for _, result := range []string{"written", "skipped", "error"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(r.labelWrites.WithLabelValues(result)), result)
	}
}

func TestRecorder_IsolatedRegistries(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.ObserveFallback()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.fallbackTotal))
	assert.Zero(t, testutil.ToFloat64(b.fallbackTotal))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveFallback()

	path := filepath.Join(t.TempDir(), "rbln.prom")
	require.NoError(t, r.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "rbln_npu_feature_discovery_fallback_total 1")
}

func TestRecorder_WriteTextfileError(t *testing.T) {
	err := NewRecorder().WriteTextfile(filepath.Join(t.TempDir(), "missing", "rbln.prom"))
	assert.Error(t, err)
}
