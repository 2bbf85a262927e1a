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
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"k8s.io/utils/ptr"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/collector"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/errors"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/features"
)

const namespace = "rbln_npu_feature_discovery"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Recorder holds the metrics of discovery passes.
type Recorder struct {
	registry *prometheus.Registry

	collectionTotal    *prometheus.CounterVec
	collectionDuration *prometheus.HistogramVec
	fallbackTotal      prometheus.Counter
	labelWrites        *prometheus.CounterVec
	devices            prometheus.Gauge
	npuPresent         prometheus.Gauge
	driverInfo         *prometheus.GaugeVec
	lastRun            prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		collectionTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "collection_total",
				Help:      "Total number of collection attempts by source",
			},
			[]string{"source", "status", "code"},
		),
		collectionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "collection_duration_seconds",
				Help:      "Time taken by a collector",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"source"},
		),
		fallbackTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fallback_total",
				Help:      "Number of passes that fell back from rbln-daemon to sysfs",
			},
		),
		labelWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "label_writes_total",
				Help:      "Label file write attempts by result",
			},
			[]string{"result"}, // written, skipped or error
		),
		devices: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "devices",
				Help:      "Number of NPUs in the last published record",
			},
		),
		npuPresent: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "npu_present",
				Help:      "1 if the last published record has NPUs",
			},
		),
		driverInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "driver_info",
				Help:      "Driver version of the last published record",
			},
			[]string{"version", "product"},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time of the last completed pass",
			},
		),
	}
}

// Registry exposes the underlying registry, e.g. for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveCollection records one collector run.
func (r *Recorder) ObserveCollection(source collector.Source, d time.Duration, err error) {
	status, code := statusSuccess, ""
	if err != nil {
		status, code = statusError, string(errors.CodeOf(err))
	}
	r.collectionTotal.WithLabelValues(source.String(), status, code).Inc()
	r.collectionDuration.WithLabelValues(source.String()).Observe(d.Seconds())
}

// ObserveFallback records that a pass fell back to sysfs.
func (r *Recorder) ObserveFallback() {
	r.fallbackTotal.Inc()
}

// ObserveLabelWrite records the outcome of writing the label file.
func (r *Recorder) ObserveLabelWrite(written bool, err error) {
	result := "written"
	switch {
	case err != nil:
		result = statusError
	case !written:
		result = "skipped"
	}
	r.labelWrites.WithLabelValues(result).Inc()
}

// ObserveRecord sets the gauges describing the published record.
func (r *Recorder) ObserveRecord(rec *features.Record) {
	r.devices.Set(float64(rec.DeviceCount()))
	r.npuPresent.Set(boolToFloat(rec.NPUPresent))

	r.driverInfo.Reset()
	if rec.DriverVersionFull != nil {
		r.driverInfo.WithLabelValues(*rec.DriverVersionFull, ptr.Deref(rec.NPUProduct, "")).Set(1)
	}
}

// ObserveRun stamps the end of a pass.
func (r *Recorder) ObserveRun(at time.Time) {
	r.lastRun.Set(float64(at.Unix()))
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The write goes through a temp file and a rename.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
