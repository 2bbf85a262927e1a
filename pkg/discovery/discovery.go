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
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/collector"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/errors"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/features"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/header"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/metrics"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/serializer"
)

// Result is the outcome of a pass.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	RunID  string           `json:"runId" yaml:"runId"`
	Source collector.Source `json:"source" yaml:"source"`
	Record *features.Record `json:"record" yaml:"record"`
}

// labelWriter is implemented by serializers that report whether they wrote.
type labelWriter interface {
	Write(ctx context.Context, body []byte) (serializer.WriteResult, error)
}

// Discoverer runs discovery passes.
type Discoverer struct {
	Factory    collector.Factory
	Serializer serializer.Serializer
	Logger     *slog.Logger

	// Version is recorded in the result metadata.
	Version string

	// Metrics is optional. When MetricsFile is also set, metrics are written
	// there at the end of every pass, failed ones included.
	Metrics     *metrics.Recorder
	MetricsFile string
}

func (d *Discoverer) init() {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Factory == nil {
		d.Factory = collector.NewDefaultFactory()
	}
}

func (d *Discoverer) newResult() *Result {
	res := &Result{RunID: uuid.NewString()}
	res.Init(header.KindFeatureReport, d.Version, time.Now())
	return res
}

// Collect selects a record without publishing it.
func (d *Discoverer) Collect(ctx context.Context) (*Result, error) {
	d.init()
	res := d.newResult()
	return res, d.collect(ctx, d.Logger.With("run_id", res.RunID), res)
}

func (d *Discoverer) collect(ctx context.Context, log *slog.Logger, res *Result) error {
	rec, err := d.runCollector(ctx, log, collector.SourceDaemon, d.Factory.CreateDaemonCollector())
	if err == nil {
		res.Source, res.Record = collector.SourceDaemon, rec
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	log.Debug("failed to collect features from daemon, falling back to sysfs", "error", err)
	if d.Metrics != nil {
		d.Metrics.ObserveFallback()
	}

	rec, err = d.runCollector(ctx, log, collector.SourceSysfs, d.Factory.CreateSysfsCollector())
	if err != nil {
		log.Error("failed to collect features from sysfs", "error", err)
		code := errors.CodeOf(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		return errors.Wrap(code, "feature discovery failed", err)
	}

	res.Source, res.Record = collector.SourceSysfs, rec
	return nil
}

func (d *Discoverer) runCollector(ctx context.Context, log *slog.Logger, src collector.Source, c collector.Collector) (*features.Record, error) {
	log.Debug("collecting features", "source", src.String())
	start := time.Now()

	rec, err := c.Collect(ctx)
	if err == nil && rec == nil {
		err = errors.New(errors.ErrCodeInternal, fmt.Sprintf("%s collector returned no record", src))
	}
	if d.Metrics != nil {
		d.Metrics.ObserveCollection(src, time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	log.Debug("collected features", "source", src.String(), "npu_count", rec.DeviceCount())
	return rec, nil
}

// Run collects a record and publishes it through the Serializer.
func (d *Discoverer) Run(ctx context.Context) (*Result, error) {
	d.init()
	res := d.newResult()
	log := d.Logger.With("run_id", res.RunID)

	log.Info("starting feature discovery")
	defer d.flushMetrics(log)

	if err := d.collect(ctx, log, res); err != nil {
		return res, err
	}

	if err := res.Record.Validate(); err != nil {
		log.Warn("record contains invalid labels", "error", err)
	}

	if err := d.publish(ctx, log, res.Record); err != nil {
		return res, err
	}

	if d.Metrics != nil {
		d.Metrics.ObserveRecord(res.Record)
	}
	log.Info("feature discovery completed",
		"source", res.Source.String(),
		"npu_present", res.Record.NPUPresent,
		"npu_count", res.Record.DeviceCount())

	return res, nil
}

func (d *Discoverer) publish(ctx context.Context, log *slog.Logger, rec *features.Record) error {
	if d.Serializer == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "no serializer configured")
	}

	written, err := d.write(ctx, rec)
	if d.Metrics != nil {
		d.Metrics.ObserveLabelWrite(written, err)
	}
	if err != nil {
		log.Error("failed to publish labels", "error", err)
		return errors.Wrap(errors.ErrCodeInternal, "failed to publish labels", err)
	}
	return nil
}

// write prefers labelWriter so skipped writes are told apart from written ones.
func (d *Discoverer) write(ctx context.Context, rec *features.Record) (bool, error) {
	lw, ok := d.Serializer.(labelWriter)
	if !ok {
		err := d.Serializer.Serialize(ctx, rec)
		return err == nil, err
	}

	body, err := rec.LabelText()
	if err != nil {
		return false, fmt.Errorf("failed to render labels: %w", err)
	}
	wr, err := lw.Write(ctx, body)
	return wr.Written, err
}

func (d *Discoverer) flushMetrics(log *slog.Logger) {
	if d.Metrics == nil {
		return
	}
	d.Metrics.ObserveRun(time.Now())
	if d.MetricsFile == "" {
		return
	}
	if err := d.Metrics.WriteTextfile(d.MetricsFile); err != nil {
		log.Warn("failed to write metrics file", "path", d.MetricsFile, "error", err)
	}
}
