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

package serializer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
)

// ExpiryPrefix starts the expiry annotation line NFD understands.
const ExpiryPrefix = "# +expiry-time="

const labelFileMode = 0o644

// LabelFileWriter publishes records as an NFD local feature file.
type LabelFileWriter struct {
	// Path of the feature file. Its directory must exist.
	Path string

	// NoTimestamp omits the expiry annotation.
	NoTimestamp bool

	// Expiry is added to Now for the annotation.
	Expiry time.Duration

	// Now returns the current time; replaced in tests.
	Now func() time.Time
}

// NewLabelFileWriter returns a writer for path with the default expiry.
func NewLabelFileWriter(path string) *LabelFileWriter {
	return &LabelFileWriter{
		Path:   path,
		Expiry: defaults.LabelExpiry,
		Now:    time.Now,
	}
}

// WriteResult describes the outcome of a write.
type WriteResult struct {
	Path    string
	Written bool
	// Reason is set when Written is false.
	Reason string
}

// Serialize renders data, which must provide LabelText, and writes it with Write.
func (w *LabelFileWriter) Serialize(ctx context.Context, data any) error {
	lt, ok := data.(labelTexter)
	if !ok {
		return fmt.Errorf("label file requires label lines, got %T", data)
	}
	body, err := lt.LabelText()
	if err != nil {
		return fmt.Errorf("failed to render labels: %w", err)
	}
	_, err = w.Write(ctx, body)
	return err
}

// Write publishes body atomically. A missing target directory or an empty
// body skips the write without error.
func (w *LabelFileWriter) Write(ctx context.Context, body []byte) (WriteResult, error) {
	res := WriteResult{Path: w.Path}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if len(body) == 0 {
		res.Reason = "empty body"
		slog.Info("no labels to write, skipping", "path", w.Path)
		return res, nil
	}

	dir := filepath.Dir(w.Path)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Reason = "directory does not exist"
			slog.Info("label directory does not exist, skipping", "dir", dir)
			return res, nil
		}
		return res, fmt.Errorf("failed to stat label directory %s: %w", dir, err)
	}

	content := w.render(body)
	tmp := filepath.Join(dir, "."+filepath.Base(w.Path))

	if err := os.WriteFile(tmp, content, labelFileMode); err != nil {
		_ = os.Remove(tmp)
		return res, fmt.Errorf("failed to write temp label file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, w.Path); err != nil {
		_ = os.Remove(tmp)
		return res, fmt.Errorf("failed to publish label file %s: %w", w.Path, err)
	}

	res.Written = true
	slog.Debug("labels written", "path", w.Path, "bytes", len(content))
	return res, nil
}

func (w *LabelFileWriter) render(body []byte) []byte {
	if w.NoTimestamp {
		return body
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	expiry := now().Add(w.Expiry).Format(time.RFC3339)

	var b strings.Builder
	b.Grow(len(ExpiryPrefix) + len(expiry) + 1 + len(body))
	b.WriteString(ExpiryPrefix)
	b.WriteString(expiry)
	b.WriteByte('\n')
	b.Write(body)
	return []byte(b.String())
}

// ParseExpiry returns the expiry time of a feature file's content and whether
// the annotation was present on its first line.
func ParseExpiry(content []byte) (time.Time, bool, error) {
	first, _, _ := strings.Cut(string(content), "\n")
	v, ok := strings.CutPrefix(first, ExpiryPrefix)
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, true, fmt.Errorf("invalid expiry time %q: %w", v, err)
	}
	return t, true, nil
}
