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

package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
)

// ErrTooLarge is returned for attributes exceeding the configured maximum size.
var ErrTooLarge = errors.New("attribute exceeds maximum size")

// Option configures a Reader.
type Option func(*Reader)

// Reader reads sysfs attribute files with a size limit.
type Reader struct {
	maxSize int
}

// WithMaxSize sets the maximum attribute size in bytes.
// Default is defaults.MaxAttributeSize.
func WithMaxSize(size int) Option {
	return func(r *Reader) {
		r.maxSize = size
	}
}

// NewReader creates a Reader with the provided options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		maxSize: defaults.MaxAttributeSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadAttribute returns the trimmed content of the attribute at path.
func (r *Reader) ReadAttribute(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("attribute path cannot be empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open attribute %q: %w", path, err)
	}
	defer f.Close()

	// one extra byte tells an exact fit from an overflow
	b, err := io.ReadAll(io.LimitReader(f, int64(r.maxSize)+1))
	if err != nil {
		return "", fmt.Errorf("failed to read attribute %q: %w", path, err)
	}
	if len(b) > r.maxSize {
		return "", fmt.Errorf("%w: %q is larger than %d bytes", ErrTooLarge, path, r.maxSize)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("content of attribute %q is not valid UTF-8", path)
	}

	return strings.TrimSpace(string(b)), nil
}

// ReadOptionalAttribute is ReadAttribute for attributes that may not exist.
// A missing attribute yields ok == false and no error.
func (r *Reader) ReadOptionalAttribute(path string) (value string, ok bool, err error) {
	value, err = r.ReadAttribute(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Exists reports whether path exists. Errors other than non-existence are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %q: %w", path, err)
}
