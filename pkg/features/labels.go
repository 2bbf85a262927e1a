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

package features

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/utils/ptr"
)

// Namespace prefixes every label key.
const Namespace = "rebellions.ai"

// Label keys in rendering order.
const (
	KeyNPUPresent            = Namespace + "/npu.present"
	KeyNPUCount              = Namespace + "/npu.count"
	KeyNPUFamily             = Namespace + "/npu.family"
	KeyNPUProduct            = Namespace + "/npu.product"
	KeyDriverVersionFull     = Namespace + "/driver-version.full"
	KeyDriverVersionMajor    = Namespace + "/driver-version.major"
	KeyDriverVersionMinor    = Namespace + "/driver-version.minor"
	KeyDriverVersionPatch    = Namespace + "/driver-version.patch"
	KeyDriverVersionRevision = Namespace + "/driver-version.revision"
)

var (
	// ErrMalformedLine is returned for a non-comment line without '='.
	ErrMalformedLine = errors.New("malformed label line")
	// ErrUnknownLabel is returned for a key this package does not publish.
	ErrUnknownLabel = errors.New("unknown label key")
	// ErrInconsistentRecord is returned when device fields are only partially set.
	ErrInconsistentRecord = errors.New("npu.count, npu.family and npu.product must be set together")
)

// Label is a single key=value pair of the label file.
type Label struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// String returns the label as a key=value line without the newline.
func (l Label) String() string {
	return l.Key + "=" + l.Value
}

// LabelText renders the record as label lines, one per set field.
func (r *Record) LabelText() ([]byte, error) {
	var buf bytes.Buffer
	for _, l := range r.Labels() {
		buf.WriteString(l.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ParseLabels reads label lines back into a record.
// Blank lines and lines starting with '#' are skipped.
func ParseLabels(rd io.Reader) (*Record, error) {
	r := NewRecord()
	scanner := bufio.NewScanner(rd)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w at line %d: %q", ErrMalformedLine, lineNo, line)
		}
		if err := r.setLabel(key, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	if err := r.checkDevices(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Record) setLabel(key, value string) error {
	switch key {
	case KeyNPUPresent:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", key, value, err)
		}
		r.NPUPresent = b
		return nil
	case KeyNPUCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", key, value, err)
		}
		r.NPUCount = ptr.To(n)
		return nil
	}

	for _, f := range r.stringFields() {
		if f.key == key {
			*f.value = ptr.To(value)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownLabel, key)
}

func (r *Record) checkDevices() error {
	set := 0
	for _, isSet := range []bool{r.NPUCount != nil, r.NPUFamily != nil, r.NPUProduct != nil} {
		if isSet {
			set++
		}
	}
	if set != 0 && set != 3 {
		return ErrInconsistentRecord
	}
	if set == 3 && !r.NPUPresent {
		return fmt.Errorf("%w: devices set while npu.present=false", ErrInconsistentRecord)
	}
	return nil
}

// Validate checks the record invariants and that every label is a valid
// Kubernetes label. All problems are joined into one error.
func (r *Record) Validate() error {
	var errs []error
	if err := r.checkDevices(); err != nil {
		errs = append(errs, err)
	}
	for _, l := range r.Labels() {
		for _, msg := range validation.IsQualifiedName(l.Key) {
			errs = append(errs, fmt.Errorf("label key %q: %s", l.Key, msg))
		}
		for _, msg := range validation.IsValidLabelValue(l.Value) {
			errs = append(errs, fmt.Errorf("label %s value %q: %s", l.Key, l.Value, msg))
		}
	}
	return errors.Join(errs...)
}
