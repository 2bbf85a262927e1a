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
	"errors"
	"fmt"
	"strconv"

	"k8s.io/utils/ptr"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/npu"
	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/version"
)

// ErrInvalidDeviceCount is returned by SetDevices for a non-positive count.
var ErrInvalidDeviceCount = errors.New("device count must be positive")

// Record is the feature set published for one node.
//
// NPUCount, NPUFamily and NPUProduct are either all set or all nil.
type Record struct {
	NPUPresent bool    `json:"npuPresent" yaml:"npuPresent"`
	NPUCount   *int    `json:"npuCount,omitempty" yaml:"npuCount,omitempty"`
	NPUFamily  *string `json:"npuFamily,omitempty" yaml:"npuFamily,omitempty"`
	NPUProduct *string `json:"npuProduct,omitempty" yaml:"npuProduct,omitempty"`

	DriverVersionFull     *string `json:"driverVersionFull,omitempty" yaml:"driverVersionFull,omitempty"`
	DriverVersionMajor    *string `json:"driverVersionMajor,omitempty" yaml:"driverVersionMajor,omitempty"`
	DriverVersionMinor    *string `json:"driverVersionMinor,omitempty" yaml:"driverVersionMinor,omitempty"`
	DriverVersionPatch    *string `json:"driverVersionPatch,omitempty" yaml:"driverVersionPatch,omitempty"`
	DriverVersionRevision *string `json:"driverVersionRevision,omitempty" yaml:"driverVersionRevision,omitempty"`
}

// NewRecord returns a record for a node without NPUs.
func NewRecord() *Record {
	return &Record{}
}

// SetDevices marks NPUs as present and sets count, product and family together.
// The record is left untouched on error.
func (r *Record) SetDevices(count int, product npu.Product) error {
	if count <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDeviceCount, count)
	}
	family, err := product.Family()
	if err != nil {
		return fmt.Errorf("failed to resolve family of %s: %w", product, err)
	}

	r.NPUPresent = true
	r.NPUCount = ptr.To(count)
	r.NPUFamily = ptr.To(family.String())
	r.NPUProduct = ptr.To(product.Label())
	return nil
}

// SetDriverVersion copies the parsed driver version into the record.
// Major, minor and patch are only set when v carries them.
func (r *Record) SetDriverVersion(v version.DriverVersion) {
	r.DriverVersionFull = ptr.To(v.Full)
	if v.HasComponents() {
		r.DriverVersionMajor = ptr.To(*v.Major)
		r.DriverVersionMinor = ptr.To(*v.Minor)
		r.DriverVersionPatch = ptr.To(*v.Patch)
	}
	if v.Revision != nil {
		r.DriverVersionRevision = ptr.To(*v.Revision)
	}
}

// HasDriverVersion reports whether any driver version field is set.
func (r *Record) HasDriverVersion() bool {
	return r.DriverVersionFull != nil || r.DriverVersionRevision != nil
}

// DeviceCount returns the number of NPUs, zero when none are present.
func (r *Record) DeviceCount() int {
	return ptr.Deref(r.NPUCount, 0)
}

// Labels returns the record as ordered labels, omitting unset fields.
func (r *Record) Labels() []Label {
	labels := []Label{{Key: KeyNPUPresent, Value: strconv.FormatBool(r.NPUPresent)}}

	if r.NPUCount != nil {
		labels = append(labels, Label{Key: KeyNPUCount, Value: strconv.Itoa(*r.NPUCount)})
	}

	for _, f := range r.stringFields() {
		if *f.value != nil {
			labels = append(labels, Label{Key: f.key, Value: **f.value})
		}
	}

	return labels
}

type stringField struct {
	key   string
	value **string
}

// stringFields lists the optional string fields in rendering order.
func (r *Record) stringFields() []stringField {
	return []stringField{
		{KeyNPUFamily, &r.NPUFamily},
		{KeyNPUProduct, &r.NPUProduct},
		{KeyDriverVersionFull, &r.DriverVersionFull},
		{KeyDriverVersionMajor, &r.DriverVersionMajor},
		{KeyDriverVersionMinor, &r.DriverVersionMinor},
		{KeyDriverVersionPatch, &r.DriverVersionPatch},
		{KeyDriverVersionRevision, &r.DriverVersionRevision},
	}
}
