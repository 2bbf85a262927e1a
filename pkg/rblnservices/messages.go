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

package rblnservices

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldDevID      protowire.Number = 1
	fieldDrvVersion protowire.Number = 1
)

// message is implemented by every type sent over the wire.
type message interface {
	marshal() []byte
	unmarshal(b []byte) error
}

// Empty is the request of GetServiceableDeviceList.
type Empty struct{}

func (*Empty) marshal() []byte { return nil }

func (*Empty) unmarshal(b []byte) error {
	return walkFields(b, func(protowire.Number, protowire.Type, []byte, []byte) {})
}

// Device is a device that rbln-daemon can serve.
type Device struct {
	// DevID is the PCI device id in hex without 0x, e.g. "1220".
	DevID string

	// unknown holds the encoded fields not modeled above.
	unknown []byte
}

func (d *Device) marshal() []byte {
	var b []byte
	if d.DevID != "" {
		b = protowire.AppendTag(b, fieldDevID, protowire.BytesType)
		b = protowire.AppendString(b, d.DevID)
	}
	return append(b, d.unknown...)
}

func (d *Device) unmarshal(b []byte) error {
	*d = Device{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, raw, val []byte) {
		if num == fieldDevID && typ == protowire.BytesType {
			d.DevID = string(val)
			return
		}
		d.unknown = append(d.unknown, raw...)
	})
}

// VersionInfo is the response of GetVersion.
type VersionInfo struct {
	// DrvVersion is the raw kernel driver version, e.g. "1.2.3-rc1".
	DrvVersion string
}

func (v *VersionInfo) marshal() []byte {
	var b []byte
	if v.DrvVersion != "" {
		b = protowire.AppendTag(b, fieldDrvVersion, protowire.BytesType)
		b = protowire.AppendString(b, v.DrvVersion)
	}
	return b
}

func (v *VersionInfo) unmarshal(b []byte) error {
	*v = VersionInfo{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, _, val []byte) {
		if num == fieldDrvVersion && typ == protowire.BytesType {
			v.DrvVersion = string(val)
		}
	})
}

// walkFields calls fn for every field in b with the raw encoded field
// (tag included) and, for length-delimited fields, the payload.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, raw, val []byte)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("invalid field tag: %w", protowire.ParseError(n))
		}
		m := protowire.ConsumeFieldValue(num, typ, b[n:])
		if m < 0 {
			return fmt.Errorf("invalid value of field %d: %w", num, protowire.ParseError(m))
		}

		var val []byte
		if typ == protowire.BytesType {
			val, _ = protowire.ConsumeBytes(b[n:])
		}
		fn(num, typ, b[:n+m], val)
		b = b[n+m:]
	}
	return nil
}
