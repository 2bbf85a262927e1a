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

package header

import (
	"testing"
	"time"
)

func TestHeader_Init(t *testing.T) {
	at := time.Date(2025, 12, 30, 11, 30, 0, 0, time.FixedZone("CET", 3600))

	var h Header
	h.SetMetadata("stale", "x")
	h.Init(KindFeatureReport, "v0.1.0", at)

	if h.Kind != KindFeatureReport {
		t.Errorf("Kind = %q, want %q", h.Kind, KindFeatureReport)
	}
	if h.APIVersion != APIVersion {
		t.Errorf("APIVersion = %q, want %q", h.APIVersion, APIVersion)
	}
	if got := h.Metadata[MetadataTimestamp]; got != "2025-12-30T10:30:00Z" {
		t.Errorf("timestamp = %q, want UTC RFC3339", got)
	}
	if got := h.Metadata[MetadataVersion]; got != "v0.1.0" {
		t.Errorf("version = %q, want v0.1.0", got)
	}
	if _, ok := h.Metadata["stale"]; ok {
		t.Error("Init should reset metadata")
	}
}

func TestHeader_InitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindFeatureReport, "", time.Now())

	if _, ok := h.Metadata[MetadataVersion]; ok {
		t.Error("version metadata should be omitted when empty")
	}
}

func TestKind_IsValid(t *testing.T) {
	if !KindFeatureReport.IsValid() {
		t.Error("KindFeatureReport should be valid")
	}
	if Kind("Snapshot").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}
