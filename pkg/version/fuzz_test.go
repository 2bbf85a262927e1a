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

package version

import (
	"strings"
	"testing"
)

// FuzzParseDriverVersion performs fuzz testing on ParseDriverVersion to find edge cases
func FuzzParseDriverVersion(f *testing.F) {
	f.Add("1.2.3")
	f.Add("1.2.3-rc1")
	f.Add("1.2.3+build5")
	f.Add("1.2.3~ubuntu22.04")
	f.Add("1.2.3.4")
	f.Add("1.2")
	f.Add("")
	f.Add("-")
	f.Add("~~~")
	f.Add("..")
	f.Add("...-")
	f.Add("  1.2.3  ")

	f.Fuzz(func(t *testing.T, input string) {
		// ParseDriverVersion should never panic
		v, err := ParseDriverVersion(input)

		// Full never contains a revision delimiter
		if strings.ContainsAny(v.Full, revisionDelimiters) {
			t.Errorf("ParseDriverVersion(%q) Full %q contains a delimiter", input, v.Full)
		}

		if err == nil {
			if !v.HasComponents() {
				t.Fatalf("ParseDriverVersion(%q) succeeded without components", input)
			}
			// Components are a prefix of Full
			prefix := *v.Major + "." + *v.Minor + "." + *v.Patch
			if !strings.HasPrefix(v.Full, prefix) {
				t.Errorf("ParseDriverVersion(%q) components %q do not prefix %q", input, prefix, v.Full)
			}
		} else if v.HasComponents() {
			t.Errorf("ParseDriverVersion(%q) returned components alongside error %v", input, err)
		}
	})
}
