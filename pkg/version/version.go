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

// Package version parses RBLN driver version strings such as "1.2.3-rc1" or
// "2.0.1~ubuntu22.04" into their semantic version and revision parts.
package version

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion     = errors.New("version string is empty")
	ErrTooFewComponents = errors.New("failed to split semver")
)

const (
	revisionDelimiters   = "-+~"
	semverComponentCount = 3
)

// DriverVersion is a driver version split into the parts published as labels.
// Components are kept as strings; the driver reports them verbatim and they are
// published verbatim.
type DriverVersion struct {
	// Full is the semantic version without the revision, e.g. "1.2.3".
	Full string `json:"full" yaml:"full"`

	// Major, Minor and Patch are set together when Full splits into at least
	// three components. A component may be empty, e.g. for "..".
	Major *string `json:"major,omitempty" yaml:"major,omitempty"`
	Minor *string `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch *string `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Revision is everything after the first '-', '+' or '~', if any.
	Revision *string `json:"revision,omitempty" yaml:"revision,omitempty"`
}

// HasComponents reports whether major, minor and patch were parsed.
func (v DriverVersion) HasComponents() bool {
	return v.Major != nil && v.Minor != nil && v.Patch != nil
}

// String returns the full semantic version followed by the revision, if any.
func (v DriverVersion) String() string {
	if v.Revision == nil {
		return v.Full
	}
	return v.Full + "-" + *v.Revision
}

// Split separates raw into the semantic version and the revision.
// The revision starts after the first occurrence of '-', '+' or '~'.
// When none of the delimiters is present revision is nil.
//
//	Split("1.2.3-rc1")    // "1.2.3", "rc1"
//	Split("1.2.3+build5") // "1.2.3", "build5"
//	Split("1.2.3")        // "1.2.3", nil
func Split(raw string) (semver string, revision *string) {
	s := strings.TrimSpace(raw)
	idx := strings.IndexAny(s, revisionDelimiters)
	if idx == -1 {
		return s, nil
	}
	rev := s[idx+1:]
	return s[:idx], &rev
}

// SplitSemver splits semver on dots into major, minor and patch.
// At least three components are required; any further components are ignored.
func SplitSemver(semver string) (major, minor, patch string, err error) {
	parts := strings.Split(semver, ".")
	if len(parts) < semverComponentCount {
		return "", "", "", fmt.Errorf("%w with dots: %q", ErrTooFewComponents, semver)
	}
	return parts[0], parts[1], parts[2], nil
}

// ParseDriverVersion runs Split and SplitSemver over raw.
//
// When SplitSemver fails the returned DriverVersion still carries Full and
// Revision alongside the error, so best-effort callers can publish what was
// understood.
func ParseDriverVersion(raw string) (DriverVersion, error) {
	semver, revision := Split(raw)
	if semver == "" && revision == nil {
		return DriverVersion{}, ErrEmptyVersion
	}

	v := DriverVersion{
		Full:     semver,
		Revision: revision,
	}

	major, minor, patch, err := SplitSemver(semver)
	if err != nil {
		return v, err
	}
	v.Major, v.Minor, v.Patch = &major, &minor, &patch

	return v, nil
}
