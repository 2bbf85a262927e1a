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

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
	cerrors "github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/errors"
)

// Config is the configuration of a discovery pass.
type Config struct {
	// DaemonURL is the rbln-daemon endpoint. An http:// or https:// prefix is
	// accepted and stripped by Normalize.
	DaemonURL string `yaml:"rblnDaemonURL"`

	// OutputFile is the NFD feature file to publish.
	OutputFile string `yaml:"outputFile"`

	// NoTimestamp omits the expiry annotation.
	NoTimestamp bool `yaml:"noTimestamp"`

	// SysfsRoot is where sysfs is mounted.
	SysfsRoot string `yaml:"sysfsRoot"`

	// MetricsFile, when set, receives Prometheus metrics in text format.
	MetricsFile string `yaml:"metricsFile,omitempty"`

	DaemonDialTimeout time.Duration `yaml:"daemonDialTimeout"`
	DaemonTimeout     time.Duration `yaml:"daemonTimeout"`

	LogLevel string `yaml:"logLevel,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DaemonURL:         defaults.DaemonAddress,
		OutputFile:        defaults.OutputFile,
		SysfsRoot:         defaults.SysfsRoot,
		DaemonDialTimeout: defaults.DaemonDialTimeout,
		DaemonTimeout:     defaults.DaemonCallTimeout,
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeNotFound, fmt.Sprintf("failed to open config %s", path), err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults. Empty input yields the defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "failed to parse config", err)
	}
	return cfg, nil
}

// Normalize cleans values that have accepted alternate spellings.
func (c *Config) Normalize() {
	c.DaemonURL = NormalizeEndpoint(c.DaemonURL)
	c.OutputFile = strings.TrimSpace(c.OutputFile)
	c.SysfsRoot = strings.TrimSpace(c.SysfsRoot)
	c.MetricsFile = strings.TrimSpace(c.MetricsFile)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.DaemonURL == "" {
		errs = append(errs, errors.New("rbln daemon url must not be empty"))
	}
	if c.OutputFile == "" {
		errs = append(errs, errors.New("output file must not be empty"))
	}
	if c.SysfsRoot == "" {
		errs = append(errs, errors.New("sysfs root must not be empty"))
	}
	if c.DaemonDialTimeout <= 0 {
		errs = append(errs, fmt.Errorf("daemon dial timeout must be positive, got %s", c.DaemonDialTimeout))
	}
	if c.DaemonTimeout <= 0 {
		errs = append(errs, fmt.Errorf("daemon timeout must be positive, got %s", c.DaemonTimeout))
	}
	if len(errs) > 0 {
		return cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid configuration", errors.Join(errs...))
	}
	return nil
}

// NormalizeEndpoint strips an http:// or https:// prefix; gRPC dials host:port.
func NormalizeEndpoint(addr string) string {
	addr = strings.TrimSpace(addr)
	for _, scheme := range []string{"http://", "https://"} {
		if rest, ok := strings.CutPrefix(addr, scheme); ok {
			return rest
		}
	}
	return addr
}
