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
	"os"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

// protoFieldNumber returns the number of field in message as declared in
// rblnservices.proto.
func protoFieldNumber(t *testing.T, src, message, field string) protowire.Number {
	t.Helper()
	body := regexp.MustCompile(`(?s)message\s+` + message + `\s*\{(.*?)\}`).FindStringSubmatch(src)
	require.NotNil(t, body, "message %s not declared", message)

	m := regexp.MustCompile(`\b` + field + `\s*=\s*(\d+)\s*;`).FindStringSubmatch(body[1])
	require.NotNil(t, m, "field %s.%s not declared", message, field)

	n, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	return protowire.Number(n)
}

func TestProtoContract(t *testing.T) {
	b, err := os.ReadFile("rblnservices.proto")
	require.NoError(t, err)
	src := string(b)

	assert.Equal(t, fieldDevID, protoFieldNumber(t, src, "Device", "dev_id"))
	assert.Equal(t, fieldDrvVersion, protoFieldNumber(t, src, "VersionInfo", "drv_version"))

	pkg := regexp.MustCompile(`(?m)^package\s+(\w+)\s*;`).FindStringSubmatch(src)
	svc := regexp.MustCompile(`service\s+(\w+)\s*\{`).FindStringSubmatch(src)
	require.NotNil(t, pkg)
	require.NotNil(t, svc)
	assert.Equal(t, serviceName, pkg[1]+"."+svc[1])

	assert.Regexp(t, `rpc\s+GetServiceableDeviceList\s*\(\s*Empty\s*\)\s*returns\s*\(\s*stream\s+Device\s*\)`, src)
	assert.Regexp(t, `rpc\s+GetVersion\s*\(\s*Device\s*\)\s*returns\s*\(\s*VersionInfo\s*\)`, src)
}
