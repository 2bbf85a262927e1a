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

// Package rblnservicestest runs an in-memory rbln-daemon for tests.
//
//	d := rblnservicestest.NewDaemon(t, &fakeServer{})
//	c, err := rblnservices.Dial(ctx, d.Target, d.ClientOption())
package rblnservicestest

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/rblnservices"
)

const bufSize = 1 << 20

// Target is the address clients dial; the context dialer ignores it.
const Target = "passthrough:///rbln-daemon"

// Daemon is an rbln-daemon served over an in-memory listener.
type Daemon struct {
	Target string

	listener *bufconn.Listener
	server   *grpc.Server
}

// NewDaemon serves srv until the test ends.
func NewDaemon(t testing.TB, srv rblnservices.RBLNServicesServer) *Daemon {
	t.Helper()

	d := &Daemon{
		Target:   Target,
		listener: bufconn.Listen(bufSize),
		server:   rblnservices.NewServer(),
	}
	rblnservices.RegisterRBLNServicesServer(d.server, srv)

	go func() {
		_ = d.server.Serve(d.listener)
	}()
	t.Cleanup(d.Stop)

	return d
}

// Stop shuts the server down and closes the listener. Further dials fail.
func (d *Daemon) Stop() {
	d.server.Stop()
	_ = d.listener.Close()
}

// DialOption routes connections to the in-memory listener.
func (d *Daemon) DialOption() grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return d.listener.DialContext(ctx)
	})
}

// ClientOption is DialOption wrapped for rblnservices.Dial.
func (d *Daemon) ClientOption() rblnservices.Option {
	return rblnservices.WithDialOptions(d.DialOption())
}
