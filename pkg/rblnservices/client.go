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
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rebellions-sw/rbln-npu-feature-discovery/pkg/defaults"
)

const (
	serviceName = "rblnservices.RBLNServices"

	methodGetServiceableDeviceList = "/" + serviceName + "/GetServiceableDeviceList"
	methodGetVersion               = "/" + serviceName + "/GetVersion"
)

// ErrNotReady is returned by Dial when the connection fails before becoming ready.
var ErrNotReady = errors.New("rbln-daemon connection not ready")

// Option configures a Client.
type Option func(*Client)

// WithCallTimeout bounds each RPC. Non-positive values disable the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.callTimeout = d
	}
}

// WithDialOptions appends grpc dial options, e.g. a context dialer in tests.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Client) {
		c.dialOpts = append(c.dialOpts, opts...)
	}
}

// Client talks to rbln-daemon.
type Client struct {
	conn        *grpc.ClientConn
	callTimeout time.Duration
	dialOpts    []grpc.DialOption
}

// Dial connects to the daemon at target and waits until the connection is
// ready, the first connection attempt fails, or ctx is done.
func Dial(ctx context.Context, target string, opts ...Option) (*Client, error) {
	c := &Client{
		callTimeout: defaults.DaemonCallTimeout,
		dialOpts: []grpc.DialOption{
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithDefaultCallOptions(grpc.ForceCodec(codec{})),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	conn, err := grpc.NewClient(target, c.dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", target, err)
	}

	if err := waitReady(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", target, err)
	}

	c.conn = conn
	return c, nil
}

func waitReady(ctx context.Context, conn *grpc.ClientConn) error {
	conn.Connect()
	for {
		state := conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.TransientFailure, connectivity.Shutdown:
			return fmt.Errorf("%w: %s", ErrNotReady, state)
		case connectivity.Idle, connectivity.Connecting:
		}
		if !conn.WaitForStateChange(ctx, state) {
			return fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
		}
	}
}

// Close releases the connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.callTimeout)
}

// ServiceableDevices drains GetServiceableDeviceList and returns every device
// in stream order. Errors keep their gRPC status.
func (c *Client) ServiceableDevices(ctx context.Context) ([]*Device, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	desc := &grpc.StreamDesc{StreamName: "GetServiceableDeviceList", ServerStreams: true}
	stream, err := c.conn.NewStream(ctx, desc, methodGetServiceableDeviceList)
	if err != nil {
		return nil, fmt.Errorf("failed to open device list stream: %w", err)
	}
	if err := stream.SendMsg(&Empty{}); err != nil {
		return nil, fmt.Errorf("failed to send device list request: %w", err)
	}
	if err := stream.CloseSend(); err != nil {
		return nil, fmt.Errorf("failed to close device list request: %w", err)
	}

	var devices []*Device
	for {
		d := new(Device)
		err := stream.RecvMsg(d)
		if errors.Is(err, io.EOF) {
			return devices, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to receive device: %w", err)
		}
		devices = append(devices, d)
	}
}

// Version calls GetVersion for dev and returns the raw driver version.
func (c *Client) Version(ctx context.Context, dev *Device) (string, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	out := new(VersionInfo)
	if err := c.conn.Invoke(ctx, methodGetVersion, dev, out); err != nil {
		return "", fmt.Errorf("failed to GetVersion RPC: %w", err)
	}
	return out.DrvVersion, nil
}
