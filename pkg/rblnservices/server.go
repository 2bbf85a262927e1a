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

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RBLNServicesServer is the server API of the daemon service.
type RBLNServicesServer interface {
	GetServiceableDeviceList(*Empty, grpc.ServerStreamingServer[Device]) error
	GetVersion(context.Context, *Device) (*VersionInfo, error)
}

// UnimplementedRBLNServicesServer answers every call with codes.Unimplemented.
// Embed it to implement a subset of the service.
type UnimplementedRBLNServicesServer struct{}

func (UnimplementedRBLNServicesServer) GetServiceableDeviceList(*Empty, grpc.ServerStreamingServer[Device]) error {
	return status.Error(codes.Unimplemented, "method GetServiceableDeviceList not implemented")
}

func (UnimplementedRBLNServicesServer) GetVersion(context.Context, *Device) (*VersionInfo, error) {
	return nil, status.Error(codes.Unimplemented, "method GetVersion not implemented")
}

// NewServer returns a grpc.Server that encodes messages with this package's codec.
func NewServer(opts ...grpc.ServerOption) *grpc.Server {
	return grpc.NewServer(append([]grpc.ServerOption{grpc.ForceServerCodec(codec{})}, opts...)...)
}

// RegisterRBLNServicesServer registers srv on s. s should come from NewServer.
func RegisterRBLNServicesServer(s grpc.ServiceRegistrar, srv RBLNServicesServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes rblnservices.RBLNServices.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RBLNServicesServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetVersion",
			Handler:    getVersionHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetServiceableDeviceList",
			Handler:       getServiceableDeviceListHandler,
			ServerStreams: true,
		},
	},
	Metadata: "rblnservices.proto",
}

func getVersionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Device)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RBLNServicesServer).GetVersion(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: methodGetVersion,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RBLNServicesServer).GetVersion(ctx, req.(*Device))
	}
	return interceptor(ctx, in, info, handler)
}

func getServiceableDeviceListHandler(srv any, stream grpc.ServerStream) error {
	in := new(Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(RBLNServicesServer).GetServiceableDeviceList(in, &grpc.GenericServerStream[Empty, Device]{ServerStream: stream})
}
