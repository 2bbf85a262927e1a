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

// Package rblnservices is a gRPC client for the rbln-daemon management service.
//
// The service is rblnservices.RBLNServices:
//
//	service RBLNServices {
//	    rpc GetServiceableDeviceList(Empty) returns (stream Device);
//	    rpc GetVersion(Device) returns (VersionInfo);
//	}
//
// Only the fields discovery needs are modeled (Device.dev_id and
// VersionInfo.drv_version, both field 1), as declared in rblnservices.proto.
// Messages are encoded with protowire through a codec forced on every call, so
// the package has no generated code. Fields of a received Device that are not
// modeled are kept and sent back unchanged when the Device is passed to GetVersion.
//
// To compare the contract with the daemon's own definition, generate the
// reference stubs into rblnservicespb and diff the .proto files:
//
//	go generate ./pkg/rblnservices
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.DaemonDialTimeout)
//	defer cancel()
//	c, err := rblnservices.Dial(ctx, "127.0.0.1:50051")
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//	devices, err := c.ServiceableDevices(ctx)
//
// The server side (ServiceDesc, RegisterRBLNServicesServer) exists for
// in-process fakes of the daemon in tests.
package rblnservices

//go:generate protoc --go_out=rblnservicespb --go_opt=paths=source_relative --go-grpc_out=rblnservicespb --go-grpc_opt=paths=source_relative rblnservices.proto
