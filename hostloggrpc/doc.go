// Copyright 2025 Patrick J. Scruggs
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

// Package hostloggrpc carries the host side of hostlog over gRPC, so a
// process can log into a host logging subsystem that lives in another
// process.
//
// A [Server] exposes a local [hostlog.Host] as the hostlog.v1.HostLogging
// service. A [Client] implements [hostlog.Host] on top of a connection to
// that service and can be handed to [hostlog.New] like any local host:
//
//	srv := grpc.NewServer(hostloggrpc.ServerOptions()...)
//	hostloggrpc.NewServer(host).Register(srv)
//
//	conn, err := grpc.NewClient(target, append(
//	    []grpc.DialOption{grpc.WithTransportCredentials(creds)},
//	    hostloggrpc.DialOptions()...,
//	)...)
//	if err != nil {
//	    // handle error
//	}
//	bridge, err := hostlog.New(hostloggrpc.NewClient(conn), hostlog.CachingHandlesAndLevels)
//
// Messages use the protobuf well-known types, so no generated code is
// needed on either side. Extra fields travel as a [structpb.Struct]; values
// structpb cannot represent are sent as their fmt.Sprint text and numbers
// arrive at the host as float64.
//
// [ServerOptions] and [DialOptions] install otelgrpc StatsHandlers unless
// [WithOTel] disables them.
package hostloggrpc
