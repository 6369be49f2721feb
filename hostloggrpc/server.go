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

package hostloggrpc

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/pjscruggs/hostlog"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "hostlog.v1.HostLogging"

const (
	methodGetLogger    = "/" + ServiceName + "/GetLogger"
	methodIsEnabledFor = "/" + ServiceName + "/IsEnabledFor"
	methodHandle       = "/" + ServiceName + "/Handle"
	methodReportError  = "/" + ServiceName + "/ReportError"
)

// hostLoggingServer is the handler type of the service.
type hostLoggingServer interface {
	GetLogger(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	IsEnabledFor(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
	Handle(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ReportError(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// serviceDesc describes hostlog.v1.HostLogging.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*hostLoggingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetLogger", Handler: unaryHandler(methodGetLogger, hostLoggingServer.GetLogger)},
		{MethodName: "IsEnabledFor", Handler: unaryHandler(methodIsEnabledFor, hostLoggingServer.IsEnabledFor)},
		{MethodName: "Handle", Handler: unaryHandler(methodHandle, hostLoggingServer.Handle)},
		{MethodName: "ReportError", Handler: unaryHandler(methodReportError, hostLoggingServer.ReportError)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hostlog/v1/host_logging.proto",
}

// unaryHandler adapts a typed server method to a grpc.MethodDesc handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(hostLoggingServer, context.Context, *Req) (Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(hostLoggingServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

const opReportError hostlog.HostOp = "report error"

// Server exposes a [hostlog.Host] as the hostlog.v1.HostLogging service.
// Every host call is made with the host lock held.
type Server struct {
	host    hostlog.Host
	logger  *slog.Logger
	loggers map[string]hostlog.HostLogger // guarded by the host lock
}

// NewServer returns a server for host.
func NewServer(host hostlog.Host, opts ...Option) *Server {
	cfg := applyOptions(opts)
	return &Server{
		host:    host,
		logger:  cfg.logger,
		loggers: make(map[string]hostlog.HostLogger),
	}
}

// Register adds the service to r.
func (s *Server) Register(r grpc.ServiceRegistrar) {
	r.RegisterService(&serviceDesc, s)
}

// withHost runs fn under the host lock and turns host failures, including
// panics, into gRPC status errors.
func (s *Server) withHost(op hostlog.HostOp, fn func() error) (err error) {
	s.host.Lock()
	defer s.host.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			s.logger.LogAttrs(context.Background(), slog.LevelDebug, "host call failed",
				slog.String("op", string(op)),
				slog.Any("error", err),
			)
			if _, ok := status.FromError(err); !ok {
				err = status.Error(codes.Internal, err.Error())
			}
		}
	}()
	return fn()
}

// hostLogger returns the host logger for name. Called with the host lock
// held.
func (s *Server) hostLogger(name string) (hostlog.HostLogger, error) {
	if logger, ok := s.loggers[name]; ok {
		return logger, nil
	}
	logger, err := s.host.GetLogger(name)
	if err != nil {
		return nil, err
	}
	s.loggers[name] = logger
	return logger, nil
}

// GetLogger looks up the host logger named in req.
func (s *Server) GetLogger(_ context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	err := s.withHost(hostlog.OpGetLogger, func() error {
		logger, err := s.host.GetLogger(req.GetValue())
		if err != nil {
			return err
		}
		s.loggers[req.GetValue()] = logger
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

// IsEnabledFor reports whether the named logger accepts the level.
func (s *Server) IsEnabledFor(_ context.Context, req *structpb.Struct) (*wrapperspb.BoolValue, error) {
	name, level := parseLevelQuery(req)
	var enabled bool
	err := s.withHost(hostlog.OpIsEnabledFor, func() error {
		logger, err := s.hostLogger(name)
		if err != nil {
			return err
		}
		enabled, err = logger.IsEnabledFor(level)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bool(enabled), nil
}

// Handle builds a host record from req and dispatches it to the logger
// named by the record.
func (s *Server) Handle(_ context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	spec := decodeRecord(req)
	err := s.withHost(hostlog.OpHandle, func() error {
		logger, err := s.hostLogger(spec.Name)
		if err != nil {
			return err
		}
		record, err := s.host.NewRecord(spec)
		if err != nil {
			return err
		}
		return logger.Handle(record)
	})
	if err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

// ReportError forwards a client-side failure to the host's error channel.
func (s *Server) ReportError(_ context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	err := s.withHost(opReportError, func() error {
		s.host.ReportError(&remoteError{msg: req.GetValue()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

// remoteError is an error reported by a client.
type remoteError struct{ msg string }

func (e *remoteError) Error() string { return e.msg }

var _ hostLoggingServer = (*Server)(nil)
