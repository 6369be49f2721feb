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
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"

	"github.com/pjscruggs/hostlog"
)

// DefaultCallTimeout bounds each RPC a [Client] makes when the caller does
// not choose a timeout.
const DefaultCallTimeout = 5 * time.Second

// Option configures servers, clients and the option helpers.
type Option func(*config)

type config struct {
	logger         *slog.Logger
	enableOTel     bool
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	propagators    propagation.TextMapPropagator
	callTimeout    time.Duration
}

func defaultConfig() *config {
	return &config{
		logger:      slog.New(slog.DiscardHandler),
		enableOTel:  true,
		callTimeout: DefaultCallTimeout,
	}
}

func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithLogger sets the logger used for diagnostics about failed host calls.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithOTel enables or disables the otelgrpc StatsHandlers. Enabled by
// default.
func WithOTel(enabled bool) Option {
	return func(cfg *config) {
		cfg.enableOTel = enabled
	}
}

// WithTracerProvider sets the tracer provider used by the StatsHandlers.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *config) {
		cfg.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider used by the StatsHandlers.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *config) {
		cfg.meterProvider = mp
	}
}

// WithPropagators overrides the propagators used by the StatsHandlers.
func WithPropagators(p propagation.TextMapPropagator) Option {
	return func(cfg *config) {
		cfg.propagators = p
	}
}

// WithCallTimeout bounds each RPC made by a [Client]. Non-positive values
// disable the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.callTimeout = d
	}
}

// ServerOptions returns grpc.ServerOptions that install the otelgrpc server
// StatsHandler.
func ServerOptions(opts ...Option) []grpc.ServerOption {
	cfg := applyOptions(opts)
	var serverOpts []grpc.ServerOption
	if cfg.enableOTel {
		serverOpts = append(serverOpts, grpc.StatsHandler(otelgrpc.NewServerHandler(statsHandlerOptions(cfg)...)))
	}
	return serverOpts
}

// DialOptions returns grpc.DialOptions that identify the client as hostlog
// and install the otelgrpc client StatsHandler.
func DialOptions(opts ...Option) []grpc.DialOption {
	cfg := applyOptions(opts)
	dialOpts := []grpc.DialOption{grpc.WithUserAgent(hostlog.UserAgent)}
	if cfg.enableOTel {
		dialOpts = append(dialOpts, grpc.WithStatsHandler(otelgrpc.NewClientHandler(statsHandlerOptions(cfg)...)))
	}
	return dialOpts
}

func statsHandlerOptions(cfg *config) []otelgrpc.Option {
	var opts []otelgrpc.Option
	if cfg.tracerProvider != nil {
		opts = append(opts, otelgrpc.WithTracerProvider(cfg.tracerProvider))
	}
	if cfg.meterProvider != nil {
		opts = append(opts, otelgrpc.WithMeterProvider(cfg.meterProvider))
	}
	if cfg.propagators != nil {
		opts = append(opts, otelgrpc.WithPropagators(cfg.propagators))
	}
	return opts
}
