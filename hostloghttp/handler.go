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

// Package hostloghttp exposes a small HTTP admin surface for a hostlog
// bridge.
//
// The handler serves:
//
//	POST /reset    clears the bridge's logger cache (204 No Content)
//	GET  /filters  returns the filter configuration as JSON
//
// Mount it under any prefix, typically next to other admin endpoints:
//
//	handle, _ := bridge.Install()
//	mux.Handle("/debug/hostlog/", http.StripPrefix("/debug/hostlog",
//	    hostloghttp.NewHandler(handle, hostloghttp.WithFilters(bridge))))
//
// Requests are traced with otelhttp unless [WithOTel] disables it.
package hostloghttp

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/pjscruggs/hostlog"
)

const instrumentationName = "github.com/pjscruggs/hostlog/hostloghttp"

// Resetter clears a logger cache. [*hostlog.ResetHandle] implements it.
type Resetter interface {
	Reset()
}

// FilterReporter reports a filter configuration. [*hostlog.Bridge]
// implements it.
type FilterReporter interface {
	Filters() hostlog.Filters
}

// Option configures [NewHandler].
type Option func(*config)

type config struct {
	filters        FilterReporter
	logger         *slog.Logger
	enableOTel     bool
	tracerProvider trace.TracerProvider
	propagators    propagation.TextMapPropagator
}

// WithFilters enables GET /filters backed by r.
func WithFilters(r FilterReporter) Option {
	return func(cfg *config) {
		cfg.filters = r
	}
}

// WithLogger sets the logger that records resets.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithOTel enables or disables otelhttp instrumentation. Enabled by default.
func WithOTel(enabled bool) Option {
	return func(cfg *config) {
		cfg.enableOTel = enabled
	}
}

// WithTracerProvider sets the tracer provider used by otelhttp.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *config) {
		cfg.tracerProvider = tp
	}
}

// WithPropagators overrides the propagators used by otelhttp.
func WithPropagators(p propagation.TextMapPropagator) Option {
	return func(cfg *config) {
		cfg.propagators = p
	}
}

// NewHandler returns the admin handler for resetter.
func NewHandler(resetter Resetter, opts ...Option) http.Handler {
	cfg := &config{
		logger:     slog.New(slog.DiscardHandler),
		enableOTel: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/reset", func(w http.ResponseWriter, req *http.Request) {
		resetter.Reset()
		cfg.logger.LogAttrs(req.Context(), slog.LevelInfo, "logger cache reset",
			slog.String("remote_addr", req.RemoteAddr),
		)
		w.WriteHeader(http.StatusNoContent)
	})
	if cfg.filters != nil {
		r.Get("/filters", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, cfg.filters.Filters())
		})
	}

	if !cfg.enableOTel {
		return r
	}
	return otelhttp.NewHandler(r, instrumentationName, otelOptions(cfg)...)
}

func otelOptions(cfg *config) []otelhttp.Option {
	var otelOpts []otelhttp.Option
	if cfg.tracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(cfg.tracerProvider))
	}
	if cfg.propagators != nil {
		otelOpts = append(otelOpts, otelhttp.WithPropagators(cfg.propagators))
	}
	otelOpts = append(otelOpts, otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
		return "hostlog " + r.Method + " " + r.URL.Path
	}))
	return otelOpts
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client may have gone away
	json.NewEncoder(w).Encode(v)
}
