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

package hostlog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/metric"
)

// Caching selects what a [Bridge] remembers about host loggers between log
// calls.
type Caching int

const (
	// CachingDisabled looks up the host logger on every call.
	CachingDisabled Caching = iota
	// CachingHandles remembers host loggers per target but always asks the
	// host whether a record is enabled.
	CachingHandles
	// CachingHandlesAndLevels also remembers each logger's effective level,
	// so records the host would reject are dropped without taking the host
	// lock. Host level changes are only seen after [ResetHandle.Reset].
	CachingHandlesAndLevels
)

// String returns the configuration name of the caching mode.
func (c Caching) String() string {
	switch c {
	case CachingDisabled:
		return "disabled"
	case CachingHandles:
		return "handles"
	case CachingHandlesAndLevels:
		return "handles_and_levels"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (c Caching) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseCaching.
func (c *Caching) UnmarshalText(text []byte) error {
	parsed, err := ParseCaching(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCaching parses a caching mode name.
func ParseCaching(value string) (Caching, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "disabled", "off", "none", "nothing":
		return CachingDisabled, nil
	case "handles", "loggers":
		return CachingHandles, nil
	case "handles_and_levels", "handles-and-levels", "loggers_and_levels", "all":
		return CachingHandlesAndLevels, nil
	}
	return CachingDisabled, fmt.Errorf("%w: unknown caching mode %q", ErrInvalidConfig, value)
}

// Option configures a [Bridge] during [New].
//
// Options follow the functional options pattern and are applied in the order
// they are provided by the caller. Configuration sources ([WithEnv],
// [WithConfig]) are applied before the other options, so explicit options
// always win.
type Option func(*options)

type options struct {
	internalLogger   *slog.Logger
	meterProvider    metric.MeterProvider
	caching          *Caching
	namePrefix       *string
	traceCorrelation *bool
	useEnv           bool
	configs          []Config
}

// WithInternalLogger injects a logger for the bridge's own diagnostics such
// as host failures and configuration warnings. It must not route back into
// the bridge being configured.
func WithInternalLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.internalLogger = logger
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider used for the
// bridge counters. The global provider is used when omitted.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// WithCaching overrides the caching mode passed to [New].
func WithCaching(c Caching) Option {
	return func(o *options) {
		o.caching = &c
	}
}

// WithNamePrefix nests every host logger under prefix, so target "a::b"
// logs to "prefix.a.b". Cache and filter keys are unaffected.
func WithNamePrefix(prefix string) Option {
	trimmed := strings.Trim(strings.TrimSpace(prefix), ".")
	return func(o *options) {
		o.namePrefix = &trimmed
	}
}

// WithTraceCorrelation toggles copying the OpenTelemetry trace and span IDs
// of a record's context into the host record. Enabled by default.
func WithTraceCorrelation(enabled bool) Option {
	return func(o *options) {
		o.traceCorrelation = &enabled
	}
}

// WithEnv overlays configuration from HOSTLOG_* environment variables. See
// [ConfigFromEnv].
func WithEnv() Option {
	return func(o *options) {
		o.useEnv = true
	}
}

// WithConfig applies cfg. Multiple configs are layered in order.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.configs = append(o.configs, cfg.clone())
	}
}

// logDiagnostic emits internal diagnostic messages, guarding against nil
// loggers.
func logDiagnostic(logger *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}
