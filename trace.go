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

	"go.opentelemetry.io/otel/trace"
)

// Extra keys used for trace correlation on host records. They match the
// field names hierarchical host loggers conventionally use for OpenTelemetry
// correlation, so host formatters can reference them directly.
const (
	TraceIDKey      = "otelTraceID"
	SpanIDKey       = "otelSpanID"
	TraceSampledKey = "otelTraceSampled"
)

// TraceFields returns the trace correlation fields for ctx. ok is false when
// ctx carries no valid span context.
func TraceFields(ctx context.Context) (traceID, spanID string, sampled, ok bool) {
	if ctx == nil {
		return "", "", false, false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false, false
	}
	return sc.TraceID().String(), sc.SpanID().String(), sc.IsSampled(), true
}

// addTraceExtras adds trace correlation fields from ctx to extra, allocating
// it when needed.
func addTraceExtras(ctx context.Context, extra map[string]any) map[string]any {
	traceID, spanID, sampled, ok := TraceFields(ctx)
	if !ok {
		return extra
	}
	if extra == nil {
		extra = make(map[string]any, 3)
	}
	extra[TraceIDKey] = traceID
	extra[SpanIDKey] = spanID
	extra[TraceSampledKey] = sampled
	return extra
}
