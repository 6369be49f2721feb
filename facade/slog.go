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

package facade

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
)

// SlogHandler is a [slog.Handler] that delivers records to a [Registry]
// under a fixed target. slog levels are mapped with [LevelFromSlog].
type SlogHandler struct {
	reg    *Registry
	target string
	attrs  []slog.Attr
	prefix string
}

// NewSlogHandler returns a handler logging to the default registry under
// target.
func NewSlogHandler(target string) *SlogHandler {
	return defaultRegistry.SlogHandler(target)
}

// SlogHandler returns a handler logging to r under target.
func (r *Registry) SlogHandler(target string) *SlogHandler {
	return &SlogHandler{reg: r, target: target}
}

// Target reports the target records are logged under.
func (h *SlogHandler) Target() string {
	return h.target
}

// WithTarget returns a handler whose target is the current target extended
// by segment, e.g. "app" becomes "app::db".
func (h *SlogHandler) WithTarget(segment string) *SlogHandler {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return h
	}
	clone := *h
	if clone.target == "" {
		clone.target = segment
	} else {
		clone.target = clone.target + TargetSeparator + segment
	}
	return &clone
}

// Enabled implements [slog.Handler].
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.reg.Enabled(Metadata{Level: LevelFromSlog(level), Target: h.target})
}

// Handle implements [slog.Handler].
func (h *SlogHandler) Handle(ctx context.Context, r slog.Record) error {
	rec := Record{
		Metadata: Metadata{Level: LevelFromSlog(r.Level), Target: h.target},
		Message:  r.Message,
		Context:  ctx,
	}
	if r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := frames.Next()
		rec.File = frame.File
		rec.Line = frame.Line
	}
	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
		attrs = append(attrs, h.attrs...)
		r.Attrs(func(a slog.Attr) bool {
			attrs = appendFlattened(attrs, h.prefix, a)
			return true
		})
		rec.Attrs = attrs
	}
	h.reg.Log(&rec)
	return nil
}

// WithAttrs implements [slog.Handler].
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = appendFlattened(clone.attrs, h.prefix, a)
	}
	return &clone
}

// WithGroup implements [slog.Handler]. Grouped keys are flattened with dots.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// appendFlattened appends a to dst, expanding groups into dotted keys and
// dropping empty attributes as slog handlers are expected to.
func appendFlattened(dst []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return dst
		}
		inner := prefix
		if a.Key != "" {
			inner = prefix + a.Key + "."
		}
		for _, ga := range group {
			dst = appendFlattened(dst, inner, ga)
		}
		return dst
	}
	a.Key = prefix + a.Key
	return append(dst, a)
}

var _ slog.Handler = (*SlogHandler)(nil)
