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
	"errors"
	"log/slog"
	"sync/atomic"
)

// TargetSeparator separates the segments of a target path.
const TargetSeparator = "::"

// ErrSinkInstalled is returned by [Registry.SetSink] when a sink is already
// installed.
var ErrSinkInstalled = errors.New("facade: a sink is already installed")

// Metadata describes a log event before its message is formatted.
type Metadata struct {
	Level  Level
	Target string
}

// Record is a single log event delivered to a [Sink].
type Record struct {
	Metadata

	Message string
	// File and Line locate the call site. File is empty and Line is zero
	// when unknown.
	File string
	Line int
	// Attrs carries structured key/value data, already flattened to
	// dotted keys for grouped attributes.
	Attrs []slog.Attr
	// Context is the context the event was emitted with, or nil.
	Context context.Context
}

// Sink receives log events from a [Registry].
type Sink interface {
	// Enabled reports whether a record with md would be logged.
	Enabled(md Metadata) bool
	// Log delivers rec. Implementations must not retain rec after returning.
	Log(rec *Record)
	// Flush flushes any buffered records.
	Flush()
}

type sinkHolder struct{ sink Sink }

// Registry holds at most one installed [Sink] and the global severity gate
// applied before it is consulted. The zero value has no sink and a gate of
// [FilterOff]. A Registry is safe for concurrent use.
type Registry struct {
	sink atomic.Pointer[sinkHolder]
	max  atomic.Int64
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// helpers and [NewSlogHandler].
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.max.Store(int64(FilterOff))
	return r
}

// SetSink installs sink. It fails with [ErrSinkInstalled] when another sink
// is already installed; the registry is left unchanged in that case.
func (r *Registry) SetSink(sink Sink) error {
	if sink == nil {
		return errors.New("facade: nil sink")
	}
	if !r.sink.CompareAndSwap(nil, &sinkHolder{sink: sink}) {
		return ErrSinkInstalled
	}
	return nil
}

// Sink returns the installed sink or nil.
func (r *Registry) Sink() Sink {
	if h := r.sink.Load(); h != nil {
		return h.sink
	}
	return nil
}

// SetMaxLevel sets the global gate. Records the gate rejects never reach the
// sink.
func (r *Registry) SetMaxLevel(filter LevelFilter) {
	r.max.Store(int64(filter))
}

// MaxLevel returns the current global gate.
func (r *Registry) MaxLevel() LevelFilter {
	return LevelFilter(r.max.Load())
}

// Enabled reports whether a record with md passes the gate and the sink.
func (r *Registry) Enabled(md Metadata) bool {
	if !r.MaxLevel().Allows(md.Level) {
		return false
	}
	sink := r.Sink()
	return sink != nil && sink.Enabled(md)
}

// Log delivers rec to the installed sink when it passes the gate.
func (r *Registry) Log(rec *Record) {
	if rec == nil || !r.MaxLevel().Allows(rec.Level) {
		return
	}
	if sink := r.Sink(); sink != nil {
		sink.Log(rec)
	}
}

// Flush flushes the installed sink, if any.
func (r *Registry) Flush() {
	if sink := r.Sink(); sink != nil {
		sink.Flush()
	}
}
