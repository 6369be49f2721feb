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

import "sync"

// Host is the embedding environment's logging subsystem.
//
// The embedded [sync.Locker] is the host runtime's global execution lock.
// The bridge holds it around every call into the host and never around its
// own bookkeeping. All other methods are only called with the lock held.
type Host interface {
	sync.Locker

	// GetLogger looks up or creates the host logger named name, where name
	// uses the host's dotted hierarchy (e.g. "app.db").
	GetLogger(name string) (HostLogger, error)

	// NewRecord builds a host-native record from spec.
	NewRecord(spec RecordSpec) (HostRecord, error)

	// ReportError surfaces err on the host's own best-effort error
	// channel. It must not fail.
	ReportError(err error)
}

// HostLogger is an opaque handle to a host-side logger. Handles are cached
// and shared across goroutines; the host guarantees that is safe.
type HostLogger interface {
	// IsEnabledFor reports whether the logger currently accepts records at
	// the host severity level, according to the host's live configuration.
	IsEnabledFor(level int) (bool, error)

	// Handle dispatches a record built by [Host.NewRecord].
	Handle(record HostRecord) error
}

// HostRecord is a record constructed by the host. The bridge only passes it
// back to [HostLogger.Handle].
type HostRecord any

// RecordSpec carries the fields of a host record.
type RecordSpec struct {
	// Name is the dotted logger name.
	Name string
	// Level is the host severity from [HostLevel].
	Level int
	// File and Line locate the call site; empty and zero when unknown.
	File string
	Line int
	// Message is the fully formatted message text.
	Message string
	// Extra holds structured attributes and trace correlation fields. It
	// is nil when there are none.
	Extra map[string]any
}
