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

// Package hostmock provides an in-memory [hostlog.Host] that behaves like a
// hierarchical host logging system: dotted logger names, levels inherited
// from the nearest configured ancestor, and a root logger at WARNING.
//
// It counts every call the bridge makes, checks that the host lock is held
// during those calls, and can inject failures, which makes it suitable for
// tests of code that logs through hostlog.
package hostmock

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pjscruggs/hostlog"
)

// Host level values.
const (
	LevelNotSet   = 0
	LevelDebug    = 10
	LevelInfo     = 20
	LevelWarning  = 30
	LevelError    = 40
	LevelCritical = 50
)

// LevelName returns the host name of a level, e.g. "WARNING" or "Level 5".
func LevelName(level int) string {
	switch level {
	case LevelNotSet:
		return "NOTSET"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	}
	return fmt.Sprintf("Level %d", level)
}

// Record is a host record built by [Host.NewRecord].
type Record struct {
	Name    string
	Level   int
	File    string
	Line    int
	Message string
	Extra   map[string]any
	// Logger is the name of the logger that handled the record. It is empty
	// until the record is handled.
	Logger string
}

// Stats counts the calls made into a [Host].
type Stats struct {
	Locks         int64
	Lookups       int64
	EnabledChecks int64
	NewRecords    int64
	Handles       int64
	// Unlocked counts host calls made without the host lock held.
	Unlocked int64
}

type failure struct {
	err   error
	panic any
}

// Host is an in-memory host logging subsystem. The zero value is not
// usable; construct with [New].
type Host struct {
	gil  sync.Mutex
	held atomic.Bool

	mu       sync.Mutex
	levels   map[string]int
	loggers  map[string]*Logger
	records  []Record
	errs     []error
	failures map[hostlog.HostOp]failure

	locks         atomic.Int64
	lookups       atomic.Int64
	enabledChecks atomic.Int64
	newRecords    atomic.Int64
	handles       atomic.Int64
	unlocked      atomic.Int64
}

// New returns a host whose root logger is at [LevelWarning].
func New() *Host {
	return &Host{
		levels:   map[string]int{"": LevelWarning},
		loggers:  make(map[string]*Logger),
		failures: make(map[hostlog.HostOp]failure),
	}
}

// Lock acquires the host's global execution lock.
func (h *Host) Lock() {
	h.gil.Lock()
	h.held.Store(true)
	h.locks.Add(1)
}

// Unlock releases the host's global execution lock.
func (h *Host) Unlock() {
	h.held.Store(false)
	h.gil.Unlock()
}

// Held reports whether the host lock is currently held.
func (h *Host) Held() bool {
	return h.held.Load()
}

// checkCall records a call made without the lock and returns any injected
// failure for op.
func (h *Host) checkCall(op hostlog.HostOp) error {
	if !h.held.Load() {
		h.unlocked.Add(1)
	}
	h.mu.Lock()
	f, ok := h.failures[op]
	h.mu.Unlock()
	if !ok {
		return nil
	}
	if f.panic != nil {
		panic(f.panic)
	}
	return f.err
}

// SetLevel sets the level of the logger named name. Use "" for the root
// logger and [LevelNotSet] to inherit from the parent again.
func (h *Host) SetLevel(name string, level int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if level == LevelNotSet && name != "" {
		delete(h.levels, name)
		return
	}
	h.levels[name] = level
}

// EffectiveLevel returns the level of name or of its nearest ancestor with
// a level set.
func (h *Host) EffectiveLevel(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.effectiveLevelLocked(name)
}

func (h *Host) effectiveLevelLocked(name string) int {
	for {
		if level, ok := h.levels[name]; ok {
			return level
		}
		if name == "" {
			return LevelNotSet
		}
		idx := strings.LastIndexByte(name, '.')
		if idx < 0 {
			name = ""
		} else {
			name = name[:idx]
		}
	}
}

// Fail makes every later call of op return err. A nil err clears it.
func (h *Host) Fail(op hostlog.HostOp, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		delete(h.failures, op)
		return
	}
	h.failures[op] = failure{err: err}
}

// Panic makes every later call of op panic with value.
func (h *Host) Panic(op hostlog.HostOp, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures[op] = failure{panic: value}
}

// GetLogger implements [hostlog.Host]. Repeated calls for the same name
// return the same logger.
func (h *Host) GetLogger(name string) (hostlog.HostLogger, error) {
	h.lookups.Add(1)
	if err := h.checkCall(hostlog.OpGetLogger); err != nil {
		return nil, err
	}
	return h.Logger(name), nil
}

// Logger returns the logger named name without counting a lookup.
func (h *Host) Logger(name string) *Logger {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.loggers[name]
	if !ok {
		l = &Logger{host: h, name: name}
		h.loggers[name] = l
	}
	return l
}

// NewRecord implements [hostlog.Host].
func (h *Host) NewRecord(spec hostlog.RecordSpec) (hostlog.HostRecord, error) {
	h.newRecords.Add(1)
	if err := h.checkCall(hostlog.OpNewRecord); err != nil {
		return nil, err
	}
	return &Record{
		Name:    spec.Name,
		Level:   spec.Level,
		File:    spec.File,
		Line:    spec.Line,
		Message: spec.Message,
		Extra:   maps.Clone(spec.Extra),
	}, nil
}

// ReportError implements [hostlog.Host] by collecting err.
func (h *Host) ReportError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

// Records returns copies of the records handled so far, in order.
func (h *Host) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Errors returns the errors reported so far.
func (h *Host) Errors() []error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]error(nil), h.errs...)
}

// Stats returns the call counters.
func (h *Host) Stats() Stats {
	return Stats{
		Locks:         h.locks.Load(),
		Lookups:       h.lookups.Load(),
		EnabledChecks: h.enabledChecks.Load(),
		NewRecords:    h.newRecords.Load(),
		Handles:       h.handles.Load(),
		Unlocked:      h.unlocked.Load(),
	}
}

// ResetStats zeroes the call counters and forgets handled records and
// reported errors.
func (h *Host) ResetStats() {
	h.locks.Store(0)
	h.lookups.Store(0)
	h.enabledChecks.Store(0)
	h.newRecords.Store(0)
	h.handles.Store(0)
	h.unlocked.Store(0)
	h.mu.Lock()
	h.records = nil
	h.errs = nil
	h.mu.Unlock()
}

// ErrForeignRecord is returned by [Logger.Handle] for records this host did
// not build.
var ErrForeignRecord = errors.New("hostmock: record not created by this host")

// Logger is a host logger handle.
type Logger struct {
	host *Host
	name string
}

// Name returns the dotted logger name.
func (l *Logger) Name() string {
	return l.name
}

// IsEnabledFor implements [hostlog.HostLogger] against the live level
// configuration.
func (l *Logger) IsEnabledFor(level int) (bool, error) {
	l.host.enabledChecks.Add(1)
	if err := l.host.checkCall(hostlog.OpIsEnabledFor); err != nil {
		return false, err
	}
	return level >= l.host.EffectiveLevel(l.name), nil
}

// Handle implements [hostlog.HostLogger] by storing the record.
func (l *Logger) Handle(record hostlog.HostRecord) error {
	l.host.handles.Add(1)
	if err := l.host.checkCall(hostlog.OpHandle); err != nil {
		return err
	}
	rec, ok := record.(*Record)
	if !ok || rec == nil {
		return ErrForeignRecord
	}
	handled := *rec
	handled.Logger = l.name
	l.host.mu.Lock()
	l.host.records = append(l.host.records, handled)
	l.host.mu.Unlock()
	return nil
}

var (
	_ hostlog.Host       = (*Host)(nil)
	_ hostlog.HostLogger = (*Logger)(nil)
)
