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
	"log/slog"
	"sync/atomic"

	"github.com/pjscruggs/hostlog/facade"
)

// Bridge is a [facade.Sink] that forwards records into a [Host]'s logging
// subsystem.
//
// Filtering happens in two stages that never touch the host: the bridge's
// own filter table (a default plus per-target overrides) and, when caching
// levels, the host's effective level learned on an earlier call. Records
// that pass are re-checked against the host's live configuration under the
// host lock before a host record is built and dispatched.
//
// Configure a Bridge with [Bridge.Filter] and [Bridge.FilterTarget] before
// installing it. A Bridge is safe for concurrent use once installed.
type Bridge struct {
	host             Host
	caching          Caching
	filters          filterTable
	cache            *cacheRoot
	prefix           string
	traceCorrelation bool
	internalLogger   *slog.Logger
	metrics          *bridgeMetrics
	frozen           atomic.Bool
}

// New builds a bridge to host using the given caching mode. The default
// filter is [facade.FilterDebug] with no target overrides.
func New(host Host, caching Caching, opts ...Option) (*Bridge, error) {
	if host == nil {
		return nil, ErrNilHost
	}

	builder := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(builder)
		}
	}

	internalLogger := builder.internalLogger
	if internalLogger == nil {
		internalLogger = slog.New(slog.DiscardHandler)
	}

	var cfg Config
	if builder.useEnv {
		envCfg, err := cachedConfigFromEnv(internalLogger)
		if err != nil {
			return nil, err
		}
		cfg = envCfg
	}
	for _, layer := range builder.configs {
		cfg = cfg.Merge(layer)
	}

	b := &Bridge{
		host:             host,
		caching:          caching,
		filters:          newFilterTable(facade.FilterDebug),
		cache:            newCacheRoot(),
		traceCorrelation: true,
		internalLogger:   internalLogger,
		metrics:          newBridgeMetrics(builder.meterProvider),
	}

	cfg.applyFilters(&b.filters)
	if cfg.Caching != nil {
		b.caching = *cfg.Caching
	}
	if cfg.Prefix != nil {
		b.prefix = *cfg.Prefix
	}

	if builder.caching != nil {
		b.caching = *builder.caching
	}
	if builder.namePrefix != nil {
		b.prefix = *builder.namePrefix
	}
	if builder.traceCorrelation != nil {
		b.traceCorrelation = *builder.traceCorrelation
	}

	return b, nil
}

// Filter sets the default filter applied to targets without an override.
// It has no effect once the bridge is installed.
func (b *Bridge) Filter(filter facade.LevelFilter) *Bridge {
	if b.rejectFrozen("Filter") {
		return b
	}
	b.filters.top = filter
	return b
}

// FilterTarget sets the filter for target and every target below it that
// has no more specific override. The last call for a target wins. It has no
// effect once the bridge is installed.
func (b *Bridge) FilterTarget(target string, filter facade.LevelFilter) *Bridge {
	if b.rejectFrozen("FilterTarget") {
		return b
	}
	b.filters.overrides[target] = filter
	return b
}

// rejectFrozen reports whether the filter table may no longer change.
func (b *Bridge) rejectFrozen(method string) bool {
	if !b.frozen.Load() {
		return false
	}
	logDiagnostic(b.internalLogger, slog.LevelWarn, "filter change ignored after install", slog.String("method", method))
	return true
}

// Caching reports the bridge's caching mode.
func (b *Bridge) Caching() Caching {
	return b.caching
}

// Filters returns a snapshot of the filter configuration.
func (b *Bridge) Filters() Filters {
	return b.filters.snapshot()
}

// MaxLevel returns the most permissive filter any target can resolve to.
// It is the gate installed on the facade registry.
func (b *Bridge) MaxLevel() facade.LevelFilter {
	return b.filters.maxLevel()
}

// Enabled implements [facade.Sink]. It never calls into the host.
func (b *Bridge) Enabled(md facade.Metadata) bool {
	return b.enabled(md, b.lookup(md.Target))
}

// lookup returns the cached entry for target, or nil when caching is off.
func (b *Bridge) lookup(target string) *cacheEntry {
	if b.caching == CachingDisabled {
		return nil
	}
	return b.cache.lookup(target)
}

// enabled applies the cached host level, if known, and the filter table.
// A missing cache entry never suppresses a record.
func (b *Bridge) enabled(md facade.Metadata, entry *cacheEntry) bool {
	cacheFilter := facade.FilterTrace
	if entry != nil {
		cacheFilter = entry.filter
	}
	return cacheFilter.Allows(md.Level) && b.filters.resolve(md.Target).Allows(md.Level)
}

// Log implements [facade.Sink]. Failures inside the host are reported to
// [Host.ReportError]; Log itself never fails.
func (b *Bridge) Log(rec *facade.Record) {
	if rec == nil {
		return
	}
	ctx := rec.Context
	if ctx == nil {
		ctx = context.Background()
	}

	entry := b.lookup(rec.Target)
	if !b.enabled(rec.Metadata, entry) {
		b.metrics.drop(ctx, dropFiltered)
		return
	}
	if b.caching != CachingDisabled {
		if entry != nil {
			b.metrics.inc(ctx, b.metrics.cacheHits)
		} else {
			b.metrics.inc(ctx, b.metrics.cacheMisses)
		}
	}

	if learned := b.emit(ctx, rec, entry); learned != nil {
		b.cache.store(rec.Target, learned)
	}
}

// Flush implements [facade.Sink]. Buffering belongs to the host, so there
// is nothing to flush.
func (b *Bridge) Flush() {}

// hostFailure is a host call that failed or panicked.
type hostFailure struct {
	op  HostOp
	err error
}

// hostOutcome is what a locked exchange with the host produced. Metrics and
// diagnostics are derived from it once the lock is released.
type hostOutcome struct {
	learned    *cacheEntry
	lookedUp   bool
	dispatched bool
	disabled   bool
	failures   []hostFailure
}

// emit performs the host side of a log call. It returns the cache entry to
// publish when a logger was freshly looked up and caching is enabled, or nil.
func (b *Bridge) emit(ctx context.Context, rec *facade.Record, cached *cacheEntry) *cacheEntry {
	spec := b.recordSpec(rec)
	out := b.callHost(rec.Target, spec, cached)

	if out.lookedUp {
		b.metrics.inc(ctx, b.metrics.hostLookups)
	}
	switch {
	case out.dispatched:
		b.metrics.inc(ctx, b.metrics.dispatched)
	case out.disabled:
		b.metrics.drop(ctx, dropHostDisabled)
	}
	for _, f := range out.failures {
		b.recordHostError(ctx, rec.Target, f)
	}
	return out.learned
}

// callHost holds the host lock only while talking to the host.
func (b *Bridge) callHost(target string, spec RecordSpec, cached *cacheEntry) (out hostOutcome) {
	b.host.Lock()
	defer b.host.Unlock()

	op := OpGetLogger
	defer func() {
		if r := recover(); r != nil {
			out.learned = nil
			out.failures = append(out.failures, b.reportToHost(op, target, &panicError{value: r}))
		}
	}()

	var logger HostLogger
	fresh := false
	if cached != nil {
		logger = cached.logger
	} else {
		out.lookedUp = true
		l, err := b.host.GetLogger(spec.Name)
		if err != nil {
			out.failures = append(out.failures, b.reportToHost(op, target, err))
			return out
		}
		logger, fresh = l, true
	}

	op = OpIsEnabledFor
	ok, err := logger.IsEnabledFor(spec.Level)
	if err != nil {
		out.failures = append(out.failures, b.reportToHost(op, target, err))
		return out
	}
	if ok {
		op = OpNewRecord
		record, err := b.host.NewRecord(spec)
		if err != nil {
			out.failures = append(out.failures, b.reportToHost(op, target, err))
			return out
		}
		op = OpHandle
		if err := logger.Handle(record); err != nil {
			out.failures = append(out.failures, b.reportToHost(op, target, err))
			return out
		}
		out.dispatched = true
	} else {
		out.disabled = true
	}

	if !fresh || b.caching == CachingDisabled {
		return out
	}

	filter := facade.FilterTrace
	if b.caching == CachingHandlesAndLevels {
		op = OpProbeLevel
		probed, err := probeEffectiveFilter(logger)
		if err != nil {
			out.failures = append(out.failures, b.reportToHost(op, target, err))
		} else {
			filter = probed
		}
	}
	out.learned = &cacheEntry{logger: logger, filter: filter}
	return out
}

// reportToHost hands a failed host interaction to the host's error channel.
// Called with the host lock held.
func (b *Bridge) reportToHost(op HostOp, target string, err error) hostFailure {
	hostErr := &HostError{Op: op, Target: target, Err: err}
	func() {
		defer func() { _ = recover() }()
		b.host.ReportError(hostErr)
	}()
	return hostFailure{op: op, err: err}
}

// recordHostError counts and logs a host failure. A failed level probe does
// not drop the record it followed.
func (b *Bridge) recordHostError(ctx context.Context, target string, f hostFailure) {
	b.metrics.inc(ctx, b.metrics.hostErrors)
	if f.op != OpProbeLevel {
		b.metrics.drop(ctx, dropHostError)
	}
	logDiagnostic(b.internalLogger, slog.LevelDebug, "host call failed",
		slog.String("op", string(f.op)),
		slog.String("target", target),
		slog.Any("error", f.err),
	)
}

var _ facade.Sink = (*Bridge)(nil)
