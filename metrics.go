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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/pjscruggs/hostlog"

// Drop reasons recorded on the hostlog.records.dropped counter.
const (
	dropFiltered     = "filtered"
	dropHostDisabled = "host_disabled"
	dropHostError    = "host_error"
)

var dropReasonKey = attribute.Key("reason")

// bridgeMetrics holds the counters a bridge reports. The zero value is not
// usable; construct with newBridgeMetrics.
type bridgeMetrics struct {
	cacheHits   metric.Int64Counter
	cacheMisses metric.Int64Counter
	hostLookups metric.Int64Counter
	dispatched  metric.Int64Counter
	dropped     metric.Int64Counter
	hostErrors  metric.Int64Counter
}

// newBridgeMetrics creates the bridge counters on mp, or on the global
// provider when mp is nil. Instruments that fail to register fall back to
// no-ops.
func newBridgeMetrics(mp metric.MeterProvider) *bridgeMetrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName, metric.WithInstrumentationVersion(Version))

	counter := func(name, desc, unit string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil || c == nil {
			return noop.Int64Counter{}
		}
		return c
	}

	return &bridgeMetrics{
		cacheHits:   counter("hostlog.cache.hits", "Log calls served from the logger cache.", "{call}"),
		cacheMisses: counter("hostlog.cache.misses", "Log calls that found no cached logger.", "{call}"),
		hostLookups: counter("hostlog.host.lookups", "Host logger lookups performed.", "{lookup}"),
		dispatched:  counter("hostlog.records.dispatched", "Records handed to the host.", "{record}"),
		dropped:     counter("hostlog.records.dropped", "Log calls that produced no host record.", "{record}"),
		hostErrors:  counter("hostlog.host.errors", "Failed calls into the host.", "{error}"),
	}
}

func (m *bridgeMetrics) drop(ctx context.Context, reason string) {
	m.dropped.Add(ctx, 1, metric.WithAttributes(dropReasonKey.String(reason)))
}

func (m *bridgeMetrics) inc(ctx context.Context, c metric.Int64Counter) {
	c.Add(ctx, 1)
}
