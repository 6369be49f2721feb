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

import "github.com/pjscruggs/hostlog/facade"

// Host severity values. They follow the numeric scale of hierarchical host
// logging systems (DEBUG=10 .. ERROR=40). The host has no trace level, so
// trace maps to HostLevelTrace, below every built-in level but above the
// host's "not set" value of zero.
const (
	HostLevelTrace = 5
	HostLevelDebug = 10
	HostLevelInfo  = 20
	HostLevelWarn  = 30
	HostLevelError = 40
)

// HostLevel converts a facade severity into the host's numeric scale.
// Levels outside the defined range clamp to the nearest end.
func HostLevel(level facade.Level) int {
	switch {
	case level <= facade.LevelTrace:
		return HostLevelTrace
	case level == facade.LevelDebug:
		return HostLevelDebug
	case level == facade.LevelInfo:
		return HostLevelInfo
	case level == facade.LevelWarn:
		return HostLevelWarn
	default:
		return HostLevelError
	}
}

// probeEffectiveFilter asks logger which severities it accepts, from least to
// most severe, and returns the filter matching the first accepted one. It
// returns [facade.FilterOff] when none is accepted.
func probeEffectiveFilter(logger HostLogger) (facade.LevelFilter, error) {
	for _, level := range facade.Levels {
		ok, err := logger.IsEnabledFor(HostLevel(level))
		if err != nil {
			return facade.FilterTrace, err
		}
		if ok {
			return level.Filter(), nil
		}
	}
	return facade.FilterOff, nil
}
