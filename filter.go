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
	"maps"
	"strings"

	"github.com/pjscruggs/hostlog/facade"
)

// filterTable resolves the severity filter for a target from a default and
// per-target overrides. It is mutated only before installation.
type filterTable struct {
	top       facade.LevelFilter
	overrides map[string]facade.LevelFilter
}

func newFilterTable(top facade.LevelFilter) filterTable {
	return filterTable{top: top, overrides: make(map[string]facade.LevelFilter)}
}

// resolve returns the filter of the longest override that is target itself
// or one of its "::" ancestors, or the default when none is configured.
func (t *filterTable) resolve(target string) facade.LevelFilter {
	filter := t.top
	if len(t.overrides) == 0 {
		return filter
	}
	start := 0
	for {
		idx := strings.Index(target[start:], facade.TargetSeparator)
		if idx < 0 {
			break
		}
		if f, ok := t.overrides[target[:start+idx]]; ok {
			filter = f
		}
		start += idx + len(facade.TargetSeparator)
	}
	if f, ok := t.overrides[target]; ok {
		filter = f
	}
	return filter
}

// maxLevel is the most permissive filter any target can resolve to.
func (t *filterTable) maxLevel() facade.LevelFilter {
	overrides := facade.FilterOff
	for _, f := range t.overrides {
		overrides = facade.MostPermissive(overrides, f)
	}
	return facade.MostPermissive(t.top, overrides)
}

// Filters is a snapshot of a bridge's filter configuration.
type Filters struct {
	Default facade.LevelFilter            `json:"default" yaml:"level"`
	Targets map[string]facade.LevelFilter `json:"targets,omitempty" yaml:"targets,omitempty"`
}

func (t *filterTable) snapshot() Filters {
	out := Filters{Default: t.top}
	if len(t.overrides) > 0 {
		out.Targets = maps.Clone(t.overrides)
	}
	return out
}
