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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pjscruggs/hostlog/facade"
)

// TestFilterTableResolve verifies longest-prefix resolution over "::"
// segments.
func TestFilterTableResolve(t *testing.T) {
	t.Parallel()

	t.Run("Default", func(t *testing.T) {
		table := newFilterTable(facade.FilterDebug)
		for _, target := range []string{"hello_world", "hello_world::sub", ""} {
			if got := table.resolve(target); got != facade.FilterDebug {
				t.Errorf("resolve(%q) = %v, want %v", target, got, facade.FilterDebug)
			}
		}
	})

	t.Run("Specific", func(t *testing.T) {
		table := newFilterTable(facade.FilterWarn)
		table.overrides["hello_world"] = facade.FilterDebug
		table.overrides["hello_world::sub"] = facade.FilterTrace

		tests := []struct {
			target string
			want   facade.LevelFilter
		}{
			{"hello_world", facade.FilterDebug},
			{"hello_world::sub", facade.FilterTrace},
			{"hello_world::sub::multi::level", facade.FilterTrace},
			{"hello_world::another", facade.FilterDebug},
			{"hello_world::another::level", facade.FilterDebug},
			{"other", facade.FilterWarn},
			{"hello_worldly", facade.FilterWarn},
			{"hello_world::subtle", facade.FilterDebug},
			{"", facade.FilterWarn},
		}
		for _, tc := range tests {
			if got := table.resolve(tc.target); got != tc.want {
				t.Errorf("resolve(%q) = %v, want %v", tc.target, got, tc.want)
			}
		}
	})

	t.Run("OverrideMoreRestrictiveThanDefault", func(t *testing.T) {
		table := newFilterTable(facade.FilterTrace)
		table.overrides["noisy"] = facade.FilterOff
		if got := table.resolve("noisy::child"); got != facade.FilterOff {
			t.Fatalf("resolve(noisy::child) = %v, want off", got)
		}
	})
}

// TestFilterTableMaxLevel verifies the gate is the most permissive filter of
// the default and every override.
func TestFilterTableMaxLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		top       facade.LevelFilter
		overrides map[string]facade.LevelFilter
		want      facade.LevelFilter
	}{
		{"DefaultOnly", facade.FilterInfo, nil, facade.FilterInfo},
		{"OverrideMorePermissive", facade.FilterWarn, map[string]facade.LevelFilter{"a": facade.FilterTrace}, facade.FilterTrace},
		{"OverrideLessPermissive", facade.FilterDebug, map[string]facade.LevelFilter{"a": facade.FilterError}, facade.FilterDebug},
		{"AllOff", facade.FilterOff, map[string]facade.LevelFilter{"a": facade.FilterOff}, facade.FilterOff},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table := newFilterTable(tc.top)
			for k, v := range tc.overrides {
				table.overrides[k] = v
			}
			if got := table.maxLevel(); got != tc.want {
				t.Fatalf("maxLevel() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterTableSnapshot(t *testing.T) {
	t.Parallel()

	table := newFilterTable(facade.FilterInfo)
	if diff := cmp.Diff(Filters{Default: facade.FilterInfo}, table.snapshot()); diff != "" {
		t.Fatalf("snapshot() mismatch (-want +got):\n%s", diff)
	}

	table.overrides["a::b"] = facade.FilterTrace
	snap := table.snapshot()
	snap.Targets["a::b"] = facade.FilterOff
	if table.overrides["a::b"] != facade.FilterTrace {
		t.Fatalf("snapshot shares storage with the table")
	}
}
