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
	"log/slog"
	"testing"
)

func TestLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "TRACE"},
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "LEVEL(42)"},
	}
	for _, tc := range tests {
		if got := tc.level.String(); got != tc.want {
			t.Errorf("Level(%d).String() = %q, want %q", int(tc.level), got, tc.want)
		}
	}
}

// TestLevelFilterAllows verifies filters admit their level and everything
// more severe.
func TestLevelFilterAllows(t *testing.T) {
	t.Parallel()

	for _, filter := range []LevelFilter{FilterTrace, FilterDebug, FilterInfo, FilterWarn, FilterError, FilterOff} {
		for _, level := range Levels {
			want := int(level) >= int(filter)
			if got := filter.Allows(level); got != want {
				t.Errorf("%v.Allows(%v) = %v, want %v", filter, level, got, want)
			}
		}
	}
	for _, level := range Levels {
		if FilterOff.Allows(level) {
			t.Errorf("FilterOff.Allows(%v) = true", level)
		}
		if !FilterTrace.Allows(level) {
			t.Errorf("FilterTrace.Allows(%v) = false", level)
		}
		if !level.Filter().Allows(level) {
			t.Errorf("%v.Filter() rejects its own level", level)
		}
	}
}

func TestMostPermissive(t *testing.T) {
	t.Parallel()

	if got := MostPermissive(); got != FilterOff {
		t.Fatalf("MostPermissive() = %v, want off", got)
	}
	if got := MostPermissive(FilterWarn, FilterOff, FilterDebug); got != FilterDebug {
		t.Fatalf("MostPermissive(warn, off, debug) = %v, want debug", got)
	}
}

// TestParseLevelFilter verifies names, aliases and text round trips.
func TestParseLevelFilter(t *testing.T) {
	t.Parallel()

	tests := map[string]LevelFilter{
		"trace":   FilterTrace,
		"ALL":     FilterTrace,
		"debug":   FilterDebug,
		" Info ":  FilterInfo,
		"warn":    FilterWarn,
		"WARNING": FilterWarn,
		"error":   FilterError,
		"off":     FilterOff,
		"none":    FilterOff,
	}
	for in, want := range tests {
		got, err := ParseLevelFilter(in)
		if err != nil || got != want {
			t.Errorf("ParseLevelFilter(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevelFilter("verbose"); err == nil {
		t.Fatalf("ParseLevelFilter(verbose) returned nil error")
	}

	var f LevelFilter
	if err := f.UnmarshalText([]byte("warning")); err != nil || f != FilterWarn {
		t.Fatalf("UnmarshalText(warning) = %v, %v", f, err)
	}
	text, _ := f.MarshalText()
	if string(text) != "warn" {
		t.Fatalf("MarshalText() = %q, want warn", text)
	}
}

func TestLevelFromSlog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want Level
	}{
		{slog.LevelDebug - 4, LevelTrace},
		{slog.LevelDebug, LevelDebug},
		{slog.LevelInfo, LevelInfo},
		{slog.LevelInfo + 2, LevelInfo},
		{slog.LevelWarn, LevelWarn},
		{slog.LevelError, LevelError},
		{slog.LevelError + 8, LevelError},
	}
	for _, tc := range tests {
		if got := LevelFromSlog(tc.in); got != tc.want {
			t.Errorf("LevelFromSlog(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
