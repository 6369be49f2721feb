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
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Level is the severity of a log event. Larger values are more severe.
type Level int

// Severity levels in increasing order.
const (
	LevelTrace Level = iota + 1
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// Levels lists every Level from least to most severe.
var Levels = [...]Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// String returns the upper-case name of the level (e.g. "TRACE", "WARN").
// Values outside the defined range render as "LEVEL(n)".
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "LEVEL(" + strconv.Itoa(int(l)) + ")"
}

// Filter returns the LevelFilter that admits l and everything more severe.
func (l Level) Filter() LevelFilter {
	return LevelFilter(l)
}

// LevelFilter is a severity threshold: the least severe Level it admits.
// FilterTrace admits everything and FilterOff admits nothing.
type LevelFilter int

// Severity filters from most to least permissive.
const (
	FilterTrace = LevelFilter(LevelTrace)
	FilterDebug = LevelFilter(LevelDebug)
	FilterInfo  = LevelFilter(LevelInfo)
	FilterWarn  = LevelFilter(LevelWarn)
	FilterError = LevelFilter(LevelError)
	FilterOff   = LevelFilter(LevelError + 1)
)

// Allows reports whether a record at level l passes the filter.
func (f LevelFilter) Allows(l Level) bool {
	return int(l) >= int(f)
}

// String returns the lower-case configuration name of the filter.
func (f LevelFilter) String() string {
	switch f {
	case FilterTrace:
		return "trace"
	case FilterDebug:
		return "debug"
	case FilterInfo:
		return "info"
	case FilterWarn:
		return "warn"
	case FilterError:
		return "error"
	case FilterOff:
		return "off"
	}
	return "filter(" + strconv.Itoa(int(f)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (f LevelFilter) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseLevelFilter.
func (f *LevelFilter) UnmarshalText(text []byte) error {
	parsed, err := ParseLevelFilter(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MostPermissive returns the filter among filters that admits the most
// records. It returns FilterOff when filters is empty.
func MostPermissive(filters ...LevelFilter) LevelFilter {
	out := FilterOff
	for _, f := range filters {
		if f < out {
			out = f
		}
	}
	return out
}

// ParseLevelFilter parses a filter name such as "debug", "WARNING" or "off".
func ParseLevelFilter(value string) (LevelFilter, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace", "all":
		return FilterTrace, nil
	case "debug":
		return FilterDebug, nil
	case "info":
		return FilterInfo, nil
	case "warn", "warning":
		return FilterWarn, nil
	case "error":
		return FilterError, nil
	case "off", "none":
		return FilterOff, nil
	}
	return FilterOff, fmt.Errorf("facade: unknown level filter %q", value)
}

// LevelFromSlog maps a slog level onto the nearest facade Level. Anything
// below slog.LevelDebug is treated as trace.
func LevelFromSlog(level slog.Level) Level {
	switch {
	case level < slog.LevelDebug:
		return LevelTrace
	case level < slog.LevelInfo:
		return LevelDebug
	case level < slog.LevelWarn:
		return LevelInfo
	case level < slog.LevelError:
		return LevelWarn
	default:
		return LevelError
	}
}
