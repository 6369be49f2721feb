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
	"log/slog"
	"strings"

	"github.com/pjscruggs/hostlog/facade"
)

// hostName translates a target into the host's dotted hierarchy and applies
// the configured prefix.
func (b *Bridge) hostName(target string) string {
	name := strings.ReplaceAll(target, facade.TargetSeparator, ".")
	switch {
	case b.prefix == "":
		return name
	case name == "":
		return b.prefix
	default:
		return b.prefix + "." + name
	}
}

// recordSpec assembles the host record fields for rec.
func (b *Bridge) recordSpec(rec *facade.Record) RecordSpec {
	spec := RecordSpec{
		Name:    b.hostName(rec.Target),
		Level:   HostLevel(rec.Level),
		File:    rec.File,
		Line:    rec.Line,
		Message: rec.Message,
		Extra:   attrsToExtra(rec.Attrs),
	}
	if b.traceCorrelation {
		spec.Extra = addTraceExtras(rec.Context, spec.Extra)
	}
	return spec
}

// attrsToExtra converts flattened attributes into host extra fields. Later
// attributes win on duplicate keys.
func attrsToExtra(attrs []slog.Attr) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	extra := make(map[string]any, len(attrs))
	for _, a := range attrs {
		if a.Key == "" {
			continue
		}
		v := a.Value.Resolve()
		switch v.Kind() {
		case slog.KindGroup:
			for _, ga := range v.Group() {
				if ga.Key != "" {
					extra[a.Key+"."+ga.Key] = ga.Value.Resolve().Any()
				}
			}
		default:
			extra[a.Key] = v.Any()
		}
	}
	if len(extra) == 0 {
		return nil
	}
	return extra
}
