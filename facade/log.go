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
	"context"
	"fmt"
	"runtime"

	"github.com/valyala/bytebufferpool"
)

// Logf formats a message and delivers it to r at level for target. The
// message is only formatted when the gate and the sink accept the event.
func (r *Registry) Logf(ctx context.Context, level Level, target, format string, args ...any) {
	r.logf(ctx, 2, level, target, format, args)
}

// logf records the caller skip frames above itself.
func (r *Registry) logf(ctx context.Context, skip int, level Level, target, format string, args []any) {
	md := Metadata{Level: level, Target: target}
	if !r.Enabled(md) {
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if len(args) == 0 {
		_, _ = buf.WriteString(format)
	} else {
		_, _ = fmt.Fprintf(buf, format, args...)
	}

	rec := Record{Metadata: md, Message: buf.String(), Context: ctx}
	if _, file, line, ok := runtime.Caller(skip); ok {
		rec.File = file
		rec.Line = line
	}
	r.Log(&rec)
}

// Logf formats and logs through the default registry.
func Logf(ctx context.Context, level Level, target, format string, args ...any) {
	defaultRegistry.logf(ctx, 2, level, target, format, args)
}

// Tracef logs at trace level through the default registry.
func Tracef(target, format string, args ...any) {
	defaultRegistry.logf(context.Background(), 2, LevelTrace, target, format, args)
}

// Debugf logs at debug level through the default registry.
func Debugf(target, format string, args ...any) {
	defaultRegistry.logf(context.Background(), 2, LevelDebug, target, format, args)
}

// Infof logs at info level through the default registry.
func Infof(target, format string, args ...any) {
	defaultRegistry.logf(context.Background(), 2, LevelInfo, target, format, args)
}

// Warnf logs at warn level through the default registry.
func Warnf(target, format string, args ...any) {
	defaultRegistry.logf(context.Background(), 2, LevelWarn, target, format, args)
}

// Errorf logs at error level through the default registry.
func Errorf(target, format string, args ...any) {
	defaultRegistry.logf(context.Background(), 2, LevelError, target, format, args)
}
