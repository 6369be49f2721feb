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
	"errors"
	"log/slog"

	"github.com/pjscruggs/hostlog/facade"
)

// Install makes b the sink of the process-wide [facade.Default] registry.
// See [Bridge.InstallInto].
func (b *Bridge) Install() (*ResetHandle, error) {
	return b.InstallInto(facade.Default())
}

// InstallInto registers b as the sink of reg, sets the registry's global
// gate to [Bridge.MaxLevel] and freezes the filter table. It returns a
// handle that can clear the bridge's logger cache.
//
// It fails with [facade.ErrSinkInstalled], leaving reg untouched, when reg
// already has a sink. A failed install leaves the filter table frozen if b
// is already the sink of another registry.
func (b *Bridge) InstallInto(reg *facade.Registry) (*ResetHandle, error) {
	if reg == nil {
		return nil, errors.New("hostlog: nil registry")
	}
	wasFrozen := b.frozen.Swap(true)
	if err := reg.SetSink(b); err != nil {
		if !wasFrozen {
			b.frozen.Store(false)
		}
		return nil, err
	}
	maxLevel := b.MaxLevel()
	reg.SetMaxLevel(maxLevel)
	logDiagnostic(b.internalLogger, slog.LevelDebug, "bridge installed",
		slog.String("max_level", maxLevel.String()),
		slog.String("caching", b.caching.String()),
	)
	return b.ResetHandle(), nil
}

// TryInit builds a bridge to host with [CachingHandlesAndLevels], the
// default filter and any HOSTLOG_* environment configuration, then installs
// it into the default registry. opts are applied after the environment.
func TryInit(host Host, opts ...Option) (*ResetHandle, error) {
	b, err := New(host, CachingHandlesAndLevels, append([]Option{WithEnv()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return b.Install()
}

// Init is [TryInit] for callers that do not care whether a sink was already
// installed. It returns nil when installation failed.
func Init(host Host, opts ...Option) *ResetHandle {
	handle, err := TryInit(host, opts...)
	if err != nil {
		return nil
	}
	return handle
}
