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

// ResetHandle clears a bridge's logger cache without reinstalling or
// reconfiguring the bridge. Call Reset after changing the host's logging
// configuration so cached loggers and levels are looked up again.
//
// A ResetHandle is safe for concurrent use and may be copied freely.
type ResetHandle struct {
	cache *cacheRoot
}

// ResetHandle returns a handle bound to b's cache.
func (b *Bridge) ResetHandle() *ResetHandle {
	return &ResetHandle{cache: b.cache}
}

// Reset discards everything cached so far. It always takes effect, even
// while other goroutines are populating the cache. Calling it repeatedly is
// the same as calling it once.
func (h *ResetHandle) Reset() {
	if h == nil || h.cache == nil {
		return
	}
	h.cache.reset()
}
