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
	"sync/atomic"

	"github.com/pjscruggs/hostlog/facade"
)

// cacheEntry is what the bridge learned the last time it consulted the host
// for one exact target.
type cacheEntry struct {
	logger HostLogger
	filter facade.LevelFilter
}

// cacheNode is an immutable node of the persistent cache tree. Nodes
// reachable from a published root are never modified.
type cacheNode struct {
	local    *cacheEntry
	children map[string]*cacheNode
}

// cacheRoot publishes the current tree. Readers load it without locking;
// writers publish a rebuilt path with CompareAndSwap.
type cacheRoot struct {
	root atomic.Pointer[cacheNode]
}

func newCacheRoot() *cacheRoot {
	c := &cacheRoot{}
	c.root.Store(&cacheNode{})
	return c
}

// lookup returns the entry stored for exactly target, or nil. A miss at any
// depth is a full miss; ancestor entries are never reused.
func (c *cacheRoot) lookup(target string) *cacheEntry {
	node := c.root.Load()
	rest := target
	for {
		segment, tail, more := strings.Cut(rest, facade.TargetSeparator)
		child, ok := node.children[segment]
		if !ok {
			return nil
		}
		node = child
		if !more {
			return node.local
		}
		rest = tail
	}
}

// store records entry for target by cloning every node on the path from the
// root and swapping the new root in. If another writer or a reset got there
// first the update is dropped and store reports false. It never retries.
func (c *cacheRoot) store(target string, entry *cacheEntry) bool {
	observed := c.root.Load()
	updated := storePath(observed, target, entry)
	return c.root.CompareAndSwap(observed, updated)
}

// storePath returns a copy of node with entry set at the end of path.
func storePath(node *cacheNode, path string, entry *cacheEntry) *cacheNode {
	clone := &cacheNode{}
	if node != nil {
		clone.local = node.local
		clone.children = maps.Clone(node.children)
	}
	if clone.children == nil {
		clone.children = make(map[string]*cacheNode, 1)
	}

	segment, tail, more := strings.Cut(path, facade.TargetSeparator)
	child := clone.children[segment]
	if more {
		clone.children[segment] = storePath(child, tail, entry)
		return clone
	}

	leaf := &cacheNode{local: entry}
	if child != nil {
		leaf.children = child.children
	}
	clone.children[segment] = leaf
	return clone
}

// reset replaces the tree with an empty one unconditionally, so a reset
// always wins over racing stores.
func (c *cacheRoot) reset() {
	c.root.Store(&cacheNode{})
}
