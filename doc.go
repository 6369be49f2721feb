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

// Package hostlog forwards log records emitted through [facade] into the
// logging subsystem of an embedding host, such as the interpreter that loaded
// a Go extension. Records flow through the host's own loggers, handlers and
// levels instead of being printed separately or lost.
//
// Calling into the host requires its global execution lock, so the [Bridge]
// filters as much as it can without it:
//   - a filter table with a default threshold and per-target overrides,
//     where the most specific "::" ancestor of a target wins,
//   - a lock-free, copy-on-write cache of host loggers per target and,
//     with [CachingHandlesAndLevels], of each logger's effective level.
//
// Records that survive both are re-checked against the host's live
// configuration before a host record is built and dispatched. Failures in the
// host are reported through [Host.ReportError] and never reach the caller.
//
// # Quick Start
//
//	bridge, err := hostlog.New(host, hostlog.CachingHandlesAndLevels)
//	if err != nil {
//	    return err
//	}
//	reset, err := bridge.
//	    Filter(facade.FilterInfo).
//	    FilterTarget("myext::db", facade.FilterTrace).
//	    Install()
//	if err != nil {
//	    return err
//	}
//	facade.Infof("myext::db", "connected to %s", dsn)
//
// Call reset.Reset() whenever the host's logging configuration changes.
//
// # Configuration
//
// [TryInit] and [WithEnv] read HOSTLOG_LEVEL, HOSTLOG_TARGETS,
// HOSTLOG_CACHING, HOSTLOG_PREFIX and an optional YAML file named by
// HOSTLOG_CONFIG; see [ConfigFromEnv] and [LoadConfig].
//
// # Subpackages
//
//   - [github.com/pjscruggs/hostlog/facade] is the emitting front end.
//   - [github.com/pjscruggs/hostlog/hostmock] is an in-memory host for tests.
//   - [github.com/pjscruggs/hostlog/hostloggrpc] serves and consumes the host
//     contract over gRPC.
//   - [github.com/pjscruggs/hostlog/hostloghttp] exposes cache reset and the
//     filter configuration over HTTP.
package hostlog
