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

// Package facade is the emitting side of hostlog: a small leveled logging
// front end with a single installable [Sink] per [Registry].
//
// Events carry a [Level], a target path made of "::"-separated segments
// (for example "billing::ledger::sync"), a formatted message and an optional
// call site. A registry checks its global gate ([Registry.MaxLevel]) before
// it asks the sink, so a sink can advertise the most permissive threshold it
// will ever accept and have everything below it rejected without a call.
//
// Code can log through the package-level helpers:
//
//	facade.Infof("billing::ledger", "posted %d entries", n)
//
// or through [log/slog] using [NewSlogHandler]:
//
//	logger := slog.New(facade.NewSlogHandler("billing::ledger"))
//	logger.Info("posted", "entries", n)
package facade
