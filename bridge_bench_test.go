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


package hostlog_test

import (
	"strconv"
	"testing"

	"github.com/pjscruggs/hostlog"
	"github.com/pjscruggs/hostlog/facade"
	"github.com/pjscruggs/hostlog/hostmock"
)

// BenchmarkEnabledFiltered measures a record rejected by a cached host
// level, which never takes the host lock.
func BenchmarkEnabledFiltered(b *testing.B) {
	host := hostmock.New()
	bridge, err := hostlog.New(host, hostlog.CachingHandlesAndLevels)
	if err != nil {
		b.Fatal(err)
	}
	reg := facade.NewRegistry()
	if _, err := bridge.InstallInto(reg); err != nil {
		b.Fatal(err)
	}
	logAt(reg, facade.LevelWarn, "app::db::pool", "warm")
	md := facade.Metadata{Level: facade.LevelInfo, Target: "app::db::pool"}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if bridge.Enabled(md) {
				b.Error("record unexpectedly enabled")
			}
		}
	})
}

// BenchmarkLog compares the caching modes for records the host accepts.
func BenchmarkLog(b *testing.B) {
	for _, caching := range []hostlog.Caching{hostlog.CachingDisabled, hostlog.CachingHandles, hostlog.CachingHandlesAndLevels} {
		b.Run(caching.String(), func(b *testing.B) {
			host := hostmock.New()
			bridge, err := hostlog.New(host, caching)
			if err != nil {
				b.Fatal(err)
			}
			reg := facade.NewRegistry()
			if _, err := bridge.InstallInto(reg); err != nil {
				b.Fatal(err)
			}
			targets := make([]string, 16)
			for i := range targets {
				targets[i] = "app::worker" + strconv.Itoa(i)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if i%1024 == 0 {
					host.ResetStats()
				}
				logAt(reg, facade.LevelWarn, targets[i%len(targets)], "tick")
			}
		})
	}
}
