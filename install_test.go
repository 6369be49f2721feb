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
	"errors"
	"log/slog"
	"testing"

	"github.com/pjscruggs/hostlog"
	"github.com/pjscruggs/hostlog/facade"
	"github.com/pjscruggs/hostlog/hostmock"
)

// TestTryInitInstallsProcessWide is the only test that installs into the
// process-wide registry.
func TestTryInitInstallsProcessWide(t *testing.T) {
	t.Setenv("HOSTLOG_LEVEL", "info")
	t.Setenv("HOSTLOG_TARGETS", "app::verbose=trace")
	t.Setenv("HOSTLOG_CACHING", "")
	t.Setenv("HOSTLOG_PREFIX", "")
	t.Setenv("HOSTLOG_CONFIG", "")
	hostlog.ResetEnvConfigCache()
	t.Cleanup(hostlog.ResetEnvConfigCache)

	host := hostmock.New()
	host.SetLevel("", 1)

	handle, err := hostlog.TryInit(host)
	if err != nil {
		t.Fatalf("TryInit() returned %v", err)
	}
	if handle == nil {
		t.Fatalf("TryInit() returned a nil handle")
	}
	if got := facade.Default().MaxLevel(); got != facade.FilterTrace {
		t.Fatalf("facade.Default().MaxLevel() = %v, want trace", got)
	}

	facade.Debugf("app", "hidden by the info default")
	facade.Infof("app", "shown")
	facade.Tracef("app::verbose::deep", "shown by override")

	logger := slog.New(facade.NewSlogHandler("app").WithTarget("http"))
	logger.Warn("slow request", "path", "/x")

	var got []string
	for _, r := range host.Records() {
		got = append(got, r.Name+": "+r.Message)
	}
	want := []string{
		"app: shown",
		"app.verbose.deep: shown by override",
		"app.http: slow request",
	}
	if len(got) != len(want) {
		t.Fatalf("records = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("records = %q, want %q", got, want)
		}
	}
	if extra := host.Records()[2].Extra; extra["path"] != "/x" {
		t.Fatalf("Extra = %v, want path=/x", extra)
	}

	if _, err := hostlog.TryInit(hostmock.New()); !errors.Is(err, facade.ErrSinkInstalled) {
		t.Fatalf("second TryInit() = %v, want ErrSinkInstalled", err)
	}
	if h := hostlog.Init(hostmock.New()); h != nil {
		t.Fatalf("Init() after install returned a handle")
	}

	handle.Reset()
	facade.Infof("app", "after reset")
	if n := len(host.Records()); n != 4 {
		t.Fatalf("got %d records after reset, want 4", n)
	}
}
