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
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pjscruggs/hostlog/facade"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// clearHostlogEnv resets the environment variables that influence bridge
// configuration.
func clearHostlogEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envLevel, "")
	t.Setenv(envTargets, "")
	t.Setenv(envCaching, "")
	t.Setenv(envPrefix, "")
	t.Setenv(envConfigFile, "")
	resetEnvConfigCache()
	t.Cleanup(resetEnvConfigCache)
}

func ptr[T any](v T) *T { return &v }

// TestParseTargets verifies the comma separated override syntax.
func TestParseTargets(t *testing.T) {
	t.Parallel()

	got, err := ParseTargets(" app=debug, app::db = trace ,,noisy=off")
	if err != nil {
		t.Fatalf("ParseTargets() returned %v", err)
	}
	want := map[string]facade.LevelFilter{
		"app":     facade.FilterDebug,
		"app::db": facade.FilterTrace,
		"noisy":   facade.FilterOff,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseTargets() mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"app", "=debug", "app=loud"} {
		if _, err := ParseTargets(bad); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("ParseTargets(%q) = %v, want ErrInvalidConfig", bad, err)
		}
	}
}

// TestParseCaching verifies caching mode names and aliases.
func TestParseCaching(t *testing.T) {
	t.Parallel()

	tests := map[string]Caching{
		"disabled":           CachingDisabled,
		"NOTHING":            CachingDisabled,
		"handles":            CachingHandles,
		"loggers":            CachingHandles,
		"handles_and_levels": CachingHandlesAndLevels,
		" all ":              CachingHandlesAndLevels,
	}
	for in, want := range tests {
		got, err := ParseCaching(in)
		if err != nil || got != want {
			t.Errorf("ParseCaching(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseCaching("sometimes"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("ParseCaching(sometimes) = %v, want ErrInvalidConfig", err)
	}
}

// TestParseConfig verifies YAML documents decode into Config.
func TestParseConfig(t *testing.T) {
	t.Parallel()

	doc := []byte(`
level: warning
caching: handles
prefix: rust
targets:
  app: debug
  app::db: trace
`)
	got, err := ParseConfig(doc)
	if err != nil {
		t.Fatalf("ParseConfig() returned %v", err)
	}
	want := Config{
		Level:   ptr(facade.FilterWarn),
		Caching: ptr(CachingHandles),
		Prefix:  ptr("rust"),
		Targets: map[string]facade.LevelFilter{"app": facade.FilterDebug, "app::db": facade.FilterTrace},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseConfig() mismatch (-want +got):\n%s", diff)
	}

	empty, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig(nil) returned %v", err)
	}
	if diff := cmp.Diff(Config{}, empty); diff != "" {
		t.Fatalf("ParseConfig(nil) mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"level: loud\n", "unknown: 1\n", "targets: [a]\n"} {
		if _, err := ParseConfig([]byte(bad)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("ParseConfig(%q) = %v, want ErrInvalidConfig", bad, err)
		}
	}
}

// TestConfigMerge verifies later layers override earlier ones and target
// maps are combined.
func TestConfigMerge(t *testing.T) {
	t.Parallel()

	base := Config{
		Level:   ptr(facade.FilterInfo),
		Targets: map[string]facade.LevelFilter{"a": facade.FilterDebug, "b": facade.FilterWarn},
	}
	over := Config{
		Caching: ptr(CachingDisabled),
		Targets: map[string]facade.LevelFilter{"b": facade.FilterTrace},
	}
	got := base.Merge(over)
	want := Config{
		Level:   ptr(facade.FilterInfo),
		Caching: ptr(CachingDisabled),
		Targets: map[string]facade.LevelFilter{"a": facade.FilterDebug, "b": facade.FilterTrace},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge() mismatch (-want +got):\n%s", diff)
	}
	if base.Targets["b"] != facade.FilterWarn {
		t.Fatalf("Merge() modified the receiver")
	}
}

// TestLoadConfigFromEnv verifies environment variables overlay the config
// file and invalid values are ignored.
func TestLoadConfigFromEnv(t *testing.T) {
	clearHostlogEnv(t)
	path := filepath.Join(t.TempDir(), "hostlog.yaml")
	if err := os.WriteFile(path, []byte("level: error\ncaching: disabled\ntargets:\n  a: info\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() returned %v", err)
	}
	t.Setenv(envConfigFile, path)
	t.Setenv(envLevel, "trace")
	t.Setenv(envTargets, "b=warn")
	t.Setenv(envCaching, "bogus")
	t.Setenv(envPrefix, ".svc.")

	got, err := loadConfigFromEnv(newDiscardLogger())
	if err != nil {
		t.Fatalf("loadConfigFromEnv() returned %v", err)
	}
	want := Config{
		Level:   ptr(facade.FilterTrace),
		Caching: ptr(CachingDisabled),
		Prefix:  ptr("svc"),
		Targets: map[string]facade.LevelFilter{"a": facade.FilterInfo, "b": facade.FilterWarn},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loadConfigFromEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFromEnvMissingFile(t *testing.T) {
	clearHostlogEnv(t)
	t.Setenv(envConfigFile, filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := loadConfigFromEnv(newDiscardLogger()); err == nil {
		t.Fatalf("loadConfigFromEnv() with a missing file returned nil error")
	}
}

// TestConfigFromEnvCached verifies the environment is read once until the
// cache is reset.
func TestConfigFromEnvCached(t *testing.T) {
	clearHostlogEnv(t)
	t.Setenv(envLevel, "info")

	first, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() returned %v", err)
	}
	t.Setenv(envLevel, "error")
	second, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() returned %v", err)
	}
	if *first.Level != facade.FilterInfo || *second.Level != facade.FilterInfo {
		t.Fatalf("cached levels = %v, %v, want info twice", *first.Level, *second.Level)
	}

	resetEnvConfigCache()
	third, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() returned %v", err)
	}
	if *third.Level != facade.FilterError {
		t.Fatalf("level after reset = %v, want error", *third.Level)
	}
}

// TestNewLayering verifies env, config layers and explicit options apply in
// that order.
func TestNewLayering(t *testing.T) {
	clearHostlogEnv(t)
	t.Setenv(envLevel, "warn")
	t.Setenv(envCaching, "disabled")
	t.Setenv(envPrefix, "env")

	b, err := New(stubHost{}, CachingHandlesAndLevels,
		WithEnv(),
		WithConfig(Config{Level: ptr(facade.FilterInfo), Targets: map[string]facade.LevelFilter{"x": facade.FilterTrace}}),
		WithNamePrefix("opt"),
		WithInternalLogger(newDiscardLogger()),
	)
	if err != nil {
		t.Fatalf("New() returned %v", err)
	}
	if b.Caching() != CachingDisabled {
		t.Errorf("Caching() = %v, want disabled from the environment", b.Caching())
	}
	if b.prefix != "opt" {
		t.Errorf("prefix = %q, want opt", b.prefix)
	}
	want := Filters{Default: facade.FilterInfo, Targets: map[string]facade.LevelFilter{"x": facade.FilterTrace}}
	if diff := cmp.Diff(want, b.Filters()); diff != "" {
		t.Errorf("Filters() mismatch (-want +got):\n%s", diff)
	}

	b, err = New(stubHost{}, CachingHandlesAndLevels, WithEnv(), WithCaching(CachingHandles))
	if err != nil {
		t.Fatalf("New() returned %v", err)
	}
	if b.Caching() != CachingHandles {
		t.Errorf("Caching() = %v, want handles from WithCaching", b.Caching())
	}
}

// TestNewWithoutEnvIgnoresEnvironment verifies env vars only apply with
// WithEnv.
func TestNewWithoutEnvIgnoresEnvironment(t *testing.T) {
	clearHostlogEnv(t)
	t.Setenv(envLevel, "off")

	b, err := New(stubHost{}, CachingHandles)
	if err != nil {
		t.Fatalf("New() returned %v", err)
	}
	if got := b.Filters().Default; got != facade.FilterDebug {
		t.Fatalf("Filters().Default = %v, want debug", got)
	}
}
