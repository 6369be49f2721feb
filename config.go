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
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/pjscruggs/hostlog/facade"
)

const (
	envLevel      = "HOSTLOG_LEVEL"
	envTargets    = "HOSTLOG_TARGETS"
	envCaching    = "HOSTLOG_CACHING"
	envPrefix     = "HOSTLOG_PREFIX"
	envConfigFile = "HOSTLOG_CONFIG"
)

var envConfigCache atomic.Pointer[Config]

// Config is a declarative bridge configuration, loadable from YAML:
//
//	level: info
//	caching: handles_and_levels
//	prefix: myext
//	targets:
//	  myext::db: debug
//	  myext::db::pool: trace
//
// Unset fields leave the bridge's settings untouched.
type Config struct {
	Level   *facade.LevelFilter           `yaml:"level,omitempty"`
	Targets map[string]facade.LevelFilter `yaml:"targets,omitempty"`
	Caching *Caching                      `yaml:"caching,omitempty"`
	Prefix  *string                       `yaml:"prefix,omitempty"`
}

// clone returns a deep copy of c.
func (c Config) clone() Config {
	out := Config{Targets: maps.Clone(c.Targets)}
	if c.Level != nil {
		v := *c.Level
		out.Level = &v
	}
	if c.Caching != nil {
		v := *c.Caching
		out.Caching = &v
	}
	if c.Prefix != nil {
		v := *c.Prefix
		out.Prefix = &v
	}
	return out
}

// Merge returns c overlaid with every field set in over. Target overrides
// are merged key by key.
func (c Config) Merge(over Config) Config {
	out := c.clone()
	over = over.clone()
	if over.Level != nil {
		out.Level = over.Level
	}
	if over.Caching != nil {
		out.Caching = over.Caching
	}
	if over.Prefix != nil {
		out.Prefix = over.Prefix
	}
	if len(over.Targets) > 0 {
		if out.Targets == nil {
			out.Targets = make(map[string]facade.LevelFilter, len(over.Targets))
		}
		maps.Copy(out.Targets, over.Targets)
	}
	return out
}

// applyFilters copies the filter settings of c into t.
func (c Config) applyFilters(t *filterTable) {
	if c.Level != nil {
		t.top = *c.Level
	}
	maps.Copy(t.overrides, c.Targets)
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("hostlog: read config %q: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("hostlog: load config %q: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML configuration document. Unknown fields are
// rejected. An empty document yields an empty Config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ParseTargets parses comma-separated "target=level" overrides such as
// "app::db=debug,app::http=warn". Empty entries are ignored.
func ParseTargets(value string) (map[string]facade.LevelFilter, error) {
	out := make(map[string]facade.LevelFilter)
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		target, level, ok := strings.Cut(entry, "=")
		target = strings.TrimSpace(target)
		if !ok || target == "" {
			return nil, fmt.Errorf("%w: malformed target override %q", ErrInvalidConfig, entry)
		}
		f, err := facade.ParseLevelFilter(level)
		if err != nil {
			return nil, fmt.Errorf("%w: target %q: %w", ErrInvalidConfig, target, err)
		}
		out[target] = f
	}
	return out, nil
}

// ConfigFromEnv returns the configuration described by the environment:
//   - HOSTLOG_CONFIG: path of a YAML file applied first
//   - HOSTLOG_LEVEL: default filter (off, error, warn, info, debug, trace)
//   - HOSTLOG_TARGETS: comma-separated target=level overrides
//   - HOSTLOG_CACHING: disabled, handles or handles_and_levels
//   - HOSTLOG_PREFIX: host logger name prefix
//
// The result is computed once per process. Invalid variable values are
// ignored; an unreadable or invalid HOSTLOG_CONFIG file is an error.
func ConfigFromEnv() (Config, error) {
	return cachedConfigFromEnv(nil)
}

// cachedConfigFromEnv returns the cached environment configuration, loading
// and publishing it on first use.
func cachedConfigFromEnv(logger *slog.Logger) (Config, error) {
	if cached := envConfigCache.Load(); cached != nil {
		return cached.clone(), nil
	}

	cfg, err := loadConfigFromEnv(logger)
	if err != nil {
		return Config{}, err
	}

	entry := new(Config)
	*entry = cfg.clone()
	if envConfigCache.CompareAndSwap(nil, entry) {
		return cfg, nil
	}
	if cached := envConfigCache.Load(); cached != nil {
		return cached.clone(), nil
	}
	return cfg, nil
}

// resetEnvConfigCache forces the next lookup to re-read the environment.
func resetEnvConfigCache() {
	envConfigCache.Store(nil)
}

// loadConfigFromEnv reads HOSTLOG_* variables, logging invalid values to
// logger.
func loadConfigFromEnv(logger *slog.Logger) (Config, error) {
	var cfg Config
	if path := strings.TrimSpace(os.Getenv(envConfigFile)); path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	var env Config
	if value := strings.TrimSpace(os.Getenv(envLevel)); value != "" {
		if f, err := facade.ParseLevelFilter(value); err != nil {
			logDiagnostic(logger, slog.LevelWarn, "invalid log level environment variable", slog.String("variable", envLevel), slog.String("value", value))
		} else {
			env.Level = &f
		}
	}
	if value := strings.TrimSpace(os.Getenv(envTargets)); value != "" {
		if targets, err := ParseTargets(value); err != nil {
			logDiagnostic(logger, slog.LevelWarn, "invalid target overrides environment variable", slog.String("variable", envTargets), slog.Any("error", err))
		} else {
			env.Targets = targets
		}
	}
	if value := strings.TrimSpace(os.Getenv(envCaching)); value != "" {
		if c, err := ParseCaching(value); err != nil {
			logDiagnostic(logger, slog.LevelWarn, "invalid caching environment variable", slog.String("variable", envCaching), slog.String("value", value))
		} else {
			env.Caching = &c
		}
	}
	if value := strings.Trim(strings.TrimSpace(os.Getenv(envPrefix)), "."); value != "" {
		env.Prefix = &value
	}

	return cfg.Merge(env), nil
}
