package engine

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines tuning parameters for the engine's dispatch behavior.
type Config struct {
	// MaxCascadeDepth bounds how far a cascade may propagate from the
	// externally triggered action before the dispatch fails with
	// ErrCascadeDepthExceeded. Must be positive.
	MaxCascadeDepth int `yaml:"maxCascadeDepth"`

	// MaxConcurrentDispatches limits how many top-level dispatches can
	// execute simultaneously. Set to 0 for unlimited.
	MaxConcurrentDispatches int `yaml:"maxConcurrentDispatches"`

	// WorklistCapacity is the initial capacity of the per-dispatch
	// completion worklist. Purely an allocation hint.
	WorklistCapacity int `yaml:"worklistCapacity"`
}

// DefaultConfig provides production-ready defaults: a cascade limit deep
// enough for legitimate rule chains while catching cycles quickly, and a
// conservative dispatch concurrency bound.
var DefaultConfig = Config{
	MaxCascadeDepth:         25,
	MaxConcurrentDispatches: 64,
	WorklistCapacity:        16,
}

// fileConfig mirrors Config with pointer fields so an absent YAML key can be
// distinguished from an explicit zero.
type fileConfig struct {
	Engine struct {
		MaxCascadeDepth         *int `yaml:"maxCascadeDepth"`
		MaxConcurrentDispatches *int `yaml:"maxConcurrentDispatches"`
		WorklistCapacity        *int `yaml:"worklistCapacity"`
	} `yaml:"engine"`
}

// LoadConfig reads a YAML config file, merges it over DefaultConfig and then
// applies CONCEPTMESH_* environment overrides. A missing file is not an
// error; the defaults plus environment apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			var parsed fileConfig
			if err := yaml.Unmarshal(data, &parsed); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
			merge(&cfg, parsed)
		}
	}

	applyEnvOverrides(&cfg)
	if cfg.MaxCascadeDepth <= 0 {
		return cfg, fmt.Errorf("maxCascadeDepth must be positive, got %d", cfg.MaxCascadeDepth)
	}
	return cfg, nil
}

func merge(dst *Config, src fileConfig) {
	if src.Engine.MaxCascadeDepth != nil {
		dst.MaxCascadeDepth = *src.Engine.MaxCascadeDepth
	}
	if src.Engine.MaxConcurrentDispatches != nil {
		dst.MaxConcurrentDispatches = *src.Engine.MaxConcurrentDispatches
	}
	if src.Engine.WorklistCapacity != nil {
		dst.WorklistCapacity = *src.Engine.WorklistCapacity
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := envInt("CONCEPTMESH_MAX_CASCADE_DEPTH"); ok {
		cfg.MaxCascadeDepth = v
	}
	if v, ok := envInt("CONCEPTMESH_MAX_CONCURRENT_DISPATCHES"); ok {
		cfg.MaxConcurrentDispatches = v
	}
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
