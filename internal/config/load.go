package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the names of environment variables that override
// configuration fields, e.g. GVALOP_SERVER_LISTEN_ADDRESS.
const EnvPrefix = "GVALOP_"

// Load reads the configuration file at path, applies defaults and environment
// overrides, and validates the result. The file format is chosen by extension:
// .yaml and .yml are YAML, and anything else is TOML. An empty path loads
// only defaults and environment overrides.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := decode(data, path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}
	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg, os.Getenv)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(data []byte, path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		_, err := toml.Decode(string(data), cfg)
		return err
	}
}

// applyEnvOverrides applies environment variable overrides. Values that fail
// to parse are ignored.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	str := func(name string, field *string) {
		if val := getenv(EnvPrefix + name); val != "" {
			*field = val
		}
	}
	dur := func(name string, field *time.Duration) {
		if val := getenv(EnvPrefix + name); val != "" {
			if d, err := time.ParseDuration(val); err == nil {
				*field = d
			}
		}
	}
	num := func(name string, field *int) {
		if val := getenv(EnvPrefix + name); val != "" {
			if i, err := strconv.Atoi(val); err == nil {
				*field = i
			}
		}
	}

	str("LOGIC_AND", &cfg.Logic.And)
	str("LOGIC_OR", &cfg.Logic.Or)
	str("LOGIC_NOT", &cfg.Logic.Not)
	str("LOGIC_XOR", &cfg.Logic.Xor)

	if val := getenv(EnvPrefix + "ARITH_PREC"); val != "" {
		if p, err := strconv.ParseUint(val, 10, 32); err == nil {
			cfg.Arith.Prec = uint(p)
		}
	}

	if val := getenv(EnvPrefix + "PARSE_SPACED_VALUES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Parse.SpacedValues = b
		}
	}
	num("PARSE_MAX_DEPTH", &cfg.Parse.MaxDepth)

	str("SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	dur("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	dur("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	dur("SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	num("SERVER_CACHE_SIZE", &cfg.Server.CacheSize)
	if val := getenv(EnvPrefix + "SERVER_MAX_BODY_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = i
		}
	}
	str("SERVER_METRICS_PATH", &cfg.Server.MetricsPath)

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
}
