package config

import (
	"time"

	"github.com/zephyrtronium/gvalop"
)

// Default values for configuration fields.
const (
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
	DefaultCacheSize       = 256
	DefaultMetricsPath     = "/metrics"

	DefaultMaxDepth = 256
	// UnlimitedDepth as parse.max_depth allows groupings to nest to any depth.
	UnlimitedDepth = -1

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills every unset field of cfg with its default.
func ApplyDefaults(cfg *Config) {
	applyLogicDefaults(&cfg.Logic)
	applyArithDefaults(&cfg.Arith)
	if len(cfg.Groupings) == 0 {
		for _, g := range gvalop.Brackets() {
			cfg.Groupings = append(cfg.Groupings, GroupingConfig{Start: g.Start, End: g.End})
		}
	}
	if cfg.Parse.MaxDepth == 0 {
		cfg.Parse.MaxDepth = DefaultMaxDepth
	}
	applyServerDefaults(&cfg.Server)
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

func applyLogicDefaults(cfg *LogicConfig) {
	d := gvalop.DefaultLogicTokens
	setDefault(&cfg.And, d.And)
	setDefault(&cfg.Or, d.Or)
	setDefault(&cfg.Not, d.Not)
	setDefault(&cfg.Xor, d.Xor)
}

func applyArithDefaults(cfg *ArithConfig) {
	if cfg.Prec == 0 {
		cfg.Prec = gvalop.DefaultPrec
	}
	d := gvalop.DefaultArithTokens
	setDefault(&cfg.Add, d.Add)
	setDefault(&cfg.Sub, d.Sub)
	setDefault(&cfg.Mul, d.Mul)
	setDefault(&cfg.Div, d.Div)
	setDefault(&cfg.Pow, d.Pow)
	setDefault(&cfg.Neg, d.Neg)
	setDefault(&cfg.AltMul, d.AltMul)
	setDefault(&cfg.AltDiv, d.AltDiv)
	setDefault(&cfg.Sqrt, d.Sqrt)
	setDefault(&cfg.Exp, d.Exp)
	setDefault(&cfg.Ln, d.Ln)
}

func applyServerDefaults(cfg *ServerConfig) {
	setDefault(&cfg.ListenAddress, DefaultListenAddress)
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	setDefault(&cfg.MetricsPath, DefaultMetricsPath)
}

func setDefault(field *string, def string) {
	if *field == "" {
		*field = def
	}
}
