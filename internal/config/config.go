// Package config loads the configuration of the gvalop command and its HTTP
// server from YAML or TOML files, with defaults and environment overrides.
package config

import "time"

// Config is the complete configuration.
type Config struct {
	Logic     LogicConfig      `yaml:"logic" toml:"logic"`
	Arith     ArithConfig      `yaml:"arith" toml:"arith"`
	Groupings []GroupingConfig `yaml:"groupings" toml:"groupings"`
	Parse     ParseConfig      `yaml:"parse" toml:"parse"`
	Server    ServerConfig     `yaml:"server" toml:"server"`
	Log       LogConfig        `yaml:"log" toml:"log"`
}

// LogicConfig holds the tokens of the boolean operators used by filter
// expressions. Xor is disabled unless set.
type LogicConfig struct {
	And string `yaml:"and" toml:"and"`
	Or  string `yaml:"or" toml:"or"`
	Not string `yaml:"not" toml:"not"`
	Xor string `yaml:"xor" toml:"xor"`
}

// ArithConfig holds the precision and operator tokens of calculator
// expressions.
type ArithConfig struct {
	// Prec is the precision of results in bits.
	Prec uint `yaml:"prec" toml:"prec"`

	Add    string `yaml:"add" toml:"add"`
	Sub    string `yaml:"sub" toml:"sub"`
	Mul    string `yaml:"mul" toml:"mul"`
	Div    string `yaml:"div" toml:"div"`
	Pow    string `yaml:"pow" toml:"pow"`
	Neg    string `yaml:"neg" toml:"neg"`
	AltMul string `yaml:"alt_mul" toml:"alt_mul"`
	AltDiv string `yaml:"alt_div" toml:"alt_div"`
	Sqrt   string `yaml:"sqrt" toml:"sqrt"`
	Exp    string `yaml:"exp" toml:"exp"`
	Ln     string `yaml:"ln" toml:"ln"`
}

// GroupingConfig is a pair of grouping tokens.
type GroupingConfig struct {
	Start string `yaml:"start" toml:"start"`
	End   string `yaml:"end" toml:"end"`
}

// ParseConfig holds options applied to every parse.
type ParseConfig struct {
	// SpacedValues lets values contain interior whitespace.
	SpacedValues bool `yaml:"spaced_values" toml:"spaced_values"`
	// MaxDepth limits grouping nesting. Zero selects DefaultMaxDepth, and
	// UnlimitedDepth removes the limit.
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	ListenAddress   string        `yaml:"listen_address" toml:"listen_address"`
	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	// MaxBodyBytes limits the size of request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" toml:"max_body_bytes"`
	// CacheSize is the number of parsed expressions kept per mode.
	CacheSize int `yaml:"cache_size" toml:"cache_size"`
	// MetricsPath is where Prometheus metrics are served.
	MetricsPath string `yaml:"metrics_path" toml:"metrics_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}
