package config

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/zephyrtronium/gvalop"
	"github.com/zephyrtronium/gvalop/internal/logging"
)

// FieldError is a validation error for a single configuration field.
type FieldError struct {
	// Field is the dotted path to the field, e.g. "server.listen_address".
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every validation error in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "configuration validation failed: " + e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validate checks cfg and returns a ValidationError listing every problem, or
// nil if the configuration is usable. Token tables are validated by building
// their registries.
func Validate(cfg *Config) error {
	var errs []FieldError
	for i, g := range cfg.Groupings {
		if g.Start == "" || g.End == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("groupings[%d]", i),
				Message: "grouping needs both start and end tokens",
			})
		}
	}
	if _, err := cfg.LogicRegistry(); err != nil {
		errs = append(errs, registryError("logic", err))
	}
	if cfg.Arith.Prec == 0 || cfg.Arith.Prec > big.MaxPrec {
		errs = append(errs, FieldError{Field: "arith.prec", Message: fmt.Sprintf("precision %d out of range", cfg.Arith.Prec)})
	} else if _, err := cfg.ArithRegistry(); err != nil {
		errs = append(errs, registryError("arith", err))
	}
	if cfg.Parse.MaxDepth < UnlimitedDepth {
		errs = append(errs, FieldError{Field: "parse.max_depth", Message: "max depth must be positive, or -1 for no limit"})
	}
	errs = append(errs, validateServer(&cfg.Server)...)
	if _, err := logging.New(cfg.Log.Level, cfg.Log.Format, nil); err != nil {
		errs = append(errs, FieldError{Field: "log", Message: err.Error()})
	}
	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError
	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: "listen address is required"})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "read timeout must be positive"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "write timeout must be positive"})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"})
	}
	if cfg.MaxBodyBytes < 0 {
		errs = append(errs, FieldError{Field: "server.max_body_bytes", Message: "max body bytes must be non-negative"})
	}
	if cfg.CacheSize < 0 {
		errs = append(errs, FieldError{Field: "server.cache_size", Message: "cache size must be non-negative"})
	}
	if !strings.HasPrefix(cfg.MetricsPath, "/") {
		errs = append(errs, FieldError{Field: "server.metrics_path", Message: "metrics path must start with /"})
	}
	return errs
}

func registryError(section string, err error) FieldError {
	var te *gvalop.TokenizationError
	if errors.As(err, &te) {
		return FieldError{Field: section, Message: fmt.Sprintf("token %q: %s", te.Token, te.Reason)}
	}
	return FieldError{Field: section, Message: err.Error()}
}
