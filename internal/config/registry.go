package config

import (
	"math/big"

	"github.com/zephyrtronium/gvalop"
)

// GroupingList returns the configured groupings.
func (cfg *Config) GroupingList() []gvalop.Grouping {
	g := make([]gvalop.Grouping, len(cfg.Groupings))
	for i, c := range cfg.Groupings {
		g[i] = gvalop.Grouping{Start: c.Start, End: c.End}
	}
	return g
}

// LogicRegistry builds the registry for filter expressions.
func (cfg *Config) LogicRegistry() (*gvalop.Registry[bool], error) {
	t := gvalop.LogicTokens{
		And: cfg.Logic.And,
		Or:  cfg.Logic.Or,
		Not: cfg.Logic.Not,
		Xor: cfg.Logic.Xor,
	}
	return gvalop.Configure(gvalop.LogicWith(t), cfg.GroupingList())
}

// ArithRegistry builds the registry for calculator expressions.
func (cfg *Config) ArithRegistry() (*gvalop.Registry[*big.Float], error) {
	a := &cfg.Arith
	t := gvalop.ArithTokens{
		Add:    a.Add,
		Sub:    a.Sub,
		Mul:    a.Mul,
		Div:    a.Div,
		Pow:    a.Pow,
		Neg:    a.Neg,
		AltMul: a.AltMul,
		AltDiv: a.AltDiv,
		Sqrt:   a.Sqrt,
		Exp:    a.Exp,
		Ln:     a.Ln,
	}
	return gvalop.Configure(gvalop.ArithmeticWith(a.Prec, t), cfg.GroupingList())
}

// ParseOptions returns the options to pass to every parse.
func (cfg *Config) ParseOptions() []gvalop.ParseOption {
	depth := cfg.Parse.MaxDepth
	if depth == UnlimitedDepth {
		depth = 0
	}
	opts := []gvalop.ParseOption{gvalop.MaxDepth(depth)}
	if cfg.Parse.SpacedValues {
		opts = append(opts, gvalop.SpacedValues())
	}
	return opts
}
