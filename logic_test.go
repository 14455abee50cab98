package gvalop_test

import (
	"testing"

	"github.com/zephyrtronium/gvalop"
)

func TestLogicWith(t *testing.T) {
	tokens := gvalop.LogicTokens{And: "&", Or: "|", Not: "-", Xor: "^"}
	r, err := gvalop.Configure(gvalop.LogicWith(tokens), []gvalop.Grouping{gvalop.Parens})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		src  string
		want bool
	}{
		{"t & f", false},
		{"t | f", true},
		{"t ^ f", true},
		{"t ^ t", false},
		{"-t ^ f", false},
		{"-(t ^ t)", true},
	}
	truth := func(raw string) bool { return raw == "t" }
	for _, c := range cases {
		g, err := r.Parse(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		res, err := g.Evaluate(truth)
		if err != nil {
			t.Errorf("%q failed to evaluate: %v", c.src, err)
			continue
		}
		if res.Value != c.want {
			t.Errorf("wrong result for %q: want %t, got %t", c.src, c.want, res.Value)
		}
	}
}

func TestLogicWithout(t *testing.T) {
	ops := gvalop.LogicWith(gvalop.LogicTokens{And: "&&"})
	if len(ops) != 1 || ops[0].Repr() != "&&" || ops[0].Arity() != gvalop.ArityBinary {
		t.Errorf("wrong operators: %v", ops)
	}
}

func TestContainsFold(t *testing.T) {
	cases := []struct {
		text string
		raw  string
		want bool
	}{
		{"Bob Marley", "marley", true},
		{"Bob Marley", "MARLEY", true},
		{"Bob Marley", "b m", true},
		{"Bob Marley", "ziggy", false},
		{"", "", true},
		{"Ünïcödé", "ÜNÏ", true},
	}
	for _, c := range cases {
		if got := gvalop.ContainsFold(c.text)(c.raw); got != c.want {
			t.Errorf("ContainsFold(%q)(%q): want %t, got %t", c.text, c.raw, c.want, got)
		}
	}
}
