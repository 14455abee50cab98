package gvalop

import (
	"strings"
	"testing"
)

func TestConfigureErrors(t *testing.T) {
	and := Binary("&&", func(x, y bool) bool { return x && y })
	not := Unary("!", func(x bool) bool { return !x })
	cases := []struct {
		name  string
		ops   []Operator[bool]
		grps  []Grouping
		token string
	}{
		{"dup-op", []Operator[bool]{and, and}, nil, "&&"},
		{"dup-grouping", nil, []Grouping{Parens, Parens}, "("},
		{"op-grouping", []Operator[bool]{Unary("(", func(x bool) bool { return x })}, []Grouping{Parens}, "("},
		{"same-start-end", nil, []Grouping{{Start: "|", End: "|"}}, "|"},
		{"empty-op", []Operator[bool]{Unary("", func(x bool) bool { return x })}, nil, ""},
		{"empty-end", nil, []Grouping{{Start: "<"}}, ""},
		{"space", []Operator[bool]{Binary("and also", func(x, y bool) bool { return x && y })}, nil, "and also"},
		{"zero-op", []Operator[bool]{not, {}}, nil, ""},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			r, err := Configure(c.ops, c.grps)
			if r != nil {
				t.Errorf("got non-nil registry %v", r)
			}
			te, ok := err.(*TokenizationError)
			if !ok {
				t.Fatalf("wrong error: want *TokenizationError, got %T (%v)", err, err)
			}
			if te.Token != c.token {
				t.Errorf("wrong token: want %q, got %q", c.token, te.Token)
			}
			if !strings.Contains(te.Error(), te.Reason) {
				t.Errorf("error message %q lacks reason %q", te.Error(), te.Reason)
			}
		})
	}
}

func TestConfigureCopies(t *testing.T) {
	ops := Logic()
	grps := Brackets()
	r, err := Configure(ops, grps)
	if err != nil {
		t.Fatal(err)
	}
	ops[0] = Binary("and", func(x, y bool) bool { return x && y })
	grps[0] = Grouping{Start: "<", End: ">"}
	if _, ok := r.Operator("&&"); !ok {
		t.Error("changing the operator list changed the registry")
	}
	if _, ok := r.Grouping("("); !ok {
		t.Error("changing the grouping list changed the registry")
	}
	if _, ok := r.Operator("and"); ok {
		t.Error("registry found operator that was never registered")
	}
	if got := len(r.Operators()); got != 3 {
		t.Errorf("wrong number of operators: want 3, got %d", got)
	}
	if got := r.Groupings(); len(got) != 3 || got[1] != Squares {
		t.Errorf("wrong groupings: %v", got)
	}
}

func TestConfigureTokenOrder(t *testing.T) {
	ops := []Operator[bool]{
		Unary("-", func(x bool) bool { return !x }),
		Binary("-->", func(x, y bool) bool { return !x || y }),
		Binary("--", func(x, y bool) bool { return x && y }),
	}
	r, err := Configure(ops, []Grouping{{Start: "<<", End: ">>"}})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tok := range r.tokens {
		got = append(got, tok.text)
	}
	want := []string{"-->", "<<", ">>", "--", "-"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("wrong token order: want %q, got %q", want, got)
	}
}

func TestOperatorConstructors(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("nil operator function did not panic")
		}
	}()
	Binary[bool]("&&", nil)
}
