package gvalop_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/gvalop"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("a && (b || !c)")
	f.Add("((a]")
	f.Add("1×2")
	r := logic(f)
	f.Fuzz(func(t *testing.T, s string) {
		g, err := r.Parse(s, gvalop.MaxDepth(64))
		if err != nil {
			var ie gvalop.InputError
			if !errors.As(err, &ie) {
				t.Errorf("%q gave non-input error %T (%v)", s, err, err)
			}
			return
		}
		// Parsing the printed tree never fails.
		if _, err := r.Parse(g.String()); err != nil {
			t.Errorf("%q printed as %s, which fails to parse: %v", s, g, err)
		}
	})
}
