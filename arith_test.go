package gvalop_test

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/zephyrtronium/gvalop"
)

func calc(t testing.TB, prec uint) *gvalop.Registry[*big.Float] {
	t.Helper()
	r, err := gvalop.Configure(gvalop.Arithmetic(prec), gvalop.Brackets())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"num", "1", 1},
		{"frac", "0.25", 0.25},
		{"sci", "1e3", 1000},
		{"add", "4 + 5 + 6", 4 + 5 + 6},
		{"sub", "4 - 5 - 6", 4 - 5 - 6},
		{"mul", "4 * 5 * 6", 4 * 5 * 6},
		{"alt-mul", "4 × 5", 20},
		{"div", "10 / 4", 2.5},
		{"alt-div", "10 ÷ 4", 2.5},
		{"no-precedence", "1 + 2 * 3", 9},
		{"grouped", "1 + (2 * 3)", 7},
		{"pow", "2 ^ 10", 1024},
		{"pow-left", "4 ^ 3 ^ 2", 4096},
		{"pow-frac", "16 ^ 0.5", 4},
		{"pow-neg-even", "(~2) ^ 2", 4},
		{"pow-neg-odd", "(~2) ^ 3", -8},
		{"pow-neg-zero", "(0 * ~1) ^ 0.5", 0},
		{"neg", "~3 + 5", 2},
		{"neg-group", "~(3 + 5)", -8},
		{"neg-neg", "~~3", 3},
		{"sqrt", "sqrt 16", 4},
		{"exp", "exp 0", 1},
		{"ln", "ln 1", 0},
		{"pi", "pi", math.Pi},
		{"π", "π", math.Pi},
		{"e", "e", math.E},
		{"inf", "inf", math.Inf(1)},
		{"Inf", "Inf", math.Inf(1)},
		{"∞", "∞", math.Inf(1)},
		{"inf-sum", "∞ + 1", math.Inf(1)},
		{"neg-inf", "~∞", math.Inf(-1)},
		{"div-zero", "1 / 0", math.Inf(1)},
		{"brackets", "[1 + {2}] * (3)", 9},
	}
	r := calc(t, 64)
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			g, err := r.Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			res, err := g.EvaluateFunc(gvalop.Number(64))
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			got, _ := res.Value.Float64()
			if !near(got, c.want) {
				t.Errorf("wrong result for %q: want %g, got %g", c.src, c.want, got)
			}
		})
	}
}

func near(x, y float64) bool {
	if math.IsInf(y, 0) {
		return x == y
	}
	return math.Abs(x-y) <= 1e-12*math.Max(1, math.Abs(y))
}

func TestArithmeticDomain(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"div-zero", "0/0"},
		{"div-inf", "inf/inf"},
		{"div-alt-zero", "0÷0"},
		{"pow-neg", "(~1)^0.5"},
		{"sqrt-neg", "sqrt ~1"},
		{"ln-neg", "ln ~1"},
		{"sub-inf", "inf - inf"},
		{"add-inf", "inf + ~inf"},
		{"mul-inf", "0 × ∞"},
	}
	r := calc(t, 64)
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			g, err := r.Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			res, err := g.EvaluateFunc(gvalop.Number(64))
			if res != nil {
				t.Errorf("evaluating %q gave non-nil result %g", c.src, res.Value)
			}
			var e *gvalop.EvalError
			if !errors.As(err, &e) {
				t.Fatalf("evaluating %q gave %T (%v), not *EvalError", c.src, err, err)
			}
			var d *gvalop.DomainError
			if !errors.As(err, &d) {
				t.Errorf("%#v does not wrap *DomainError", err)
			}
		})
	}
}

func TestNumberErrors(t *testing.T) {
	r := calc(t, 64)
	for _, src := range []string{"abc", "1 + x", "1..2"} {
		g, err := r.Parse(src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		_, err = g.EvaluateFunc(gvalop.Number(64))
		var n *gvalop.NumberError
		if !errors.As(err, &n) {
			t.Errorf("evaluating %q gave %T (%v), not *NumberError", src, err, err)
		}
	}
}

func TestArithmeticPrec(t *testing.T) {
	for _, prec := range []uint{0, 24, 64, 256} {
		r := calc(t, prec)
		g, err := r.Parse("1 / 3")
		if err != nil {
			t.Fatal(err)
		}
		res, err := g.EvaluateFunc(gvalop.Number(prec))
		if err != nil {
			t.Fatal(err)
		}
		want := prec
		if want == 0 {
			want = gvalop.DefaultPrec
		}
		if got := res.Value.Prec(); got != want {
			t.Errorf("wrong precision: want %d, got %d", want, got)
		}
	}
}

func TestArithmeticOperandsUnchanged(t *testing.T) {
	r := calc(t, 64)
	g, err := r.Parse("x + x * x")
	if err != nil {
		t.Fatal(err)
	}
	x := big.NewFloat(3)
	res, err := g.EvaluateFunc(func(string) (*big.Float, error) { return x, nil })
	if err != nil {
		t.Fatal(err)
	}
	if x.Cmp(big.NewFloat(3)) != 0 {
		t.Errorf("operand changed to %g", x)
	}
	if res.Value.Cmp(big.NewFloat(18)) != 0 {
		t.Errorf("wrong result: want 18, got %g", res.Value)
	}
}

func TestArithmeticWith(t *testing.T) {
	tokens := gvalop.ArithTokens{Add: "plus", Mul: "times", Neg: "-"}
	r, err := gvalop.Configure(gvalop.ArithmeticWith(64, tokens), []gvalop.Grouping{gvalop.Parens})
	if err != nil {
		t.Fatal(err)
	}
	if got := len(r.Operators()); got != 3 {
		t.Errorf("wrong number of operators: want 3, got %d", got)
	}
	g, err := r.Parse("2 plus 3 times -4")
	if err != nil {
		t.Fatal(err)
	}
	res, err := g.EvaluateFunc(gvalop.Number(64))
	if err != nil {
		t.Fatal(err)
	}
	if res.Value.Cmp(big.NewFloat(-20)) != 0 {
		t.Errorf("wrong result: want -20, got %g", res.Value)
	}
}

func ExampleArithmetic() {
	r, err := gvalop.Configure(gvalop.Arithmetic(64), gvalop.Brackets())
	if err != nil {
		panic(err)
	}
	for _, src := range []string{"1 + 2 * 3", "1 + (2 * 3)", "~2 ^ 3", "sqrt 2"} {
		g, err := r.Parse(src)
		if err != nil {
			panic(err)
		}
		res, err := g.EvaluateFunc(gvalop.Number(64))
		if err != nil {
			panic(err)
		}
		fmt.Printf("%v = %.10g\n", g, res.Value)
	}

	// Output:
	// [[1 + 2] * 3] = 9
	// [1 + ([2 * 3])] = 7
	// [[~2] ^ 3] = -8
	// [sqrt2] = 1.414213562
}
