package gvalop

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// DefaultPrec is the precision in bits used for arithmetic when none is given.
const DefaultPrec uint = 64

// ArithTokens are the representations of the arithmetic operators. An empty
// representation leaves that operator out. AltMul and AltDiv are second
// spellings of multiplication and division.
type ArithTokens struct {
	Add    string
	Sub    string
	Mul    string
	Div    string
	Pow    string
	Neg    string
	AltMul string
	AltDiv string

	// Named functions of one argument. They are unary operators like Neg, so
	// "sqrt 2" is the square root of 2.
	Sqrt string
	Exp  string
	Ln   string
}

// DefaultArithTokens are the arithmetic operators used by Arithmetic. Negation
// is ~ so that it is distinct from subtraction.
var DefaultArithTokens = ArithTokens{
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Pow:    "^",
	Neg:    "~",
	AltMul: "×",
	AltDiv: "÷",
	Sqrt:   "sqrt",
	Exp:    "exp",
	Ln:     "ln",
}

// Arithmetic returns arbitrary-precision arithmetic operators using
// DefaultArithTokens. Results have precision prec, or DefaultPrec if prec is 0.
//
// Operators have no precedence: "1 + 2 * 3" is (1 + 2) * 3.
func Arithmetic(prec uint) []Operator[*big.Float] {
	return ArithmeticWith(prec, DefaultArithTokens)
}

// ArithmeticWith returns arbitrary-precision arithmetic operators with the
// given representations. Each operator allocates its result, so operands are
// never modified.
func ArithmeticWith(prec uint, t ArithTokens) []Operator[*big.Float] {
	if prec == 0 {
		prec = DefaultPrec
	}
	a := arith{prec: prec}
	var ops []Operator[*big.Float]
	bin := func(repr string, f func(x, y *big.Float) (*big.Float, error)) {
		if repr != "" {
			ops = append(ops, BinaryFunc(repr, f))
		}
	}
	un := func(repr string, f func(x *big.Float) (*big.Float, error)) {
		if repr != "" {
			ops = append(ops, UnaryFunc(repr, f))
		}
	}
	bin(t.Add, a.add)
	bin(t.Sub, a.sub)
	bin(t.Mul, a.mul)
	bin(t.AltMul, a.mul)
	bin(t.Div, a.div)
	bin(t.AltDiv, a.div)
	bin(t.Pow, a.pow)
	un(t.Neg, a.neg)
	un(t.Sqrt, a.monadic("sqrt", (*big.Float).Sqrt, nonneg))
	un(t.Exp, a.monadic("exp", bigfloat.Exp, nil))
	un(t.Ln, a.monadic("ln", bigfloat.Log, nonneg))
	return ops
}

type arith struct {
	prec uint
}

func (a arith) new() *big.Float {
	return new(big.Float).SetPrec(a.prec)
}

// nan converts a big.ErrNaN panic into a DomainError. Other panics continue.
func nan(err *error, x *big.Float, arg int, name string) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(big.ErrNaN); ok {
		*err = &DomainError{X: x, Arg: arg, Func: name, nan: e}
		return
	}
	panic(r)
}

func (a arith) add(x, y *big.Float) (r *big.Float, err error) {
	// inf + -inf
	defer nan(&err, y, 2, "+")
	return a.new().Add(x, y), nil
}

func (a arith) sub(x, y *big.Float) (r *big.Float, err error) {
	// inf - inf
	defer nan(&err, y, 2, "-")
	return a.new().Sub(x, y), nil
}

func (a arith) mul(x, y *big.Float) (r *big.Float, err error) {
	// 0 * inf
	defer nan(&err, y, 2, "*")
	return a.new().Mul(x, y), nil
}

func (a arith) div(x, y *big.Float) (*big.Float, error) {
	// Guard against invalid divisions, 0/0 or inf/inf.
	if x.Sign() == 0 && y.Sign() == 0 || x.IsInf() && y.IsInf() {
		return nil, &DomainError{X: y, Arg: 2, Func: "/"}
	}
	return a.new().Quo(x, y), nil
}

func (a arith) pow(x, y *big.Float) (r *big.Float, err error) {
	defer nan(&err, y, 2, "^")
	if x.Sign() >= 0 {
		return bigfloat.Pow(a.new(), x, y), nil
	}
	// A negative base only has a real power for integer exponents.
	if !y.IsInt() || y.IsInf() {
		return nil, &DomainError{X: x, Arg: 1, Func: "^"}
	}
	abs := a.new().Abs(x)
	r = bigfloat.Pow(a.new(), abs, y)
	if odd(y) {
		r.Neg(r)
	}
	return r, nil
}

// odd reports whether an integer-valued y is odd.
func odd(y *big.Float) bool {
	i, _ := y.Int(nil)
	return i.Bit(0) == 1
}

func (a arith) neg(x *big.Float) (*big.Float, error) {
	return a.new().Neg(x), nil
}

// monadic wraps a function of one variable. f must set out to its result.
// Operands for which ok reports false are rejected before f is called.
func (a arith) monadic(name string, f func(out, in *big.Float) *big.Float, ok func(x *big.Float) bool) func(x *big.Float) (*big.Float, error) {
	return func(x *big.Float) (r *big.Float, err error) {
		if ok != nil && !ok(x) {
			return nil, &DomainError{X: x, Arg: 1, Func: name}
		}
		defer nan(&err, x, 1, name)
		r = a.new()
		f(r, x)
		return r, nil
	}
}

func nonneg(x *big.Float) bool {
	return x.Sign() >= 0
}

// DomainError is an error returned when an operator is applied to operands
// outside its domain.
type DomainError struct {
	// X is the out-of-domain operand.
	X *big.Float
	// Arg is the 1-based index of the operand, or 0 if unknown.
	Arg int
	// Func is the operator or function.
	Func string

	nan error
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// Unwrap returns the big.ErrNaN that arithmetic panicked with, if any.
func (err *DomainError) Unwrap() error {
	return err.nan
}

// NumberError is an error returned by Number for text that is not a number.
type NumberError struct {
	Text string
	Err  error
}

func (err *NumberError) Error() string {
	return "invalid number " + strconv.Quote(err.Text) + ": " + err.Err.Error()
}

func (err *NumberError) Unwrap() error {
	return err.Err
}

var errNotNumber = errors.New("not a number")

// Number returns a value function which parses numbers with precision prec,
// or DefaultPrec if prec is 0. Besides the formats accepted by
// (*big.Float).Parse, it accepts ∞ for infinity and the constants pi, π, and
// e. Numbers too large to represent become infinite.
func Number(prec uint) ValueFunc[*big.Float] {
	if prec == 0 {
		prec = DefaultPrec
	}
	return func(raw string) (*big.Float, error) {
		switch raw {
		case "∞", "+∞":
			return new(big.Float).SetPrec(prec).SetInf(false), nil
		case "-∞":
			return new(big.Float).SetPrec(prec).SetInf(true), nil
		case "pi", "π":
			return bigfloat.Pi(new(big.Float).SetPrec(prec)), nil
		case "e":
			one := new(big.Float).SetPrec(prec).SetInt64(1)
			return bigfloat.Exp(new(big.Float).SetPrec(prec), one), nil
		case "":
			return nil, &NumberError{Text: raw, Err: errNotNumber}
		}
		r, _, err := new(big.Float).SetPrec(prec).Parse(raw, 0)
		switch {
		case err == nil:
			return r, nil
		case err.Error() == "exponent overflow",
			strings.HasSuffix(err.Error(), ": value out of range"):
			// There isn't realistically any better way to detect this error.
			return new(big.Float).SetPrec(prec).SetInf(raw[0] == '-'), nil
		default:
			return nil, &NumberError{Text: raw, Err: err}
		}
	}
}
