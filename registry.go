package gvalop

import (
	"strconv"
	"strings"
	"unicode"
)

// Grouping is a pair of tokens that open and close a nested group, e.g. ( and ).
type Grouping struct {
	Start string
	End   string
}

func (g Grouping) String() string {
	return g.Start + g.End
}

// Arity is the number of operands an operator consumes.
type Arity int8

const (
	// ArityUnary operators apply to the item that follows them.
	ArityUnary Arity = 1
	// ArityBinary operators apply to the items on either side of them.
	ArityBinary Arity = 2
)

func (a Arity) String() string {
	switch a {
	case ArityUnary:
		return "unary"
	case ArityBinary:
		return "binary"
	default:
		return "Arity(" + strconv.Itoa(int(a)) + ")"
	}
}

// Operator is an operator token together with the function that combines its
// already evaluated operands. The zero Operator is not usable; create
// operators with Unary, Binary, UnaryFunc, or BinaryFunc.
type Operator[T any] struct {
	repr  string
	arity Arity
	un    func(x T) (T, error)
	bin   func(x, y T) (T, error)
}

// Unary creates a unary operator which applies f to its operand.
func Unary[T any](repr string, f func(x T) T) Operator[T] {
	if f == nil {
		panic("gvalop: nil function for operator " + strconv.Quote(repr))
	}
	return UnaryFunc(repr, func(x T) (T, error) { return f(x), nil })
}

// Binary creates a binary operator which applies f to its left and right
// operands.
func Binary[T any](repr string, f func(x, y T) T) Operator[T] {
	if f == nil {
		panic("gvalop: nil function for operator " + strconv.Quote(repr))
	}
	return BinaryFunc(repr, func(x, y T) (T, error) { return f(x, y), nil })
}

// UnaryFunc creates a unary operator whose function may fail. An error from f
// ends evaluation.
func UnaryFunc[T any](repr string, f func(x T) (T, error)) Operator[T] {
	if f == nil {
		panic("gvalop: nil function for operator " + strconv.Quote(repr))
	}
	return Operator[T]{repr: repr, arity: ArityUnary, un: f}
}

// BinaryFunc creates a binary operator whose function may fail. An error from
// f ends evaluation.
func BinaryFunc[T any](repr string, f func(x, y T) (T, error)) Operator[T] {
	if f == nil {
		panic("gvalop: nil function for operator " + strconv.Quote(repr))
	}
	return Operator[T]{repr: repr, arity: ArityBinary, bin: f}
}

// Repr returns the token that represents the operator in input text.
func (o *Operator[T]) Repr() string {
	return o.repr
}

// Arity returns the number of operands the operator consumes.
func (o *Operator[T]) Arity() Arity {
	return o.arity
}

func (o *Operator[T]) String() string {
	return o.repr
}

// apply1 calls a unary operator's function.
func (o *Operator[T]) apply1(x T) (T, error) {
	if o.un == nil {
		panic("gvalop: operator " + strconv.Quote(o.repr) + " is not unary")
	}
	return o.un(x)
}

// apply2 calls a binary operator's function.
func (o *Operator[T]) apply2(x, y T) (T, error) {
	if o.bin == nil {
		panic("gvalop: operator " + strconv.Quote(o.repr) + " is not binary")
	}
	return o.bin(x, y)
}

// regToken is a token string registered for scanning.
type regToken struct {
	text string
	kind tokenKind
	// idx is the index of the token's operator or grouping in the registry.
	idx int
}

// Registry holds the operators and groupings recognized by the parser. A
// Registry is immutable once created and safe for concurrent use.
type Registry[T any] struct {
	ops       []Operator[T]
	groupings []Grouping
	// tokens is every registered token, longest first. Tokens of equal length
	// are in registration order, groupings before operators.
	tokens []regToken
}

// Configure creates a registry from a list of operators and a list of
// groupings. Every token must be non-empty, contain no whitespace, and be
// distinct from every other token in either list; otherwise the result is a
// *TokenizationError, since the scanner could not tell the tokens apart.
func Configure[T any](ops []Operator[T], groupings []Grouping) (*Registry[T], error) {
	r := Registry[T]{
		ops:       append([]Operator[T](nil), ops...),
		groupings: append([]Grouping(nil), groupings...),
		tokens:    make([]regToken, 0, len(ops)+2*len(groupings)),
	}
	seen := make(map[string]bool, cap(r.tokens))
	add := func(text string, kind tokenKind, idx int) error {
		switch {
		case text == "":
			return &TokenizationError{Token: text, Reason: "empty " + kind.role()}
		case strings.IndexFunc(text, unicode.IsSpace) >= 0:
			return &TokenizationError{Token: text, Reason: kind.role() + " contains whitespace"}
		case seen[text]:
			return &TokenizationError{Token: text, Reason: kind.role() + " is already registered"}
		}
		seen[text] = true
		r.tokens = append(r.tokens, regToken{text: text, kind: kind, idx: idx})
		return nil
	}
	for i, g := range r.groupings {
		if err := add(g.Start, tokenOpen, i); err != nil {
			return nil, err
		}
		if err := add(g.End, tokenClose, i); err != nil {
			return nil, err
		}
	}
	for i := range r.ops {
		op := &r.ops[i]
		if op.un == nil && op.bin == nil {
			return nil, &TokenizationError{Token: op.repr, Reason: "operator has no function"}
		}
		if err := add(op.repr, tokenOp, i); err != nil {
			return nil, err
		}
	}
	sorttokens(r.tokens)
	return &r, nil
}

// sorttokens sorts tokens by decreasing length, keeping registration order
// among tokens of equal length.
func sorttokens(v []regToken) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && len(v[j].text) > len(v[j-1].text); j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

// Operators returns a copy of the registered operators.
func (r *Registry[T]) Operators() []Operator[T] {
	return append([]Operator[T](nil), r.ops...)
}

// Groupings returns a copy of the registered groupings.
func (r *Registry[T]) Groupings() []Grouping {
	return append([]Grouping(nil), r.groupings...)
}

// Operator finds a registered operator by its representation.
func (r *Registry[T]) Operator(repr string) (*Operator[T], bool) {
	for i := range r.ops {
		if r.ops[i].repr == repr {
			return &r.ops[i], true
		}
	}
	return nil, false
}

// Grouping finds a registered grouping by its start token.
func (r *Registry[T]) Grouping(start string) (Grouping, bool) {
	for _, g := range r.groupings {
		if g.Start == start {
			return g, true
		}
	}
	return Grouping{}, false
}
