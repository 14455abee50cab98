package gvalop

import "strings"

// Common groupings.
var (
	Parens  = Grouping{Start: "(", End: ")"}
	Squares = Grouping{Start: "[", End: "]"}
	Braces  = Grouping{Start: "{", End: "}"}
)

// Brackets returns round, square, and curly brackets as groupings.
func Brackets() []Grouping {
	return []Grouping{Parens, Squares, Braces}
}

// LogicTokens are the representations of the boolean operators. An empty
// representation leaves that operator out.
type LogicTokens struct {
	And string
	Or  string
	Not string
	Xor string
}

// DefaultLogicTokens are the C-like boolean operators && || and !.
var DefaultLogicTokens = LogicTokens{And: "&&", Or: "||", Not: "!"}

// Logic returns boolean operators using DefaultLogicTokens.
func Logic() []Operator[bool] {
	return LogicWith(DefaultLogicTokens)
}

// LogicWith returns boolean operators with the given representations. Since
// operands are evaluated before operators apply, nothing short-circuits.
func LogicWith(t LogicTokens) []Operator[bool] {
	var ops []Operator[bool]
	if t.And != "" {
		ops = append(ops, Binary(t.And, func(x, y bool) bool { return x && y }))
	}
	if t.Or != "" {
		ops = append(ops, Binary(t.Or, func(x, y bool) bool { return x || y }))
	}
	if t.Xor != "" {
		ops = append(ops, Binary(t.Xor, func(x, y bool) bool { return x != y }))
	}
	if t.Not != "" {
		ops = append(ops, Unary(t.Not, func(x bool) bool { return !x }))
	}
	return ops
}

// ContainsFold returns a value function reporting whether a value appears in
// text, ignoring case. It is the usual value function for filtering text with
// a logic expression.
func ContainsFold(text string) func(raw string) bool {
	text = strings.ToLower(text)
	return func(raw string) bool {
		return strings.Contains(text, strings.ToLower(raw))
	}
}
