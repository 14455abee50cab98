// Package gvalop parses and evaluates expressions built from grouped values
// and operators.
//
// An expression is made of values, operators, and groupings. The operators
// and groupings are whatever a Registry is configured with; any other run of
// text is a value. The same machinery therefore serves as a boolean search
// language, where values are words and the result reports whether a text
// matches,
//
//	marley && (stephen && !(ziggy || damian) || bob)
//
// or as a calculator, where values are numbers:
//
//	(1 + 2) * 3 ^ 2
//
// Operators have no precedence. Binary operators associate to the left in the
// order they appear, so "1 + 2 * 3" is 9, and unary operators apply to the
// single item that follows them, so "! a && b" is "(!a) && b". Groupings are
// the only way to change the order of application.
//
// Parsing produces a tree of Nodes rooted at a *Group. The tree holds the raw
// text of every value; a value function chosen at evaluation time turns each
// value into a result. Evaluation works on a copy, so one tree can be
// evaluated many times, including concurrently.
package gvalop
