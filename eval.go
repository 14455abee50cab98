package gvalop

import (
	"errors"
	"fmt"
	"strconv"
)

// ValueFunc converts the raw text of a value into an evaluation result. An
// error ends evaluation.
type ValueFunc[T any] func(raw string) (T, error)

// Evaluate collapses a copy of the tree into a single result, converting each
// value with fn and combining operands with their operators' functions. The
// tree itself is not modified, so a parsed tree can be evaluated many times
// with different value functions, including concurrently.
//
// If fn is nil, each value's raw text is used as its result, which requires T
// to be a type that a string can be asserted to, like string or any.
func (g *Group[T]) Evaluate(fn func(raw string) T) (*Result[T], error) {
	if fn == nil {
		return g.EvaluateFunc(nil)
	}
	return g.EvaluateFunc(func(raw string) (T, error) { return fn(raw), nil })
}

// EvaluateFunc is like Evaluate, but the value function may fail.
func (g *Group[T]) EvaluateFunc(fn ValueFunc[T]) (*Result[T], error) {
	if fn == nil {
		fn = identity[T]
	}
	return g.Clone().consume(fn)
}

var errNoIdentity = errors.New("no value function and result type is not a string")

func identity[T any](raw string) (T, error) {
	v, ok := any(raw).(T)
	if !ok {
		return v, errNoIdentity
	}
	return v, nil
}

// consume reduces the group's children in place, left to right, and returns
// the single result they collapse to.
func (g *Group[T]) consume(fn ValueFunc[T]) (*Result[T], error) {
	for i, n := range g.Children {
		r, err := consumeNode(n, fn)
		if err != nil {
			return nil, err
		}
		g.Children[i] = r
	}
	if len(g.Children) != 1 {
		return nil, &MalformedExpressionError{Col: g.Col, Grouping: g.Grouping, Count: len(g.Children)}
	}
	return g.Children[0].(*Result[T]), nil
}

// consumeNode reduces any node to a result.
func consumeNode[T any](n Node[T], fn ValueFunc[T]) (*Result[T], error) {
	switch n := n.(type) {
	case *Result[T]:
		return n, nil
	case *Value[T]:
		v, err := fn(n.Raw)
		if err != nil {
			return nil, &EvalError{Col: n.Col, Text: n.Raw, Err: err}
		}
		return &Result[T]{Value: v, Col: n.Col}, nil
	case *UnaryOp[T]:
		x, err := consumeNode(n.Operand, fn)
		if err != nil {
			return nil, err
		}
		v, err := n.Op.apply1(x.Value)
		if err != nil {
			return nil, &EvalError{Col: n.Col, Text: n.Op.repr, Err: err}
		}
		return &Result[T]{Value: v, Col: n.Col}, nil
	case *BinaryOp[T]:
		x, err := consumeNode(n.Left, fn)
		if err != nil {
			return nil, err
		}
		y, err := consumeNode(n.Right, fn)
		if err != nil {
			return nil, err
		}
		v, err := n.Op.apply2(x.Value, y.Value)
		if err != nil {
			return nil, &EvalError{Col: n.Col, Text: n.Op.repr, Err: err}
		}
		return &Result[T]{Value: v, Col: n.Col}, nil
	case *Group[T]:
		return n.consume(fn)
	default:
		panic(fmt.Sprintf("gvalop: invalid node type %T", n))
	}
}

// MalformedExpressionError indicates a group that does not reduce to exactly
// one item, e.g. an empty group or two values with no operator between them.
// It implements InputError.
type MalformedExpressionError struct {
	// Col is the position of the group's start token, or 0 for the top level.
	Col int
	// Grouping is the group's grouping, or the zero Grouping for the top level.
	Grouping Grouping
	// Count is the number of items the group reduced to.
	Count int
}

func (err *MalformedExpressionError) Error() string {
	where := "group " + strconv.Quote(err.Grouping.Start+"..."+err.Grouping.End)
	if err.Grouping == (Grouping{}) {
		where = "expression"
	}
	if err.Count == 0 {
		return errpos(err.Col, "empty "+where)
	}
	return errpos(err.Col, where+" has "+strconv.Itoa(err.Count)+" items with no operator between them")
}

func (err *MalformedExpressionError) Pos() int {
	return err.Col
}

// EvalError is an error from a value function or an operator function during
// evaluation. It implements InputError.
type EvalError struct {
	// Col is the position of the value or operator.
	Col int
	// Text is the raw value or the operator representation.
	Text string
	// Err is the error returned by the function.
	Err error
}

func (err *EvalError) Error() string {
	return errpos(err.Col, "evaluating "+strconv.Quote(err.Text)+": "+err.Err.Error())
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

func (err *EvalError) Pos() int {
	return err.Col
}
