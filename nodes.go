package gvalop

import (
	"fmt"
	"strings"
)

// Node is a node in a parsed expression tree. The set of node types is closed:
// every Node is a *Group, *UnaryOp, *BinaryOp, *Value, or *Result.
type Node[T any] interface {
	// Pos returns the 1-based rune column of the token that created the node.
	Pos() int
	// String formats the subtree rooted at the node. Operators and their
	// operands are wrapped in square brackets; groups are wrapped in their own
	// start and end tokens. Since [ and ] are also the Squares grouping, the
	// output does not distinguish a square group around a single item from
	// an operator application: both "[a]" and the operator in "!a" print with
	// square brackets, as "[a]" and "[!a]". The operator's token tells them
	// apart only when it is present.
	String() string

	node()
}

// Group is a sequence of items enclosed by a grouping. The root of a parsed
// tree is a Group with the zero Grouping and Col 0.
type Group[T any] struct {
	Grouping Grouping
	Children []Node[T]
	Col      int
}

// UnaryOp is an operator applied to the item following it.
type UnaryOp[T any] struct {
	Op      *Operator[T]
	Operand Node[T]
	Col     int
}

// BinaryOp is an operator applied to the items on either side of it.
type BinaryOp[T any] struct {
	Op    *Operator[T]
	Left  Node[T]
	Right Node[T]
	Col   int
}

// Value is the literal text of a value in the input.
type Value[T any] struct {
	Raw string
	Col int
}

// Result is an evaluated item. Col is the column of the node it replaced:
// the operator's column for operator results.
type Result[T any] struct {
	Value T
	Col   int
}

func (*Group[T]) node()    {}
func (*UnaryOp[T]) node()  {}
func (*BinaryOp[T]) node() {}
func (*Value[T]) node()    {}
func (*Result[T]) node()   {}

func (g *Group[T]) Pos() int    { return g.Col }
func (n *UnaryOp[T]) Pos() int  { return n.Col }
func (n *BinaryOp[T]) Pos() int { return n.Col }
func (n *Value[T]) Pos() int    { return n.Col }
func (n *Result[T]) Pos() int   { return n.Col }

func (g *Group[T]) String() string    { return nodestring[T](g) }
func (n *UnaryOp[T]) String() string  { return nodestring[T](n) }
func (n *BinaryOp[T]) String() string { return nodestring[T](n) }
func (n *Value[T]) String() string    { return nodestring[T](n) }
func (n *Result[T]) String() string   { return nodestring[T](n) }

func nodestring[T any](n Node[T]) string {
	var b strings.Builder
	format[T](&b, n)
	return b.String()
}

func format[T any](b *strings.Builder, n Node[T]) {
	switch n := n.(type) {
	case nil:
		// Operators that are still waiting for an operand use this.
		b.WriteByte('$')
	case *Group[T]:
		b.WriteString(n.Grouping.Start)
		for i, c := range n.Children {
			if i > 0 {
				b.WriteByte(' ')
			}
			format[T](b, c)
		}
		b.WriteString(n.Grouping.End)
	case *UnaryOp[T]:
		b.WriteByte('[')
		b.WriteString(n.Op.repr)
		format[T](b, n.Operand)
		b.WriteByte(']')
	case *BinaryOp[T]:
		b.WriteByte('[')
		format[T](b, n.Left)
		b.WriteByte(' ')
		b.WriteString(n.Op.repr)
		b.WriteByte(' ')
		format[T](b, n.Right)
		b.WriteByte(']')
	case *Value[T]:
		b.WriteString(n.Raw)
	case *Result[T]:
		fmt.Fprint(b, n.Value)
	default:
		panic(fmt.Sprintf("gvalop: invalid node type %T after writing %s", n, b.String()))
	}
}

// Clone creates a deep copy of the group and everything it contains.
// Operators are shared, since they are never modified. Result values are
// copied as plain assignments.
func (g *Group[T]) Clone() *Group[T] {
	c := Group[T]{
		Grouping: g.Grouping,
		Children: make([]Node[T], len(g.Children)),
		Col:      g.Col,
	}
	for i, n := range g.Children {
		c.Children[i] = clone[T](n)
	}
	return &c
}

func clone[T any](n Node[T]) Node[T] {
	switch n := n.(type) {
	case nil:
		return nil
	case *Group[T]:
		return n.Clone()
	case *UnaryOp[T]:
		return &UnaryOp[T]{Op: n.Op, Operand: clone[T](n.Operand), Col: n.Col}
	case *BinaryOp[T]:
		return &BinaryOp[T]{Op: n.Op, Left: clone[T](n.Left), Right: clone[T](n.Right), Col: n.Col}
	case *Value[T]:
		v := *n
		return &v
	case *Result[T]:
		r := *n
		return &r
	default:
		panic(fmt.Sprintf("gvalop: invalid node type %T", n))
	}
}

// Values returns the raw text of every value in the group, in input order.
func (g *Group[T]) Values() []string {
	var v []string
	return appendValues[T](v, g)
}

func appendValues[T any](v []string, n Node[T]) []string {
	switch n := n.(type) {
	case *Group[T]:
		for _, c := range n.Children {
			v = appendValues[T](v, c)
		}
	case *UnaryOp[T]:
		v = appendValues[T](v, n.Operand)
	case *BinaryOp[T]:
		v = appendValues[T](v, n.Left)
		v = appendValues[T](v, n.Right)
	case *Value[T]:
		v = append(v, n.Raw)
	}
	return v
}
