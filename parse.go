package gvalop

// frame is a group being built by the parser.
type frame[T any] struct {
	g *Group[T]
	// wait is the chain of operators still waiting for their right operand,
	// innermost last. Each element is a *UnaryOp with no Operand or a
	// *BinaryOp with no Right.
	wait []Node[T]
}

// complete hands a finished item to the frame. The innermost waiting operator
// takes it as its operand, which finishes that operator in turn; whatever is
// left at the end of the chain becomes the next child of the group.
func (f *frame[T]) complete(n Node[T]) {
	for len(f.wait) > 0 {
		w := f.wait[len(f.wait)-1]
		f.wait = f.wait[:len(f.wait)-1]
		switch w := w.(type) {
		case *UnaryOp[T]:
			w.Operand = n
		case *BinaryOp[T]:
			w.Right = n
		default:
			panic("gvalop: waiting on non-operator " + w.String())
		}
		n = w
	}
	f.g.Children = append(f.g.Children, n)
}

// missing returns the error for an operator that never received its right
// operand, or nil if no operator is waiting.
func (f *frame[T]) missing() error {
	if len(f.wait) == 0 {
		return nil
	}
	switch w := f.wait[len(f.wait)-1].(type) {
	case *UnaryOp[T]:
		return &OperatorArityError{Col: w.Col, Operator: w.Op.repr, Operand: "right"}
	case *BinaryOp[T]:
		return &OperatorArityError{Col: w.Col, Operator: w.Op.repr, Operand: "right"}
	default:
		panic("gvalop: waiting on non-operator " + w.String())
	}
}

// Parse parses src into a tree rooted at a group with the zero Grouping, which
// needs no tokens in the input. The given options are applied in order.
//
// The returned tree is never modified by evaluation, so it may be evaluated
// any number of times, including concurrently.
func (r *Registry[T]) Parse(src string, opts ...ParseOption) (*Group[T], error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	scan := lex(src, r.tokens, p.spaced)
	root := &Group[T]{}
	stack := []*frame[T]{{g: root}}
	for {
		tok := scan.next()
		top := stack[len(stack)-1]
		switch tok.kind {
		case tokenEOF:
			if err := top.missing(); err != nil {
				return nil, err
			}
			if len(stack) > 1 {
				return nil, &UnbalancedGroupingError{Col: top.g.Col, Open: top.g.Grouping}
			}
			return root, nil
		case tokenValue:
			top.complete(&Value[T]{Raw: tok.text, Col: tok.pos})
		case tokenOpen:
			if p.maxDepth > 0 && len(stack) > p.maxDepth {
				return nil, &DepthError{Col: tok.pos, Max: p.maxDepth}
			}
			g := &Group[T]{Grouping: r.groupings[tok.idx], Col: tok.pos}
			stack = append(stack, &frame[T]{g: g})
		case tokenClose:
			if len(stack) == 1 || top.g.Grouping != r.groupings[tok.idx] {
				return nil, &MismatchedGroupingError{Col: tok.pos, Open: top.g.Grouping, Close: tok.text}
			}
			if err := top.missing(); err != nil {
				return nil, err
			}
			stack = stack[:len(stack)-1]
			stack[len(stack)-1].complete(top.g)
		case tokenOp:
			op := &r.ops[tok.idx]
			switch op.arity {
			case ArityUnary:
				top.wait = append(top.wait, &UnaryOp[T]{Op: op, Col: tok.pos})
			case ArityBinary:
				// The left operand is the previous sibling, which must be a
				// finished item rather than an operator that is still waiting.
				n := len(top.g.Children)
				if n == 0 || len(top.wait) != 0 {
					return nil, &OperatorArityError{Col: tok.pos, Operator: tok.text, Operand: "left"}
				}
				left := top.g.Children[n-1]
				top.g.Children = top.g.Children[:n-1]
				top.wait = append(top.wait, &BinaryOp[T]{Op: op, Left: left, Col: tok.pos})
			default:
				panic("gvalop: invalid arity " + op.arity.String() + " for operator " + op.repr)
			}
		default:
			panic("gvalop: unknown token: " + tok.String())
		}
	}
}
