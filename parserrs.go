package gvalop

import "strconv"

// TokenizationError indicates a registry whose tokens cannot be told apart
// while scanning. It is a configuration error rather than an input error.
type TokenizationError struct {
	// Token is the offending token.
	Token string
	// Reason describes why the token is ambiguous.
	Reason string
}

func (err *TokenizationError) Error() string {
	return "ambiguous token " + strconv.Quote(err.Token) + ": " + err.Reason
}

// MismatchedGroupingError indicates a grouping end token that does not close
// the innermost open group. It implements InputError.
type MismatchedGroupingError struct {
	// Col is the position of the end token.
	Col int
	// Open is the grouping of the innermost open group, or the zero Grouping
	// if no group was open.
	Open Grouping
	// Close is the end token.
	Close string
}

func (err *MismatchedGroupingError) Error() string {
	if err.Open == (Grouping{}) {
		return errpos(err.Col, "close "+strconv.Quote(err.Close)+" with no open grouping")
	}
	return errpos(err.Col, "mismatched grouping: "+strconv.Quote(err.Open.Start)+" closed by "+strconv.Quote(err.Close)+" instead of "+strconv.Quote(err.Open.End))
}

func (err *MismatchedGroupingError) Pos() int {
	return err.Col
}

// UnbalancedGroupingError indicates input that ended with a group still open.
// It implements InputError.
type UnbalancedGroupingError struct {
	// Col is the position of the innermost unclosed start token.
	Col int
	// Open is the unclosed grouping.
	Open Grouping
}

func (err *UnbalancedGroupingError) Error() string {
	return errpos(err.Col, "open "+strconv.Quote(err.Open.Start)+" with no close "+strconv.Quote(err.Open.End))
}

func (err *UnbalancedGroupingError) Pos() int {
	return err.Col
}

// OperatorArityError indicates an operator without one of its operands. It
// implements InputError.
type OperatorArityError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator's representation.
	Operator string
	// Operand is "left" or "right", naming the missing operand.
	Operand string
}

func (err *OperatorArityError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" has no "+err.Operand+" operand")
}

func (err *OperatorArityError) Pos() int {
	return err.Col
}

// DepthError indicates groupings nested more deeply than allowed by MaxDepth.
// It implements InputError.
type DepthError struct {
	// Col is the position of the start token that exceeded the limit.
	Col int
	// Max is the nesting limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "groupings nested more than "+strconv.Itoa(err.Max)+" deep")
}

func (err *DepthError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based rune column of the
	// token that caused it. Errors about the expression as a whole report 0.
	Pos() int
}

var (
	_ InputError = (*MismatchedGroupingError)(nil)
	_ InputError = (*UnbalancedGroupingError)(nil)
	_ InputError = (*OperatorArityError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*MalformedExpressionError)(nil)
	_ InputError = (*EvalError)(nil)
)
