package gvalop

import "strconv"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	spacedopt struct{}
	depthopt  int
)

// parsectx holds the settings for a single parse.
type parsectx struct {
	// spaced indicates that values may contain interior whitespace.
	spaced bool
	// maxDepth is the maximum grouping nesting depth, or 0 for no limit.
	maxDepth int
}

// SpacedValues makes values extend across whitespace up to the next registered
// token, so that "bob marley && x" has the value "bob marley". Leading and
// trailing whitespace is never part of a value.
func SpacedValues() ParseOption {
	return spacedopt{}
}

func (spacedopt) parseOption(p parsectx) parsectx {
	p.spaced = true
	return p
}

// MaxDepth limits how deeply groupings may nest. Parsing input with groupings
// nested more than n levels deep fails with a *DepthError. MaxDepth(0) removes
// the limit. Panics if n is negative.
func MaxDepth(n int) ParseOption {
	if n < 0 {
		panic("gvalop: negative max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxDepth = int(o)
	return p
}
