package gvalop

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
	// idx is the registry index of the operator or grouping for tokenOp,
	// tokenOpen, and tokenClose.
	idx int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenValue is any run of text that is not a registered token.
	tokenValue
	// tokenOp is a registered operator.
	tokenOp
	// tokenOpen is the start token of a registered grouping.
	tokenOpen
	// tokenClose is the end token of a registered grouping.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenValue:
		return "Value"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// role describes a registered token kind for configuration errors.
func (k tokenKind) role() string {
	switch k {
	case tokenOp:
		return "operator"
	case tokenOpen:
		return "grouping start"
	case tokenClose:
		return "grouping end"
	default:
		return "token"
	}
}

type lexer struct {
	src    string
	tokens []regToken
	// off is the byte offset of the next rune to scan.
	off int
	// col is the 1-based rune column of src[off].
	col int
	// spaced makes values continue across whitespace.
	spaced bool
}

func lex(src string, tokens []regToken, spaced bool) *lexer {
	return &lexer{
		src:    src,
		tokens: tokens,
		col:    1,
		spaced: spaced,
	}
}

// match finds the longest registered token at the current offset.
func (l *lexer) match() (regToken, bool) {
	rest := l.src[l.off:]
	for _, t := range l.tokens {
		if strings.HasPrefix(rest, t.text) {
			return t, true
		}
	}
	return regToken{}, false
}

// advance moves past n bytes of input.
func (l *lexer) advance(n int) {
	l.col += utf8.RuneCountInString(l.src[l.off : l.off+n])
	l.off += n
}

// next scans the next token from the input. Once the input is exhausted, every
// call returns an EOF token.
func (l *lexer) next() lexToken {
	for l.off < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.off:])
		if !unicode.IsSpace(r) {
			break
		}
		l.off += sz
		l.col++
	}
	if l.off >= len(l.src) {
		return lexToken{kind: tokenEOF, pos: l.col}
	}
	if t, ok := l.match(); ok {
		tok := lexToken{text: t.text, kind: t.kind, pos: l.col, idx: t.idx}
		l.advance(len(t.text))
		return tok
	}
	return l.scanValue()
}

// scanValue scans a value token. The current rune must not begin a registered
// token or be whitespace.
func (l *lexer) scanValue() lexToken {
	tok := lexToken{kind: tokenValue, pos: l.col}
	start, end := l.off, l.off
	for l.off < len(l.src) {
		if _, ok := l.match(); ok {
			break
		}
		r, sz := utf8.DecodeRuneInString(l.src[l.off:])
		if unicode.IsSpace(r) {
			if !l.spaced {
				break
			}
		} else {
			end = l.off + sz
		}
		l.off += sz
		l.col++
	}
	tok.text = l.src[start:end]
	return tok
}
