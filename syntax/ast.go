// Package syntax parses regular expression patterns into an AST consumed by
// the bytecode compiler in package program.
//
// The dialect is a small Unicode-aware subset of ECMAScript syntax:
// alternation, concatenation, greedy quantifiers (*, +, ?, {n}, {n,}, {,m},
// {n,m}), capturing groups, character classes with ranges and class escapes,
// the dot, and zero-width assertions (^, $, \b, \B, \`, \').
//
// There is no lookaround, no named captures, no backreferences, no inline
// flags and no non-greedy quantifiers.
package syntax

// Op identifies the kind of an AST node.
type Op uint8

const (
	OpLiteral Op = iota
	OpAnyChar
	OpMatcher
	OpSequence
	OpAlternation
	OpLineStart
	OpLineEnd
	OpWordBoundary
	OpNotWordBoundary
	OpSubjectBegin
	OpSubjectEnd
)

// NoCapture is the Value of a Sequence or Alternation node that does not
// correspond to a capturing group.
const NoCapture = -1

// Node is a node of the pattern AST.
//
// Value is overloaded by Op: for OpLiteral it is the codepoint, for OpMatcher
// the index into Parsed.Matchers, and for OpSequence/OpAlternation the
// capture group index (or NoCapture). Children is empty except for
// OpSequence and OpAlternation.
type Node struct {
	Op       Op
	Value    int32
	Quant    Quantifier
	Children []*Node
}

func newNode(op Op, value int32) *Node {
	return &Node{Op: op, Value: value, Quant: Quantifier{Kind: QuantOne}}
}

// Parsed is the result of parsing a pattern.
//
// CaptureCount is at least 1: the whole pattern is group 0, and each explicit
// group bumps the counter. Matchers holds the character-class predicates
// referenced by OpMatcher nodes.
type Parsed struct {
	Ast          *Node
	CaptureCount int
	Matchers     []Matcher
}
