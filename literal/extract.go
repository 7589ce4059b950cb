package literal

import (
	"unicode/utf8"

	"github.com/coregx/regexvm/syntax"
)

// ExtractorConfig bounds literal extraction.
//
// The limits keep pathological patterns from blowing up the extraction:
//   - MaxLiterals caps the alternation product (a|b)(c|d)(e|f)...
//   - MaxLiteralLen caps individual literal growth
type ExtractorConfig struct {
	// MaxLiterals limits how many alternative literals are kept. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the byte length of each literal. Longer literals
	// are truncated and marked incomplete. Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Extractor walks a parsed pattern and collects the literal byte sequences
// every match must begin with.
//
// Example:
//
//	parsed, _ := syntax.Parse("(foo|bar)baz")
//	seq := literal.New(literal.DefaultConfig()).Prefixes(parsed.Ast)
//	// seq = ["foobaz", "barbaz"], exact
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor with the given limits.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// Prefixes returns the mandatory prefixes of n, or an empty sequence when
// none can be guaranteed. The result is exact when the literals cover whole
// matches, in which case finding a literal is finding a match.
func (e *Extractor) Prefixes(n *syntax.Node) *Seq {
	seq := e.extract(n)
	if seq == nil {
		return NewSeq()
	}
	seq.Dedup()
	for i := range seq.literals {
		if len(seq.literals[i].Bytes) > e.config.MaxLiteralLen {
			seq.literals[i].Bytes = seq.literals[i].Bytes[:e.config.MaxLiteralLen]
			seq.literals[i].Complete = false
		}
	}
	if seq.HasEmpty() {
		return NewSeq()
	}
	return seq
}

// extract returns the prefix literals of n, or nil when nothing is
// guaranteed from this node on.
func (e *Extractor) extract(n *syntax.Node) *Seq {
	if n.Quant.AllowsNone() {
		return nil
	}
	seq := e.extractInner(n)
	if seq == nil {
		return nil
	}
	if repeats(n.Quant) {
		// Only a single iteration is certain.
		seq.MakeInexact()
	}
	return seq
}

func (e *Extractor) extractInner(n *syntax.Node) *Seq {
	switch n.Op {
	case syntax.OpLiteral:
		return NewSeq(NewLiteral(encodeRune(rune(n.Value)), true))

	case syntax.OpSequence:
		seq := NewSeq(NewLiteral(nil, true))
		crossed := false
		constrained := false
		for _, child := range n.Children {
			if isAssertion(child.Op) {
				// The assertion does not consume bytes but does constrain
				// where the literals count as matches.
				constrained = true
				if !crossed {
					continue
				}
				seq.MakeInexact()
				break
			}
			childSeq := e.extract(child)
			if childSeq == nil {
				seq.MakeInexact()
				break
			}
			seq = seq.Cross(childSeq, e.config.MaxLiterals)
			crossed = true
			if seq.inexact {
				break
			}
		}
		if !crossed {
			return nil
		}
		if constrained {
			seq.MakeInexact()
		}
		return seq

	case syntax.OpAlternation:
		var out *Seq
		for _, child := range n.Children {
			childSeq := e.extract(child)
			if childSeq == nil {
				return nil
			}
			if out == nil {
				out = childSeq
				continue
			}
			if out.Len()+childSeq.Len() > e.config.MaxLiterals {
				return nil
			}
			out.literals = append(out.literals, childSeq.literals...)
			out.inexact = out.inexact || childSeq.inexact
		}
		return out

	default:
		// Character classes and wildcards match too many codepoints to
		// enumerate, and assertions carry no bytes of their own.
		return nil
	}
}

func repeats(q syntax.Quantifier) bool {
	switch q.Kind {
	case syntax.QuantOne:
		return false
	case syntax.QuantMinMax:
		return q.Min != 1 || q.Max != 1
	default:
		return true
	}
}

func isAssertion(op syntax.Op) bool {
	switch op {
	case syntax.OpLineStart, syntax.OpLineEnd,
		syntax.OpWordBoundary, syntax.OpNotWordBoundary,
		syntax.OpSubjectBegin, syntax.OpSubjectEnd:
		return true
	}
	return false
}

func encodeRune(r rune) []byte {
	return utf8.AppendRune(nil, r)
}
