// Package literal extracts the byte sequences a pattern is guaranteed to
// begin with. A search can then skip ahead to occurrences of those sequences
// instead of trying the full automaton at every position.
//
// Key concepts:
//   - A Literal is a concrete byte sequence a match may start with
//   - A Seq is the set of alternatives (e.g. from /foo|bar/)
//   - A Seq is exact when each of its literals is by itself a full match
package literal

import "bytes"

// Literal is one alternative byte sequence. Complete reports whether the
// sequence covers an entire match of the pattern rather than just a prefix.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal from b.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// Seq is a finite set of alternative literals. A nil or empty Seq means no
// useful literals could be extracted.
type Seq struct {
	literals []Literal
	inexact  bool
}

// NewSeq creates a sequence holding lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// IsEmpty reports whether the sequence holds no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// Push appends a literal.
func (s *Seq) Push(l Literal) {
	s.literals = append(s.literals, l)
}

// IsExact reports whether every literal is complete, meaning an occurrence
// of any literal is by itself a full match of the pattern.
func (s *Seq) IsExact() bool {
	if s.IsEmpty() || s.inexact {
		return false
	}
	for _, l := range s.literals {
		if !l.Complete {
			return false
		}
	}
	return true
}

// MakeInexact marks every literal as a mere prefix. Used when extraction
// stops early, for example at a quantifier or a character class.
func (s *Seq) MakeInexact() {
	if s == nil {
		return
	}
	s.inexact = true
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

// Cross appends other to every literal of s, producing the literals of a
// concatenation. Literals of s that are already incomplete stay as they
// are since nothing past them is guaranteed. The result size is capped at
// maxLiterals; when the product would exceed it, s is marked inexact and
// returned unchanged.
func (s *Seq) Cross(other *Seq, maxLiterals int) *Seq {
	if s.IsEmpty() || other.IsEmpty() {
		s.MakeInexact()
		return s
	}
	if s.Len()*other.Len() > maxLiterals {
		s.MakeInexact()
		return s
	}
	out := NewSeq()
	for _, a := range s.literals {
		if !a.Complete {
			out.Push(a)
			continue
		}
		for _, b := range other.literals {
			joined := make([]byte, 0, len(a.Bytes)+len(b.Bytes))
			joined = append(joined, a.Bytes...)
			joined = append(joined, b.Bytes...)
			out.Push(NewLiteral(joined, b.Complete))
		}
	}
	out.inexact = other.inexact
	return out
}

// Dedup removes duplicate literals, keeping first occurrences.
func (s *Seq) Dedup() {
	if s.Len() < 2 {
		return
	}
	out := s.literals[:0]
	for _, l := range s.literals {
		dup := false
		for _, kept := range out {
			if bytes.Equal(kept.Bytes, l.Bytes) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	s.literals = out
}

// MinLen returns the length of the shortest literal.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	minLen := s.literals[0].Len()
	for _, l := range s.literals[1:] {
		if l.Len() < minLen {
			minLen = l.Len()
		}
	}
	return minLen
}

// HasEmpty reports whether any literal is empty. An empty literal makes the
// sequence useless as a prefilter because every position is a candidate.
func (s *Seq) HasEmpty() bool {
	for _, l := range s.literals {
		if l.Len() == 0 {
			return true
		}
	}
	return false
}
