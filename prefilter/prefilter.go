// Package prefilter accelerates unanchored search by locating candidate
// match starts before the automaton runs.
//
// Every match of a pattern with extracted prefix literals must begin with
// one of those literals, so scanning for them with fast substring search
// primitives skips over stretches of the subject the automaton would reject
// byte by byte anyway.
//
// The builder picks a strategy from the literal sequence:
//   - single one-byte literal: byte search
//   - single literal: substring search
//   - several literals: Aho-Corasick automaton
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/regexvm/literal"
)

// Prefilter reports candidate positions where a match could begin.
type Prefilter interface {
	// Find returns the first candidate at or after start, or -1 when no
	// candidate remains. A candidate is a necessary condition for a match,
	// not a sufficient one, unless IsComplete reports true.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is already a full match, which
	// holds when the literals cover the whole pattern.
	IsComplete() bool
}

// Build constructs a prefilter from seq, or nil when the sequence offers no
// effective filtering.
func Build(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}
	complete := seq.IsExact()
	if seq.Len() == 1 {
		needle := seq.Get(0).Bytes
		if len(needle) == 1 {
			return &memchr{b: needle[0], complete: complete}
		}
		return &memmem{needle: needle, complete: complete}
	}
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasick{auto: auto, complete: complete}
}

// memchr finds occurrences of a single byte.
type memchr struct {
	b        byte
	complete bool
}

func (p *memchr) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	i := bytes.IndexByte(haystack[start:], p.b)
	if i < 0 {
		return -1
	}
	return start + i
}

func (p *memchr) IsComplete() bool { return p.complete }

// memmem finds occurrences of a single substring.
type memmem struct {
	needle   []byte
	complete bool
}

func (p *memmem) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	i := bytes.Index(haystack[start:], p.needle)
	if i < 0 {
		return -1
	}
	return start + i
}

func (p *memmem) IsComplete() bool { return p.complete }

// ahoCorasick finds occurrences of any of several literals in one pass.
type ahoCorasick struct {
	auto     *ahocorasick.Automaton
	complete bool
}

func (p *ahoCorasick) Find(haystack []byte, start int) int {
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasick) IsComplete() bool { return p.complete }
