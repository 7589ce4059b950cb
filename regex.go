// Package regexvm is a small Unicode-aware regex engine built on a bytecode
// virtual machine.
//
// Patterns compile to a linear program that a threaded simulation executes
// in a single pass over the subject, tracking every pending alternative at
// once. Match time is O(len(pattern) * len(subject)) with no backtracking,
// so untrusted patterns cannot blow up the search.
//
// Basic usage:
//
//	re, err := regexvm.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	loc := re.FindSubmatchIndex([]byte("call 555-0199 now"))
//	// loc[0]:loc[1] spans "555-0199"
//
// Find and its variants search the whole subject and return the first match
// any thread completes; a match that starts earlier or runs longer but is
// still in progress at that point is not returned, so `\d+` on "ab123"
// finds "1". Match requires the pattern to cover the whole subject. The
// Longest variants keep running after a match so that threads of higher
// priority can extend it, but each match drops every thread of lower
// priority: `\d+` on "ab123" finds "123", while `a|ab` on "ab" finds "a".
//
// Dialect: literals, '.', character classes with ranges and class escapes,
// alternation '|', grouping '(...)' (always capturing), quantifiers
// '* + ? {n} {n,} {,m} {n,m}', and the zero-width assertions
// '^ $ \b \B \` \''.
package regexvm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/coregx/regexvm/literal"
	"github.com/coregx/regexvm/prefilter"
	"github.com/coregx/regexvm/program"
	"github.com/coregx/regexvm/syntax"
	"github.com/coregx/regexvm/vm"
)

// Config tunes compilation.
//
// Example:
//
//	config := regexvm.DefaultConfig()
//	config.DisablePrefilter = true
//	re, err := regexvm.CompileWithConfig(`(foo|bar)+`, config)
type Config struct {
	// Literal bounds prefix extraction for the search prefilter.
	Literal literal.ExtractorConfig

	// DisablePrefilter skips literal extraction entirely, forcing every
	// search through the plain automaton.
	DisablePrefilter bool

	// Invalid decides how invalid UTF-8 in the subject is decoded. Nil
	// means vm.ReplaceInvalid.
	Invalid vm.InvalidPolicy
}

// DefaultConfig returns the default compilation configuration.
func DefaultConfig() Config {
	return Config{Literal: literal.DefaultConfig()}
}

// Regex is a compiled pattern. It is safe for concurrent use by multiple
// goroutines.
type Regex struct {
	pattern string
	prog    *program.Program
	pf      prefilter.Prefilter
	pool    sync.Pool
}

// CompileError reports a pattern that failed to compile.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("regexvm: compile %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is Compile for patterns known to be valid; it panics on
// error.
//
// Example:
//
//	var wordRE = regexvm.MustCompile(`\w+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern with custom configuration.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	parsed, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	prog, err := program.Compile(parsed)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	re := &Regex{pattern: pattern, prog: prog}
	if !config.DisablePrefilter {
		seq := literal.New(config.Literal).Prefixes(parsed.Ast)
		re.pf = prefilter.Build(seq)
	}
	invalid := config.Invalid
	re.pool.New = func() any {
		m := vm.New(prog)
		m.SetInvalidPolicy(invalid)
		return m
	}
	return re, nil
}

// Validate reports whether pattern compiles, without keeping the result.
func Validate(pattern string) error {
	_, err := Compile(pattern)
	return err
}

// String returns the source pattern.
func (re *Regex) String() string {
	return re.pattern
}

// NumCaptures returns the number of capture groups, counting the whole
// pattern as group 0.
func (re *Regex) NumCaptures() int {
	return re.prog.SaveCount / 2
}

// Match reports whether the pattern matches the entire subject.
func (re *Regex) Match(data []byte) bool {
	return re.Exec(data, true, false) != nil
}

// MatchString is Match for a string subject.
func (re *Regex) MatchString(s string) bool {
	return re.Match([]byte(s))
}

// Find returns the first match found in data (see Exec), or nil when there
// is none. An empty match is returned as a non-nil empty slice.
func (re *Regex) Find(data []byte) []byte {
	loc := re.FindSubmatchIndex(data)
	if loc == nil {
		return nil
	}
	if data == nil {
		// slicing nil yields nil; the match here can only be empty
		return []byte{}
	}
	return data[loc[0]:loc[1]:loc[1]]
}

// FindString is Find for a string subject. It returns "" both for no match
// and for an empty match; use FindSubmatchIndex to tell them apart.
func (re *Regex) FindString(s string) string {
	loc := re.FindSubmatchIndex([]byte(s))
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindSubmatchIndex returns the capture slots of the first match found (see
// Exec): slots
// 2k and 2k+1 hold the byte range of group k, -1 for groups that did not
// participate. Returns nil when there is no match.
func (re *Regex) FindSubmatchIndex(data []byte) []int {
	return re.Exec(data, false, false)
}

// FindLongestSubmatchIndex is FindSubmatchIndex in longest mode: after a
// match, threads of higher priority keep running and may extend it (see
// Exec).
func (re *Regex) FindLongestSubmatchIndex(data []byte) []int {
	return re.Exec(data, false, true)
}

// Exec runs the pattern over data and returns the raw capture slots, or
// nil when there is no match. With anchored set the match must span the
// whole subject. Without longest, an unanchored search returns as soon as
// any thread matches, even while a thread that started earlier or could
// match more is still running. With longest set, a match drops only the
// threads of lower priority; the higher-priority threads keep running and
// the last match found is returned, so a longer match that only a
// lower-priority alternative reaches is not found.
func (re *Regex) Exec(data []byte, anchored, longest bool) []int {
	m := re.pool.Get().(*vm.VM)
	defer re.pool.Put(m)

	if anchored || re.pf == nil {
		return m.Exec(data, anchored, longest)
	}
	// Every match starts with one of the extracted literals, so the first
	// candidate bounds the leftmost match from below.
	candidate := re.pf.Find(data, 0)
	if candidate < 0 {
		return nil
	}
	return m.ExecAt(data, candidate, false, longest)
}

// QuoteMeta returns a pattern that matches the literal text s.
//
// Example:
//
//	regexvm.QuoteMeta("1+1=2") // `1\+1=2`
func QuoteMeta(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if isMeta(s[i]) {
			break
		}
	}
	if i == len(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		if isMeta(s[i]) {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isMeta(c byte) bool {
	switch c {
	case '\\', '^', '$', '.', '|', '?', '*', '+', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}
