package syntax

import "unicode"

// Matcher is a predicate over codepoints, derived from a character class or a
// class escape. The VM evaluates the matcher referenced by an OpMatcher node
// against each input codepoint.
type Matcher func(r rune) bool

// ctype names a Unicode character property consulted by matchers.
// The same oracle backs the class escapes and the word-boundary assertion.
type ctype uint8

const (
	ctypeDigit ctype = iota
	ctypeAlnum
	ctypeSpace
)

func (c ctype) matches(r rune) bool {
	switch c {
	case ctypeDigit:
		return unicode.IsDigit(r)
	case ctypeAlnum:
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	case ctypeSpace:
		return unicode.IsSpace(r)
	}
	return false
}

// IsWord reports whether r is a word character. This is the exact predicate
// behind \w and \W, shared with the VM's \b and \B checks.
func IsWord(r rune) bool {
	return ctypeAlnum.matches(r) || r == '_'
}

// CharRange is an inclusive codepoint range inside a character class.
type CharRange struct {
	Min, Max rune
}

// classEscape describes one \X class escape: the property it tests, extra
// member codepoints, and whether the predicate is inverted.
type classEscape struct {
	name            rune
	ctype           ctype
	additionalChars string
	negated         bool
}

var classEscapes = [...]classEscape{
	{'d', ctypeDigit, "", false},
	{'D', ctypeDigit, "", true},
	{'w', ctypeAlnum, "_", false},
	{'W', ctypeAlnum, "_", true},
	{'s', ctypeSpace, "", false},
	{'S', ctypeSpace, "", true},
}

func lookupClassEscape(r rune) (classEscape, bool) {
	for _, esc := range classEscapes {
		if esc.name == r {
			return esc, true
		}
	}
	return classEscape{}, false
}

// newEscapeMatcher builds the matcher for a bare class escape atom, e.g. \w.
func newEscapeMatcher(esc classEscape) Matcher {
	ct := esc.ctype
	chars := esc.additionalChars
	neg := esc.negated
	return func(r rune) bool {
		found := ct.matches(r) || containsRune(chars, r)
		return neg != found
	}
}

// ctypeSign pairs a property with the polarity it must match inside a
// character class: \d contributes {digit, true}, \D contributes {digit, false}.
type ctypeSign struct {
	ctype ctype
	sign  bool
}

// newClassMatcher builds the matcher for a bracketed character class. All
// range and property terms are unioned, then the class negation is applied
// exactly once.
func newClassMatcher(ranges []CharRange, ctypes []ctypeSign, negated bool) Matcher {
	return func(r rune) bool {
		found := false
		for _, rng := range ranges {
			if rng.Min <= r && r <= rng.Max {
				found = true
				break
			}
		}
		if !found {
			for _, c := range ctypes {
				if c.ctype.matches(r) == c.sign {
					found = true
					break
				}
			}
		}
		return negated != found
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
