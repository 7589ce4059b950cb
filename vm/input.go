package vm

import "unicode/utf8"

// InvalidPolicy decides how the input decoder treats an invalid UTF-8
// sequence. It receives the remaining bytes starting at the offending
// position and returns the codepoint to report and the number of bytes to
// consume, which must be at least 1.
type InvalidPolicy func(b []byte) (rune, int)

// ReplaceInvalid reports U+FFFD over a single byte. This is the default
// policy and mirrors the stdlib's lenient decoding.
func ReplaceInvalid(b []byte) (rune, int) {
	return utf8.RuneError, 1
}

// input decodes codepoints out of the subject bytes.
type input struct {
	data    []byte
	invalid InvalidPolicy
}

// at decodes the codepoint starting at pos. pos must be < len(data).
func (in *input) at(pos int) (rune, int) {
	r, w := utf8.DecodeRune(in.data[pos:])
	if r == utf8.RuneError && w <= 1 {
		r, w = in.invalid(in.data[pos:])
		if w < 1 {
			w = 1
		}
	}
	return r, w
}

// before decodes the codepoint ending at pos. pos must be > 0.
func (in *input) before(pos int) rune {
	r, w := utf8.DecodeLastRune(in.data[:pos])
	if r == utf8.RuneError && w <= 1 {
		r, _ = in.invalid(in.data[pos-1 : pos])
	}
	return r
}
