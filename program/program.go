package program

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/coregx/regexvm/syntax"
)

// Program is a compiled pattern: the bytecode, the matcher table referenced
// by OpMatcher instructions, and the number of save slots (two per capture
// group). A Program is immutable after compilation and may be shared by any
// number of concurrent VM executions.
type Program struct {
	Bytecode  []byte
	Matchers  []syntax.Matcher
	SaveCount int

	entry uint32
}

// Entry returns the byte offset of the first instruction past the search
// prefix. Seeding a thread here anchors matching to the start of the
// subject; seeding at offset 0 runs the lazy ".*" prelude first, allowing
// the match to begin anywhere.
func (p *Program) Entry() uint32 {
	return p.entry
}

// ReadOffset decodes the jump target stored at pos.
func (p *Program) ReadOffset(pos uint32) uint32 {
	return binary.LittleEndian.Uint32(p.Bytecode[pos:])
}

// ReadRune decodes the literal codepoint stored at pos and its encoded
// width.
func (p *Program) ReadRune(pos uint32) (rune, int) {
	return utf8.DecodeRune(p.Bytecode[pos:])
}
