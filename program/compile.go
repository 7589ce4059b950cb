package program

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"

	"github.com/coregx/regexvm/internal/conv"
	"github.com/coregx/regexvm/syntax"
)

// ErrTooComplex indicates the pattern exceeds the bytecode's one-byte
// matcher-id or save-slot operands.
var ErrTooComplex = errors.New("pattern too complex")

// Compile lowers a parsed pattern into a Program.
//
// The program begins with a search prefix equivalent to a lazy ".*" so the
// same bytecode serves both anchored and unanchored execution; Entry gives
// the anchored entry point past it. A single OpMatch terminates the program.
func Compile(parsed *syntax.Parsed) (*Program, error) {
	if parsed.CaptureCount > 128 || len(parsed.Matchers) > 256 {
		return nil, ErrTooComplex
	}
	c := &compiler{prog: &Program{}}
	c.writeSearchPrefix()
	c.compileNode(parsed.Ast)
	c.emit(OpMatch)
	c.prog.Matchers = parsed.Matchers
	c.prog.SaveCount = parsed.CaptureCount * 2
	return c.prog, nil
}

type compiler struct {
	prog *Program
}

// writeSearchPrefix emits the lazy ".*" prelude. The anchored entry point is
// whatever offset follows the prelude, never a hardcoded constant.
func (c *compiler) writeSearchPrefix() {
	c.emit(OpSplitPrioritizeChild)
	entry := c.allocOffset()
	anyPos := c.pos()
	c.emit(OpAnyChar)
	c.emit(OpSplitPrioritizeParent)
	c.patchOffset(c.allocOffset(), anyPos)
	c.prog.entry = c.pos()
	c.patchOffset(entry, c.prog.entry)
}

// compileNode emits node wrapped in its quantifier and returns its start
// offset.
func (c *compiler) compileNode(node *syntax.Node) uint32 {
	pos := c.pos()
	quant := node.Quant

	// {0} and {,0} admit only the empty repetition
	if quant.Kind == syntax.QuantMinMax && quant.Max == 0 && quant.Min <= 0 {
		return pos
	}

	var gotoEnd []uint32
	if quant.AllowsNone() {
		c.emit(OpSplitPrioritizeParent)
		gotoEnd = append(gotoEnd, c.allocOffset())
	}

	innerPos := c.compileNodeInner(node)
	for i := 1; i < quant.Min; i++ {
		innerPos = c.compileNodeInner(node)
	}

	if quant.AllowsInfiniteRepeat() {
		c.emit(OpSplitPrioritizeChild)
		c.patchOffset(c.allocOffset(), innerPos)
	} else {
		for i := max(1, quant.Min); i < quant.Max; i++ {
			c.emit(OpSplitPrioritizeParent)
			gotoEnd = append(gotoEnd, c.allocOffset())
			c.compileNodeInner(node)
		}
	}

	for _, at := range gotoEnd {
		c.patchOffset(at, c.pos())
	}
	return pos
}

// compileNodeInner emits one copy of the node body, bracketed by the Save
// pair when the node carries a capture group.
func (c *compiler) compileNodeInner(node *syntax.Node) uint32 {
	start := c.pos()

	capture := int32(syntax.NoCapture)
	if node.Op == syntax.OpSequence || node.Op == syntax.OpAlternation {
		capture = node.Value
	}
	if capture >= 0 {
		c.emit(OpSave)
		c.emitByte(byte(capture * 2))
	}

	var gotoInnerEnd []uint32
	switch node.Op {
	case syntax.OpLiteral:
		c.emit(OpLiteral)
		c.emitCodepoint(rune(node.Value))
	case syntax.OpAnyChar:
		c.emit(OpAnyChar)
	case syntax.OpMatcher:
		c.emit(OpMatcher)
		c.emitByte(byte(node.Value))
	case syntax.OpSequence:
		for _, child := range node.Children {
			c.compileNode(child)
		}
	case syntax.OpAlternation:
		c.emit(OpSplitPrioritizeParent)
		rightOffset := c.allocOffset()

		c.compileNode(node.Children[0])
		c.emit(OpJump)
		gotoInnerEnd = append(gotoInnerEnd, c.allocOffset())

		c.patchOffset(rightOffset, c.compileNode(node.Children[1]))
	case syntax.OpLineStart:
		c.emit(OpLineStart)
	case syntax.OpLineEnd:
		c.emit(OpLineEnd)
	case syntax.OpWordBoundary:
		c.emit(OpWordBoundary)
	case syntax.OpNotWordBoundary:
		c.emit(OpNotWordBoundary)
	case syntax.OpSubjectBegin:
		c.emit(OpSubjectBegin)
	case syntax.OpSubjectEnd:
		c.emit(OpSubjectEnd)
	}

	for _, at := range gotoInnerEnd {
		c.patchOffset(at, c.pos())
	}

	if capture >= 0 {
		c.emit(OpSave)
		c.emitByte(byte(capture*2 + 1))
	}
	return start
}

func (c *compiler) pos() uint32 {
	return conv.IntToUint32(len(c.prog.Bytecode))
}

func (c *compiler) emit(op Op) {
	c.prog.Bytecode = append(c.prog.Bytecode, byte(op))
}

func (c *compiler) emitByte(b byte) {
	c.prog.Bytecode = append(c.prog.Bytecode, b)
}

func (c *compiler) emitCodepoint(r rune) {
	c.prog.Bytecode = utf8.AppendRune(c.prog.Bytecode, r)
}

// allocOffset reserves space for an offset operand and returns its position
// for later patching.
func (c *compiler) allocOffset() uint32 {
	pos := c.pos()
	c.prog.Bytecode = append(c.prog.Bytecode, 0, 0, 0, 0)
	return pos
}

func (c *compiler) patchOffset(at, target uint32) {
	binary.LittleEndian.PutUint32(c.prog.Bytecode[at:], target)
}
