package prefilter

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/coregx/regexvm/literal"
)

func TestBuildRejectsUselessSequences(t *testing.T) {
	assert.Assert(t, Build(literal.NewSeq()) == nil)
	assert.Assert(t, Build(nil) == nil)

	withEmpty := literal.NewSeq(
		literal.NewLiteral([]byte("a"), true),
		literal.NewLiteral(nil, true),
	)
	assert.Assert(t, Build(withEmpty) == nil)
}

func TestSingleByte(t *testing.T) {
	pf := Build(literal.NewSeq(literal.NewLiteral([]byte("x"), true)))
	assert.Assert(t, pf != nil)
	assert.Assert(t, pf.IsComplete())

	haystack := []byte("aaxbxc")
	assert.Equal(t, pf.Find(haystack, 0), 2)
	assert.Equal(t, pf.Find(haystack, 3), 4)
	assert.Equal(t, pf.Find(haystack, 5), -1)
	assert.Equal(t, pf.Find(haystack, 6), -1)
}

func TestSingleSubstring(t *testing.T) {
	pf := Build(literal.NewSeq(literal.NewLiteral([]byte("foo"), false)))
	assert.Assert(t, pf != nil)
	assert.Assert(t, !pf.IsComplete())

	haystack := []byte("ffoo foo")
	assert.Equal(t, pf.Find(haystack, 0), 1)
	assert.Equal(t, pf.Find(haystack, 2), 5)
	assert.Equal(t, pf.Find(haystack, 6), -1)
}

func TestMultiLiteral(t *testing.T) {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("bar"), true),
		literal.NewLiteral([]byte("baz"), true),
	)
	pf := Build(seq)
	assert.Assert(t, pf != nil)
	assert.Assert(t, pf.IsComplete())

	haystack := []byte("xx bar yy foo baz")
	assert.Equal(t, pf.Find(haystack, 0), 3)
	assert.Equal(t, pf.Find(haystack, 4), 10)
	assert.Equal(t, pf.Find(haystack, 11), 14)
	assert.Equal(t, pf.Find(haystack, 15), -1)
}

func TestMultiLiteralIncomplete(t *testing.T) {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("ba"), false),
	)
	pf := Build(seq)
	assert.Assert(t, pf != nil)
	assert.Assert(t, !pf.IsComplete())
	assert.Equal(t, pf.Find([]byte("zzba"), 0), 2)
}
