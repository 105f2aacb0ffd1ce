package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestChunkingInvarianceProperty checks that concatenating arbitrary
// chunkings of the same byte sequence and feeding them to an Extractor
// yields identical Frame sequences, for randomly generated inputs and
// chunk splits.
func TestChunkingInvarianceProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		whole := rapid.SliceOfN(rapid.Byte(), 0, 200).Draw(rt, "whole")

		baseline := NewExtractor().Feed(whole)

		splits := rapid.SliceOfN(rapid.IntRange(1, 7), 0, 30).Draw(rt, "splits")
		e := NewExtractor()
		var got []Frame
		pos := 0
		for _, n := range splits {
			if pos >= len(whole) {
				break
			}
			end := pos + n
			if end > len(whole) {
				end = len(whole)
			}
			got = append(got, e.Feed(whole[pos:end])...)
			pos = end
		}
		if pos < len(whole) {
			got = append(got, e.Feed(whole[pos:])...)
		}

		assert.Equal(rt, baseline, got)
	})
}

// TestExtractedFramesAreWellFormed checks that every emitted Frame
// starts with 0xAA, ends with 0x99, has length >= 2, and contains no
// unescaped escape byte.
func TestExtractedFramesAreWellFormed(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		whole := rapid.SliceOfN(rapid.Byte(), 0, 300).Draw(rt, "whole")

		for _, f := range NewExtractor().Feed(whole) {
			assert.GreaterOrEqual(rt, len(f), 2)
			assert.Equal(rt, byte(startDelimiter), f[0])
			assert.Equal(rt, byte(endDelimiter), f[len(f)-1])
			for _, b := range f[1 : len(f)-1] {
				assert.NotEqual(rt, byte(escape), b)
			}
		}
	})
}

// TestScratchBufferBounded checks that, for random chunks of up to 16
// bytes, the scratch buffer never exceeds maxRetainedSize by more than
// one chunk's worth of bytes after any feed.
func TestScratchBufferBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := NewExtractor()
		chunks := rapid.SliceOfN(rapid.SliceOfN(rapid.Byte(), 0, 16), 0, 50).Draw(rt, "chunks")
		for _, c := range chunks {
			e.Feed(c)
			assert.LessOrEqual(rt, e.Len(), maxRetainedSize+16)
		}
	})
}
