package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semsearch/internal/domain"
)

func TestSplitPacksParagraphsBelowLimit(t *testing.T) {
	text := "alpha beta\ngamma delta\nepsilon zeta\neta theta"
	chunks := NewParagraphChunker(30).Split(text)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.Less(t, len(c), 30, "chunk %q exceeds limit", c)
	}
	// Word order survives chunking.
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")))
}

func TestSplitFlushesOnLimit(t *testing.T) {
	chunks := NewParagraphChunker(25).Split("one two three\nfour five six\nseven")
	assert.Equal(t, []string{"one two three", "four five six seven"}, chunks)
}

func TestSplitOversizedParagraphKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 50)
	chunks := NewParagraphChunker(20).Split("short lead\n" + long + "\ntail")

	require.Contains(t, chunks, long, "oversized paragraph must appear whole")
	for _, c := range chunks {
		if c != long {
			assert.Less(t, len(c), 20)
		}
	}
}

func TestSplitEmptyLeadingChunk(t *testing.T) {
	// A first paragraph that alone reaches the limit flushes the empty
	// buffer first. Kept for compatibility with existing indexes.
	long := strings.Repeat("y", 15)
	chunks := NewParagraphChunker(10).Split(long)
	assert.Equal(t, []string{"", long}, chunks)
}

func TestSplitDeterministic(t *testing.T) {
	text := "The quick brown fox.\nJumps over the lazy dog.\n\nA second paragraph here.\nAnd a third one follows."
	c := NewParagraphChunker(40)
	first := c.Split(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Split(text))
	}
}

func TestSplitEmptyInput(t *testing.T) {
	assert.Empty(t, NewParagraphChunker(100).Split(""))
	assert.Empty(t, NewParagraphChunker(100).Split("\n\n\n"))
}

func TestChunkAssignsSequenceNumbers(t *testing.T) {
	doc := domain.Document{
		Path:    "notes.txt",
		Content: "first paragraph\nsecond paragraph\nthird paragraph",
	}
	chunks := NewParagraphChunker(20).Chunk(doc)
	require.NotEmpty(t, chunks)
	for i, c := range chunks {
		assert.Equal(t, "notes.txt", c.File)
		assert.Equal(t, i, c.Seq)
	}
}
