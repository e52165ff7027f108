// Package chunker splits extracted document text into overlapping
// fixed-length character windows.
package chunker

import (
	"cvassist/internal/domain"
)

// Defaults match the sizes the corpus was tuned with.
const (
	DefaultSize    = 500
	DefaultOverlap = 100
)

// WindowChunker produces windows of at most size runes; consecutive
// windows overlap by overlap runes.
type WindowChunker struct {
	size    int
	overlap int
}

// New clamps the parameters to something usable: size must be
// positive and overlap must satisfy 0 <= overlap < size.
func New(size, overlap int) *WindowChunker {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}
	return &WindowChunker{size: size, overlap: overlap}
}

// Chunk splits a document into ordered windows. Window i+1 starts
// size-overlap runes after window i; every window except possibly the
// last has exactly size runes; empty text yields no chunks. Pure and
// deterministic.
func (c *WindowChunker) Chunk(doc domain.Document) []domain.Chunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}
	stride := c.size - c.overlap
	var chunks []domain.Chunk
	for start := 0; start < len(runes); start += stride {
		end := start + c.size
		last := end >= len(runes)
		if last {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			Candidate: doc.Candidate,
			FileName:  doc.FileName,
			Index:     len(chunks),
			Start:     start,
			End:       end,
			Text:      string(runes[start:end]),
		})
		if last {
			break
		}
	}
	return chunks
}

// Size returns the configured window size in runes.
func (c *WindowChunker) Size() int { return c.size }

// Overlap returns the configured overlap in runes.
func (c *WindowChunker) Overlap() int { return c.overlap }
