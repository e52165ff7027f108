package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvassist/internal/domain"
)

func doc(text string) domain.Document {
	return domain.Document{Candidate: "alice_cv", FileName: "alice_cv.txt", Text: text}
}

// reassemble drops each chunk's leading overlap and concatenates.
func reassemble(chunks []domain.Chunk, overlap int) string {
	var b strings.Builder
	for i, ch := range chunks {
		runes := []rune(ch.Text)
		if i > 0 {
			runes = runes[overlap:]
		}
		b.WriteString(string(runes))
	}
	return b.String()
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

func TestChunk_EmptyTextYieldsNoChunks(t *testing.T) {
	assert.Empty(t, New(500, 100).Chunk(doc("")))
}

func TestChunk_ShortTextYieldsSingleChunk(t *testing.T) {
	chunks := New(500, 100).Chunk(doc("short resume"))
	require.Len(t, chunks, 1)
	assert.Equal(t, "short resume", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Index)
}

func TestChunk_TextExactlySizeYieldsSingleChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := New(50, 10).Chunk(doc(text))
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0].Text)
}

func TestChunk_CountMatchesClosedForm(t *testing.T) {
	const size, overlap = 30, 5
	c := New(size, overlap)
	for _, length := range []int{1, 29, 30, 31, 43, 55, 56, 100, 999} {
		text := strings.Repeat("a", length)
		chunks := c.Chunk(doc(text))
		want := 1
		if length > size {
			want = ceilDiv(length-overlap, size-overlap)
		}
		assert.Len(t, chunks, want, "length %d", length)
	}
}

func TestChunk_ReassemblesOriginalText(t *testing.T) {
	text := strings.Repeat("Ten years of Go and Postgres experience. ", 40)
	c := New(120, 30)
	chunks := c.Chunk(doc(text))
	require.NotEmpty(t, chunks)
	assert.Equal(t, text, reassemble(chunks, c.Overlap()))
}

func TestChunk_AllButLastAreFullSize(t *testing.T) {
	c := New(64, 16)
	chunks := c.Chunk(doc(strings.Repeat("b", 1000)))
	require.Greater(t, len(chunks), 1)
	for i, ch := range chunks {
		assert.NotEmpty(t, ch.Text)
		if i < len(chunks)-1 {
			assert.Len(t, []rune(ch.Text), 64, "chunk %d", i)
		} else {
			assert.LessOrEqual(t, len([]rune(ch.Text)), 64)
		}
		assert.Equal(t, i, ch.Index)
	}
}

func TestChunk_StrideBetweenConsecutiveStarts(t *testing.T) {
	c := New(40, 10)
	chunks := c.Chunk(doc(strings.Repeat("c", 200)))
	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		assert.Equal(t, 30, chunks[i].Start-chunks[i-1].Start)
	}
}

func TestChunk_CountsRunesNotBytes(t *testing.T) {
	// 120 multi-byte runes, window of 50: 3 windows by rune count.
	text := strings.Repeat("é", 120)
	chunks := New(50, 10).Chunk(doc(text))
	require.Len(t, chunks, 3)
	assert.Len(t, []rune(chunks[0].Text), 50)
	assert.Equal(t, text, reassemble(chunks, 10))
}

func TestChunk_TwoCandidateScenario(t *testing.T) {
	text := "Alice knows Python and SQL. Bob knows Java."
	chunks := New(30, 5).Chunk(doc(text))
	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0].Text, "Alice")
	assert.Contains(t, chunks[1].Text, "Bob")
	assert.Equal(t, text, reassemble(chunks, 5))
}

func TestNew_ClampsBadParameters(t *testing.T) {
	c := New(0, -3)
	assert.Equal(t, DefaultSize, c.Size())
	assert.Equal(t, 0, c.Overlap())

	c = New(10, 25)
	assert.Equal(t, 9, c.Overlap())
}
