package domain

// Document is a source file after text extraction. It is read once,
// chunked, and discarded; only chunks are persisted.
type Document struct {
	Candidate string // source identifier: file name without extension
	FileName  string
	Text      string
}

// Chunk is a bounded window of a document's text, the unit of
// embedding and retrieval.
type Chunk struct {
	Candidate string
	FileName  string
	Index     int
	Start     int // rune offset into the document text
	End       int
	Text      string
}

// ChunkPayload is the metadata stored alongside each vector. The
// candidate and index fields must stay filterable in the vector store.
type ChunkPayload struct {
	Text        string
	Candidate   string
	FileName    string
	Index       int
	TotalChunks int
}

// VectorRecord is a persisted (id, vector, payload) triple.
type VectorRecord struct {
	ID      string
	Vector  []float64
	Payload ChunkPayload
}

// RetrievalMatch is a payload with its cosine similarity to a query
// vector. Produced per query, never persisted.
type RetrievalMatch struct {
	Payload ChunkPayload
	Score   float64
}

// Roles for chat turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one side of a prior chat exchange, carried into the prompt
// so follow-up questions keep their referents. The generator itself
// holds no conversation state.
type Turn struct {
	Role    string // RoleUser or RoleAssistant
	Content string
}

// Answer is the query pipeline's result: generated text plus the
// matches it was grounded in, in descending score order.
type Answer struct {
	Text    string
	Matches []RetrievalMatch
}

// Grounded reports whether the answer was produced from retrieved
// context, as opposed to the fixed no-context response.
func (a Answer) Grounded() bool { return len(a.Matches) > 0 }
