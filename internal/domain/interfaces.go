package domain

import "context"

// Embedder maps text to a fixed-dimension vector. Ingestion and query
// must use the same model; the services check every returned vector
// against Dimension.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Generator produces text from a single prompt. Single-shot: any
// conversation history travels inside the prompt.
type Generator interface {
	ModelName() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// VectorStore persists vector records and supports similarity search
// plus payload-filtered maintenance operations.
type VectorStore interface {
	// Init prepares the backing collection for vectors of the given
	// dimension. Idempotent.
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, records []VectorRecord) error
	// Search returns up to topK matches with score >= minScore,
	// ordered by descending score.
	Search(ctx context.Context, vector []float64, topK int, minScore float64) ([]RetrievalMatch, error)
	// DeleteBySource removes all records for a candidate and reports
	// how many were removed.
	DeleteBySource(ctx context.Context, candidate string) (int, error)
	// SourceCounts returns per-candidate chunk counts for everything
	// currently indexed.
	SourceCounts(ctx context.Context) (map[string]int, error)
}

// Extractor pulls plain text out of one source file format.
type Extractor interface {
	Extensions() []string
	Extract(path string) (string, error)
}
