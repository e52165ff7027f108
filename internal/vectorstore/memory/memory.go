// Package memory is a brute-force cosine similarity store. It backs
// local runs without a Qdrant instance and doubles as the test
// substitute for one.
package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"cvassist/internal/domain"
)

var _ domain.VectorStore = (*Store)(nil)

// Store keeps records in memory, keyed by record ID so upserting the
// same deterministic ID replaces rather than duplicates.
type Store struct {
	mu        sync.RWMutex
	dimension int
	records   map[string]domain.VectorRecord
}

// New creates an empty store.
func New() *Store { return &Store{} }

// Init sets the vector dimension. Existing records are kept when the
// dimension is unchanged, mirroring a persistent store.
func (s *Store) Init(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension != dimension {
		s.records = nil
	}
	s.dimension = dimension
	if s.records == nil {
		s.records = make(map[string]domain.VectorRecord)
	}
	return nil
}

// Upsert inserts or replaces records by ID.
func (s *Store) Upsert(_ context.Context, records []domain.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		return errors.New("store not initialised")
	}
	for _, r := range records {
		if len(r.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return nil
}

// Search scores every record by cosine similarity and returns the
// topK best that clear minScore, in descending score order.
func (s *Store) Search(_ context.Context, vector []float64, topK int, minScore float64) ([]domain.RetrievalMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	matches := make([]domain.RetrievalMatch, 0, len(s.records))
	for _, r := range s.records {
		score := cosine(vector, r.Vector)
		if score < minScore {
			continue
		}
		matches = append(matches, domain.RetrievalMatch{Payload: r.Payload, Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

// DeleteBySource removes every record for the candidate and reports
// how many went away.
func (s *Store) DeleteBySource(_ context.Context, candidate string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, r := range s.records {
		if r.Payload.Candidate == candidate {
			delete(s.records, id)
			removed++
		}
	}
	return removed, nil
}

// SourceCounts returns per-candidate chunk counts.
func (s *Store) SourceCounts(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, r := range s.records {
		counts[r.Payload.Candidate]++
	}
	return counts, nil
}

// cosine computes full cosine similarity. Remote embedding models do
// not all return L2-normalised vectors, so the norms cannot be
// skipped.
func cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
