// Package qdrant is a minimal REST client to Qdrant, covering the
// five operations the pipelines need: ensure-collection, upsert,
// similarity search, filtered delete and payload scroll.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cvassist/internal/domain"
)

var _ domain.VectorStore = (*Store)(nil)

// Payload field names, shared between upsert and search decoding.
// candidate and chunk_index are the filterable fields.
const (
	fieldText        = "text"
	fieldCandidate   = "candidate"
	fieldFileName    = "filename"
	fieldChunkIndex  = "chunk_index"
	fieldTotalChunks = "total_chunks"
)

// Config contains connection details for a Qdrant instance.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// Store assumes cosine distance and creates the collection if
// missing.
type Store struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

// New creates a Qdrant store client.
func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Init creates the collection with cosine distance if it does not
// exist yet.
func (s *Store) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension

	exists, err := s.collectionExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

// Upsert writes records with their precomputed IDs; re-upserting an
// ID overwrites the stored point.
func (s *Store) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	points := make([]map[string]any, len(records))
	for i, r := range records {
		if len(r.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		points[i] = map[string]any{
			"id":     r.ID,
			"vector": r.Vector,
			"payload": map[string]any{
				fieldText:        r.Payload.Text,
				fieldCandidate:   r.Payload.Candidate,
				fieldFileName:    r.Payload.FileName,
				fieldChunkIndex:  r.Payload.Index,
				fieldTotalChunks: r.Payload.TotalChunks,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

// Search runs a cosine similarity query; Qdrant applies both the
// limit and the score threshold server-side.
func (s *Store) Search(ctx context.Context, vector []float64, topK int, minScore float64) ([]domain.RetrievalMatch, error) {
	if topK <= 0 {
		topK = 5
	}
	req := map[string]any{
		"vector":          vector,
		"limit":           topK,
		"with_payload":    true,
		"score_threshold": minScore,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		// A collection that was never created holds nothing; querying
		// before the first ingest behaves as an empty store.
		if missingCollection(err) {
			return nil, nil
		}
		return nil, err
	}
	matches := make([]domain.RetrievalMatch, 0, len(resp.Result))
	for _, r := range resp.Result {
		matches = append(matches, domain.RetrievalMatch{
			Payload: decodePayload(r.Payload),
			Score:   r.Score,
		})
	}
	return matches, nil
}

// DeleteBySource counts then deletes every point whose candidate
// payload matches. The count makes the removed total reportable,
// which the delete endpoint alone does not return.
func (s *Store) DeleteBySource(ctx context.Context, candidate string) (int, error) {
	filter := candidateFilter(candidate)

	var countResp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	countReq := map[string]any{"filter": filter, "exact": true}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection), countReq, &countResp); err != nil {
		if missingCollection(err) {
			return 0, nil
		}
		return 0, err
	}
	if countResp.Result.Count == 0 {
		return 0, nil
	}

	deleteReq := map[string]any{"filter": filter}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.url, s.collection), deleteReq, nil); err != nil {
		return 0, err
	}
	return countResp.Result.Count, nil
}

// SourceCounts scrolls payloads and aggregates chunk counts per
// candidate. The distinct-candidate set is derived, never stored.
func (s *Store) SourceCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	var offset any
	for {
		req := map[string]any{
			"limit":        1000,
			"with_payload": []string{fieldCandidate},
			"with_vector":  false,
		}
		if offset != nil {
			req["offset"] = offset
		}
		var resp struct {
			Result struct {
				Points []struct {
					Payload map[string]any `json:"payload"`
				} `json:"points"`
				NextPageOffset any `json:"next_page_offset"`
			} `json:"result"`
		}
		if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/scroll", s.url, s.collection), req, &resp); err != nil {
			if missingCollection(err) {
				return counts, nil
			}
			return nil, err
		}
		for _, p := range resp.Result.Points {
			if name, ok := p.Payload[fieldCandidate].(string); ok {
				counts[name]++
			}
		}
		if resp.Result.NextPageOffset == nil {
			return counts, nil
		}
		offset = resp.Result.NextPageOffset
	}
}

func candidateFilter(candidate string) map[string]any {
	return map[string]any{
		"must": []map[string]any{
			{"key": fieldCandidate, "match": map[string]any{"value": candidate}},
		},
	}
}

func decodePayload(payload map[string]any) domain.ChunkPayload {
	out := domain.ChunkPayload{}
	if v, ok := payload[fieldText].(string); ok {
		out.Text = v
	}
	if v, ok := payload[fieldCandidate].(string); ok {
		out.Candidate = v
	}
	if v, ok := payload[fieldFileName].(string); ok {
		out.FileName = v
	}
	if v, ok := payload[fieldChunkIndex].(float64); ok {
		out.Index = int(v)
	}
	if v, ok := payload[fieldTotalChunks].(float64); ok {
		out.TotalChunks = int(v)
	}
	return out
}

func (s *Store) collectionExists(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return false, err
	}
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("qdrant GET collection failed: %s", resp.Status)
	}
}

func (s *Store) putJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &statusError{method: http.MethodPut, url: url, status: resp.StatusCode, text: resp.Status}
	}
	return nil
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &statusError{method: http.MethodPost, url: url, status: resp.StatusCode, text: resp.Status}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// statusError keeps the HTTP status, so callers can tell a missing
// collection apart from other failures.
type statusError struct {
	method string
	url    string
	status int
	text   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant %s %s failed: %s", e.method, e.url, e.text)
}

func missingCollection(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == http.StatusNotFound
}

func (s *Store) auth(req *http.Request) {
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}
