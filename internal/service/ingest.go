// Package service holds the ingestion and query pipelines. Both take
// their capabilities (embedder, vector store, generator, extractor)
// as constructor arguments so tests can substitute fakes.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cvassist/internal/chunker"
	"cvassist/internal/domain"
	"cvassist/internal/logger"
)

// TextExtractor is the slice of the extraction registry the ingestor
// needs.
type TextExtractor interface {
	Supported(path string) bool
	Extract(path string) (string, error)
}

// FileReport describes what happened to one source file during an
// ingest run.
type FileReport struct {
	FileName  string
	Candidate string
	Chunks    int
	Skipped   bool // already indexed
	Err       error
}

// IngestReport summarises an ingest run.
type IngestReport struct {
	Files []FileReport
	Added int // new chunks stored
}

// Failed returns the reports of files that errored.
func (r IngestReport) Failed() []FileReport {
	var out []FileReport
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Ingestor brings the vector store in sync with a directory of CV
// files.
type Ingestor struct {
	chunker   *chunker.WindowChunker
	embedder  domain.Embedder
	store     domain.VectorStore
	extractor TextExtractor
}

// NewIngestor wires the ingestion pipeline.
func NewIngestor(ch *chunker.WindowChunker, embedder domain.Embedder, store domain.VectorStore, extractor TextExtractor) *Ingestor {
	return &Ingestor{chunker: ch, embedder: embedder, store: store, extractor: extractor}
}

// Ingest indexes every supported file in dir that is not already
// indexed. Files are processed one at a time; a failing file is
// reported and the batch moves on. Running Ingest twice over an
// unchanged directory adds nothing the second time: already-indexed
// candidates are skipped, and chunk IDs are derived from
// candidate+index so even a rerun after a partial failure overwrites
// rather than duplicates.
func (s *Ingestor) Ingest(ctx context.Context, dir string) (IngestReport, error) {
	var report IngestReport

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("read data dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !s.extractor.Supported(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	if len(files) == 0 {
		return report, fmt.Errorf("%s: %w", dir, domain.ErrNoDocuments)
	}

	if err := s.store.Init(ctx, s.embedder.Dimension()); err != nil {
		return report, fmt.Errorf("init vector store: %w", err)
	}
	indexed, err := s.store.SourceCounts(ctx)
	if err != nil {
		return report, fmt.Errorf("list indexed candidates: %w", err)
	}

	for _, name := range files {
		report.Files = append(report.Files, s.ingestFile(ctx, dir, name, indexed))
		if last := report.Files[len(report.Files)-1]; last.Err == nil && !last.Skipped {
			report.Added += last.Chunks
		}
	}
	return report, nil
}

func (s *Ingestor) ingestFile(ctx context.Context, dir, name string, indexed map[string]int) FileReport {
	candidate := strings.TrimSuffix(name, filepath.Ext(name))
	report := FileReport{FileName: name, Candidate: candidate}

	if _, ok := indexed[candidate]; ok {
		logger.Debugf("%s already indexed, skipping", candidate)
		report.Skipped = true
		return report
	}

	text, err := s.extractor.Extract(filepath.Join(dir, name))
	if err != nil {
		logger.Warnf("extract %s: %v", name, err)
		report.Err = fmt.Errorf("extract: %w", err)
		return report
	}
	if text == "" {
		report.Err = errors.New("no text extracted")
		return report
	}

	doc := domain.Document{Candidate: candidate, FileName: name, Text: text}
	chunks := s.chunker.Chunk(doc)
	logger.Debugf("%s: %d characters, %d chunks", name, len([]rune(text)), len(chunks))

	records := make([]domain.VectorRecord, 0, len(chunks))
	for _, ch := range chunks {
		vec, err := s.embed(ctx, ch.Text)
		if err != nil {
			report.Err = fmt.Errorf("embed chunk %d: %w", ch.Index, err)
			return report
		}
		records = append(records, domain.VectorRecord{
			ID:     domain.PointID(candidate, ch.Index),
			Vector: vec,
			Payload: domain.ChunkPayload{
				Text:        ch.Text,
				Candidate:   candidate,
				FileName:    name,
				Index:       ch.Index,
				TotalChunks: len(chunks),
			},
		})
	}

	if err := s.store.Upsert(ctx, records); err != nil {
		report.Err = fmt.Errorf("store chunks: %w", err)
		return report
	}
	report.Chunks = len(records)
	return report
}

func (s *Ingestor) embed(ctx context.Context, text string) ([]float64, error) {
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) != s.embedder.Dimension() {
		return nil, fmt.Errorf("%s returned %d dimensions, want %d: %w",
			s.embedder.Name(), len(vec), s.embedder.Dimension(), domain.ErrDimensionMismatch)
	}
	return vec, nil
}

// List returns per-candidate chunk counts for everything indexed.
func (s *Ingestor) List(ctx context.Context) (map[string]int, error) {
	return s.store.SourceCounts(ctx)
}

// Delete removes all chunks for a candidate, returning how many were
// removed, or ErrNotFound when the candidate has none.
func (s *Ingestor) Delete(ctx context.Context, candidate string) (int, error) {
	removed, err := s.store.DeleteBySource(ctx, candidate)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", candidate, err)
	}
	if removed == 0 {
		return 0, fmt.Errorf("%s: %w", candidate, domain.ErrNotFound)
	}
	return removed, nil
}
