package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cvassist/internal/domain"
	"cvassist/internal/logger"
)

// Querier answers natural-language questions grounded in indexed CV
// chunks.
type Querier struct {
	embedder  domain.Embedder
	store     domain.VectorStore
	generator domain.Generator
	topK      int
	threshold float64
}

// NewQuerier wires the query pipeline. topK and threshold come from
// configuration; zero values fall back to the corpus defaults.
func NewQuerier(embedder domain.Embedder, store domain.VectorStore, generator domain.Generator, topK int, threshold float64) *Querier {
	if topK <= 0 {
		topK = 5
	}
	return &Querier{
		embedder:  embedder,
		store:     store,
		generator: generator,
		topK:      topK,
		threshold: threshold,
	}
}

// Answer embeds the question, retrieves the topK chunks above the
// score threshold and asks the generator for an answer grounded in
// them. With no usable matches it returns NoContextAnswer without
// calling the generator, so the model never answers from an empty
// context. History, if any, is folded into the prompt; the generator
// holds no state between calls.
func (q *Querier) Answer(ctx context.Context, question string, history []domain.Turn) (domain.Answer, error) {
	vec, err := q.embedder.Embed(ctx, question)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("embed question: %w", err)
	}
	if len(vec) != q.embedder.Dimension() {
		return domain.Answer{}, fmt.Errorf("%s returned %d dimensions, want %d: %w",
			q.embedder.Name(), len(vec), q.embedder.Dimension(), domain.ErrDimensionMismatch)
	}

	matches, err := q.store.Search(ctx, vec, q.topK, q.threshold)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("search: %w", err)
	}
	matches = usable(matches, q.topK, q.threshold)
	logger.Debugf("retrieved %d chunks above threshold %.2f", len(matches), q.threshold)

	if len(matches) == 0 {
		return domain.Answer{Text: NoContextAnswer}, nil
	}

	prompt := buildPrompt(question, buildContext(matches), history)
	text, err := q.generator.Generate(ctx, prompt)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generate answer: %w", err)
	}
	return domain.Answer{Text: strings.TrimSpace(text), Matches: matches}, nil
}

// usable enforces the retrieval contract regardless of how much of it
// the store applied: scores >= threshold, descending order, at most
// topK.
func usable(matches []domain.RetrievalMatch, topK int, threshold float64) []domain.RetrievalMatch {
	kept := matches[:0]
	for _, m := range matches {
		if m.Score >= threshold {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })
	if topK < len(kept) {
		kept = kept[:topK]
	}
	return kept
}
