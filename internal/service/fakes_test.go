package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"cvassist/internal/domain"
)

var (
	_ domain.Embedder  = (*tokenEmbedder)(nil)
	_ domain.Generator = (*fakeGenerator)(nil)
	_ TextExtractor    = (*fakeExtractor)(nil)
)

// tokenEmbedder maps text to counts of a tiny fixed vocabulary. It is
// deterministic, so cosine similarity behaves predictably in tests:
// chunks sharing words with the query score high.
type tokenEmbedder struct {
	fail    error
	badVec  bool
	embeds  int
	lastTxt string
}

var vocab = []string{"python", "sql", "java", "alice", "bob", "knows"}

var wordRe = regexp.MustCompile(`[a-zA-Z]+`)

func (e *tokenEmbedder) Name() string   { return "token" }
func (e *tokenEmbedder) Dimension() int { return len(vocab) }

func (e *tokenEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	e.embeds++
	e.lastTxt = text
	if e.fail != nil {
		return nil, e.fail
	}
	if e.badVec {
		return []float64{1}, nil
	}
	vec := make([]float64, len(vocab))
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		for i, v := range vocab {
			if w == v {
				vec[i]++
			}
		}
	}
	return vec, nil
}

// fakeGenerator records the prompt it was given.
type fakeGenerator struct {
	reply   string
	fail    error
	calls   int
	prompts []string
}

func (g *fakeGenerator) ModelName() string { return "fake" }

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.fail != nil {
		return "", g.fail
	}
	if g.reply == "" {
		return "Alice is the only candidate who knows Python.", nil
	}
	return g.reply, nil
}

// fakeExtractor serves canned text per file name; names in failures
// error out.
type fakeExtractor struct {
	texts    map[string]string
	failures map[string]error
}

func (e *fakeExtractor) Supported(path string) bool {
	base := baseName(path)
	_, inTexts := e.texts[base]
	_, inFailures := e.failures[base]
	return inTexts || inFailures
}

func (e *fakeExtractor) Extract(path string) (string, error) {
	base := baseName(path)
	if err, ok := e.failures[base]; ok {
		return "", err
	}
	if text, ok := e.texts[base]; ok {
		return text, nil
	}
	return "", errors.New("unexpected file " + base)
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
