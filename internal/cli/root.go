// Package cli wires configuration and the external capability
// clients into the cobra command tree.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cvassist/internal/chunker"
	"cvassist/internal/config"
	"cvassist/internal/domain"
	embollama "cvassist/internal/embedding/ollama"
	embopenai "cvassist/internal/embedding/openai"
	"cvassist/internal/extract"
	"cvassist/internal/generation/gemini"
	genollama "cvassist/internal/generation/ollama"
	"cvassist/internal/logger"
	"cvassist/internal/service"
	"cvassist/internal/vectorstore/memory"
	"cvassist/internal/vectorstore/qdrant"
)

var (
	cfgPath     string
	verboseFlag bool
	cfg         *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "cvassist",
	Short: "Ask questions about a private collection of candidate CVs",
	Long: `cvassist indexes candidate CVs (txt, pdf, docx) into a vector store
and answers recruiter questions grounded in the retrieved excerpts.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfiguration,
}

// Execute runs the CLI. Fatal setup errors come back as non-nil and
// turn into a non-zero exit code in main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print pipeline diagnostics to stderr")
}

func loadConfiguration(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verboseFlag)
	_ = godotenv.Load()

	var err error
	if cfgPath == "" {
		var path string
		cfg, path, err = config.LoadDefault()
		if err == nil {
			logger.Debugf("using config %s", path)
		}
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return nil
}

func buildEmbedder() (domain.Embedder, error) {
	switch cfg.Embedder.Type {
	case "ollama", "":
		o := cfg.Embedder.Ollama
		if o == nil {
			o = &config.OllamaEmbedderConfig{}
		}
		return embollama.NewClient(embollama.Config{
			BaseURL:    o.BaseURL,
			Model:      o.Model,
			Dimensions: o.Dimensions,
			Timeout:    time.Duration(o.TimeoutSecs) * time.Second,
		}), nil
	case "openai":
		o := cfg.Embedder.OpenAI
		if o == nil {
			o = &config.OpenAIEmbedderConfig{}
		}
		return embopenai.NewClient(embopenai.Config{
			BaseURL:    o.BaseURL,
			APIKeyEnv:  o.APIKeyEnv,
			Model:      o.Model,
			Dimensions: o.Dimensions,
			Timeout:    time.Duration(o.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown embedder type %q", cfg.Embedder.Type)
	}
}

func buildGenerator() (domain.Generator, error) {
	switch cfg.Generator.Type {
	case "gemini", "":
		g := cfg.Generator.Gemini
		if g == nil {
			g = &config.GeminiGeneratorConfig{}
		}
		return gemini.NewClient(gemini.Config{
			APIKeyEnv: g.APIKeyEnv,
			Model:     g.Model,
			Timeout:   time.Duration(g.TimeoutSecs) * time.Second,
		})
	case "ollama":
		g := cfg.Generator.Ollama
		if g == nil {
			g = &config.OllamaGeneratorConfig{}
		}
		return genollama.NewClient(genollama.Config{
			BaseURL: g.BaseURL,
			Model:   g.Model,
			Timeout: time.Duration(g.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown generator type %q", cfg.Generator.Type)
	}
}

func buildStore() (domain.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "qdrant", "":
		q := cfg.VectorStore.Qdrant
		if q == nil {
			q = &config.QdrantConfig{URL: "http://localhost:6333", Collection: "hr_cvs"}
		}
		return qdrant.New(qdrant.Config{
			URL:        q.URL,
			APIKey:     os.Getenv(q.APIKeyEnv),
			Collection: q.Collection,
			Timeout:    time.Duration(q.TimeoutSecs) * time.Second,
		}), nil
	case "memory":
		// per-process only, see config.VectorStoreConfig
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown vector store type %q", cfg.VectorStore.Type)
	}
}

func buildIngestor() (*service.Ingestor, error) {
	embedder, err := buildEmbedder()
	if err != nil {
		return nil, err
	}
	store, err := buildStore()
	if err != nil {
		return nil, err
	}
	ch := chunker.New(cfg.Chunking.Size, *cfg.Chunking.Overlap)
	return service.NewIngestor(ch, embedder, store, extract.Default()), nil
}

func buildQuerier() (*service.Querier, error) {
	embedder, err := buildEmbedder()
	if err != nil {
		return nil, err
	}
	store, err := buildStore()
	if err != nil {
		return nil, err
	}
	generator, err := buildGenerator()
	if err != nil {
		return nil, err
	}
	return service.NewQuerier(embedder, store, generator, cfg.Retrieval.TopK, *cfg.Retrieval.ScoreThreshold), nil
}
