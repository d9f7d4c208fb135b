package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"semsearch/internal/config"
	"semsearch/internal/domain"
	"semsearch/internal/embedding/local"
	"semsearch/internal/embedding/openai"
	"semsearch/internal/extract"
	"semsearch/internal/service"
)

var cfgPath string

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "semsearch",
	Short: "Semantic document index and search",
	Long: `semsearch turns a directory of text documents into a searchable
semantic index. Run "build" to index the configured input set, then
"search <query>" for a ranked, per-document result list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI.
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tuiCmd)
}

// newPipeline assembles the pipeline from config: embedder, document
// source and paths.
func newPipeline() (*service.Pipeline, error) {
	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "local", "":
		dim := 0
		if cfg.Embedder.Local != nil {
			dim = cfg.Embedder.Local.Dimension
		}
		emb = local.New(dim)
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			return nil, fmt.Errorf("openai embedder config missing")
		}
		emb, err = openai.New(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
			BatchSize: cfg.Embedder.OpenAI.BatchSize,
		})
		if err != nil {
			return nil, fmt.Errorf("openai embedder init failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}

	src := extract.NewFileExtractor(cfg.InputDir)
	return service.NewPipeline(cfg, emb, src), nil
}
