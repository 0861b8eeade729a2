package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds settings read from the environment.
type Config struct {
	// Completion service.
	Provider     string `envconfig:"PROVIDER" default:"http"`
	Endpoint     string `envconfig:"END_POINT"`
	AccessKey    string `envconfig:"ACCESS_KEY"`
	Model        string `envconfig:"MODEL"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`

	// Rendering and page extraction.
	Renderer      string        `envconfig:"RENDERER" default:"rod"`
	Extractor     string        `envconfig:"EXTRACTOR" default:"goquery"`
	Headless      bool          `envconfig:"HEADLESS" default:"true"`
	RenderTimeout time.Duration `envconfig:"RENDER_TIMEOUT" default:"60s"`
	LoadTimeout   time.Duration `envconfig:"LOAD_TIMEOUT" default:"15s"`
	FetchTimeout  time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`

	AggregateTimeout time.Duration `envconfig:"AGGREGATE_TIMEOUT" default:"60s"`
	ExtractTimeout   time.Duration `envconfig:"EXTRACT_TIMEOUT" default:"120s"`

	// Used for the corpus size estimate stored with saved profiles.
	TokenizerModel string `envconfig:"TOKENIZER_MODEL"`

	DBPath   string     `envconfig:"SUPPLIER_DB"`
	LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads a .env file from the working directory when one exists
// and then processes the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			return nil, err
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	return &cfg, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "supplier.db"
	}
	dir := filepath.Join(home, ".supplier")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "supplier.db")
}
