package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"scene-crowdin/internal/extract"
	"scene-crowdin/internal/merge"
)

// DefaultPath is read when CONFIG_PATH is not set and the file exists.
const DefaultPath = "./scene-crowdin.yaml"

type Config struct {
	SourceLang    string `yaml:"source_lang" env:"SOURCE_LANG" env-default:"en"`
	ReferenceLang string `yaml:"reference_lang" env:"REFERENCE_LANG" env-default:"ja"`
	TargetLang    string `yaml:"target_lang" env:"TARGET_LANG" env-default:"es-ES"`

	NoSourceText       string `yaml:"no_source_text" env:"NO_SOURCE_TEXT" env-default:"(No English source available)"`
	NoReferenceText    string `yaml:"no_reference_text" env:"NO_REFERENCE_TEXT" env-default:"(No Japanese source available)"`
	NoReferenceContext string `yaml:"no_reference_context" env:"NO_REFERENCE_CONTEXT" env-default:"No Japanese source available, probably it's original content."`

	ExtractContext string `yaml:"extract_context" env:"EXTRACT_CONTEXT" env-default:"jap context"`
	Simplified     bool   `yaml:"simplified" env:"SIMPLIFIED" env-default:"false"`
	WorkerCount    int    `yaml:"worker_count" env:"WORKER_COUNT" env-default:"1"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log_file" env:"LOG_FILE"`

	DatabaseURL   string `yaml:"database_url" env:"DATABASE_URL" env-default:"sqlite://scene-crowdin.db"`
	Neo4jURI      string `yaml:"neo4j_uri" env:"NEO4J_URI" env-default:"bolt://localhost:7687"`
	Neo4jUser     string `yaml:"neo4j_user" env:"NEO4J_USER" env-default:"neo4j"`
	Neo4jPassword string `yaml:"neo4j_password" env:"NEO4J_PASSWORD" env-default:"password"`
}

// Load reads .env, then an optional YAML file, then the environment.
// Priority: ENV > YAML > defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the language triple and numeric settings.
func (c *Config) Validate() error {
	tags := map[string]string{
		"source_lang":    c.SourceLang,
		"reference_lang": c.ReferenceLang,
		"target_lang":    c.TargetLang,
	}
	for name, tag := range tags {
		if tag == "" {
			return fmt.Errorf("%s is empty", name)
		}
		if _, err := language.Parse(tag); err != nil {
			return fmt.Errorf("%s %q: %w", name, tag, err)
		}
	}
	if c.SourceLang == c.ReferenceLang || c.SourceLang == c.TargetLang || c.ReferenceLang == c.TargetLang {
		return errors.New("source, reference and target languages must differ")
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("worker_count must be positive, got %d", c.WorkerCount)
	}
	return nil
}

// MergeOptions returns the merger settings.
func (c *Config) MergeOptions() merge.Options {
	return merge.Options{
		SourceLang:         c.SourceLang,
		ReferenceLang:      c.ReferenceLang,
		TargetLang:         c.TargetLang,
		NoSourceText:       c.NoSourceText,
		NoReferenceText:    c.NoReferenceText,
		NoReferenceContext: c.NoReferenceContext,
	}
}

// ExtractOptions returns the extractor settings.
func (c *Config) ExtractOptions() extract.Options {
	return extract.Options{
		Simplified: c.Simplified,
		Context:    c.ExtractContext,
	}
}
