package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/ankigen/internal/prompt"
)

type Config struct {
	OutputDir      string `yaml:"output_dir"`
	FileName       string `yaml:"file_name"`
	DeckName       string `yaml:"deck_name"`
	Model          string `yaml:"model"`
	MaxWords       int    `yaml:"max_words"`
	PromptTemplate string `yaml:"prompt_template"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	OpenAI struct {
		APIKey         string `yaml:"api_key"`
		OrganizationID string `yaml:"organization_id"`
	} `yaml:"openai"`
}

// Load reads an optional YAML config file. An empty path yields a
// config holding only defaults and environment values; flag overrides
// are applied by the caller afterwards.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	mergeWithEnv(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

func mergeWithEnv(cfg *Config) {
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.OpenAI.OrganizationID == "" {
		cfg.OpenAI.OrganizationID = os.Getenv("OPENAI_ORG_ID")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.FileName == "" {
		cfg.FileName = "Deck"
	}
	if cfg.DeckName == "" {
		cfg.DeckName = "Deck"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxWords == 0 {
		cfg.MaxWords = 1000
	}
	if cfg.PromptTemplate == "" {
		cfg.PromptTemplate = prompt.DefaultTemplate
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = 120
	}
}
