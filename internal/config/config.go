package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Backend     BackendConfig     `mapstructure:"backend"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	Gemma       GemmaConfig       `mapstructure:"gemma"`
	Dictionary  DictionaryConfig  `mapstructure:"dictionary"`
	Translation TranslationConfig `mapstructure:"translation"`
	Quiz        QuizConfig        `mapstructure:"quiz"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// BackendConfig selects which suggestion backend handles generation requests.
// The option is re-read on every request, so edits take effect immediately.
type BackendConfig struct {
	LLMOption     string `mapstructure:"llm_option" validate:"omitempty,oneof=ChatGPT Gemma SmartReply"`
	RetryAttempts uint   `mapstructure:"retry_attempts" validate:"lte=10"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type GemmaConfig struct {
	ModelDirectory string `mapstructure:"model_directory"`
	ModelFile      string `mapstructure:"model_file"`
	DownloadURL    string `mapstructure:"download_url"`
	ServerURL      string `mapstructure:"server_url"`
	Username       string `mapstructure:"username"`
	Key            string `mapstructure:"key"`
}

type DictionaryConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	CacheDirectory string `mapstructure:"cache_directory"`
}

type TranslationConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type QuizConfig struct {
	NativeLanguage string `mapstructure:"native_language" validate:"omitempty,len=2"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/tonguetip")
	}

	v.SetDefault("database.path", filepath.Join("data", "suggestion_history.db"))
	v.SetDefault("backend.llm_option", "ChatGPT")
	v.SetDefault("backend.retry_attempts", 3)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("gemma.model_directory", filepath.Join("data", "llm"))
	v.SetDefault("gemma.model_file", "gemma-2b-it-gpu-int4.bin")
	v.SetDefault("gemma.download_url", "https://www.kaggle.com/api/v1/models/google/gemma/tfLite/gemma-2b-it-gpu-int4/1/download")
	v.SetDefault("gemma.server_url", "http://localhost:8090")
	v.SetDefault("dictionary.base_url", "https://api.dictionaryapi.dev/api/v2")
	v.SetDefault("dictionary.cache_directory", filepath.Join("data", "dictionary"))
	v.SetDefault("translation.base_url", "http://localhost:5000")
	v.SetDefault("quiz.native_language", "en")

	// Bind secrets to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("gemma.username", "KAGGLE_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind KAGGLE_USERNAME environment variable: %w", err)
	}
	if err := v.BindEnv("gemma.key", "KAGGLE_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind KAGGLE_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("translation.api_key", "TRANSLATE_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind TRANSLATE_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("newValidator() > %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(trans))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
