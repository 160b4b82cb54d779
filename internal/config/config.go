package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Practice     PracticeConfig     `mapstructure:"practice"`
	Catalog      CatalogConfig      `mapstructure:"catalog"`
	History      HistoryConfig      `mapstructure:"history"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Server       ServerConfig       `mapstructure:"server"`
	Outputs      OutputsConfig      `mapstructure:"outputs"`
	Templates    TemplatesConfig    `mapstructure:"templates"`
	Dictionaries DictionariesConfig `mapstructure:"dictionaries"`
	OpenAI       OpenAIConfig       `mapstructure:"openai"`
}

// PracticeConfig holds the default drill settings. Empty lists select every value.
type PracticeConfig struct {
	VerbCount int      `mapstructure:"verb_count" validate:"gte=1"`
	Pronouns  []string `mapstructure:"pronouns" validate:"dive,oneof=I i you we they he she it"`
	Tenses    []string `mapstructure:"tenses" validate:"dive,tense"`
	Forms     []string `mapstructure:"forms" validate:"dive,oneof=affirmative negative question"`
}

type CatalogConfig struct {
	File string `mapstructure:"file" validate:"omitempty,file"`
}

const (
	HistoryBackendYAML = "yaml"
	HistoryBackendDB   = "db"
)

type HistoryConfig struct {
	Backend   string `mapstructure:"backend" validate:"oneof=yaml db"`
	Directory string `mapstructure:"directory" validate:"required_if=Backend yaml"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gte=1,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
}

type TemplatesConfig struct {
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
}

type DictionariesConfig struct {
	RapidAPI RapidAPIConfig `mapstructure:"rapidapi"`
}

type RapidAPIConfig struct {
	CacheDirectory string `mapstructure:"cache_directory"`
	Host           string `mapstructure:"host"`
	Key            string `mapstructure:"key"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/verbdrill")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("practice.verb_count", 5)
	// An empty catalog file selects the built-in catalog
	v.SetDefault("catalog.file", "")
	v.SetDefault("history.backend", HistoryBackendYAML)
	v.SetDefault("history.directory", "history")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "verbdrill")
	v.SetDefault("database.username", "user")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("templates.report_template", "")
	v.SetDefault("dictionaries.rapidapi.cache_directory", filepath.Join("dictionaries", "rapidapi"))
	v.SetDefault("openai.model", "gpt-4o-mini")

	// Bind RapidAPI config to environment variables only (not from config file)
	if err := v.BindEnv("dictionaries.rapidapi.host", "RAPID_API_HOST"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_HOST environment variable: %w", err)
	}
	if err := v.BindEnv("dictionaries.rapidapi.key", "RAPID_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_KEY environment variable: %w", err)
	}

	// Bind OpenAI config to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
