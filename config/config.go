package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TransportInProcess = "inprocess"
	TransportHTTP      = "http"

	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// DefaultGeminiModels is the order in which assistant models are tried.
var DefaultGeminiModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash-lite-001",
	"gemini-2.0-flash",
	"gemini-1.5-flash",
	"gemini-pro",
}

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Mock transport.
	MockLatency time.Duration `mapstructure:"MOCK_LATENCY"`
	Transport   string        `mapstructure:"TRANSPORT"`
	APIBaseURL  string        `mapstructure:"API_BASE_URL"`

	// Client-local storage.
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	StorageDir     string `mapstructure:"STORAGE_DIR"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisStorageDB int    `mapstructure:"REDIS_STORAGE_DB"`

	// Assistant.
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
	GeminiModels  string `mapstructure:"GEMINI_MODELS"`
	HistoryWindow int    `mapstructure:"HISTORY_WINDOW"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("MOCK_LATENCY", "800ms")
	v.SetDefault("TRANSPORT", TransportInProcess)
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("STORAGE_BACKEND", StorageFile)
	v.SetDefault("STORAGE_DIR", "./.hairrap")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_STORAGE_DB", 0)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODELS", strings.Join(DefaultGeminiModels, ","))
	v.SetDefault("HISTORY_WINDOW", 5)
}

// Load reads configuration from an optional .env file, an optional
// config.yaml and the environment, in increasing order of precedence.
func Load(v *viper.Viper) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, skipping")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig from the global viper instance.
func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Validate rejects unknown enum values and impossible numbers.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportInProcess, TransportHTTP:
	default:
		return fmt.Errorf("config: unknown TRANSPORT %q", c.Transport)
	}
	switch c.StorageBackend {
	case StorageFile, StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.MockLatency < 0 {
		return fmt.Errorf("config: MOCK_LATENCY must not be negative, got %s", c.MockLatency)
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("config: HISTORY_WINDOW must not be negative, got %d", c.HistoryWindow)
	}
	return nil
}

// Models returns the configured assistant model list in order.
func (c Config) Models() []string {
	var models []string
	for _, m := range strings.Split(c.GeminiModels, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return DefaultGeminiModels
	}
	return models
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
