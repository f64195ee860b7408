package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "HAPPYNEWS_CONFIG"
	gnewsKeyEnv       = "GNEWS_API_KEY"
	newsAPIKeyEnv     = "NEWS_API_KEY"
	geminiKeyEnv      = "GEMINI_API_KEY"
	geminiModelEnv    = "GEMINI_MODEL"
	databaseDSNEnv    = "DATABASE_DSN"
	databaseROEnv     = "DATABASE_DSN_READONLY"
	redisAddrEnv      = "REDIS_ADDR"
	cronSecretEnv     = "CRON_SECRET"
	portEnv           = "PORT"
	logLevelEnv       = "LOG_LEVEL"
	scheduleEnableEnv = "SCHEDULE_ENABLED"
)

// Config holds all settings for the service. It is built once at
// process start and passed by reference to every component constructor;
// components never read the environment themselves.
type Config struct {
	Port      string          `yaml:"port"`
	LogLevel  string          `yaml:"logLevel"`
	Providers ProviderConfig  `yaml:"providers"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Cron      CronConfig      `yaml:"cron"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
}

// ProviderConfig carries upstream news provider credentials. The
// fetcher strategy is chosen by which key is present: GNews first,
// then NewsAPI, else the static fallback set.
type ProviderConfig struct {
	GNewsAPIKey string `yaml:"gnewsApiKey"`
	NewsAPIKey  string `yaml:"newsApiKey"`
}

// GeminiConfig describes the language-model backend. An empty APIKey
// puts the curation filter and translator into fail-open mode.
type GeminiConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseUrl"`
}

// DatabaseConfig holds the Postgres connection strings. DSN is the
// elevated (read-write) connection; ReadOnlyDSN is the restricted
// variant used when no elevated DSN is configured.
type DatabaseConfig struct {
	DSN         string `yaml:"dsn"`
	ReadOnlyDSN string `yaml:"readOnlyDsn"`
}

// Configured reports whether any store connection is available.
func (d DatabaseConfig) Configured() bool {
	return d.DSN != "" || d.ReadOnlyDSN != ""
}

// Effective returns the DSN to connect with, preferring the elevated one.
func (d DatabaseConfig) Effective() string {
	if d.DSN != "" {
		return d.DSN
	}
	return d.ReadOnlyDSN
}

// RedisConfig wires the optional list cache.
type RedisConfig struct {
	Addr string `yaml:"addr"`
}

// CronConfig protects the scheduled-ingestion HTTP route.
type CronConfig struct {
	Secret string `yaml:"secret"`
}

// ScheduleConfig controls the optional in-process scheduler. When
// disabled, ingestion runs only when an external cron hits the HTTP
// route.
type ScheduleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Timezone string `yaml:"timezone"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(gnewsKeyEnv); v != "" {
		c.Providers.GNewsAPIKey = v
	}
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.Providers.NewsAPIKey = v
	}
	if v := os.Getenv(geminiKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv(geminiModelEnv); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(databaseROEnv); v != "" {
		c.Database.ReadOnlyDSN = v
	}
	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv(cronSecretEnv); v != "" {
		c.Cron.Secret = v
	}
	if v := os.Getenv(portEnv); v != "" {
		c.Port = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(scheduleEnableEnv); v == "true" || v == "1" {
		c.Schedule.Enabled = true
	}
}

func defaultConfig() Config {
	return Config{
		Port:     "8080",
		LogLevel: "info",
		Gemini: GeminiConfig{
			Model:   "gemini-2.0-flash",
			BaseURL: "https://generativelanguage.googleapis.com",
		},
		Schedule: ScheduleConfig{Timezone: "Asia/Tokyo"},
	}
}
