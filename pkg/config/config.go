package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Storage     StorageConfig
	LLM         LLMConfig
	AssemblyAI  AssemblyAIConfig
	LiveKit     LiveKitConfig
	Watcher     WatcherConfig
	RecordStore string
	OverrideLog string
	Classifier  ClassifierConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	MigrationsDir   string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host           string
	Port           string
	Password       string
	DB             int
	OverrideStream string
}

// JWTConfig holds JWT configuration. Tokens are issued elsewhere; only the
// access secret is needed to verify them.
type JWTConfig struct {
	AccessSecret string
	Issuer       string
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// LLMConfig selects and tunes the content extractor
type LLMConfig struct {
	Provider         string // "groq", "openai" or "gemini"
	APIKey           string
	BaseURL          string
	Model            string
	Timeout          time.Duration
	MaxRetries       int
	StructuredOutput bool
}

// AssemblyAIConfig holds the AssemblyAI credentials
type AssemblyAIConfig struct {
	APIKey string
}

// LiveKitConfig holds LiveKit server credentials used for roster lookups
type LiveKitConfig struct {
	URL                  string
	APIKey               string
	APISecret            string
	InternalEmailDomains []string
}

// WatcherConfig configures the transcript inbox watcher
type WatcherConfig struct {
	Dir         string
	Concurrency int
}

// ClassifierConfig holds the classifier tuning, read from CLASSIFIER_* variables
type ClassifierConfig struct {
	KeywordWeight         float64 `envconfig:"KEYWORD_WEIGHT" default:"3"`
	KeywordCap            int     `envconfig:"KEYWORD_CAP" default:"5"`
	ConfirmationThreshold int     `envconfig:"CONFIRMATION_THRESHOLD" default:"70"`
	WordsPerMinute        float64 `envconfig:"WORDS_PER_MINUTE" default:"130"`
	ShortTurnWords        int     `envconfig:"SHORT_TURN_WORDS" default:"60"`
	DominantShare         float64 `envconfig:"DOMINANT_SHARE" default:"0.7"`
	AlternationShare      float64 `envconfig:"ALTERNATION_SHARE" default:"0.6"`
	MinTranscriptWords    int     `envconfig:"MIN_TRANSCRIPT_WORDS" default:"100"`
	AmbiguityRatio        float64 `envconfig:"AMBIGUITY_RATIO" default:"0.8"`
	AmbiguityPenalty      int     `envconfig:"AMBIGUITY_PENALTY" default:"15"`
	OverrideStep          float64 `envconfig:"OVERRIDE_STEP" default:"0.05"`
	OverrideMin           float64 `envconfig:"OVERRIDE_MIN" default:"0.75"`
	OverrideMax           float64 `envconfig:"OVERRIDE_MAX" default:"1.25"`
	TaxonomyFile          string  `envconfig:"TAXONOMY_FILE"`
	ContractsFile         string  `envconfig:"CONTRACTS_FILE"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", "http://localhost:3000"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "meeting_summarizer"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
			MigrationsDir:   getEnv("DB_MIGRATIONS_DIR", "migrations"),
		},
		Redis: RedisConfig{
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvAsInt("REDIS_DB", 0),
			OverrideStream: getEnv("OVERRIDE_STREAM", "meeting-type-overrides"),
		},
		JWT: JWTConfig{
			AccessSecret: getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			Issuer:       getEnv("JWT_ISSUER", ""),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", ""),
			AccessKeyID:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("MINIO_BUCKET", "meeting-reports"),
			UseSSL:          getEnvAsBool("MINIO_USE_SSL", false),
		},
		LLM: LLMConfig{
			Provider:         strings.ToLower(getEnv("LLM_PROVIDER", "groq")),
			APIKey:           getEnv("LLM_API_KEY", ""),
			BaseURL:          getEnv("LLM_BASE_URL", ""),
			Model:            getEnv("LLM_MODEL", ""),
			Timeout:          getEnvAsDuration("LLM_TIMEOUT", "60s"),
			MaxRetries:       getEnvAsInt("LLM_MAX_RETRIES", 1),
			StructuredOutput: getEnvAsBool("LLM_STRUCTURED_OUTPUT", false),
		},
		AssemblyAI: AssemblyAIConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		LiveKit: LiveKitConfig{
			URL:                  getEnv("LIVEKIT_URL", ""),
			APIKey:               getEnv("LIVEKIT_API_KEY", ""),
			APISecret:            getEnv("LIVEKIT_API_SECRET", ""),
			InternalEmailDomains: getEnvAsList("INTERNAL_EMAIL_DOMAINS", ""),
		},
		Watcher: WatcherConfig{
			Dir:         getEnv("WATCH_DIR", "./inbox"),
			Concurrency: getEnvAsInt("WATCH_CONCURRENCY", 2),
		},
		RecordStore: strings.ToLower(getEnv("RECORD_STORE", "memory")),
		OverrideLog: strings.ToLower(getEnv("OVERRIDE_LOG", "memory")),
	}

	if err := envconfig.Process("CLASSIFIER", &config.Classifier); err != nil {
		return nil, fmt.Errorf("failed to load classifier config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "groq", "openai", "gemini":
	default:
		return fmt.Errorf("LLM_PROVIDER must be one of groq, openai, gemini (got %q)", c.LLM.Provider)
	}
	switch c.RecordStore {
	case "memory", "postgres":
	default:
		return fmt.Errorf("RECORD_STORE must be one of memory, postgres (got %q)", c.RecordStore)
	}
	switch c.OverrideLog {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("OVERRIDE_LOG must be one of memory, redis, postgres (got %q)", c.OverrideLog)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("LLM_MAX_RETRIES must not be negative")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if c.Watcher.Concurrency < 1 {
		return fmt.Errorf("WATCH_CONCURRENCY must be at least 1")
	}
	return c.Classifier.Validate()
}

// Validate rejects tuning that would break the classifier's ordering guarantees
func (c ClassifierConfig) Validate() error {
	if c.KeywordWeight <= 0 || c.KeywordCap < 1 {
		return fmt.Errorf("CLASSIFIER_KEYWORD_WEIGHT and CLASSIFIER_KEYWORD_CAP must be positive")
	}
	if c.ConfirmationThreshold < 1 || c.ConfirmationThreshold > 100 {
		return fmt.Errorf("CLASSIFIER_CONFIRMATION_THRESHOLD must be within 1-100")
	}
	if c.DominantShare <= 0.5 || c.DominantShare > 1 {
		return fmt.Errorf("CLASSIFIER_DOMINANT_SHARE must be within (0.5, 1]")
	}
	if c.AmbiguityRatio <= 0 || c.AmbiguityRatio > 1 {
		return fmt.Errorf("CLASSIFIER_AMBIGUITY_RATIO must be within (0, 1]")
	}
	if c.OverrideMin > 1 || c.OverrideMax < 1 || c.OverrideStep < 0 {
		return fmt.Errorf("override bounds must satisfy OVERRIDE_MIN <= 1 <= OVERRIDE_MAX")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// UsesDatabase reports whether any store is backed by postgres
func (c *Config) UsesDatabase() bool {
	return c.RecordStore == "postgres" || c.OverrideLog == "postgres"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
