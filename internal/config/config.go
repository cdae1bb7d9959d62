package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DBUrl              string
	JWTSecret          string
	AppEnv             string
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseBucket     string
	SupabaseServiceKey string
	AWSBucketName      string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	KafkaBrokers       []string
	PostEventsTopic    string
	CORSOrigins        string
	MetricsEnabled     bool
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DBUrl:              getEnv("DB_URL", ""),
		JWTSecret:          jwtSecret,
		AppEnv:             normalizeEnv(getEnv("APP_ENV", "production")),
		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseBucket:     getEnv("SUPABASE_BUCKET", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		AWSBucketName:      getEnv("AWS_BUCKET_NAME", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		KafkaBrokers:       splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		PostEventsTopic:    getEnv("POST_EVENTS_TOPIC", "post_events"),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
	}, nil
}

// SupabaseAuthEnabled reports whether sign-up and sign-in go to GoTrue
// instead of the local accounts table.
func (c *Config) SupabaseAuthEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

func (c *Config) SupabaseStorageEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseBucket != "" && c.SupabaseServiceKey != ""
}

func (c *Config) S3StorageEnabled() bool {
	return c.AWSBucketName != ""
}

func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

type ClientConfig struct {
	APIURL      string
	SessionFile string
}

// LoadClientConfig reads settings for the terminal client. Flags may
// override both values afterwards.
func LoadClientConfig() ClientConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to read .env: %v", err)
	}

	sessionFile := getEnv("FITFEED_SESSION_FILE", "")
	if sessionFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			sessionFile = filepath.Join(dir, "fitfeed", "session.json")
		} else {
			sessionFile = ".fitfeed-session.json"
		}
	}

	return ClientConfig{
		APIURL:      strings.TrimRight(getEnv("FITFEED_API_URL", "http://localhost:8080"), "/"),
		SessionFile: sessionFile,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func splitAndTrim(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
