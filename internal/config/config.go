package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SourcesPath  string
	DataDir      string
	CSVRetention int // days
	FetchTimeout time.Duration
	IngestEvery  time.Duration
	CleanupEvery time.Duration
	HTTPPort     string
	MongoURL     string
	MongoDB      string
	NatsURL      string
	MeiliURL     string
	MeiliAPIKey  string
}

func Load() *Config {
	// Missing .env is fine, plain environment variables still apply.
	_ = godotenv.Load("config/.env")

	return &Config{
		SourcesPath:  getEnv("SOURCES_CONFIG", "config/wikipedia_sources.yaml"),
		DataDir:      getEnv("DATA_DIR", "data/wiki_corps"),
		CSVRetention: getEnvInt("CSV_RETENTION_DAYS", 30),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		IngestEvery:  getEnvDuration("INGEST_EVERY", 24*time.Hour),
		CleanupEvery: getEnvDuration("CLEANUP_EVERY", 24*time.Hour),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		MongoURL:     getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "stockchronicle"),
		NatsURL:      getEnv("NATS_URL", ""),
		MeiliURL:     getEnv("MEILI_URL", ""),
		MeiliAPIKey:  getEnv("MEILI_API_KEY", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
