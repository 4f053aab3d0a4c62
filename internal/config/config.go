package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	SourceMode    string
	SourceTimeout time.Duration

	DevboardBaseURL    string
	RemoteBoardBaseURL string
	LaunchpoolBaseURL  string
	HackarenaBaseURL   string

	RefreshInterval time.Duration

	CacheBackend string
	CacheTTL     time.Duration

	MaxJobs          int
	MaxInternships   int
	MaxHackathons    int
	MaxSearchResults int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NATSURL         string
	NATSConnTimeout time.Duration

	HistoryEnabled         bool
	ClickHouseDSN          string
	ClickHouseMaxOpenConns int
	ClickHouseMaxIdleConns int
	ClickHouseConnMaxLife  time.Duration
	ClickHouseUsername     string
	ClickHousePassword     string
	ClickHouseDatabase     string

	TracingEnabled bool
	OTLPEndpoint   string
}

func LoadConfig() (*Config, error) {
	// Optional .env bootstrap for local development; missing file is fine.
	_ = godotenv.Load()

	config := &Config{
		HTTPAddr: getEnvString("HTTP_ADDR", ":8000"),

		SourceMode:    getEnvString("SOURCE_MODE", "live"),
		SourceTimeout: getEnvDuration("SOURCE_TIMEOUT", 5*time.Second),

		DevboardBaseURL:    getEnvString("DEVBOARD_BASE_URL", "https://devboard.skillspring.dev/api"),
		RemoteBoardBaseURL: getEnvString("REMOTE_BOARD_BASE_URL", "https://remoteboard.skillspring.dev/api"),
		LaunchpoolBaseURL:  getEnvString("LAUNCHPOOL_BASE_URL", "https://launchpool.skillspring.dev/api"),
		HackarenaBaseURL:   getEnvString("HACKARENA_BASE_URL", "https://hackarena.skillspring.dev"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 30*time.Minute),

		CacheBackend: getEnvString("CACHE_BACKEND", "memory"),
		CacheTTL:     getEnvDuration("CACHE_TTL", 30*time.Minute),

		MaxJobs:          getEnvInt("MAX_JOBS", 25),
		MaxInternships:   getEnvInt("MAX_INTERNSHIPS", 20),
		MaxHackathons:    getEnvInt("MAX_HACKATHONS", 15),
		MaxSearchResults: getEnvInt("MAX_SEARCH_RESULTS", 30),

		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		NATSURL:         getEnvString("NATS_URL", ""),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		HistoryEnabled:         getEnvBool("HISTORY_ENABLED", false),
		ClickHouseDSN:          getEnvString("CLICKHOUSE_DSN", "localhost:9000"),
		ClickHouseMaxOpenConns: getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10),
		ClickHouseMaxIdleConns: getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5),
		ClickHouseConnMaxLife:  getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", time.Hour),
		ClickHouseUsername:     getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword:     getEnvString("CLICKHOUSE_PASSWORD", ""),
		ClickHouseDatabase:     getEnvString("CLICKHOUSE_DATABASE", "skillspring"),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnvString("OTLP_ENDPOINT", "localhost:4317"),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
