package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	SessionTTL      time.Duration
	AllowOrigins    []string
	LogstashTCPAddr string

	ElasticsearchAddresses []string
	ElasticsearchUsername  string
	ElasticsearchPassword  string
	RequestLogIndex        string

	ViewStatsCacheTTL       time.Duration
	ViewStatsRollupInterval time.Duration
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		JWTSecret:       must("JWT_SECRET"),
		SessionTTL:      durationEnv("SESSION_TTL", 24*time.Hour),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		ElasticsearchAddresses: splitAndTrim(getenv("ELASTICSEARCH_ADDRESSES", "http://localhost:9200")),
		ElasticsearchUsername:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPassword:  getenv("ELASTICSEARCH_PASSWORD", ""),
		RequestLogIndex:        getenv("REQUEST_LOG_INDEX", "roadtrippi-requests-*"),

		ViewStatsCacheTTL:       durationEnv("VIEW_STATS_CACHE_TTL", 15*time.Minute),
		ViewStatsRollupInterval: durationEnv("VIEW_STATS_ROLLUP_INTERVAL", time.Hour),
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func durationEnv(k string, d time.Duration) time.Duration {
	raw := os.Getenv(k)
	if raw == "" {
		return d
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid duration for %s: %v", k, err)
		return d
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
