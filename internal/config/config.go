package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (issued by the external identity provider, validated here)
	JWTSecret string

	// Server
	Port        string
	CORSOrigins string

	// PublicBaseURL is the origin used when building shareable profile URLs
	// for QR codes and vCards, e.g. "https://cardtap.app".
	PublicBaseURL string

	// Webhook delivery
	WebhookTimeout     time.Duration
	WebhookMaxAttempts int
	WebhookQueueSize   int
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "cardtap_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		WebhookTimeout:     parseDuration(getEnv("WEBHOOK_TIMEOUT", "10s")),
		WebhookMaxAttempts: parseInt(getEnv("WEBHOOK_MAX_ATTEMPTS", "5")),
		WebhookQueueSize:   parseInt(getEnv("WEBHOOK_QUEUE_SIZE", "1024")),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
