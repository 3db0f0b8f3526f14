package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every tunable the server reads from the environment.
type Config struct {
	ListenAddr     string
	AllowedOrigins []string
	GinMode        string
	LogLevel       string
	RoundSeconds   int
	TurnSeconds    int
	TurnBased      bool
}

// Load reads a .env file when present, then the process environment.
// Missing values fall back to defaults suitable for local development.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":5000"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RoundSeconds:   getEnvInt("ROUND_SECONDS", 30),
		TurnSeconds:    getEnvInt("TURN_SECONDS", 30),
		TurnBased:      getEnvBool("TURN_BASED", false),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
