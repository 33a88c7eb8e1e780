package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	SecretKey  string
	MySQLDSN   string

	RedisAddr string
	RedisDB   int
	RedisPass string

	// Relay credentials used to sign channel subscription requests.
	RelayAppKey    string
	RelayAppSecret string

	// Azure OpenAI.
	OpenAIEndpoint   string
	OpenAIKey        string
	OpenAIDeployment string
	OpenAIAPIVersion string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8000"),
		SecretKey:  getEnv("SECRET_KEY", "change-me"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/researchops?charset=utf8mb4&parseTime=True&loc=Local"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		RelayAppKey:    getEnv("RELAY_APP_KEY", "local"),
		RelayAppSecret: getEnv("RELAY_APP_SECRET", "change-me"),

		OpenAIEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		OpenAIKey:        os.Getenv("AZURE_OPENAI_API_KEY"),
		OpenAIDeployment: getEnv("DEPLOYMENT_NAME", "gpt-4o"),
		OpenAIAPIVersion: getEnv("OPENAI_API_VERSION", "2024-05-01-preview"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
