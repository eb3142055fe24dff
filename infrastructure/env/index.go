package env

import (
	"os"
	"time"

	"faceguard.io/infrastructure/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// LoadEnv reads .env into the process environment. A missing file is fine;
// the real environment still applies.
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		logger.Info("error loading env variables")
	}
}

func GetString(key string, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func GetInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := cast.ToIntE(value)
	if err != nil {
		logger.Warning("invalid integer env value, using default", logger.LoggerOptions{
			Key:  "key",
			Data: key,
		}, logger.LoggerOptions{
			Key:  "value",
			Data: value,
		})
		return fallback
	}
	return parsed
}

func GetFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := cast.ToFloat64E(value)
	if err != nil {
		logger.Warning("invalid float env value, using default", logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return fallback
	}
	return parsed
}

func GetBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := cast.ToBoolE(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := cast.ToDurationE(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
