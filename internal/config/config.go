package config

import "os"

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
}

// Load reads the configuration from the environment. DatabaseURL has no
// default; main refuses to start without it.
func Load() Config {
	return Config{
		Addr:        getenv("STORE_ADDR", ":3001"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
