package config

import "os"

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
}

func Load() Config {
	return Config{
		Addr:        getenv("BACKOFFICE_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
