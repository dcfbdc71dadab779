package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("BACKOFFICE_API_ADDR")
	if addr == "" {
		addr = ":8081"
	}

	return Config{Addr: addr}
}
