package main

import (
	"flag"
	"os"
)

type Config struct {
	Addr      string
	LogLevel  string
	Malformed int
}

// Configurations for geocoder-stub
func LoadConfig() Config {
	var cfg Config
	cfg.Addr = getEnv("STUB_ADDR", ":8090")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flag.IntVar(&cfg.Malformed, "malformed", 0, "corrupt every Nth candidate with a non-numeric lat (0 disables)")
	flag.Parse()
	return cfg
}

func getEnv(k, def string) string {
	value := os.Getenv(k)
	if value != "" {
		return value
	}
	return def
}
