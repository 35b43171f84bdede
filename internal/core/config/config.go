package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	LogLevel        string
	GeocoderURL     string
	GeocoderTimeout time.Duration
	UserAgent       string
	H3ResDefault    int
}

func FromEnv() Config {
	res := getint("H3_RES_DEFAULT", 12)
	if res < 0 {
		res = 0
	}
	if res > 15 {
		res = 15
	}

	return Config{
		Addr:            getenv("ADDR", ":8000"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		GeocoderURL:     getenv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderTimeout: getduration("GEOCODER_TIMEOUT", 10*time.Second),
		UserAgent:       getenv("GEOCODER_USER_AGENT", "TrackEmDown/1.0 (nikhilsingh.io)"),
		H3ResDefault:    res,
	}
}

// LoadDotenv overlays local env files onto the process environment before
// FromEnv reads it. Missing files are not an error.
func LoadDotenv() []string {
	files := []string{".env", ".env.dev"}
	var loaded []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Overload(f); err != nil {
			continue
		}
		loaded = append(loaded, f)
	}
	return loaded
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
