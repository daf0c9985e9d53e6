package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr           string
	LogLevel       string
	LogConsole     bool
	DataDir        string
	FilePattern    string
	NumPartitions  int
	MetricsEnabled bool
}

func FromEnv() Config {
	n := getint("NUM_PARTITIONS", 3)
	if n < 0 {
		n = 0
	}
	return Config{
		Addr:           getenv("ADDR", ":8000"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogConsole:     getbool("LOG_CONSOLE", false),
		DataDir:        getenv("DATA_DIR", "."),
		FilePattern:    getenv("FILE_PATTERN", "density_grid_part_%d.geojson"),
		NumPartitions:  n,
		MetricsEnabled: getbool("METRICS_ENABLED", true),
	}
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

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}
