package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.Addr != ":8000" {
		t.Fatalf("Addr=%q", cfg.Addr)
	}
	if cfg.NumPartitions != 3 {
		t.Fatalf("NumPartitions=%d", cfg.NumPartitions)
	}
	if cfg.FilePattern != "density_grid_part_%d.geojson" {
		t.Fatalf("FilePattern=%q", cfg.FilePattern)
	}
	if !cfg.MetricsEnabled {
		t.Fatal("MetricsEnabled should default to true")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("NUM_PARTITIONS", "7")
	t.Setenv("LOG_CONSOLE", "yes")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := FromEnv()
	if cfg.Addr != ":9999" || cfg.NumPartitions != 7 || !cfg.LogConsole || cfg.MetricsEnabled {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestFromEnvBadIntFallsBack(t *testing.T) {
	t.Setenv("NUM_PARTITIONS", "lots")
	if cfg := FromEnv(); cfg.NumPartitions != 3 {
		t.Fatalf("NumPartitions=%d want default 3", cfg.NumPartitions)
	}
}

func TestFromEnvNegativePartitionsClamped(t *testing.T) {
	t.Setenv("NUM_PARTITIONS", "-2")
	if cfg := FromEnv(); cfg.NumPartitions != 0 {
		t.Fatalf("NumPartitions=%d want 0", cfg.NumPartitions)
	}
}
