package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.DBDriver != "sqlite3" {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, "sqlite3")
	}
	if cfg.NativeLanguage != "Mandarin Chinese" || cfg.TargetLanguage != "English" {
		t.Errorf("language pair = %q -> %q, want Mandarin Chinese -> English",
			cfg.NativeLanguage, cfg.TargetLanguage)
	}
	if cfg.MaxImageEdge != 512 {
		t.Errorf("MaxImageEdge = %d, want 512", cfg.MaxImageEdge)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_IMAGE_EDGE", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, "postgres")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.MaxImageEdge != 0 {
		t.Errorf("MaxImageEdge = %d, want 0", cfg.MaxImageEdge)
	}
}
