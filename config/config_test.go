package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	want := Config{
		APIURL:    "http://127.0.0.1:8000",
		Timeout:   10 * time.Second,
		RateBurst: 5,
		CacheTTL:  5 * time.Minute,
		LogLevel:  "warn",
		Profile:   "cliente",
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoad_EnvAndFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	content := "IPRO_API_URL=http://backend:9000\nIPRO_ACCOUNT=7\nIPRO_CPF=11122233344\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// the environment wins over the file
	t.Setenv("IPRO_API_URL", "http://override:1")
	t.Setenv("IPRO_CACHE_TTL", "0s")
	// godotenv sets the variables it loads; clean them up
	t.Setenv("IPRO_ACCOUNT", "")
	t.Setenv("IPRO_CPF", "")
	os.Unsetenv("IPRO_ACCOUNT")
	os.Unsetenv("IPRO_CPF")

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if cfg.APIURL != "http://override:1" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Account != 7 || cfg.CPF != "11122233344" {
		t.Errorf("Account, CPF = %d, %q", cfg.Account, cfg.CPF)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0", cfg.CacheTTL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"IPRO_TIMEOUT":    "soon",
		"IPRO_API_URL":    "backend",
		"IPRO_LOG_LEVEL":  "loud",
		"IPRO_RATE_LIMIT": "-1",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q err = %v", k, v, err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]slog.Level{"debug": slog.LevelDebug, "": slog.LevelInfo, "WARN": slog.LevelWarn, "error": slog.LevelError} {
		got, err := ParseLevel(s)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", s, got, err, want)
		}
	}
}
