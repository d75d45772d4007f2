package server

import (
	"testing"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Format != imaging.PNG {
		t.Errorf("Format: got %v, want PNG", cfg.Format)
	}
	if cfg.OCRLanguage != "eng" {
		t.Errorf("OCRLanguage: got %s, want eng", cfg.OCRLanguage)
	}
	if cfg.Debug() {
		t.Error("default config should not enable debug logging")
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	cfg, err := loadConfig(envMap(map[string]string{
		EnvLogLevel:    "DEBUG",
		EnvFormat:      "jpg",
		EnvOCRLanguage: "deu",
	}))
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if !cfg.Debug() {
		t.Error("log level should be debug")
	}
	if cfg.Format != imaging.JPEG {
		t.Errorf("Format: got %v, want JPEG", cfg.Format)
	}
	if cfg.OCRLanguage != "deu" {
		t.Errorf("OCRLanguage: got %s, want deu", cfg.OCRLanguage)
	}
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	_, err := loadConfig(envMap(map[string]string{EnvFormat: "webp"}))
	if err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestLoadConfig_Process(t *testing.T) {
	t.Setenv(EnvFormat, "gif")
	t.Setenv(EnvLogLevel, "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Format != imaging.GIF {
		t.Errorf("Format: got %v, want GIF", cfg.Format)
	}
}
