package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/ocr"
)

// Environment variables read by LoadConfig.
const (
	EnvLogLevel    = "IMAGE_EDIT_MCP_LOG_LEVEL"
	EnvFormat      = "IMAGE_EDIT_MCP_FORMAT"
	EnvOCRLanguage = "IMAGE_EDIT_MCP_OCR_LANG"
)

// Config holds server settings. Per-call tool arguments override the
// defaults given here.
type Config struct {
	// LogLevel is "debug" to enable request logging on stderr.
	LogLevel string

	// Format is the output format when a tool call does not name one.
	Format imaging.Format

	// OCRLanguage is the Tesseract language used for automatic watermark
	// placement.
	OCRLanguage string

	// Version is reported in the initialize handshake.
	Version string
}

// DefaultConfig returns PNG output, English OCR and quiet logging.
func DefaultConfig() Config {
	return Config{
		LogLevel:    "info",
		Format:      imaging.PNG,
		OCRLanguage: ocr.DefaultLanguage,
		Version:     "0.1.0",
	}
}

// LoadConfig reads the environment on top of DefaultConfig.
func LoadConfig() (Config, error) {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvFormat)); v != "" {
		f, err := imaging.FormatFromName(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvFormat, err)
		}
		cfg.Format = f
	}
	if v := strings.TrimSpace(getenv(EnvOCRLanguage)); v != "" {
		cfg.OCRLanguage = v
	}
	return cfg, nil
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}
