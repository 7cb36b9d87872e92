package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	Gemini   GeminiConfig
	Pipeline PipelineConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr       string
	MaxUploadBytes int64
}

// OCRConfig configures the pattern extraction strategy (stage 1).
type OCRConfig struct {
	Tesseract     string
	TesseractLang string
	Pdftoppm      string
	DPI           int
	Timeout       time.Duration
}

// GeminiConfig configures the generative extraction strategy.
type GeminiConfig struct {
	ProjectID string
	Region    string
	Model     string
	Timeout   time.Duration
}

// PipelineConfig holds validation-engine policy knobs.
type PipelineConfig struct {
	Backend          string // "pattern" | "gemini"
	MaxConcurrent    int
	QualityCheck     bool
	RequireBirthDate bool
	MinPayslips      int
	RequiredKinds    []constants.DocumentKind
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_MB", 15)) * 1024 * 1024,
		},
		OCR: OCRConfig{
			Tesseract:     getEnv("TESSERACT", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "por"),
			Pdftoppm:      getEnv("PDFTOPPM", "pdftoppm"),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			Timeout:       getEnvAsDuration("OCR_TIMEOUT", 60*time.Second),
		},
		Gemini: GeminiConfig{
			ProjectID: getEnv("PROJECT_ID", ""),
			Region:    getEnv("VERTEX_AI_REGION", "us-central1"),
			Model:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			Timeout:   getEnvAsDuration("GEMINI_TIMEOUT", 45*time.Second),
		},
		Pipeline: PipelineConfig{
			Backend:          getEnv("PIPELINE_BACKEND", "pattern"),
			MaxConcurrent:    getEnvAsInt("PIPELINE_MAX_CONCURRENT", 3),
			QualityCheck:     getEnvAsBool("PIPELINE_QUALITY_CHECK", false),
			RequireBirthDate: getEnvAsBool("REQUIRE_BIRTH_DATE", false),
			MinPayslips:      getEnvAsInt("MIN_PAYSLIPS", 1),
			RequiredKinds:    getEnvAsKinds("REQUIRED_DOCS", constants.RequiredKinds),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsKinds(key string, defaultValue []constants.DocumentKind) []constants.DocumentKind {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var kinds []constants.DocumentKind
	for _, part := range strings.Split(value, ",") {
		if k, ok := constants.CanonicalizeKind(part); ok {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return defaultValue
	}
	return kinds
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Pipeline.Backend {
	case "pattern":
	case "gemini":
		if c.Gemini.ProjectID == "" {
			return NewAppError("CONFIG_ERROR", "PROJECT_ID is required for the gemini backend", ErrInvalidInput)
		}
	default:
		return NewAppError("CONFIG_ERROR", "PIPELINE_BACKEND must be \"pattern\" or \"gemini\"", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Pipeline.MaxConcurrent <= 0 {
		return NewAppError("CONFIG_ERROR", "PIPELINE_MAX_CONCURRENT must be positive", ErrInvalidInput)
	}
	return nil
}
