package config

import (
	"log"
	"os"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	GoogleAPIKey string
	GCPProjectID string
	GCPLocation  string
	ModelName    string

	SpeechLanguage   string
	DocAILocation    string
	DocAIProcessorID string

	StorageBackend string // "memory", "redis" or "firestore"
	RedisAddr      string

	UseMockLLM   bool // true = use mock even on GCP
	UseMockTools bool // true = mock transcriber and document reader

	DataDir string // spool directory for uploaded files
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads all env vars and builds the config
func Load() *Config {
	modeStr := getEnv("SENTINAI_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("SENTINAI_PORT", "8000"),

		GoogleAPIKey: getEnv("GOOGLE_API_KEY", ""),
		GCPProjectID: getEnv("SENTINAI_GCP_PROJECT", ""),
		GCPLocation:  getEnv("SENTINAI_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("SENTINAI_MODEL_NAME", "gemini-1.5-pro"),

		SpeechLanguage:   getEnv("SENTINAI_SPEECH_LANGUAGE", "en-US"),
		DocAILocation:    getEnv("SENTINAI_DOCAI_LOCATION", "us"),
		DocAIProcessorID: getEnv("SENTINAI_DOCAI_PROCESSOR", ""),

		StorageBackend: getEnv("SENTINAI_STORAGE_BACKEND", "memory"),
		RedisAddr:      getEnv("SENTINAI_REDIS_ADDR", "localhost:6379"),

		UseMockLLM:   getBoolEnv("SENTINAI_USE_MOCK_LLM", mode == ModeLocal),
		UseMockTools: getBoolEnv("SENTINAI_USE_MOCK_TOOLS", mode == ModeLocal),

		DataDir: getEnv("SENTINAI_DATA_DIR", "data"),
	}

	// Minimal validation in GCP mode
	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("SENTINAI_GCP_PROJECT must be set in gcp mode")
	}

	return cfg
}
