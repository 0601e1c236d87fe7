package extractor

import (
	"os"
	"strconv"
	"time"
)

// ApplyEnv populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnv(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("LANGEXTRACT_API_KEY")
	}
	if cfg.ModelID == "" {
		cfg.ModelID = os.Getenv("LANGEXTRACT_MODEL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("LANGEXTRACT_BASE_URL")
	}

	if cfg.MaxFileSizeMB == 0 {
		if n, err := strconv.Atoi(os.Getenv("RESUME_MAX_FILE_SIZE_MB")); err == nil && n > 0 {
			cfg.MaxFileSizeMB = n
		}
	}
	if cfg.MaxRetries == 0 {
		if n, err := strconv.Atoi(os.Getenv("RESUME_MAX_RETRIES")); err == nil && n > 0 {
			cfg.MaxRetries = n
		}
	}
	if cfg.Timeout == 0 {
		if d, err := time.ParseDuration(os.Getenv("RESUME_TIMEOUT")); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
}
