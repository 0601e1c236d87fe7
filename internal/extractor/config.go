package extractor

import "time"

// Defaults for the configuration surface. The default confidence is a
// heuristic carried by convention, not a measured accuracy figure.
const (
	DefaultModelID       = "gemini-2.0-flash"
	DefaultMaxFileSizeMB = 10
	DefaultTimeout       = 30 * time.Second
	DefaultMaxRetries    = 3
	DefaultConfidence    = 0.8
	defaultUserAgent     = "resume-extract/1.0 (+https://github.com/hyunjinee/resume-extract)"
)

// Config holds the per-instance configuration surface: credential, model,
// size ceiling, network timeout, transport retries, and the confidence
// used when the service omits one. Zero fields take defaults.
type Config struct {
	// APIKey is the extraction-service credential. When empty it is read
	// from LANGEXTRACT_API_KEY at service-handle construction.
	APIKey string
	// BaseURL points at an alternative OpenAI-compatible endpoint.
	BaseURL string
	ModelID string

	// MaxFileSizeMB is the downloaded-artifact ceiling in megabytes.
	MaxFileSizeMB int
	// Timeout bounds each network request.
	Timeout time.Duration
	// MaxRetries is the number of transport-level retries after the
	// initial attempt.
	MaxRetries int

	// DefaultConfidence is used when the service result carries no score.
	DefaultConfidence float64

	UserAgent string
	// TempDir receives downloaded artifacts. Empty means the OS default.
	TempDir string
}

func (c *Config) applyDefaults() {
	if c.ModelID == "" {
		c.ModelID = DefaultModelID
	}
	if c.MaxFileSizeMB <= 0 {
		c.MaxFileSizeMB = DefaultMaxFileSizeMB
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.DefaultConfidence <= 0 {
		c.DefaultConfidence = DefaultConfidence
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}
