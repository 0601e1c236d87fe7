package extractor

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file configuration schema. Nested
// sections map naturally onto flags and env.
type FileConfig struct {
	LLM struct {
		Key   string `yaml:"key"`
		Model string `yaml:"model"`
		Base  string `yaml:"base"`
	} `yaml:"llm"`

	Max struct {
		FileSizeMB int `yaml:"fileSizeMB"`
		Retries    int `yaml:"retries"`
	} `yaml:"max"`

	TimeoutSeconds int     `yaml:"timeoutSeconds"`
	Confidence     float64 `yaml:"confidence"`
	TempDir        string  `yaml:"tempDir"`
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// MergeFileConfig fills unset cfg fields from a file config. Values
// already present in cfg (flags, env) win.
func MergeFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.APIKey == "" {
		cfg.APIKey = fc.LLM.Key
	}
	if cfg.ModelID == "" {
		cfg.ModelID = fc.LLM.Model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fc.LLM.Base
	}
	if cfg.MaxFileSizeMB == 0 {
		cfg.MaxFileSizeMB = fc.Max.FileSizeMB
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = fc.Max.Retries
	}
	if cfg.Timeout == 0 && fc.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(fc.TimeoutSeconds) * time.Second
	}
	if cfg.DefaultConfidence == 0 {
		cfg.DefaultConfidence = fc.Confidence
	}
	if cfg.TempDir == "" {
		cfg.TempDir = fc.TempDir
	}
}
