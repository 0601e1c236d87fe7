package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyunjinee/resume-extract/internal/extractor"
	"github.com/hyunjinee/resume-extract/internal/schema"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		urlInput   string
		fileInput  string
		textInput  string
		configPath string
		outputPath string
		llmKey     string
		llmModel   string
		llmBase    string
		maxSizeMB  int
		timeout    time.Duration
		maxRetries int
		confidence float64
		verbose    bool
	)

	flag.StringVar(&urlInput, "url", "", "Resume URL (document or webpage)")
	flag.StringVar(&fileInput, "file", "", "Path to a local resume file")
	flag.StringVar(&textInput, "text", "", "Raw resume text")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&outputPath, "output", "", "Write the result JSON to this path instead of stdout")
	flag.StringVar(&llmKey, "llm.key", "", "Extraction service API key (defaults to LANGEXTRACT_API_KEY)")
	flag.StringVar(&llmModel, "llm.model", "", "Extraction model identifier")
	flag.StringVar(&llmBase, "llm.base", "", "OpenAI-compatible base URL for the extraction service")
	flag.IntVar(&maxSizeMB, "max.fileSizeMB", 0, "Maximum downloaded file size in MB")
	flag.DurationVar(&timeout, "timeout", 0, "Per-request network timeout")
	flag.IntVar(&maxRetries, "max.retries", 0, "Maximum transport retries")
	flag.Float64Var(&confidence, "confidence", 0, "Default confidence score when the service omits one")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	inputs := 0
	for _, s := range []string{urlInput, fileInput, textInput} {
		if s != "" {
			inputs++
		}
	}
	if inputs != 1 {
		fmt.Fprintln(os.Stderr, "exactly one of -url, -file, or -text is required")
		flag.Usage()
		os.Exit(2)
	}

	// Precedence: flags > env > config file > defaults.
	cfg := extractor.Config{
		APIKey:            llmKey,
		ModelID:           llmModel,
		BaseURL:           llmBase,
		MaxFileSizeMB:     maxSizeMB,
		Timeout:           timeout,
		MaxRetries:        maxRetries,
		DefaultConfidence: confidence,
	}
	extractor.ApplyEnv(&cfg)
	if configPath != "" {
		fc, err := extractor.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("config file")
		}
		extractor.MergeFileConfig(&cfg, fc)
	}

	ctx := context.Background()
	err := extractor.With(cfg, func(e *extractor.Extractor) error {
		var (
			info *schema.ResumeInfo
			err  error
		)
		switch {
		case urlInput != "":
			info, err = e.ExtractFromURL(ctx, urlInput)
		case fileInput != "":
			info, err = e.ExtractFromFile(ctx, fileInput)
		default:
			info, err = e.ExtractFromText(ctx, textInput)
		}
		if err != nil {
			return err
		}
		out, err := info.ToJSON()
		if err != nil {
			return err
		}
		if outputPath != "" {
			return os.WriteFile(outputPath, []byte(out+"\n"), 0o644)
		}
		fmt.Println(out)
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("extraction failed")
	}
}
