// Package extractor is the facade of the pipeline: it takes a URL, a
// local path, or raw text, drives fetch → normalize → extraction service
// → reconcile, and owns temporary-resource cleanup and error
// translation.
package extractor

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hyunjinee/resume-extract/internal/errs"
	"github.com/hyunjinee/resume-extract/internal/fetch"
	"github.com/hyunjinee/resume-extract/internal/langextract"
	"github.com/hyunjinee/resume-extract/internal/normalize"
	"github.com/hyunjinee/resume-extract/internal/reconcile"
	"github.com/hyunjinee/resume-extract/internal/schema"
)

// Extractor runs the extraction pipeline. One instance serves one call
// at a time; the network session and the lazily built service handle are
// not safe for unsynchronized concurrent use.
type Extractor struct {
	cfg     Config
	fetcher *fetch.Client

	procOnce sync.Once
	proc     *langextract.Processor
	procErr  error
}

// New builds an Extractor. No network I/O and no credential check happen
// here; the service handle is constructed on first use.
func New(cfg Config) *Extractor {
	cfg.applyDefaults()
	return &Extractor{
		cfg: cfg,
		fetcher: &fetch.Client{
			UserAgent:         cfg.UserAgent,
			MaxAttempts:       cfg.MaxRetries + 1,
			PerRequestTimeout: cfg.Timeout,
			MaxFileSize:       int64(cfg.MaxFileSizeMB) * 1024 * 1024,
			TempDir:           cfg.TempDir,
		},
	}
}

// ExtractFromURL resolves the URL and extracts resume information from
// the document behind it. A temporary artifact created during download is
// deleted on every exit path.
func (e *Extractor) ExtractFromURL(ctx context.Context, rawURL string) (*schema.ResumeInfo, error) {
	log.Info().Str("url", rawURL).Msg("starting resume extraction")

	res, err := e.fetcher.Resolve(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	text := res.Text
	if res.IsFile() {
		defer func() {
			if err := e.fetcher.Cleanup(res.TempPath); err != nil {
				log.Warn().Err(err).Str("path", res.TempPath).Msg("temp file cleanup failed")
			}
		}()
		text, err = normalize.File(res.TempPath, res.ContentType)
		if err != nil {
			return nil, err
		}
	}
	log.Info().Int("chars", len(text)).Msg("document normalized")

	return e.extractText(ctx, text)
}

// ExtractFromFile extracts resume information from a caller-owned local
// file. The file is never deleted.
func (e *Extractor) ExtractFromFile(ctx context.Context, path string) (*schema.ResumeInfo, error) {
	log.Info().Str("path", path).Msg("starting resume extraction")

	if _, err := os.Stat(path); err != nil {
		return nil, &errs.ParseError{Path: path, Reason: "file does not exist", Cause: err}
	}
	text, err := normalize.File(path, "")
	if err != nil {
		return nil, err
	}
	log.Info().Int("chars", len(text)).Msg("document normalized")

	return e.extractText(ctx, text)
}

// ExtractFromText extracts resume information directly from text. Input
// that is empty after trimming fails before the service is ever invoked.
func (e *Extractor) ExtractFromText(ctx context.Context, text string) (*schema.ResumeInfo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &errs.InvalidInputError{Reason: "text is empty"}
	}
	return e.extractText(ctx, text)
}

// extractText is the common tail of all three entry points: exactly one
// service call, then reconciliation.
func (e *Extractor) extractText(ctx context.Context, text string) (*schema.ResumeInfo, error) {
	proc, err := e.processor()
	if err != nil {
		return nil, err
	}
	res, err := proc.Extract(ctx, text)
	if err != nil {
		return nil, translate(err)
	}
	info, err := reconcile.Reconcile(res, text, e.cfg.DefaultConfidence)
	if err != nil {
		return nil, err
	}
	log.Info().Str("name", info.Name).Msg("resume extraction complete")
	return info, nil
}

// processor lazily builds the service handle once and reuses it across
// calls on this instance.
func (e *Extractor) processor() (*langextract.Processor, error) {
	e.procOnce.Do(func() {
		e.proc, e.procErr = langextract.NewProcessor(e.cfg.APIKey, e.cfg.ModelID, e.cfg.BaseURL)
	})
	return e.proc, e.procErr
}

// Close releases the fetcher's network session.
func (e *Extractor) Close() {
	e.fetcher.Close()
}

// With runs fn with a scoped Extractor, guaranteeing Close on every exit
// path including a failing extraction call.
func With(cfg Config, fn func(*Extractor) error) error {
	e := New(cfg)
	defer e.Close()
	return fn(e)
}

// SupportedFileTypes lists the document formats an extraction call
// accepts.
func SupportedFileTypes() []string {
	return []string{
		"PDF (.pdf)",
		"Word Document (.docx)",
		"Word Document (.doc)",
		"Text File (.txt)",
		"HTML (.html, .htm)",
		"Web Pages (HTTP/HTTPS URLs)",
	}
}

// translate leaves already-specific error kinds untouched and wraps
// anything unclassified into the generic extraction-failure kind.
func translate(err error) error {
	var (
		invalidURL   *errs.InvalidURLError
		invalidInput *errs.InvalidInputError
		unsupported  *errs.UnsupportedTypeError
		download     *errs.DownloadError
		parse        *errs.ParseError
		credential   *errs.CredentialError
		extraction   *errs.ExtractionError
	)
	switch {
	case errors.As(err, &invalidURL),
		errors.As(err, &invalidInput),
		errors.As(err, &unsupported),
		errors.As(err, &download),
		errors.As(err, &parse),
		errors.As(err, &credential),
		errors.As(err, &extraction):
		return err
	}
	return &errs.ExtractionError{Reason: "unexpected failure", Cause: err}
}

// ExtractFromURL is a one-shot convenience wrapper around With.
func ExtractFromURL(ctx context.Context, rawURL string, cfg Config) (*schema.ResumeInfo, error) {
	var info *schema.ResumeInfo
	err := With(cfg, func(e *Extractor) error {
		var err error
		info, err = e.ExtractFromURL(ctx, rawURL)
		return err
	})
	return info, err
}

// ExtractFromFile is a one-shot convenience wrapper around With.
func ExtractFromFile(ctx context.Context, path string, cfg Config) (*schema.ResumeInfo, error) {
	var info *schema.ResumeInfo
	err := With(cfg, func(e *Extractor) error {
		var err error
		info, err = e.ExtractFromFile(ctx, path)
		return err
	})
	return info, err
}

// ExtractFromText is a one-shot convenience wrapper around With.
func ExtractFromText(ctx context.Context, text string, cfg Config) (*schema.ResumeInfo, error) {
	var info *schema.ResumeInfo
	err := With(cfg, func(e *Extractor) error {
		var err error
		info, err = e.ExtractFromText(ctx, text)
		return err
	})
	return info, err
}
