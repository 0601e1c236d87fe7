// Package fetch resolves a resume URL to either inline webpage text or a
// downloaded temporary artifact, enforcing size and time bounds with
// bounded retry on transient transport failures.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/hyunjinee/resume-extract/internal/errs"
	"github.com/hyunjinee/resume-extract/internal/normalize"
)

const downloadChunkSize = 32 * 1024

// Result is the outcome of resolving a URL. Exactly one of Text and
// TempPath is set: Text for the webpage case, TempPath for a downloaded
// document the caller must normalize and then delete.
type Result struct {
	Text        string
	TempPath    string
	ContentType string
}

// IsFile reports whether the result is a downloaded temporary artifact.
func (r Result) IsFile() bool {
	return r.TempPath != ""
}

// Client wraps http.Client with the download policy: metadata probe
// first, size ceiling enforced before and during transfer, content-type
// allow-list with extension fallback, and limited retry with backoff on
// transient errors.
type Client struct {
	// HTTPClient overrides the underlying client when set.
	HTTPClient *http.Client
	UserAgent  string
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// PerRequestTimeout bounds each request (connect + read).
	PerRequestTimeout time.Duration
	// MaxFileSize is the download ceiling in bytes.
	MaxFileSize int64
	// TempDir receives downloaded artifacts. Empty means the OS default.
	TempDir string

	httpOnce sync.Once
	http     *http.Client
}

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/msword": true,
	"text/plain":         true,
	"text/html":          true,
	"text/htm":           true,
}

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
	".html": true,
	".htm":  true,
}

// Resolve validates the URL, probes the resource, and returns either
// normalized webpage text or the path of a downloaded temporary file.
func (c *Client) Resolve(ctx context.Context, rawURL string) (Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !isHTTPScheme(u) || u.Host == "" {
		return Result{}, &errs.InvalidURLError{URL: rawURL}
	}

	contentType, contentLength, err := c.probe(ctx, rawURL)
	if err != nil {
		return Result{}, &errs.DownloadError{URL: rawURL, Reason: "metadata probe failed", Cause: err}
	}

	if contentLength > 0 && c.MaxFileSize > 0 && contentLength > c.MaxFileSize {
		return Result{}, &errs.DownloadError{
			URL:    rawURL,
			Reason: fmt.Sprintf("declared size %d exceeds the %d byte limit", contentLength, c.MaxFileSize),
		}
	}

	// An HTML resource, or one with no declared type at all, is treated
	// as a webpage and converted to text inline.
	if contentType == "" || isHTMLContentType(contentType) {
		body, err := c.getBody(ctx, rawURL)
		if err != nil {
			return Result{}, &errs.DownloadError{URL: rawURL, Reason: "webpage fetch failed", Cause: err}
		}
		text, err := normalize.FromWebPage(string(body))
		if err != nil {
			return Result{}, err
		}
		return Result{Text: text, ContentType: contentType}, nil
	}

	if !allowedContentTypes[contentType] && !supportedExtensions[strings.ToLower(path.Ext(u.Path))] {
		return Result{}, &errs.UnsupportedTypeError{Type: contentType}
	}

	tempPath, err := c.download(ctx, rawURL, contentType, u.Path)
	if err != nil {
		return Result{}, err
	}
	return Result{TempPath: tempPath, ContentType: contentType}, nil
}

// Cleanup removes a temporary artifact. A path that is empty or already
// gone is a no-op, not an error.
func (c *Client) Cleanup(tempPath string) error {
	if tempPath == "" {
		return nil
	}
	if err := os.Remove(tempPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Close releases idle transport connections.
func (c *Client) Close() {
	c.getHTTPClient().CloseIdleConnections()
}

// probe issues a metadata-only HEAD request and reports the declared
// content type (parameters stripped) and length.
func (c *Client) probe(ctx context.Context, rawURL string) (string, int64, error) {
	var contentType string
	var contentLength int64
	err := c.withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
		if err != nil {
			return err
		}
		c.setHeaders(req)
		resp, err := c.getHTTPClient().Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &statusError{code: resp.StatusCode}
		}
		contentType = cleanContentType(resp.Header.Get("Content-Type"))
		contentLength = resp.ContentLength
		return nil
	})
	return contentType, contentLength, err
}

func (c *Client) getBody(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	err := c.withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		c.setHeaders(req)
		resp, err := c.getHTTPClient().Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &statusError{code: resp.StatusCode}
		}
		body, err = io.ReadAll(resp.Body)
		return err
	})
	return body, err
}

// download streams the body to a temporary file in bounded chunks,
// re-checking the cumulative size on every chunk so a server lying about
// Content-Length cannot push past the ceiling. A partial file is deleted
// the moment the ceiling is crossed.
func (c *Client) download(ctx context.Context, rawURL, contentType, urlPath string) (string, error) {
	var tempPath string
	err := c.withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		c.setHeaders(req)
		resp, err := c.getHTTPClient().Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &statusError{code: resp.StatusCode}
		}

		tmp, err := os.CreateTemp(c.TempDir, "resume-*"+suffixFor(contentType, urlPath))
		if err != nil {
			return err
		}
		var written int64
		buf := make([]byte, downloadChunkSize)
		for {
			n, readErr := resp.Body.Read(buf)
			if n > 0 {
				written += int64(n)
				if c.MaxFileSize > 0 && written > c.MaxFileSize {
					tmp.Close()
					os.Remove(tmp.Name())
					return &errs.DownloadError{
						URL:    rawURL,
						Reason: fmt.Sprintf("transfer exceeded the %d byte limit", c.MaxFileSize),
					}
				}
				if _, err := tmp.Write(buf[:n]); err != nil {
					tmp.Close()
					os.Remove(tmp.Name())
					return err
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				tmp.Close()
				os.Remove(tmp.Name())
				return readErr
			}
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			return err
		}
		tempPath = tmp.Name()
		return nil
	})
	if err != nil {
		var de *errs.DownloadError
		if errors.As(err, &de) {
			return "", err
		}
		return "", &errs.DownloadError{URL: rawURL, Reason: "transfer failed", Cause: err}
	}
	return tempPath, nil
}

// withRetry runs fn up to MaxAttempts times, backing off exponentially
// between attempts on transient errors.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !isTransient(err) || i == attempts-1 {
			return err
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(1<<uint(i)) * 200 * time.Millisecond):
		}
	}
	return lastErr
}

func (c *Client) setHeaders(req *http.Request) {
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	c.httpOnce.Do(func() {
		c.http = &http.Client{Timeout: c.PerRequestTimeout}
	})
	return c.http
}

// statusError marks a non-2xx response so retry classification can see
// the code.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.code)
}

var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return retryableStatus[se.code]
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func isHTMLContentType(ct string) bool {
	return ct == "text/html" || ct == "text/htm" || ct == "application/xhtml+xml"
}

func cleanContentType(ct string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
}

var contentTypeSuffixes = map[string]string{
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/msword": ".doc",
	"text/plain":         ".txt",
	"text/html":          ".html",
}

// suffixFor picks a file suffix from the declared content type, falling
// back to the URL path and defaulting to .txt.
func suffixFor(contentType, urlPath string) string {
	if s, ok := contentTypeSuffixes[contentType]; ok {
		return s
	}
	ext := strings.ToLower(path.Ext(urlPath))
	if supportedExtensions[ext] {
		return ext
	}
	return ".txt"
}
