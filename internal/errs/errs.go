// Package errs defines the error kinds surfaced by the resume extraction
// pipeline. Each kind carries structured detail (offending URL, path, or
// underlying cause) so callers can branch with errors.As instead of
// parsing message text.
package errs

import "fmt"

// InvalidURLError reports a malformed or non-HTTP(S) URL. It is raised
// before any network I/O happens.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL: %q", e.URL)
}

// InvalidInputError reports unusable caller input, such as text that is
// empty after trimming.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// UnsupportedTypeError reports a content type or file extension outside
// the supported document set.
type UnsupportedTypeError struct {
	// Type is the offending content type or extension.
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.Type)
}

// DownloadError reports a failed transfer: size ceiling exceeded, a
// transport failure after retries, or a non-2xx response.
type DownloadError struct {
	URL    string
	Reason string
	Cause  error
}

func (e *DownloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("download failed for %s: %s: %v", e.URL, e.Reason, e.Cause)
	}
	return fmt.Sprintf("download failed for %s: %s", e.URL, e.Reason)
}

func (e *DownloadError) Unwrap() error {
	return e.Cause
}

// ParseError reports a failure converting a specific file to text, or a
// conversion that yielded no text at all.
type ParseError struct {
	Path   string
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse failed for %s: %s: %v", e.Path, e.Reason, e.Cause)
	}
	return fmt.Sprintf("parse failed for %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// CredentialError reports a missing or rejected extraction-service
// credential. Raised at service-handle construction when the key is
// absent, or from a call that the service refused for auth reasons.
type CredentialError struct {
	Reason string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("extraction service credential error: %s", e.Reason)
}

// ExtractionError is the generic extraction-failure kind. Unclassified
// failures inside the pipeline are wrapped into it with the underlying
// cause preserved.
type ExtractionError struct {
	Reason string
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
