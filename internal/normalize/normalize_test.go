package normalize

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/korean"

	"github.com/hyunjinee/resume-extract/internal/errs"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		contentType string
		path        string
		want        Format
	}{
		{"application/pdf", "", FormatPDF},
		{"application/pdf; charset=binary", "", FormatPDF},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "", FormatDOCX},
		{"application/msword", "", FormatDOC},
		{"text/plain", "", FormatTXT},
		{"text/html", "", FormatHTML},
		// Content type wins over the suffix.
		{"application/pdf", "resume.html", FormatPDF},
		// Suffix fallback when the type is absent or unknown.
		{"", "resume.docx", FormatDOCX},
		{"application/octet-stream", "resume.txt", FormatTXT},
	}
	for _, tc := range cases {
		got, err := DetectFormat(tc.contentType, tc.path)
		if err != nil {
			t.Fatalf("DetectFormat(%q, %q): %v", tc.contentType, tc.path, err)
		}
		if got != tc.want {
			t.Fatalf("DetectFormat(%q, %q) = %v, want %v", tc.contentType, tc.path, got, tc.want)
		}
	}
}

func TestDetectFormat_Unsupported(t *testing.T) {
	_, err := DetectFormat("application/zip", "archive.zip")
	var ute *errs.UnsupportedTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if ute.Type != "application/zip" {
		t.Fatalf("expected offending type in error, got %q", ute.Type)
	}
}

func TestFile_TXT_UTF8(t *testing.T) {
	path := writeFile(t, "resume.txt", []byte("테스트 텍스트입니다"))
	text, err := File(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "테스트 텍스트입니다") {
		t.Fatalf("expected literal content, got %q", text)
	}
}

func TestFile_TXT_LegacyEncoding(t *testing.T) {
	raw, err := korean.EUCKR.NewEncoder().Bytes([]byte("한글 이력서 내용"))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := writeFile(t, "legacy.txt", raw)
	text, err := File(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "한글 이력서") {
		t.Fatalf("expected decoded korean text, got %q", text)
	}
}

func TestFile_EmptyFails(t *testing.T) {
	path := writeFile(t, "empty.txt", nil)
	_, err := File(path, "")
	var pe *errs.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError for empty file, got %v", err)
	}
	if pe.Path != path {
		t.Fatalf("expected error to name the file, got %q", pe.Path)
	}
}

func TestFile_UnsupportedSuffix(t *testing.T) {
	path := writeFile(t, "resume.xyz", []byte("irrelevant content"))
	_, err := File(path, "")
	var ute *errs.UnsupportedTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
}

func TestFile_MissingFile(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "gone.txt"), "")
	var pe *errs.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestFile_HTML_StripsScriptAndStyle(t *testing.T) {
	markup := `<html><body><script>alert('x')</script><style>.a{color:red}</style><p>KEEP</p></body></html>`
	path := writeFile(t, "resume.html", []byte(markup))
	text, err := File(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "KEEP") {
		t.Fatalf("expected KEEP in %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color:red") {
		t.Fatalf("script/style content leaked into %q", text)
	}
}

func TestFromWebPage_StripsChrome(t *testing.T) {
	markup := `<html><body><nav>NAV</nav><header>HEAD</header><main>BODY</main><footer>FOOT</footer></body></html>`
	text, err := FromWebPage(markup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "BODY") {
		t.Fatalf("expected BODY in %q", text)
	}
	for _, gone := range []string{"NAV", "HEAD", "FOOT"} {
		if strings.Contains(text, gone) {
			t.Fatalf("expected %q removed, got %q", gone, text)
		}
	}
}

func TestFromHTML_KeepsHeaderContent(t *testing.T) {
	// The file path only strips script/style; header regions survive.
	markup := `<html><body><header>HEAD</header><main>BODY</main></body></html>`
	text, err := FromHTML(markup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "HEAD") || !strings.Contains(text, "BODY") {
		t.Fatalf("expected HEAD and BODY in %q", text)
	}
}

func TestFile_PDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()
	doc.Cell(40, 10, "Resume Fixture Content")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("write pdf fixture: %v", err)
	}

	text, err := File(path, "application/pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Resume") {
		t.Fatalf("expected pdf text, got %q", text)
	}
}

func TestFile_DOCX(t *testing.T) {
	const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>첫 번째 단락</w:t></w:r></w:p><w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p></w:body></w:document>`

	path := filepath.Join(t.TempDir(), "resume.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}

	text, err := File(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "첫 번째 단락") || !strings.Contains(text, "Second paragraph") {
		t.Fatalf("expected both paragraphs, got %q", text)
	}
	if !strings.Contains(text, "첫 번째 단락\nSecond paragraph") {
		t.Fatalf("expected newline paragraph separator, got %q", text)
	}
}

func TestFile_DOC_BestEffort(t *testing.T) {
	// Text mixed with binary framing. Garbled output is acceptable as
	// long as the readable part survives.
	data := append([]byte{0xd0, 0xcf, 0x11, 0xe0, 0x00, 0x01}, []byte("Plain doc words")...)
	path := writeFile(t, "legacy.doc", data)
	text, err := File(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Plain doc words") {
		t.Fatalf("expected salvaged text, got %q", text)
	}
}
