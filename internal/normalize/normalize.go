// Package normalize converts documents of the supported formats into
// plain Unicode text. It is a leaf component: the fetcher and the
// orchestrator feed it paths or raw markup and receive text back.
package normalize

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"

	"github.com/hyunjinee/resume-extract/internal/errs"
)

// Format identifies one of the supported document formats.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc"
	FormatTXT  Format = "txt"
	FormatHTML Format = "html"
)

var contentTypeFormats = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"application/msword":    FormatDOC,
	"text/plain":            FormatTXT,
	"text/html":             FormatHTML,
	"text/htm":              FormatHTML,
	"application/xhtml+xml": FormatHTML,
}

var extensionFormats = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".doc":  FormatDOC,
	".txt":  FormatTXT,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

// DetectFormat resolves the document format, preferring the declared
// content type and falling back to the file-name suffix. Anything outside
// the supported set is an UnsupportedTypeError naming the offender.
func DetectFormat(contentType, path string) (Format, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if f, ok := contentTypeFormats[ct]; ok {
		return f, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	offender := ct
	if offender == "" {
		offender = ext
	}
	return "", &errs.UnsupportedTypeError{Type: offender}
}

// File converts the file at path into plain text. contentType may be
// empty, in which case the suffix decides the format. The result is
// trimmed; an empty result is a ParseError.
func File(path, contentType string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &errs.ParseError{Path: path, Reason: "file does not exist", Cause: err}
	}
	format, err := DetectFormat(contentType, path)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = fromPDF(path)
	case FormatDOCX:
		text, err = fromDOCX(path)
	case FormatDOC:
		text, err = fromDOC(path)
	case FormatTXT:
		text, err = fromTXT(path)
	case FormatHTML:
		text, err = fromHTMLFile(path)
	}
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &errs.ParseError{Path: path, Reason: "no text content"}
	}
	return text, nil
}

// fromPDF concatenates per-page text with newline separators.
func fromPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &errs.ParseError{Path: path, Reason: "open pdf", Cause: err}
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &errs.ParseError{Path: path, Reason: "extract pdf page text", Cause: err}
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// fromDOCX opens the OOXML container and walks word/document.xml,
// emitting character data with newlines at paragraph and break ends.
func fromDOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", &errs.ParseError{Path: path, Reason: "open docx container", Cause: err}
	}
	defer zr.Close()

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", &errs.ParseError{Path: path, Reason: "word/document.xml not found"}
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", &errs.ParseError{Path: path, Reason: "open word/document.xml", Cause: err}
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &errs.ParseError{Path: path, Reason: "decode document xml", Cause: err}
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
			}
		}
	}
	return sb.String(), nil
}

// fromDOC is a best-effort salvage of the legacy binary format: decode
// the bytes lossily and keep printable runes. Partial or garbled output
// is accepted as long as it is non-empty.
func fromDOC(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &errs.ParseError{Path: path, Reason: "read doc file", Cause: err}
	}
	var sb strings.Builder
	for _, r := range strings.ToValidUTF8(string(raw), "") {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

// legacyEncodings is the ordered fallback list for non-UTF-8 text files.
// ISO 8859-1 accepts any byte sequence, so it acts as the terminal
// fallback the same way it does in the wild.
var legacyEncodings = []encoding.Encoding{
	korean.EUCKR,
	charmap.ISO8859_1,
}

func fromTXT(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &errs.ParseError{Path: path, Reason: "read text file", Cause: err}
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	for _, enc := range legacyEncodings {
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		// A decoder that substituted replacement characters did not
		// really understand the bytes; try the next encoding.
		if strings.ContainsRune(string(decoded), utf8.RuneError) {
			continue
		}
		return string(decoded), nil
	}
	return "", &errs.ParseError{Path: path, Reason: "undecodable text encoding"}
}

func fromHTMLFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &errs.ParseError{Path: path, Reason: "read html file", Cause: err}
	}
	text, err := FromHTML(string(raw))
	if err != nil {
		if perr, ok := err.(*errs.ParseError); ok {
			perr.Path = path
		}
		return "", err
	}
	return text, nil
}
