package normalize

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/hyunjinee/resume-extract/internal/errs"
)

// Elements whose subtrees never contribute readable text.
var markupElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
}

// Boilerplate regions removed on the webpage-fetch path in addition to
// the markup elements above.
var chromeElements = map[string]bool{
	"nav":    true,
	"header": true,
	"footer": true,
	"aside":  true,
}

// FromHTML extracts readable text from HTML markup, dropping script and
// style content. Used for HTML documents supplied as files.
func FromHTML(markup string) (string, error) {
	return htmlToText(markup, false)
}

// FromWebPage extracts readable text from a fetched webpage. On top of
// FromHTML it removes navigation, header, footer, and aside regions,
// which on a live page are site chrome rather than document content.
func FromWebPage(markup string) (string, error) {
	return htmlToText(markup, true)
}

func htmlToText(markup string, dropChrome bool) (string, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil || root == nil {
		return "", &errs.ParseError{Path: "html content", Reason: "parse markup", Cause: err}
	}

	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			name := strings.ToLower(n.Data)
			if markupElements[name] {
				return
			}
			if dropChrome && chromeElements[name] {
				return
			}
		}
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				lines = append(lines, collapseSpaces(trimmed))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	text := strings.Join(lines, "\n")
	if text == "" {
		return "", &errs.ParseError{Path: "html content", Reason: "no text content"}
	}
	return text, nil
}

// collapseSpaces reduces internal whitespace runs to single spaces.
func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
