// Package richtext reduces editor HTML to plain text for listings and search results.
package richtext

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true, "hr": true,
}

// PlainText strips markup and collapses whitespace. Input that fails to parse is returned trimmed.
func PlainText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			sb.WriteByte(' ')
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}

// Excerpt returns at most maxRunes runes of the plain text, cut on a word boundary when possible.
func Excerpt(content string, maxRunes int) string {
	text := PlainText(content)
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)[:maxRunes]
	cut := string(runes)
	if i := strings.LastIndexByte(cut, ' '); i > maxRunes/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}
