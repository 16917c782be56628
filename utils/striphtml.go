package utils

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// CollapseWhitespace trims the string and collapses every internal run of
// whitespace (spaces, tabs, newlines) to a single space.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}

// CleanHTMLTags converts a string possibly containing markup into plain
// text. Entities are decoded, script and style bodies are dropped, and the
// remaining text is whitespace-collapsed.
func CleanHTMLTags(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "<&") {
		return CollapseWhitespace(raw)
	}

	tok := html.NewTokenizer(strings.NewReader(raw))
	var (
		b    strings.Builder
		skip int
	)
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return CollapseWhitespace(b.String())
		case html.StartTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(tok.Text())
				b.WriteByte(' ')
			}
		}
	}
}
