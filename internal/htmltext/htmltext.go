// Package htmltext flattens rich-text HTML into plain text suitable for
// paginated PDF rendering. Block structure survives as line breaks; all
// other markup is discarded.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var blockTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "div": true, "li": true, "blockquote": true,
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	multiNewlines     = regexp.MustCompile(`\n{3,}`)
	horizontalSpacing = regexp.MustCompile(`[ \t]+`)
)

// ContainsMarkup reports whether the content looks like HTML rather than
// plain text.
func ContainsMarkup(content string) bool {
	return tagPattern.MatchString(content)
}

// Flatten converts HTML content to plain text. Block-level tags (h1-h6, p,
// div, li, blockquote) and <br> become line breaks, every other tag is
// stripped, entities are decoded, runs of three or more newlines collapse to
// two, runs of spaces and tabs collapse to one space, and every line plus
// the whole result is trimmed.
func Flatten(content string) string {
	if content == "" {
		return ""
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(content))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}
		switch tokenType {
		case html.TextToken:
			b.WriteString(tokenizer.Token().Data)
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if tag == "br" || blockTags[tag] {
				b.WriteByte('\n')
			}
		}
	}

	text := b.String()
	// The tokenizer decodes &nbsp; to U+00A0; collapse it with normal spaces.
	text = strings.ReplaceAll(text, " ", " ")
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	text = horizontalSpacing.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	return strings.TrimSpace(text)
}
