// Package htmltext reduces rich-text content to plain text before embedding.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// skipContent lists elements whose entire subtree is dropped: non-prose
// content that would pollute the embedded text.
var skipContent = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"iframe":   {},
	"video":    {},
	"audio":    {},
	"img":      {},
	"source":   {},
}

// voidElements never carry an end tag, so they must not open a skip scope.
var voidElements = map[string]struct{}{
	"img":    {},
	"source": {},
}

// Clean strips markup from rich-text content and returns trimmed plain text
// with whitespace runs collapsed. Empty input returns "". Malformed markup is
// handled best-effort; Clean never fails.
func Clean(input string) string {
	if input == "" {
		return ""
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(input))

	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way, return what we have.
			return collapseWhitespace(b.String())

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if _, ok := voidElements[tag]; ok {
				continue
			}
			if _, ok := skipContent[tag]; ok {
				skipDepth++
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if _, ok := skipContent[string(name)]; ok && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

// collapseWhitespace squeezes whitespace runs to single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
