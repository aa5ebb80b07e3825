package gather

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// visibleText extracts text nodes from parsed HTML, skipping elements
// that never render
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.TrimSpace(buf.String())
}

// splitSentences is a rough sentence splitter, good enough for
// excerpt boundaries
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Only break when followed by whitespace and an upper-case
			// start, to not split on abbreviations and decimals
			if i+2 < len(runes) && unicode.IsSpace(runes[i+1]) && unicode.IsUpper(runes[i+2]) {
				sentences = append(sentences, strings.TrimSpace(current.String()))
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// buildExcerpts selects up to max short excerpts from page text,
// each truncated to maxRunes. Leading sentences win; very short
// fragments (navigation crumbs, bylines) are skipped.
func buildExcerpts(text string, max, maxRunes int) []string {
	if max <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	var excerpts []string
	for _, sentence := range splitSentences(text) {
		if len([]rune(sentence)) < 40 {
			continue
		}
		excerpts = append(excerpts, truncateRunes(sentence, maxRunes))
		if len(excerpts) >= max {
			break
		}
	}

	// A page with no sentence-like text still yields one excerpt
	if len(excerpts) == 0 {
		if t := truncateRunes(strings.TrimSpace(text), maxRunes); t != "" {
			excerpts = append(excerpts, t)
		}
	}

	return excerpts
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
