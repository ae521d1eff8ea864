package response

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var htmlTag = regexp.MustCompile(`(?i)</?(?:br|p|div|span|ul|ol|li|b|i|strong|em|h[1-6])\b[^>]*>`)

// blockElements start and end on their own line
var blockElements = map[string]bool{
	"p": true, "div": true, "ul": true, "ol": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// looksLikeHTML reports whether s carries formatting tags
func looksLikeHTML(s string) bool {
	return htmlTag.MatchString(s)
}

// StripHTML reduces an HTML fragment to text, one line per block
// element or <br>. List items are prefixed with "• ".
func StripHTML(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "br":
				buf.WriteByte('\n')
				return
			}
			if blockElements[n.Data] {
				buf.WriteByte('\n')
				if n.Data == "li" {
					buf.WriteString("• ")
				}
			}
		}

		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteByte('\n')
		}
	}

	walk(doc)

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// cleanText strips HTML markup when present and trims the result
func cleanText(s string) string {
	if looksLikeHTML(s) {
		s = StripHTML(s)
	}
	return strings.TrimSpace(s)
}
