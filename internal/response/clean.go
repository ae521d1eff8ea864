// Package response turns raw model output into structured plan content.
// Parsing never fails: whatever cannot be recovered from the text is
// filled from the default-content tables and recorded in a Report.
package response

import (
	"regexp"
	"strings"
)

var (
	fencedBlock   = regexp.MustCompile("(?is)```(?:json)?[ \\t]*\\r?\\n?(.*?)\\s*```")
	openFence     = regexp.MustCompile("(?i)^```(?:json)?[ \\t]*")
	stringLiteral = regexp.MustCompile(`"([^"\\]*(?:\\.[^"\\]*)*)"`)
	controlChars  = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
)

var invisible = strings.NewReplacer(
	"\ufeff", "",
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\u2060", "",
)

var literalEscapes = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// StripFences returns the body of the first Markdown code fence, or the
// text without a leading unterminated fence
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	if loc := openFence.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[loc[1]:])
	}
	return s
}

// ScrubControlChars escapes raw newlines, carriage returns and tabs
// inside JSON string literals and replaces other control characters
// there with a space
func ScrubControlChars(s string) string {
	return stringLiteral.ReplaceAllStringFunc(s, func(lit string) string {
		body := lit[1 : len(lit)-1]
		body = literalEscapes.Replace(body)
		body = controlChars.ReplaceAllString(body, " ")
		return `"` + body + `"`
	})
}

// RemoveInvisible drops byte-order marks and zero-width characters
func RemoveInvisible(s string) string {
	return invisible.Replace(s)
}

// RemoveStrayCommas drops commas before a closing bracket and collapses
// repeated commas. Text inside string literals is left alone.
func RemoveStrayCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			next := skipSpace(s, i+1)
			if next < len(s) && (s[next] == '}' || s[next] == ']' || s[next] == ',') {
				i = next - 1
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

// CleanJSON applies every textual clean-up step to a model response
// that is expected to hold a single JSON object
func CleanJSON(raw string) string {
	s := StripFences(raw)
	s = RemoveInvisible(s)
	s = isolateObject(s)
	s = ScrubControlChars(s)
	return RemoveStrayCommas(s)
}

// isolateObject trims prose around the outermost JSON object. A
// truncated object is kept up to the end of the text.
func isolateObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return s
	}
	if end, ok := scanValue(s, start); ok {
		return s[start:end]
	}
	return s[start:]
}
