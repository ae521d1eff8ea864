package response

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Stage names the rung of the repair ladder that produced a result
type Stage string

const (
	StageDirect        Stage = "direct"
	StageBracketRepair Stage = "bracket_repair"
	StageFieldSalvage  Stage = "field_salvage"
	StageDefaults      Stage = "defaults"
	StageSections      Stage = "sections"
)

// Report describes how a response was recovered
type Report struct {
	Stage     Stage    `json:"stage"`
	Salvaged  []string `json:"salvaged,omitempty"`  // Fields cut out of a broken document
	Defaulted []string `json:"defaulted,omitempty"` // Fields filled from the default table
}

// Degraded reports whether any part of the result did not come from a
// cleanly parsed document
func (r Report) Degraded() bool {
	return (r.Stage != StageDirect && r.Stage != StageSections) || len(r.Defaulted) > 0
}

func (r *Report) defaulted(field string) {
	r.Defaulted = append(r.Defaulted, field)
}

// Document is a model response decoded as far as the ladder allows
type Document struct {
	Text   string // Cleaned response text
	Fields map[string]json.RawMessage
	Report Report
}

// Repair runs the JSON ladder over raw: direct parse, bracket repair,
// then per-field salvage of the named top-level fields. It always
// returns a document; Fields is empty when nothing could be recovered.
func Repair(raw string, fields ...string) *Document {
	doc := &Document{Text: CleanJSON(raw)}

	if obj, ok := decodeObject(doc.Text); ok {
		doc.Fields = obj
		doc.Report.Stage = StageDirect
		return doc
	}

	if balanced, ok := balance(doc.Text); ok {
		if obj, ok := decodeObject(balanced); ok {
			doc.Fields = obj
			doc.Report.Stage = StageBracketRepair
			return doc
		}
	}

	doc.Fields = make(map[string]json.RawMessage)
	for _, field := range fields {
		if v, ok := Salvage(doc.Text, field); ok {
			doc.Fields[field] = v
			doc.Report.Salvaged = append(doc.Report.Salvaged, field)
		}
	}
	if len(doc.Fields) > 0 {
		doc.Report.Stage = StageFieldSalvage
	} else {
		doc.Report.Stage = StageDefaults
	}
	return doc
}

// Lookup resolves a path of object keys. When the document had to be
// salvaged, a leaf whose parent could not be recovered is salvaged by
// its own key.
func (d *Document) Lookup(path ...string) (json.RawMessage, bool) {
	if len(path) == 0 {
		return nil, false
	}
	if v, ok := lookupPath(d.Fields, path); ok {
		return v, true
	}
	if len(path) == 1 || (d.Report.Stage != StageFieldSalvage && d.Report.Stage != StageDefaults) {
		return nil, false
	}
	leaf := path[len(path)-1]
	v, ok := Salvage(d.Text, leaf)
	if ok {
		d.Report.Salvaged = append(d.Report.Salvaged, strings.Join(path, "."))
		if d.Report.Stage == StageDefaults {
			d.Report.Stage = StageFieldSalvage
		}
	}
	return v, ok
}

func lookupPath(obj map[string]json.RawMessage, path []string) (json.RawMessage, bool) {
	v, ok := obj[path[0]]
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return v, true
	}
	var child map[string]json.RawMessage
	if err := json.Unmarshal(v, &child); err != nil {
		return nil, false
	}
	return lookupPath(child, path[1:])
}

func decodeObject(s string) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

var danglingTail = regexp.MustCompile(`(?:,\s*|,?\s*"(?:[^"\\]|\\.)*"\s*:\s*)$`)

// balance closes an unterminated string and appends the closing
// brackets missing at the end of s, innermost first. It fails when a
// closing bracket does not match its opener.
func balance(s string) (string, bool) {
	var stack []byte
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
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
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != opener(c) {
				return "", false
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) == 0 && !inString {
		return s, true
	}

	var b strings.Builder
	b.WriteString(s)
	if inString {
		if escaped {
			b.WriteByte('\\')
		}
		b.WriteByte('"')
	}
	out := danglingTail.ReplaceAllString(strings.TrimRight(b.String(), " \t\r\n"), "")
	b.Reset()
	b.WriteString(out)
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(closer(stack[i]))
	}
	return b.String(), true
}

func opener(c byte) byte {
	if c == '}' {
		return '{'
	}
	return '['
}

func closer(c byte) byte {
	if c == '{' {
		return '}'
	}
	return ']'
}

// Salvage cuts the value of the first well-formed "field": member out
// of a broken document
func Salvage(text, field string) (json.RawMessage, bool) {
	key := regexp.MustCompile(`"` + regexp.QuoteMeta(field) + `"\s*:\s*`)
	for _, loc := range key.FindAllStringIndex(text, -1) {
		end, ok := scanValue(text, loc[1])
		if !ok {
			continue
		}
		fragment := strings.TrimSpace(text[loc[1]:end])
		if json.Valid([]byte(fragment)) {
			return json.RawMessage(fragment), true
		}
	}
	return nil, false
}

// scanValue returns the end offset of the JSON value starting at or
// after start. Strings and bracketed values must be terminated; scalars
// end at the next delimiter.
func scanValue(s string, start int) (int, bool) {
	i := start
	for i < len(s) && strings.IndexByte(" \t\r\n", s[i]) >= 0 {
		i++
	}
	if i >= len(s) {
		return 0, false
	}

	switch s[i] {
	case '"':
		return scanString(s, i)
	case '{', '[':
		var stack []byte
		for j := i; j < len(s); j++ {
			switch c := s[j]; c {
			case '"':
				end, ok := scanString(s, j)
				if !ok {
					return 0, false
				}
				j = end - 1
			case '{', '[':
				stack = append(stack, c)
			case '}', ']':
				if stack[len(stack)-1] != opener(c) {
					return 0, false
				}
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return j + 1, true
				}
			}
		}
		return 0, false
	default:
		j := i
		for j < len(s) && strings.IndexByte(",}]\n", s[j]) < 0 {
			j++
		}
		return j, j > i
	}
}

func scanString(s string, start int) (int, bool) {
	for j := start + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j + 1, true
		}
	}
	return 0, false
}
