package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

// decodeStrings accepts an array of scalars, an object of arrays
// (flattened in member order) or a single string
func decodeStrings(raw json.RawMessage) ([]string, bool) {
	var items []interface{}
	if err := json.Unmarshal(raw, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := scalarText(item); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	}

	var grouped model.KeyedSet
	if err := json.Unmarshal(raw, &grouped); err == nil {
		var out []string
		for _, key := range grouped.Keys() {
			out = append(out, grouped.Get(key)...)
		}
		return out, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var out []string
		for _, line := range strings.Split(s, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out, true
	}
	return nil, false
}

// decodeKeyed accepts an object whose members are arrays or strings
func decodeKeyed(raw json.RawMessage) (*model.KeyedSet, bool) {
	members, ok := orderedMembers(raw)
	if !ok {
		return nil, false
	}
	out := model.NewKeyedSet()
	for _, m := range members {
		if items, ok := decodeStrings(m.value); ok {
			out.AddAll(m.key, items...)
		}
	}
	return out, true
}

type member struct {
	key   string
	value json.RawMessage
}

// orderedMembers lists the members of a JSON object in document order
func orderedMembers(raw json.RawMessage) ([]member, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	var out []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		out = append(out, member{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	return out, true
}

// orderedValues returns the scalar items of an array, or the member
// values of an object in document order
func orderedValues(raw json.RawMessage) []string {
	if members, ok := orderedMembers(raw); ok {
		var out []string
		for _, m := range members {
			if text, ok := decodeText(m.value); ok && text != "" {
				out = append(out, text)
			}
		}
		return out
	}
	items, _ := decodeStrings(raw)
	return items
}

// decodeText accepts a string, a scalar, or an array rendered as
// "• item" lines
func decodeText(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return cleanText(s), true
	}

	var items []interface{}
	if err := json.Unmarshal(raw, &items); err == nil {
		return bulletLines(items), true
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch v.(type) {
	case nil, map[string]interface{}:
		return "", false
	}
	return scalarText(v), true
}

func bulletLines(items []interface{}) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if s := scalarText(item); s != "" {
			lines = append(lines, "• "+s)
		}
	}
	return strings.Join(lines, "\n")
}

func scalarText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return cleanText(val)
	case float64:
		return fmt.Sprint(val)
	case bool:
		return fmt.Sprint(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
