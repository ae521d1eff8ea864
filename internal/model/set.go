package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StatementSet is an insertion-ordered set of curriculum statements.
// Equality is exact and case-sensitive; statements are stored untouched.
// The zero value is ready to use.
type StatementSet struct {
	items []string
	index map[string]struct{}
}

// NewStatementSet creates a set holding items in first-appearance order
func NewStatementSet(items ...string) *StatementSet {
	s := &StatementSet{}
	s.AddAll(items...)
	return s
}

// Add inserts item unless it is blank or already present
func (s *StatementSet) Add(item string) bool {
	if strings.TrimSpace(item) == "" {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, exists := s.index[item]; exists {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// AddAll inserts items in order
func (s *StatementSet) AddAll(items ...string) {
	for _, item := range items {
		s.Add(item)
	}
}

// Contains reports whether item is in the set
func (s *StatementSet) Contains(item string) bool {
	_, ok := s.index[item]
	return ok
}

// Len returns the number of statements
func (s *StatementSet) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no statements
func (s *StatementSet) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns a copy of the statements in insertion order
func (s *StatementSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Clone returns an independent copy
func (s *StatementSet) Clone() *StatementSet {
	return NewStatementSet(s.items...)
}

// Reset replaces the contents with items
func (s *StatementSet) Reset(items ...string) {
	s.items = nil
	s.index = nil
	s.AddAll(items...)
}

// Equal compares contents and order
func (s *StatementSet) Equal(other *StatementSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an array (never null)
func (s StatementSet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes an array, dropping duplicates
func (s *StatementSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("statement set: %w", err)
	}
	s.Reset(items...)
	return nil
}

// MarshalYAML encodes the set as a sequence
func (s StatementSet) MarshalYAML() (interface{}, error) {
	if s.items == nil {
		return []string{}, nil
	}
	return s.items, nil
}

// UnmarshalYAML decodes a sequence, dropping duplicates
func (s *StatementSet) UnmarshalYAML(value *yaml.Node) error {
	var items []string
	if err := value.Decode(&items); err != nil {
		return fmt.Errorf("statement set: %w", err)
	}
	s.Reset(items...)
	return nil
}

// KeyedSet maps a subject name to its statements. Subjects keep
// first-insertion order, including when encoded.
type KeyedSet struct {
	keys []string
	sets map[string]*StatementSet
}

// NewKeyedSet creates an empty keyed set
func NewKeyedSet() *KeyedSet {
	return &KeyedSet{}
}

// Add inserts item under key; blank items never create a key
func (k *KeyedSet) Add(key, item string) bool {
	if strings.TrimSpace(item) == "" {
		return false
	}
	if k.sets == nil {
		k.sets = make(map[string]*StatementSet)
	}
	set, ok := k.sets[key]
	if !ok {
		set = &StatementSet{}
		k.sets[key] = set
		k.keys = append(k.keys, key)
	}
	return set.Add(item)
}

// AddAll inserts items under key in order
func (k *KeyedSet) AddAll(key string, items ...string) {
	for _, item := range items {
		k.Add(key, item)
	}
}

// Keys returns subjects in insertion order
func (k *KeyedSet) Keys() []string {
	out := make([]string, len(k.keys))
	copy(out, k.keys)
	return out
}

// Get returns the statements stored under key
func (k *KeyedSet) Get(key string) []string {
	if set, ok := k.sets[key]; ok {
		return set.Items()
	}
	return nil
}

// Total returns the number of statements across all subjects
func (k *KeyedSet) Total() int {
	total := 0
	for _, set := range k.sets {
		total += set.Len()
	}
	return total
}

// IsEmpty reports whether no subject holds a statement
func (k *KeyedSet) IsEmpty() bool {
	return k.Total() == 0
}

// Merge appends every subject and statement of other
func (k *KeyedSet) Merge(other *KeyedSet) {
	for _, key := range other.keys {
		k.AddAll(key, other.sets[key].items...)
	}
}

// Clone returns an independent copy
func (k *KeyedSet) Clone() *KeyedSet {
	out := &KeyedSet{}
	out.Merge(k)
	return out
}

// Reset replaces the contents with a copy of other
func (k *KeyedSet) Reset(other *KeyedSet) {
	k.keys = nil
	k.sets = nil
	if other != nil {
		k.Merge(other)
	}
}

// Equal compares subjects, statements and their order
func (k *KeyedSet) Equal(other *KeyedSet) bool {
	if len(k.keys) != len(other.keys) {
		return false
	}
	for i, key := range k.keys {
		if other.keys[i] != key {
			return false
		}
		if !k.sets[key].Equal(other.sets[key]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes an object whose members follow insertion order
func (k KeyedSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range k.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		values, err := json.Marshal(k.sets[key])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(values)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of string arrays, keeping member order
func (k *KeyedSet) UnmarshalJSON(data []byte) error {
	k.Reset(nil)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("keyed set: %w", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("keyed set: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("keyed set: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("keyed set: unexpected key %v", tok)
		}
		var items []string
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("keyed set %q: %w", key, err)
		}
		k.AddAll(key, items...)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("keyed set: %w", err)
	}
	return nil
}

// MarshalYAML encodes a mapping whose keys follow insertion order
func (k KeyedSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range k.keys {
		var values yaml.Node
		if err := values.Encode(k.sets[key].Items()); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&values,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping of sequences, keeping key order
func (k *KeyedSet) UnmarshalYAML(value *yaml.Node) error {
	k.Reset(nil)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("keyed set: expected mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var items []string
		if err := value.Content[i+1].Decode(&items); err != nil {
			return fmt.Errorf("keyed set %q: %w", value.Content[i].Value, err)
		}
		k.AddAll(value.Content[i].Value, items...)
	}
	return nil
}
