package planner

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/maarifplan/internal/prompt"
)

// LoadRequest reads a YAML request file
func LoadRequest(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	req, err := ParseRequest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// ParseRequest decodes and validates a YAML request. Unknown keys are
// rejected so that typos do not silently drop overrides.
func ParseRequest(data []byte) (*Request, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var req Request
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	req.Kind = prompt.Kind(strings.ToLower(strings.TrimSpace(string(req.Kind))))
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validate checks that the request has what its kind needs
func (r *Request) Validate() error {
	switch r.Kind {
	case prompt.KindActivity:
		if len(r.Outcomes) == 0 {
			return fmt.Errorf("activity request needs at least one outcome")
		}
	case prompt.KindDaily:
		if len(r.Activities) == 0 && len(r.Outcomes) == 0 {
			return fmt.Errorf("daily request needs activities or outcomes")
		}
	case prompt.KindMonthly:
		if r.Month == "" {
			return fmt.Errorf("monthly request needs a month")
		}
		if len(r.Outcomes) == 0 && len(r.Activities) == 0 {
			return fmt.Errorf("monthly request needs outcomes or activities")
		}
	case prompt.KindVideo:
		if r.Video == nil || strings.TrimSpace(r.Video.Topic) == "" {
			return fmt.Errorf("video request needs a topic")
		}
	default:
		return fmt.Errorf("unknown request kind %q (supported: activity, daily, monthly, video)", r.Kind)
	}
	return nil
}
