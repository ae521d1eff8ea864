package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

// FileName returns the output file name for res
func FileName(res *Result) string {
	return fmt.Sprintf("%s-%s.json", res.Kind, res.ID)
}

// EncodeJSON renders res as indented JSON without HTML escaping
func EncodeJSON(res *Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderJSON writes res to path, creating parent directories
func RenderJSON(res *Result, path string) error {
	data, err := EncodeJSON(res)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// RenderSummary prints a short human-readable summary of res
func RenderSummary(w io.Writer, res *Result) {
	fmt.Fprintf(w, "\n%s %s\n", kindTitle(res), res.ID)

	switch {
	case res.Activity != nil:
		a := res.Activity
		fmt.Fprintf(w, "  Etkinlik: %s (%s, %d dakika)\n", a.Name, a.Area, a.Duration)
		printCounts(w, a.Curriculum)
	case res.Daily != nil:
		printCounts(w, res.Daily.Snapshot())
	case res.Monthly != nil:
		fmt.Fprintf(w, "  Plan: %s\n", res.Monthly.Name)
		printCounts(w, res.Monthly.Snapshot())
		fmt.Fprintf(w, "  Anahtar Kavramlar: %d\n", len(res.Monthly.KeyConcepts))
	case res.Video != nil:
		v := res.Video
		fmt.Fprintf(w, "  Video: %s (%s)\n", v.Title, v.Character)
		if v.Duration != "" {
			fmt.Fprintf(w, "  Süre: %s\n", v.Duration)
		}
		fmt.Fprintf(w, "  Bölümler: %d\n", len(v.Sections))
	}

	fmt.Fprintf(w, "  Onarım: %s\n", res.Report.Stage)
	if len(res.Report.Salvaged) > 0 {
		fmt.Fprintf(w, "  Kurtarılan alanlar: %s\n", strings.Join(res.Report.Salvaged, ", "))
	}
	if len(res.Report.Defaulted) > 0 {
		fmt.Fprintf(w, "  Varsayılan alanlar: %s\n", strings.Join(res.Report.Defaulted, ", "))
	}
	if res.GenerationError != "" {
		fmt.Fprintf(w, "  ⚠ Üretim hatası: %s\n", res.GenerationError)
	}
}

func kindTitle(res *Result) string {
	switch {
	case res.Activity != nil:
		return "✓ Etkinlik"
	case res.Daily != nil:
		return "✓ Günlük Plan"
	case res.Monthly != nil:
		return "✓ Aylık Plan"
	case res.Video != nil:
		return "✓ Konu Anlatım Videosu"
	}
	return "✓ " + string(res.Kind)
}

func printCounts(w io.Writer, snap *model.Snapshot) {
	if snap.IsEmpty() {
		fmt.Fprintln(w, "  Müfredat: boş")
		return
	}
	for _, c := range model.Categories() {
		if n := snap.Count(c); n > 0 {
			fmt.Fprintf(w, "  %s: %d\n", c.Label(), n)
		}
	}
}
