package response

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

var videoFields = []string{"title", "subject", "age_group", "duration", "character", "sections"}

var (
	visualCuePattern   = regexp.MustCompile(`\*\*\((.*?)\)\*\*`)
	videoSectionHeader = regexp.MustCompile(`(?i)^(\d+)\.\s*BÖLÜM\s*:?\s*(.*)$`)
	videoPartHeader    = regexp.MustCompile(`(?i)^([123])\.\s*(Arka\s*Plan|Seslendiren\s*Karakter|Metin)`)
	numberedLine       = regexp.MustCompile(`^\d+\.`)
)

// videoHeaderLabels are the script header lines read before the first section
var videoHeaderLabels = []struct {
	label string
	set   func(s *model.VideoScript, v string)
}{
	{"Video Başlığı:", func(s *model.VideoScript, v string) { s.Title = v }},
	{"Ders:", func(s *model.VideoScript, v string) { s.Subject = v }},
	{"Hedef Yaş Grubu:", func(s *model.VideoScript, v string) { s.AgeGroup = v }},
	{"Video Süresi:", func(s *model.VideoScript, v string) { s.Duration = v }},
	{"Karakter:", func(s *model.VideoScript, v string) { s.Character = v }},
}

// ParseVideoScript recovers a video script. A JSON document with
// sections wins; otherwise the text is read as a labelled script with
// "N. BÖLÜM" headings; otherwise the default script is returned.
func ParseVideoScript(raw string) (model.VideoScript, Report) {
	doc := Repair(raw, videoFields...)
	if v, ok := doc.Fields["sections"]; ok {
		if sections := decodeVideoSections(v); len(sections) > 0 {
			script := DefaultVideoScript()
			script.Sections = sections
			report := doc.Report
			applyVideoHeader(&script, doc, &report)
			return script, report
		}
	}

	if script, ok := parseScriptText(raw); ok {
		report := Report{Stage: StageSections}
		if script.Title == "" {
			report.defaulted("title")
		}
		return script, report
	}

	script := DefaultVideoScript()
	report := doc.Report
	applyVideoHeader(&script, doc, &report)
	report.defaulted("sections")
	return script, report
}

func applyVideoHeader(script *model.VideoScript, doc *Document, report *Report) {
	field := func(name string, dst *string) {
		if v, ok := doc.Fields[name]; ok {
			if text, ok := decodeText(v); ok && text != "" {
				*dst = text
				return
			}
		}
		report.defaulted(name)
	}
	field("title", &script.Title)
	field("subject", &script.Subject)
	field("age_group", &script.AgeGroup)
	field("duration", &script.Duration)
	field("character", &script.Character)
}

func decodeVideoSections(raw json.RawMessage) []model.VideoSection {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	text := func(obj map[string]json.RawMessage, keys ...string) string {
		for _, key := range keys {
			if v, ok := obj[key]; ok {
				if s, ok := decodeText(v); ok && s != "" {
					return s
				}
			}
		}
		return ""
	}

	var out []model.VideoSection
	for i, item := range items {
		section := model.VideoSection{
			Number:    i + 1,
			Title:     text(item, "section_title", "title"),
			Character: text(item, "character"),
			Text:      text(item, "text"),
		}
		if n, err := strconv.Atoi(text(item, "section_number")); err == nil && n > 0 {
			section.Number = n
		}
		if bg, ok := item["background"]; ok {
			var parts map[string]json.RawMessage
			if err := json.Unmarshal(bg, &parts); err == nil {
				section.Background.Visual = text(parts, "visual")
				section.Background.Music = text(parts, "music")
			} else {
				section.Background.Visual, _ = decodeText(bg)
			}
		}
		section.VisualCues = visualCues(section.Text)
		out = append(out, section)
	}
	return out
}

// visualCues lists the **(...)** directions in narration text
func visualCues(text string) []string {
	var cues []string
	for _, m := range visualCuePattern.FindAllStringSubmatch(text, -1) {
		if cue := strings.TrimSpace(m[1]); cue != "" {
			cues = append(cues, cue)
		}
	}
	return cues
}

type sectionDraft struct {
	section    model.VideoSection
	background []string
	character  []string
	text       []string
}

// parseScriptText reads a Markdown script laid out as header labels
// followed by "N. BÖLÜM: Title" sections, each with numbered
// background, narrator and narration parts
func parseScriptText(raw string) (model.VideoScript, bool) {
	script := model.VideoScript{Character: model.DefaultNarrator}
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var (
		drafts []*sectionDraft
		part   *[]string
	)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		plain := strings.TrimSpace(strings.TrimLeft(strings.ReplaceAll(line, "*", ""), "# "))
		if plain == "" {
			continue
		}

		if m := videoSectionHeader.FindStringSubmatch(plain); m != nil {
			n, _ := strconv.Atoi(m[1])
			drafts = append(drafts, &sectionDraft{section: model.VideoSection{
				Number: n,
				Title:  strings.TrimSpace(strings.Trim(m[2], "[] ")),
			}})
			part = nil
			continue
		}

		if len(drafts) == 0 {
			readVideoHeader(&script, plain, lines, i)
			continue
		}

		current := drafts[len(drafts)-1]
		if m := videoPartHeader.FindStringSubmatch(plain); m != nil {
			switch m[1] {
			case "1":
				part = &current.background
			case "2":
				part = &current.character
			default:
				part = &current.text
			}
			if idx := strings.Index(line, ":"); idx >= 0 {
				if rest := strings.TrimSpace(strings.TrimLeft(line[idx+1:], "*")); rest != "" {
					*part = append(*part, rest)
				}
			}
			continue
		}
		if part != nil && !numberedLine.MatchString(plain) {
			*part = append(*part, line)
		}
	}

	if len(drafts) == 0 {
		return script, false
	}
	for _, d := range drafts {
		section := d.section
		section.Background.Visual = CleanMarkdown(strings.Join(d.background, "\n"), false)
		section.Character = CleanMarkdown(strings.Join(d.character, "\n"), false)
		narration := strings.Join(d.text, "\n")
		section.VisualCues = visualCues(narration)
		section.Text = CleanMarkdown(narration, true)
		script.Sections = append(script.Sections, section)
	}
	return script, true
}

// readVideoHeader fills one header label. The title may sit on the line
// after a bare "[Video Başlığı]" marker.
func readVideoHeader(script *model.VideoScript, plain string, lines []string, i int) {
	if strings.Contains(plain, "[Video Başlığı]") {
		script.Title = nextContentLine(lines, i)
		return
	}
	for _, h := range videoHeaderLabels {
		if strings.HasPrefix(plain, h.label) {
			if v := strings.TrimSpace(strings.TrimPrefix(plain, h.label)); v != "" {
				h.set(script, v)
			}
			return
		}
	}
}

func nextContentLine(lines []string, i int) string {
	for _, line := range lines[i+1:] {
		if line = strings.TrimSpace(strings.ReplaceAll(line, "*", "")); line != "" {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
	}
	return ""
}
