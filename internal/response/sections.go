package response

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/maarifplan/internal/model"
)

type sectionKind int

const (
	sectionAreaSkills sectionKind = iota
	sectionCodes
	sectionOutcomes
	sectionConcepts
	sectionEvaluation
	sectionNarrative
)

// sectionRule describes one numbered section of a monthly plan.
// Adding a section is a matter of adding a row.
type sectionRule struct {
	number int
	anchor string // Title keyword, matched case-insensitively
	field  string
	kind   sectionKind
	item   *regexp.Regexp // Lines kept by sectionCodes
	dedup  *regexp.Regexp // Leading code used to drop repeats
	limit  int
	list   func(p *model.MonthlyPlan) *model.StatementSet
	text   func(p *model.MonthlyPlan) *string
}

const (
	codeLimit        = 10
	outcomeLimit     = 15
	areaSkillLimit   = 5
	flatSkillLimit   = 10
	conceptLineLimit = 20
	conceptDashLimit = 10
	conceptLimit     = 30
	conceptMaxRunes  = 50
	dashPairMaxRunes = 20
	evaluationLines  = 5
	defaultOutcomes  = "Öğrenme Çıktıları"
	defaultAreaKey   = "Alan Becerileri"
)

var monthlySections = []sectionRule{
	{number: 1, anchor: `ALAN\s*BECER`, field: "alan_becerileri", kind: sectionAreaSkills},
	{number: 2, anchor: `KAVRAMSAL\s*BECER`, field: "kavramsal_beceriler", kind: sectionCodes,
		item: regexp.MustCompile(`^KB[0-9]`), limit: codeLimit,
		list: func(p *model.MonthlyPlan) *model.StatementSet { return &p.ConceptualSkills }},
	{number: 3, anchor: `EĞİLİM`, field: "egilimler", kind: sectionCodes,
		item: regexp.MustCompile(`^E[0-9]`), limit: codeLimit,
		list: func(p *model.MonthlyPlan) *model.StatementSet { return &p.Tendencies }},
	{number: 4, anchor: `SOSYAL`, field: "sosyal_duygusal_beceriler", kind: sectionCodes,
		item: regexp.MustCompile(`^SDB[0-9]`), limit: codeLimit,
		list: func(p *model.MonthlyPlan) *model.StatementSet { return &p.SocialEmotional }},
	{number: 5, anchor: `DEĞER`, field: "degerler", kind: sectionCodes,
		item: regexp.MustCompile(`^D[0-9]`), dedup: regexp.MustCompile(`^(D[0-9]+)`), limit: codeLimit,
		list: func(p *model.MonthlyPlan) *model.StatementSet { return &p.Values }},
	{number: 6, anchor: `OKURYAZAR`, field: "okuryazarlik_becerileri", kind: sectionCodes,
		item: regexp.MustCompile(`^OB[0-9]`), limit: codeLimit,
		list: func(p *model.MonthlyPlan) *model.StatementSet { return &p.Literacy }},
	{number: 7, anchor: `ÖĞRENME\s*ÇIKT`, field: "ogrenme_ciktilari", kind: sectionOutcomes, limit: outcomeLimit},
	{number: 8, anchor: `ANAHTAR\s*KAVRAM`, field: "anahtar_kavramlar", kind: sectionConcepts},
	{number: 9, anchor: `ÖĞRENME\s*KANIT`, field: "degerlendirme", kind: sectionEvaluation},
	{number: 10, anchor: `ÖĞRENME[\-\s]*ÖĞRETME`, field: "ogrenme_ogretme_yasantilari", kind: sectionNarrative,
		text: func(p *model.MonthlyPlan) *string { return &p.Experiences }},
	{number: 11, anchor: `FARKLILAŞTIRMA`, field: "farklilastirma_zenginlestirme", kind: sectionNarrative,
		text: func(p *model.MonthlyPlan) *string { return &p.Differentiation }},
	{number: 12, anchor: `DESTEKLE`, field: "destekleme", kind: sectionNarrative,
		text: func(p *model.MonthlyPlan) *string { return &p.Support }},
	{number: 13, anchor: `AİLE`, field: "aile_toplum_katilimi", kind: sectionNarrative,
		text: func(p *model.MonthlyPlan) *string { return &p.Participation }},
}

var (
	sectionHeaders = compileSectionHeaders()
	numberedHeader = regexp.MustCompile(`(?m)^[ \t]*#{1,3}[ \t]*\*{0,2}[ \t]*\d+\.\s+`)
	areaHeader     = regexp.MustCompile(`(?i)^(.*?\S)\s+(?:alanı|ALANI)\s*:?\s*(.*)$`)
	areaSkillCode  = regexp.MustCompile(`^(\p{Lu}{2,}[0-9]+(?:\.\p{Lu}*[0-9]*)*)`)
	outcomeHeading = regexp.MustCompile(`^[^0-9:]{2,60}:$`)
	conceptMarkup  = strings.NewReplacer("*", "", "#", "", "[", "", "]", "")
)

var evaluationParts = []struct {
	header  *regexp.Regexp
	keyword string
	text    func(e *model.Evaluation) *string
}{
	{regexp.MustCompile(`(?i)[Çç]ocuk.*[Yy]önünden.*[Dd]eğerlendirme`), "Çocuk",
		func(e *model.Evaluation) *string { return &e.Children }},
	{regexp.MustCompile(`(?i)[Pp]rogram.*[Yy]önünden.*[Dd]eğerlendirme`), "Program",
		func(e *model.Evaluation) *string { return &e.Program }},
	{regexp.MustCompile(`(?i)[Öö]ğretmen.*[Yy]önünden.*[Dd]eğerlendirme`), "Öğretmen",
		func(e *model.Evaluation) *string { return &e.Teacher }},
}

func compileSectionHeaders() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(monthlySections))
	for i, rule := range monthlySections {
		out[i] = regexp.MustCompile(fmt.Sprintf(`(?im)^[ \t]*#{0,3}[ \t]*\*{0,2}[ \t]*%d\.[ \t]*%s[^\n]*`, rule.number, rule.anchor))
	}
	return out
}

// splitSections returns the body of every section found in text, keyed
// by rule index. A body runs from the end of its header line to the
// next numbered header.
func splitSections(text string) map[int]string {
	type header struct{ rule, start, end int }
	var found []header
	for i, re := range sectionHeaders {
		if loc := re.FindStringIndex(text); loc != nil {
			found = append(found, header{rule: i, start: loc[0], end: loc[1]})
		}
	}
	sort.Slice(found, func(a, b int) bool { return found[a].start < found[b].start })

	bodies := make(map[int]string, len(found))
	for i, h := range found {
		end := len(text)
		if i+1 < len(found) {
			end = found[i+1].start
		}
		if loc := numberedHeader.FindStringIndex(text[h.end:end]); loc != nil {
			end = h.end + loc[0]
		}
		bodies[h.rule] = strings.TrimSpace(text[h.end:end])
	}
	return bodies
}

// ParseMonthlyPlan recovers a monthly plan from a sectioned-text
// response. Sections that are missing or yield nothing keep their
// empty defaults and are listed in the report.
func ParseMonthlyPlan(raw, ageGroup, month string) (model.MonthlyPlan, Report) {
	plan := DefaultMonthlyPlan(ageGroup, month)
	report := Report{Stage: StageDefaults}

	bodies := splitSections(strings.ReplaceAll(raw, "\r\n", "\n"))
	if len(bodies) > 0 {
		report.Stage = StageSections
	}

	for i, rule := range monthlySections {
		body, ok := bodies[i]
		if !ok || !applySection(&plan, rule, body) {
			report.defaulted(rule.field)
		}
	}
	return plan, report
}

func applySection(plan *model.MonthlyPlan, rule sectionRule, body string) bool {
	switch rule.kind {
	case sectionAreaSkills:
		skills := parseAreaSkills(body)
		plan.AreaSkills.Reset(skills)
		return !skills.IsEmpty()
	case sectionCodes:
		lines := codeLines(CleanMarkdown(body, false), rule)
		rule.list(plan).Reset(lines...)
		return len(lines) > 0
	case sectionOutcomes:
		outcomes := parseOutcomes(body, rule.limit)
		plan.LearningOutcomes.Reset(outcomes)
		return !outcomes.IsEmpty()
	case sectionConcepts:
		plan.KeyConcepts = parseKeyConcepts(CleanMarkdown(body, false))
		return len(plan.KeyConcepts) > 0
	case sectionEvaluation:
		plan.Evaluation = parseEvaluation(CleanMarkdown(body, false))
		return plan.Evaluation != model.Evaluation{}
	default:
		*rule.text(plan) = CleanMarkdown(body, true)
		return *rule.text(plan) != ""
	}
}

// codeLines keeps lines starting with the rule's code prefix, verbatim
func codeLines(text string, rule sectionRule) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !rule.item.MatchString(line) {
			continue
		}
		key := line
		if rule.dedup != nil {
			if m := rule.dedup.FindStringSubmatch(line); m != nil {
				key = m[1]
			}
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
		if len(out) == rule.limit {
			break
		}
	}
	return out
}

// parseAreaSkills groups coded lines under "X Alanı" headers, falling
// back to a flat list of codes when the response has no headers
func parseAreaSkills(body string) *model.KeyedSet {
	lines := strings.Split(CleanMarkdown(body, false), "\n")
	out := model.NewKeyedSet()

	current := ""
	for _, line := range lines {
		if m := areaHeader.FindStringSubmatch(line); m != nil && !areaSkillCode.MatchString(line) {
			current = m[1] + " Alanı"
			line = m[2]
		}
		if current == "" || len(out.Get(current)) >= areaSkillLimit {
			continue
		}
		if skill, ok := formatAreaSkill(line); ok {
			out.Add(current, skill)
		}
	}
	if !out.IsEmpty() {
		return out
	}

	for _, line := range lines {
		if out.Total() >= flatSkillLimit {
			break
		}
		if !areaSkillCode.MatchString(line) {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			out.Add(defaultAreaKey, fields[0])
		}
	}
	return out
}

// formatAreaSkill renders "CODE. description" from a coded line
func formatAreaSkill(line string) (string, bool) {
	line = strings.TrimSpace(line)
	m := areaSkillCode.FindString(line)
	if m == "" {
		return "", false
	}
	rest := strings.TrimSpace(line[len(m):])
	rest = strings.TrimSpace(strings.TrimLeft(rest, ".:"))
	code := strings.TrimRight(m, ".")
	if rest == "" {
		return code, true
	}
	return code + ". " + rest, true
}

// parseOutcomes keeps every content line, grouping under short
// "Subject:" heading lines when the response has them
func parseOutcomes(body string, limit int) *model.KeyedSet {
	out := model.NewKeyedSet()
	current := defaultOutcomes
	for _, line := range strings.Split(CleanMarkdown(body, false), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := areaHeader.FindStringSubmatch(line); m != nil && m[2] == "" {
			current = m[1]
			continue
		}
		if outcomeHeading.MatchString(line) {
			current = strings.TrimSuffix(line, ":")
			continue
		}
		out.Add(current, line)
		if out.Total() == limit {
			break
		}
	}
	return out
}

// parseKeyConcepts splits a free list of concepts on commas, dashes and
// bullets, rejecting runaway items
func parseKeyConcepts(text string) []string {
	text = conceptMarkup.Replace(text)

	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.Contains(line, ","):
			items = append(items, limitItems(splitTrim(line, ","), conceptLineLimit)...)
		case strings.Contains(line, "-") && !strings.HasPrefix(line, "-"):
			parts := strings.Split(line, "-")
			if len(parts) == 2 && utf8.RuneCountInString(parts[0]) < dashPairMaxRunes && utf8.RuneCountInString(parts[1]) < dashPairMaxRunes {
				items = append(items, line)
			} else {
				items = append(items, limitItems(splitTrim(line, "-"), conceptDashLimit)...)
			}
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•"):
			if item := strings.TrimSpace(strings.TrimLeft(line, "-•")); item != "" {
				items = append(items, item)
			}
		default:
			items = append(items, line)
		}
	}

	items = limitItems(items, conceptLimit)
	set := model.NewStatementSet()
	for _, item := range items {
		if utf8.RuneCountInString(item) < conceptMaxRunes {
			set.Add(item)
		}
	}
	return set.Items()
}

func splitTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func limitItems(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// parseEvaluation reads the child, program and teacher sub-sections,
// keeping up to five lines each
func parseEvaluation(text string) model.Evaluation {
	var eval model.Evaluation
	collected := make([][]string, len(evaluationParts))
	current := -1

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if part := evaluationHeader(line); part >= 0 {
			current = part
			continue
		}
		if current >= 0 && len(collected[current]) < evaluationLines {
			collected[current] = append(collected[current], line)
		}
	}

	for i, part := range evaluationParts {
		*part.text(&eval) = strings.Join(collected[i], "\n")
	}
	return eval
}

func evaluationHeader(line string) int {
	for i, part := range evaluationParts {
		if part.header.MatchString(line) {
			return i
		}
	}
	for i, part := range evaluationParts {
		if strings.Contains(line, part.keyword) && strings.Contains(line, "Değerlendirme") && utf8.RuneCountInString(line) < 60 {
			return i
		}
	}
	return -1
}
