// Package prompt renders the instructions sent to the model for each
// generation kind. Rendering is pure: the same context always yields
// the same prompt.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

// Kind selects the prompt template and the response mode
type Kind string

const (
	KindActivity Kind = "activity"
	KindDaily    Kind = "daily"
	KindMonthly  Kind = "monthly"
	KindVideo    Kind = "video"
)

// JSONMode reports whether responses of this kind are requested as JSON.
// Monthly plans come back as numbered Markdown sections.
func (k Kind) JSONMode() bool {
	return k != KindMonthly
}

// Context carries everything a prompt may reference
type Context struct {
	Kind     Kind
	AgeGroup string
	Period   string // Month name for monthly plans
	PlanName string

	Outcomes []model.LearningOutcome

	// Snapshot is the curriculum extracted from the outcomes or
	// aggregated from the activities
	Snapshot *model.Snapshot

	// Overrides are the teacher's explicit selections. They are
	// rendered as mandatory.
	Overrides *model.Snapshot

	CustomInstructions string
	Activities         []model.Activity

	// Video is the brief of a topic video
	Video *model.VideoBrief
}

// Build renders the prompt for ctx.Kind
func Build(ctx Context) string {
	switch ctx.Kind {
	case KindDaily:
		return buildDaily(ctx)
	case KindMonthly:
		return buildMonthly(ctx)
	case KindVideo:
		return buildVideo(ctx)
	default:
		return buildActivity(ctx)
	}
}

// DefaultDuration is the activity length in minutes when the custom
// instructions name none
const DefaultDuration = 30

var durationPattern = regexp.MustCompile(`(\d+)\s*dakika`)

// ExtractDuration reads "<n> dakika" from custom instructions
func ExtractDuration(custom string) int {
	m := durationPattern.FindStringSubmatch(custom)
	if m == nil {
		return DefaultDuration
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return DefaultDuration
	}
	return n
}

// Split is the recommended length of each activity stage in minutes
type Split struct {
	Intro       [2]int
	Development [2]int
	Reflection  [2]int
	Closing     int
}

// DurationSplit divides an activity into intro 20-25%, development
// 50-60%, reflection 15-20% and closing 10%
func DurationSplit(minutes int) Split {
	pct := func(p float64) int { return int(math.Round(float64(minutes) * p)) }
	return Split{
		Intro:       [2]int{pct(0.20), pct(0.25)},
		Development: [2]int{pct(0.50), pct(0.60)},
		Reflection:  [2]int{pct(0.15), pct(0.20)},
		Closing:     pct(0.10),
	}
}

// jsonText encodes v without HTML escaping so Turkish text and symbols
// reach the model unchanged
func jsonText(v interface{}, indent bool) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimRight(buf.String(), "\n")
}

// subjects lists the distinct subjects of the outcomes, sorted
func subjects(outcomes []model.LearningOutcome) []string {
	set := model.NewStatementSet()
	for _, o := range outcomes {
		set.Add(o.Subject)
	}
	out := set.Items()
	sort.Strings(out)
	return out
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Yok"
	}
	return s
}

// overrideLines renders the teacher's selections as "Label: a, b" lines
func overrideLines(overrides *model.Snapshot) []string {
	if overrides.IsEmpty() {
		return nil
	}
	var lines []string
	for _, c := range model.FlatCategories() {
		if items := overrides.Flat(c).Items(); len(items) > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", c.Label(), strings.Join(items, ", ")))
		}
	}
	for _, c := range []model.Category{model.CategoryAreaSkill, model.CategoryLearningOutcome} {
		keyed := overrides.Keyed(c)
		for _, key := range keyed.Keys() {
			lines = append(lines, fmt.Sprintf("%s (%s): %s", c.Label(), key, strings.Join(keyed.Get(key), ", ")))
		}
	}
	return lines
}

// overrideItems lists the selections for c. Subject-keyed selections
// are written as "SUBJECT: statement".
func overrideItems(overrides *model.Snapshot, c model.Category) []string {
	if overrides == nil || c == "" {
		return nil
	}
	keyed := overrides.Keyed(c)
	if keyed == nil {
		if flat := overrides.Flat(c); flat != nil {
			return flat.Items()
		}
		return nil
	}
	var items []string
	for _, key := range keyed.Keys() {
		for _, item := range keyed.Get(key) {
			if key == "" {
				items = append(items, item)
				continue
			}
			items = append(items, key+": "+item)
		}
	}
	return items
}
