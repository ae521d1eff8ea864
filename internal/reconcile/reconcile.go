// Package reconcile combines parsed model output, extracted curriculum
// and the teacher's own selections into the final plan content.
package reconcile

import (
	"strings"

	"github.com/ppiankov/maarifplan/internal/curriculum"
	"github.com/ppiankov/maarifplan/internal/model"
	"github.com/ppiankov/maarifplan/internal/response"
)

// Source names where a reconciled category came from
type Source string

const (
	SourceOverride  Source = "override"
	SourceParsed    Source = "parsed"
	SourceExtracted Source = "extracted"
	SourceEmpty     Source = "empty"
)

// Sources records the winning source of every category
type Sources map[model.Category]Source

// Snapshot applies the precedence rule to every category independently:
// a non-empty override replaces everything else, then non-empty parsed
// content, then extracted content.
func Snapshot(parsed, extracted, overrides *model.Snapshot) *model.Snapshot {
	out, _ := resolve(parsed, extracted, overrides)
	return out
}

// Trace reports which source Snapshot would pick for each category
func Trace(parsed, extracted, overrides *model.Snapshot) Sources {
	_, sources := resolve(parsed, extracted, overrides)
	return sources
}

func resolve(parsed, extracted, overrides *model.Snapshot) (*model.Snapshot, Sources) {
	out := model.NewSnapshot()
	sources := make(Sources, len(model.Categories()))
	for _, c := range model.Categories() {
		switch {
		case overrides.Has(c):
			out.CopyCategory(c, overrides)
			sources[c] = SourceOverride
		case parsed.Has(c):
			out.CopyCategory(c, parsed)
			sources[c] = SourceParsed
		case extracted.Has(c):
			out.CopyCategory(c, extracted)
			sources[c] = SourceExtracted
		default:
			sources[c] = SourceEmpty
		}
	}
	return out, sources
}

// narrative picks the parsed text unless it is blank or a diagnostic
// placeholder, then the caller's default. A placeholder is kept only
// when the caller has no default.
func narrative(parsed, fallback string) string {
	if strings.TrimSpace(parsed) != "" && !response.IsPlaceholder(parsed) {
		return parsed
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return parsed
}

// DailyOptions carries the caller-supplied fallbacks for a daily plan
type DailyOptions struct {
	// Defaults supplies narrative text; its curriculum fields are ignored
	Defaults model.DailyPlan

	// Activities have their materials merged into the plan's materials
	Activities []model.Activity
}

var dailyNarratives = []func(p *model.DailyPlan) *string{
	func(p *model.DailyPlan) *string { return &p.ContentFrame.Concepts },
	func(p *model.DailyPlan) *string { return &p.ContentFrame.Words },
	func(p *model.DailyPlan) *string { return &p.ContentFrame.Materials },
	func(p *model.DailyPlan) *string { return &p.ContentFrame.Environments },
	func(p *model.DailyPlan) *string { return &p.Experiences.DayStart },
	func(p *model.DailyPlan) *string { return &p.Experiences.LearningCenters },
	func(p *model.DailyPlan) *string { return &p.Experiences.Routines },
	func(p *model.DailyPlan) *string { return &p.Experiences.Activities },
	func(p *model.DailyPlan) *string { return &p.Evaluation },
	func(p *model.DailyPlan) *string { return &p.Differentiation.Enrichment },
	func(p *model.DailyPlan) *string { return &p.Differentiation.Support },
	func(p *model.DailyPlan) *string { return &p.Participation.Family },
	func(p *model.DailyPlan) *string { return &p.Participation.Community },
	func(p *model.DailyPlan) *string { return &p.Notes },
}

// Daily reconciles a parsed daily plan
func Daily(parsed model.DailyPlan, extracted, overrides *model.Snapshot, opts DailyOptions) model.DailyPlan {
	var out model.DailyPlan
	out.SetSnapshot(Snapshot(parsed.Snapshot(), extracted, overrides))

	for _, field := range dailyNarratives {
		*field(&out) = narrative(*field(&parsed), *field(&opts.Defaults))
	}

	if materials := curriculum.ActivityMaterials(opts.Activities); materials != "" {
		out.ContentFrame.Materials = curriculum.MergeMaterials(out.ContentFrame.Materials, materials)
	}
	return out
}

// MonthlyOptions carries the caller-supplied fallbacks for a monthly plan
type MonthlyOptions struct {
	Defaults model.MonthlyPlan
}

var monthlyNarratives = []func(p *model.MonthlyPlan) *string{
	func(p *model.MonthlyPlan) *string { return &p.Evaluation.Children },
	func(p *model.MonthlyPlan) *string { return &p.Evaluation.Program },
	func(p *model.MonthlyPlan) *string { return &p.Evaluation.Teacher },
	func(p *model.MonthlyPlan) *string { return &p.Experiences },
	func(p *model.MonthlyPlan) *string { return &p.Differentiation },
	func(p *model.MonthlyPlan) *string { return &p.Support },
	func(p *model.MonthlyPlan) *string { return &p.Participation },
}

// Monthly reconciles a parsed monthly plan. Identifying fields are
// taken from the parsed plan.
func Monthly(parsed model.MonthlyPlan, extracted, overrides *model.Snapshot, opts MonthlyOptions) model.MonthlyPlan {
	out := model.MonthlyPlan{
		Name:     parsed.Name,
		AgeGroup: parsed.AgeGroup,
		Month:    parsed.Month,
		Year:     parsed.Year,
	}
	out.SetSnapshot(Snapshot(parsed.Snapshot(), extracted, overrides))

	for _, field := range monthlyNarratives {
		*field(&out) = narrative(*field(&parsed), *field(&opts.Defaults))
	}

	switch {
	case len(parsed.KeyConcepts) > 0:
		out.KeyConcepts = append([]string(nil), parsed.KeyConcepts...)
	case len(opts.Defaults.KeyConcepts) > 0:
		out.KeyConcepts = append([]string(nil), opts.Defaults.KeyConcepts...)
	default:
		out.KeyConcepts = []string{}
	}
	return out
}

// Activity stores the reconciled curriculum on a generated activity.
// The activity's outcomes are the extraction source.
func Activity(act model.Activity, overrides *model.Snapshot) model.Activity {
	extracted := curriculum.Extract(act.Outcomes)
	act.Curriculum = Snapshot(nil, extracted, overrides)
	return act
}
