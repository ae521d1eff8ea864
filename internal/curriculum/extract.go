package curriculum

import (
	"fmt"
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

// Extract builds a snapshot from outcomes. Statements keep their order
// of first appearance and duplicates are dropped per bucket.
func Extract(outcomes []model.LearningOutcome) *model.Snapshot {
	snap := model.NewSnapshot()
	for _, o := range outcomes {
		ExtractInto(snap, o)
	}
	return snap
}

// ExtractInto adds the curriculum of one outcome to snap
func ExtractInto(snap *model.Snapshot, o model.LearningOutcome) {
	subject := strings.TrimSpace(o.Subject)

	snap.Add(model.CategoryAreaSkill, subject, o.AreaSkill)
	snap.Add(model.CategoryLearningOutcome, subject, o.Outcome)
	if sub := SubOutcomeStatement(o); sub != "" {
		snap.Add(model.CategoryLearningOutcome, subject, sub)
	}

	for _, token := range SplitIntegratedSkills(o.IntegratedSkills) {
		snap.Add(Classify(token), subject, token)
	}

	code := strings.TrimSpace(o.ProcessComponent)
	if code != "" && Classify(code) == model.CategorySocialEmotional {
		snap.Add(model.CategorySocialEmotional, subject, code)
	}
}

// SubOutcomeStatement formats the sub-outcome of o as "{code}. {text}",
// where code is the process component without the subject's area prefix.
// It returns the bare text when no process component is set.
func SubOutcomeStatement(o model.LearningOutcome) string {
	sub := strings.TrimSpace(o.SubOutcome)
	if sub == "" {
		return ""
	}
	code := strings.TrimSpace(o.ProcessComponent)
	if code == "" {
		return sub
	}
	code = StripRedundantPrefix(code, AreaCode(o.Subject))
	return fmt.Sprintf("%s. %s", code, sub)
}

// SplitIntegratedSkills splits a comma-separated token list, dropping blanks
func SplitIntegratedSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}
