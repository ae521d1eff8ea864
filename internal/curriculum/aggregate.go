package curriculum

import (
	"fmt"
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

// Aggregate merges per-activity snapshots into one. Entry i of fallback
// holds the raw outcomes of activity i; they are only extracted when
// snapshots[i] is nil or empty. fallback may be shorter than snapshots.
func Aggregate(snapshots []*model.Snapshot, fallback [][]model.LearningOutcome) *model.Snapshot {
	merged := model.NewSnapshot()
	for i, snap := range snapshots {
		if !snap.IsEmpty() {
			merged.Merge(snap)
			continue
		}
		if i < len(fallback) {
			merged.Merge(Extract(fallback[i]))
		}
	}
	return merged
}

// AggregateActivities merges the saved curriculum of each activity,
// re-deriving it from the activity's outcomes when none was saved
func AggregateActivities(activities []model.Activity) *model.Snapshot {
	snapshots := make([]*model.Snapshot, len(activities))
	fallback := make([][]model.LearningOutcome, len(activities))
	for i := range activities {
		snapshots[i] = activities[i].Curriculum
		fallback[i] = activities[i].Outcomes
	}
	return Aggregate(snapshots, fallback)
}

// MergeMaterials joins newline-separated material lists, trimming each
// line and dropping blanks and repeats
func MergeMaterials(lists ...string) string {
	set := model.NewStatementSet()
	for _, list := range lists {
		for _, line := range strings.Split(list, "\n") {
			set.Add(strings.TrimSpace(line))
		}
	}
	return strings.Join(set.Items(), "\n")
}

// ActivityMaterials merges the materials of every activity
func ActivityMaterials(activities []model.Activity) string {
	lists := make([]string, 0, len(activities))
	for _, a := range activities {
		lists = append(lists, a.Materials)
	}
	return MergeMaterials(lists...)
}

// FormatActivities renders the activities narrative of a daily plan
func FormatActivities(activities []model.Activity) string {
	blocks := make([]string, 0, len(activities))
	for i, a := range activities {
		var b strings.Builder
		fmt.Fprintf(&b, "ETKİNLİK %d: %s\n", i+1, a.Name)
		fmt.Fprintf(&b, "Alan: %s\n", a.Area)
		fmt.Fprintf(&b, "Süre: %d dakika\n\n", a.Duration)
		b.WriteString(a.Process)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
