package curriculum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/maarifplan/internal/model"
)

func sampleOutcomes() []model.LearningOutcome {
	return []model.LearningOutcome{
		{
			ID:               1,
			AgeGroup:         "60-72 ay",
			Subject:          "TÜRKÇE",
			AreaSkill:        "TAB1. Dinleme",
			Outcome:          "TADB.1. Dinleyeceklerini/izleyeceklerini yönetebilme",
			SubOutcome:       "Dinleyeceği materyali seçer.",
			ProcessComponent: "TAB1.1.SB2",
			IntegratedSkills: "KB2.1. Saymak, E1.1. Merak, SDB2.1.SB1. İletişim, D5.2. Saygı, OB1. Bilgi okuryazarlığı, TAB2. Konuşma",
		},
		{
			ID:               2,
			AgeGroup:         "60-72 ay",
			Subject:          "MATEMATİK",
			AreaSkill:        "MAB1. Sayma",
			Outcome:          "MAB.1. Nesneleri sayabilme",
			IntegratedSkills: "KB2.1. Saymak, ,  E2.1. Sebat",
		},
		{
			ID:        3,
			AgeGroup:  "60-72 ay",
			Subject:   "MATEMATİK",
			AreaSkill: "MAB1. Sayma",
			Outcome:   "MAB.1. Nesneleri sayabilme",
		},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		token string
		want  model.Category
	}{
		{"KB2.1. Saymak", model.CategoryConceptualSkill},
		{"E1.1. Merak", model.CategoryTendency},
		{"SDB2.1.SB1 İletişim", model.CategorySocialEmotional},
		{"D5.2 Saygı", model.CategoryValue},
		{"OB1. Bilgi", model.CategoryLiteracy},
		{"  - D3. Sorumluluk", model.CategoryValue},
		{"DB1. Something", model.CategoryAreaSkill},
		{"TAB2. Konuşma", model.CategoryAreaSkill},
		{"UNKNOWNTOKEN", model.CategoryAreaSkill},
		{"", model.CategoryAreaSkill},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.token))
		})
	}
}

func TestAreaCode(t *testing.T) {
	assert.Equal(t, "MAB", AreaCode("MATEMATİK"))
	assert.Equal(t, "MAB", AreaCode("Matematik"))
	assert.Equal(t, "TAB", AreaCode("türkçe"))
	assert.Equal(t, "HSAB", AreaCode("Hareket ve Sağlık"))
	assert.Equal(t, "FAB", AreaCode("Fen ve Ekoloji"))
	assert.Equal(t, "MÜZAB", AreaCode("MÜZİK"))
	assert.Equal(t, DefaultAreaCode, AreaCode("Drama"))
}

func TestStripRedundantPrefix(t *testing.T) {
	assert.Equal(t, "1.1.SB2", StripRedundantPrefix("TAB1.1.SB2", "TAB"))
	assert.Equal(t, "1.SB2", StripRedundantPrefix("TAB.1.SB2", "TAB"))
	assert.Equal(t, "MAB1.SB2", StripRedundantPrefix("MAB1.SB2", "TAB"))
	assert.Equal(t, "TAB1", StripRedundantPrefix("TAB1", ""))
	assert.Equal(t, "", StripRedundantPrefix("TAB", "TAB"))
}

func TestExtract(t *testing.T) {
	snap := Extract(sampleOutcomes())

	assert.Equal(t, []string{"TÜRKÇE", "MATEMATİK"}, snap.AreaSkills.Keys())
	assert.Equal(t, []string{"TAB1. Dinleme", "TAB2. Konuşma"}, snap.AreaSkills.Get("TÜRKÇE"))
	assert.Equal(t, []string{"MAB1. Sayma"}, snap.AreaSkills.Get("MATEMATİK"))

	assert.Equal(t, []string{
		"TADB.1. Dinleyeceklerini/izleyeceklerini yönetebilme",
		"1.1.SB2. Dinleyeceği materyali seçer.",
	}, snap.LearningOutcomes.Get("TÜRKÇE"))

	assert.Equal(t, []string{"KB2.1. Saymak"}, snap.ConceptualSkills.Items())
	assert.Equal(t, []string{"E1.1. Merak", "E2.1. Sebat"}, snap.Tendencies.Items())
	assert.Equal(t, []string{"SDB2.1.SB1. İletişim"}, snap.SocialEmotional.Items())
	assert.Equal(t, []string{"D5.2. Saygı"}, snap.Values.Items())
	assert.Equal(t, []string{"OB1. Bilgi okuryazarlığı"}, snap.Literacy.Items())
}

func TestExtract_SubOutcomeWithoutProcessComponent(t *testing.T) {
	snap := Extract([]model.LearningOutcome{{
		Subject:    "SANAT",
		AreaSkill:  "SNAB1. Sanatsal ifade",
		Outcome:    "SNAB.1. Boyama",
		SubOutcome: "Renkleri kullanır.",
	}})

	assert.Equal(t, []string{"SNAB.1. Boyama", "Renkleri kullanır."}, snap.LearningOutcomes.Get("SANAT"))
}

func TestExtract_SocialEmotionalProcessComponent(t *testing.T) {
	snap := Extract([]model.LearningOutcome{{
		Subject:          "SOSYAL",
		Outcome:          "Arkadaşlarıyla oynar",
		ProcessComponent: "SDB1.2.SB1",
	}})

	assert.Equal(t, []string{"SDB1.2.SB1"}, snap.SocialEmotional.Items())
}

func TestExtract_EmptyInput(t *testing.T) {
	assert.True(t, Extract(nil).IsEmpty())
	assert.True(t, Extract([]model.LearningOutcome{{Subject: "TÜRKÇE"}}).IsEmpty())
}

func TestExtract_Deterministic(t *testing.T) {
	first, err := json.Marshal(Extract(sampleOutcomes()))
	require.NoError(t, err)
	second, err := json.Marshal(Extract(sampleOutcomes()))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestExtract_Dedup(t *testing.T) {
	snap := Extract(sampleOutcomes())

	for _, c := range model.Categories() {
		if keyed := snap.Keyed(c); keyed != nil {
			for _, key := range keyed.Keys() {
				assertUnique(t, keyed.Get(key))
			}
			continue
		}
		assertUnique(t, snap.Flat(c).Items())
	}
}

func assertUnique(t *testing.T, items []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, item := range items {
		assert.False(t, seen[item], "duplicate statement %q", item)
		seen[item] = true
	}
}

func TestAggregate_SelfMergeIsIdempotent(t *testing.T) {
	a := Extract(sampleOutcomes())

	merged := Aggregate([]*model.Snapshot{a, a}, nil)

	assert.True(t, merged.Equal(a))
}

func TestAggregate_PrefersSavedSnapshot(t *testing.T) {
	saved := model.NewSnapshot()
	saved.Add(model.CategoryValue, "", "D9. Saved")

	outcomes := [][]model.LearningOutcome{
		{{Subject: "TÜRKÇE", IntegratedSkills: "D1. Raw"}},
		{{Subject: "TÜRKÇE", IntegratedSkills: "D2. Raw"}},
	}

	merged := Aggregate([]*model.Snapshot{saved, nil}, outcomes)

	assert.Equal(t, []string{"D9. Saved", "D2. Raw"}, merged.Values.Items())
}

func TestAggregateActivities(t *testing.T) {
	saved := model.NewSnapshot()
	saved.Add(model.CategoryTendency, "", "E1.1. Merak")

	activities := []model.Activity{
		{Name: "A", Curriculum: saved},
		{Name: "B", Outcomes: sampleOutcomes()[1:2]},
		{Name: "C", Curriculum: model.NewSnapshot()},
	}

	merged := AggregateActivities(activities)

	assert.Equal(t, []string{"E1.1. Merak", "E2.1. Sebat"}, merged.Tendencies.Items())
	assert.Equal(t, []string{"MAB1. Sayma"}, merged.AreaSkills.Get("MATEMATİK"))
}

func TestMergeMaterials(t *testing.T) {
	got := MergeMaterials("Kağıt\n Boya \n", "", "Boya\nMakas")
	assert.Equal(t, "Kağıt\nBoya\nMakas", got)
}

func TestFormatActivities(t *testing.T) {
	activities := []model.Activity{
		{Name: "Sayı Avı", Area: "Matematik", Duration: 30, Process: "GİRİŞ"},
		{Name: "Renkler", Area: "Sanat", Duration: 20},
	}

	want := "ETKİNLİK 1: Sayı Avı\nAlan: Matematik\nSüre: 30 dakika\n\nGİRİŞ" +
		"\n\n" +
		"ETKİNLİK 2: Renkler\nAlan: Sanat\nSüre: 20 dakika\n\n"

	assert.Equal(t, want, FormatActivities(activities))
	assert.Equal(t, "", FormatActivities(nil))
}
