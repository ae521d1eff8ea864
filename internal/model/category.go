package model

// Category identifies one bucket of a curriculum snapshot
type Category string

const (
	CategoryAreaSkill       Category = "alan_becerileri"     // Area skills, keyed by subject
	CategoryLearningOutcome Category = "ogrenme_ciktilari"   // Learning outcomes, keyed by subject
	CategoryConceptualSkill Category = "kavramsal_beceriler" // KB codes
	CategoryTendency        Category = "egilimler"           // E codes
	CategorySocialEmotional Category = "sosyal_duygusal"     // SDB codes
	CategoryValue           Category = "degerler"            // D codes
	CategoryLiteracy        Category = "okuryazarlik"        // OB codes
)

var categoryLabels = map[Category]string{
	CategoryAreaSkill:       "Alan Becerileri",
	CategoryLearningOutcome: "Öğrenme Çıktıları",
	CategoryConceptualSkill: "Kavramsal Beceriler",
	CategoryTendency:        "Eğilimler",
	CategorySocialEmotional: "Sosyal-Duygusal Öğrenme Becerileri",
	CategoryValue:           "Değerler",
	CategoryLiteracy:        "Okuryazarlık Becerileri",
}

// Categories returns every snapshot category in presentation order
func Categories() []Category {
	return []Category{
		CategoryAreaSkill,
		CategoryConceptualSkill,
		CategoryTendency,
		CategorySocialEmotional,
		CategoryValue,
		CategoryLiteracy,
		CategoryLearningOutcome,
	}
}

// FlatCategories returns the categories stored as a single ordered set
func FlatCategories() []Category {
	return []Category{
		CategoryConceptualSkill,
		CategoryTendency,
		CategorySocialEmotional,
		CategoryValue,
		CategoryLiteracy,
	}
}

// IsKeyed reports whether the category groups statements by subject
func (c Category) IsKeyed() bool {
	return c == CategoryAreaSkill || c == CategoryLearningOutcome
}

// Label returns the Turkish heading used in prompts and documents
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
