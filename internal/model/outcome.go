package model

import "fmt"

// LearningOutcome is one imported curriculum record (kazanım). The core
// only reads it.
type LearningOutcome struct {
	ID               int    `json:"id,omitempty" yaml:"id,omitempty"`
	AgeGroup         string `json:"yas_grubu" yaml:"yas_grubu"`
	Subject          string `json:"ders" yaml:"ders"`
	AreaSkill        string `json:"alan_becerileri" yaml:"alan_becerileri"`     // Primary skill statement
	Outcome          string `json:"ogrenme_ciktilari" yaml:"ogrenme_ciktilari"` // Primary outcome statement
	SubOutcome       string `json:"alt_ogrenme_ciktilari,omitempty" yaml:"alt_ogrenme_ciktilari,omitempty"`
	IntegratedSkills string `json:"butunlesik_beceriler,omitempty" yaml:"butunlesik_beceriler,omitempty"` // Comma-separated coded tokens
	ProcessComponent string `json:"surec_bilesenleri,omitempty" yaml:"surec_bilesenleri,omitempty"`       // Process-component code
}

// Summary renders the one-line form stored alongside generated activities
func (o LearningOutcome) Summary() string {
	return fmt.Sprintf("%s - %s: %s", o.AgeGroup, o.Subject, o.Outcome)
}
