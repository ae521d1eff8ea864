package model

// Activity is a generated classroom activity in its stored (flat) form
type Activity struct {
	ID                 int    `json:"id,omitempty" yaml:"id,omitempty"`
	Name               string `json:"etkinlik_adi" yaml:"etkinlik_adi"`
	Area               string `json:"alan_adi" yaml:"alan_adi"`
	AgeGroup           string `json:"yas_grubu" yaml:"yas_grubu"`
	Duration           int    `json:"sure" yaml:"sure"` // minutes
	Location           string `json:"uygulama_yeri" yaml:"uygulama_yeri"`
	Goals              string `json:"etkinlik_amaci" yaml:"etkinlik_amaci,omitempty"`
	Materials          string `json:"materyaller" yaml:"materyaller,omitempty"`
	Process            string `json:"uygulama_sureci" yaml:"uygulama_sureci,omitempty"`
	Adaptation         string `json:"uyarlama" yaml:"uyarlama,omitempty"`
	Differentiation    string `json:"farklilastirma_kapsayicilik" yaml:"farklilastirma_kapsayicilik,omitempty"`
	EvaluationProgram  string `json:"degerlendirme_program" yaml:"degerlendirme_program,omitempty"`
	EvaluationSkills   string `json:"degerlendirme_beceriler" yaml:"degerlendirme_beceriler,omitempty"`
	EvaluationChildren string `json:"degerlendirme_ogrenciler" yaml:"degerlendirme_ogrenciler,omitempty"`

	OutcomeIDs   []int             `json:"kazanim_idleri,omitempty" yaml:"kazanim_idleri,omitempty"`
	OutcomeTexts []string          `json:"kazanim_metinleri,omitempty" yaml:"kazanim_metinleri,omitempty"`
	Outcomes     []LearningOutcome `json:"kazanimlar,omitempty" yaml:"kazanimlar,omitempty"` // Raw records for re-derivation

	// Curriculum is the reconciled snapshot saved with the activity.
	// Nil when the activity predates curriculum snapshots.
	Curriculum *Snapshot `json:"curriculum_data,omitempty" yaml:"curriculum_data,omitempty"`

	RawJSON string `json:"json_data,omitempty" yaml:"-"`
}
