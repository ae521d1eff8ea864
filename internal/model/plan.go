package model

// DailyPlan is the reconciled content of a daily plan (günlük plan).
// Field names follow the JSON document the model is asked to return.
type DailyPlan struct {
	AreaSkills       KeyedSet        `json:"alan_becerileri"`
	ConceptualSkills StatementSet    `json:"kavramsal_beceriler"`
	Tendencies       StatementSet    `json:"egilimler"`
	CrossProgram     CrossProgram    `json:"programlar_arasi_bilesenler"`
	LearningOutcomes KeyedSet        `json:"ogrenme_ciktilari_ve_surec_bilesenleri"`
	ContentFrame     ContentFrame    `json:"icerik_cercevesi"`
	Experiences      Experiences     `json:"ogrenme_ogretme_yasantilari"`
	Evaluation       string          `json:"degerlendirme"`
	Differentiation  Differentiation `json:"farklilastirma"`
	Participation    Participation   `json:"aile_toplum_katilimi"`
	Notes            string          `json:"notlar"`
}

// CrossProgram holds the cross-program components of a daily plan
type CrossProgram struct {
	SocialEmotional StatementSet `json:"sosyal_duygusal_ogrenme_becerileri"`
	Values          StatementSet `json:"degerler"`
	Literacy        StatementSet `json:"okuryazarlik_becerileri"`
}

// ContentFrame lists the concepts, vocabulary, materials and settings
type ContentFrame struct {
	Concepts     string `json:"kavramlar"`
	Words        string `json:"sozcukler"`
	Materials    string `json:"materyaller"`
	Environments string `json:"egitim_ogrenme_ortamlari"`
}

// Experiences holds the learning-teaching narratives of the day
type Experiences struct {
	DayStart        string `json:"gune_baslama_zamani"`
	LearningCenters string `json:"ogrenme_merkezlerinde_oyun"`
	Routines        string `json:"beslenme_toplanma_temizlik"`
	Activities      string `json:"etkinlikler"`
}

// Differentiation holds enrichment and support suggestions
type Differentiation struct {
	Enrichment string `json:"zenginlestirme"`
	Support    string `json:"destekleme"`
}

// Participation holds family and community participation suggestions
type Participation struct {
	Family    string `json:"aile_katilimi"`
	Community string `json:"toplum_katilimi"`
}

// Snapshot returns the curriculum portion of the plan
func (p *DailyPlan) Snapshot() *Snapshot {
	s := NewSnapshot()
	s.AreaSkills.Merge(&p.AreaSkills)
	s.LearningOutcomes.Merge(&p.LearningOutcomes)
	s.ConceptualSkills.AddAll(p.ConceptualSkills.items...)
	s.Tendencies.AddAll(p.Tendencies.items...)
	s.SocialEmotional.AddAll(p.CrossProgram.SocialEmotional.items...)
	s.Values.AddAll(p.CrossProgram.Values.items...)
	s.Literacy.AddAll(p.CrossProgram.Literacy.items...)
	return s
}

// SetSnapshot replaces the curriculum portion of the plan
func (p *DailyPlan) SetSnapshot(s *Snapshot) {
	p.AreaSkills.Reset(&s.AreaSkills)
	p.LearningOutcomes.Reset(&s.LearningOutcomes)
	p.ConceptualSkills.Reset(s.ConceptualSkills.items...)
	p.Tendencies.Reset(s.Tendencies.items...)
	p.CrossProgram.SocialEmotional.Reset(s.SocialEmotional.items...)
	p.CrossProgram.Values.Reset(s.Values.items...)
	p.CrossProgram.Literacy.Reset(s.Literacy.items...)
}

// MonthlyPlan is the reconciled content of a monthly plan (aylık plan)
type MonthlyPlan struct {
	Name             string       `json:"plan_adi"`
	AgeGroup         string       `json:"yas_grubu"`
	Month            string       `json:"ay"`
	Year             int          `json:"yil"`
	AreaSkills       KeyedSet     `json:"alan_becerileri"`
	ConceptualSkills StatementSet `json:"kavramsal_beceriler"`
	Tendencies       StatementSet `json:"egilimler"`
	SocialEmotional  StatementSet `json:"sosyal_duygusal_beceriler"`
	Values           StatementSet `json:"degerler"`
	Literacy         StatementSet `json:"okuryazarlik_becerileri"`
	LearningOutcomes KeyedSet     `json:"ogrenme_ciktilari"`
	KeyConcepts      []string     `json:"anahtar_kavramlar"`
	Evaluation       Evaluation   `json:"degerlendirme"`
	Experiences      string       `json:"ogrenme_ogretme_yasantilari"`
	Differentiation  string       `json:"farklilastirma_zenginlestirme"`
	Support          string       `json:"destekleme"`
	Participation    string       `json:"aile_toplum_katilimi"`
}

// Evaluation is the three-sided assessment of a monthly plan
type Evaluation struct {
	Children string `json:"cocuklar_yonunden"`
	Program  string `json:"program_yonunden"`
	Teacher  string `json:"ogretmen_yonunden"`
}

// Snapshot returns the curriculum portion of the plan
func (p *MonthlyPlan) Snapshot() *Snapshot {
	s := NewSnapshot()
	s.AreaSkills.Merge(&p.AreaSkills)
	s.LearningOutcomes.Merge(&p.LearningOutcomes)
	s.ConceptualSkills.AddAll(p.ConceptualSkills.items...)
	s.Tendencies.AddAll(p.Tendencies.items...)
	s.SocialEmotional.AddAll(p.SocialEmotional.items...)
	s.Values.AddAll(p.Values.items...)
	s.Literacy.AddAll(p.Literacy.items...)
	return s
}

// SetSnapshot replaces the curriculum portion of the plan
func (p *MonthlyPlan) SetSnapshot(s *Snapshot) {
	p.AreaSkills.Reset(&s.AreaSkills)
	p.LearningOutcomes.Reset(&s.LearningOutcomes)
	p.ConceptualSkills.Reset(s.ConceptualSkills.items...)
	p.Tendencies.Reset(s.Tendencies.items...)
	p.SocialEmotional.Reset(s.SocialEmotional.items...)
	p.Values.Reset(s.Values.items...)
	p.Literacy.Reset(s.Literacy.items...)
}
