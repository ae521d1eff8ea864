package model

// Snapshot is the categorized, de-duplicated curriculum of one or more
// learning outcomes. Area skills and learning outcomes are grouped by
// subject; the remaining categories are flat code lists.
type Snapshot struct {
	AreaSkills       KeyedSet     `json:"alan_becerileri" yaml:"alan_becerileri"`
	LearningOutcomes KeyedSet     `json:"ogrenme_ciktilari" yaml:"ogrenme_ciktilari"`
	ConceptualSkills StatementSet `json:"kavramsal_beceriler" yaml:"kavramsal_beceriler"`
	Tendencies       StatementSet `json:"egilimler" yaml:"egilimler"`
	SocialEmotional  StatementSet `json:"sosyal_duygusal" yaml:"sosyal_duygusal"`
	Values           StatementSet `json:"degerler" yaml:"degerler"`
	Literacy         StatementSet `json:"okuryazarlik" yaml:"okuryazarlik"`
}

// NewSnapshot returns an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Keyed returns the subject-keyed bucket for c, or nil for flat categories
func (s *Snapshot) Keyed(c Category) *KeyedSet {
	switch c {
	case CategoryAreaSkill:
		return &s.AreaSkills
	case CategoryLearningOutcome:
		return &s.LearningOutcomes
	}
	return nil
}

// Flat returns the flat bucket for c, or nil for keyed categories
func (s *Snapshot) Flat(c Category) *StatementSet {
	switch c {
	case CategoryConceptualSkill:
		return &s.ConceptualSkills
	case CategoryTendency:
		return &s.Tendencies
	case CategorySocialEmotional:
		return &s.SocialEmotional
	case CategoryValue:
		return &s.Values
	case CategoryLiteracy:
		return &s.Literacy
	}
	return nil
}

// Add inserts statement into the bucket for c. subject is only used
// by keyed categories.
func (s *Snapshot) Add(c Category, subject, statement string) bool {
	if keyed := s.Keyed(c); keyed != nil {
		return keyed.Add(subject, statement)
	}
	if flat := s.Flat(c); flat != nil {
		return flat.Add(statement)
	}
	return false
}

// Has reports whether the bucket for c holds at least one statement
func (s *Snapshot) Has(c Category) bool {
	if s == nil {
		return false
	}
	if keyed := s.Keyed(c); keyed != nil {
		return !keyed.IsEmpty()
	}
	if flat := s.Flat(c); flat != nil {
		return !flat.IsEmpty()
	}
	return false
}

// IsEmpty reports whether every bucket is empty
func (s *Snapshot) IsEmpty() bool {
	if s == nil {
		return true
	}
	for _, c := range Categories() {
		if s.Has(c) {
			return false
		}
	}
	return true
}

// CopyCategory replaces the bucket for c with a copy of the same bucket in from
func (s *Snapshot) CopyCategory(c Category, from *Snapshot) {
	if keyed := s.Keyed(c); keyed != nil {
		if from == nil {
			keyed.Reset(nil)
			return
		}
		keyed.Reset(from.Keyed(c))
		return
	}
	if flat := s.Flat(c); flat != nil {
		if from == nil {
			flat.Reset()
			return
		}
		flat.Reset(from.Flat(c).items...)
	}
}

// Merge appends every bucket of other, keeping first-appearance order
func (s *Snapshot) Merge(other *Snapshot) {
	if other == nil {
		return
	}
	s.AreaSkills.Merge(&other.AreaSkills)
	s.LearningOutcomes.Merge(&other.LearningOutcomes)
	for _, c := range FlatCategories() {
		s.Flat(c).AddAll(other.Flat(c).items...)
	}
}

// Clone returns an independent copy
func (s *Snapshot) Clone() *Snapshot {
	out := NewSnapshot()
	out.Merge(s)
	return out
}

// Equal compares every bucket including order
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s.IsEmpty() && other.IsEmpty()
	}
	if !s.AreaSkills.Equal(&other.AreaSkills) || !s.LearningOutcomes.Equal(&other.LearningOutcomes) {
		return false
	}
	for _, c := range FlatCategories() {
		if !s.Flat(c).Equal(other.Flat(c)) {
			return false
		}
	}
	return true
}

// Count returns the number of statements in the bucket for c
func (s *Snapshot) Count(c Category) int {
	if keyed := s.Keyed(c); keyed != nil {
		return keyed.Total()
	}
	if flat := s.Flat(c); flat != nil {
		return flat.Len()
	}
	return 0
}
