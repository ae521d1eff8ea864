package model

// DefaultNarrator voices every topic video unless the script names another
const DefaultNarrator = "Atlas"

// VideoBrief describes a topic-explanation video (konu anlatım videosu)
type VideoBrief struct {
	Subject         string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Topic           string `json:"topic" yaml:"topic"`
	Structure       string `json:"structure,omitempty" yaml:"structure,omitempty"` // e.g. "2 bölüm"
	SectionActivity string `json:"section_activity,omitempty" yaml:"section_activity,omitempty"`
	Emphasis        string `json:"emphasis,omitempty" yaml:"emphasis,omitempty"`
	Avoid           string `json:"avoid,omitempty" yaml:"avoid,omitempty"`
}

// VideoScript is a narrated video script split into numbered sections
type VideoScript struct {
	Title     string         `json:"title"`
	Subject   string         `json:"subject"`
	AgeGroup  string         `json:"age_group"`
	Duration  string         `json:"duration"`
	Character string         `json:"character"`
	Sections  []VideoSection `json:"sections"`
}

// VideoSection is one part of a script. VisualCues are the bold
// parenthesized directions embedded in the narration.
type VideoSection struct {
	Number     int             `json:"section_number"`
	Title      string          `json:"section_title"`
	Background VideoBackground `json:"background"`
	Character  string          `json:"character"`
	Text       string          `json:"text"`
	VisualCues []string        `json:"visual_cues,omitempty"`
}

// VideoBackground holds the visual and music direction of a section
type VideoBackground struct {
	Visual string `json:"visual"`
	Music  string `json:"music,omitempty"`
}
