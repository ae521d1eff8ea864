package response

import (
	"encoding/json"
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

type valueKind int

const (
	kindText valueKind = iota
	kindList
	kindKeyed
)

// dailyField binds one leaf of the daily-plan document to the plan.
// aliases are root-level names some responses use instead of the path.
type dailyField struct {
	path    []string
	aliases []string
	kind    valueKind
	text    func(p *model.DailyPlan) *string
	list    func(p *model.DailyPlan) *model.StatementSet
	keyed   func(p *model.DailyPlan) *model.KeyedSet
}

var dailyFields = []dailyField{
	{path: []string{"alan_becerileri"}, kind: kindKeyed,
		keyed: func(p *model.DailyPlan) *model.KeyedSet { return &p.AreaSkills }},
	{path: []string{"kavramsal_beceriler"}, kind: kindList,
		list: func(p *model.DailyPlan) *model.StatementSet { return &p.ConceptualSkills }},
	{path: []string{"egilimler"}, kind: kindList,
		list: func(p *model.DailyPlan) *model.StatementSet { return &p.Tendencies }},
	{path: []string{"programlar_arasi_bilesenler", "sosyal_duygusal_ogrenme_becerileri"}, aliases: []string{"sosyal_duygusal_beceriler"}, kind: kindList,
		list: func(p *model.DailyPlan) *model.StatementSet { return &p.CrossProgram.SocialEmotional }},
	{path: []string{"programlar_arasi_bilesenler", "degerler"}, aliases: []string{"degerler"}, kind: kindList,
		list: func(p *model.DailyPlan) *model.StatementSet { return &p.CrossProgram.Values }},
	{path: []string{"programlar_arasi_bilesenler", "okuryazarlik_becerileri"}, aliases: []string{"okuryazarlik_becerileri"}, kind: kindList,
		list: func(p *model.DailyPlan) *model.StatementSet { return &p.CrossProgram.Literacy }},
	{path: []string{"ogrenme_ciktilari_ve_surec_bilesenleri"}, aliases: []string{"ogrenme_ciktilari"}, kind: kindKeyed,
		keyed: func(p *model.DailyPlan) *model.KeyedSet { return &p.LearningOutcomes }},
	{path: []string{"icerik_cercevesi", "kavramlar"}, aliases: []string{"kavramlar"},
		text: func(p *model.DailyPlan) *string { return &p.ContentFrame.Concepts }},
	{path: []string{"icerik_cercevesi", "sozcukler"}, aliases: []string{"sozcukler"},
		text: func(p *model.DailyPlan) *string { return &p.ContentFrame.Words }},
	{path: []string{"icerik_cercevesi", "materyaller"}, aliases: []string{"materyaller"},
		text: func(p *model.DailyPlan) *string { return &p.ContentFrame.Materials }},
	{path: []string{"icerik_cercevesi", "egitim_ogrenme_ortamlari"}, aliases: []string{"egitim_ortamlari"},
		text: func(p *model.DailyPlan) *string { return &p.ContentFrame.Environments }},
	{path: []string{"ogrenme_ogretme_yasantilari", "gune_baslama_zamani"}, aliases: []string{"gune_baslama"},
		text: func(p *model.DailyPlan) *string { return &p.Experiences.DayStart }},
	{path: []string{"ogrenme_ogretme_yasantilari", "ogrenme_merkezlerinde_oyun"}, aliases: []string{"ogrenme_merkezleri"},
		text: func(p *model.DailyPlan) *string { return &p.Experiences.LearningCenters }},
	{path: []string{"ogrenme_ogretme_yasantilari", "beslenme_toplanma_temizlik"}, aliases: []string{"beslenme_toplanma"},
		text: func(p *model.DailyPlan) *string { return &p.Experiences.Routines }},
	{path: []string{"ogrenme_ogretme_yasantilari", "etkinlikler"}, aliases: []string{"etkinlikler"},
		text: func(p *model.DailyPlan) *string { return &p.Experiences.Activities }},
	{path: []string{"degerlendirme"},
		text: func(p *model.DailyPlan) *string { return &p.Evaluation }},
	{path: []string{"farklilastirma", "zenginlestirme"}, aliases: []string{"zenginlestirme"},
		text: func(p *model.DailyPlan) *string { return &p.Differentiation.Enrichment }},
	{path: []string{"farklilastirma", "destekleme"}, aliases: []string{"destekleme"},
		text: func(p *model.DailyPlan) *string { return &p.Differentiation.Support }},
	{path: []string{"aile_toplum_katilimi", "aile_katilimi"}, aliases: []string{"aile_katilimi"},
		text: func(p *model.DailyPlan) *string { return &p.Participation.Family }},
	{path: []string{"aile_toplum_katilimi", "toplum_katilimi"}, aliases: []string{"toplum_katilimi"},
		text: func(p *model.DailyPlan) *string { return &p.Participation.Community }},
	{path: []string{"notlar"},
		text: func(p *model.DailyPlan) *string { return &p.Notes }},
}

// dailyTopLevel lists every root member name the daily schema knows
func dailyTopLevel() []string {
	seen := model.NewStatementSet()
	for _, f := range dailyFields {
		seen.Add(f.path[0])
		seen.AddAll(f.aliases...)
	}
	return seen.Items()
}

// ParseDailyPlan recovers a daily plan from a JSON-mode response. Every
// field is populated: values that cannot be recovered come from
// DefaultDailyPlan and are listed in the report.
func ParseDailyPlan(raw string) (model.DailyPlan, Report) {
	plan := DefaultDailyPlan()
	doc := Repair(raw, dailyTopLevel()...)

	for _, f := range dailyFields {
		if !applyDailyField(&plan, doc, f) {
			doc.Report.defaulted(strings.Join(f.path, "."))
		}
	}
	return plan, doc.Report
}

func applyDailyField(plan *model.DailyPlan, doc *Document, f dailyField) bool {
	candidates := []json.RawMessage{}
	if v, ok := doc.Lookup(f.path...); ok {
		candidates = append(candidates, v)
	}
	for _, alias := range f.aliases {
		if v, ok := doc.Fields[alias]; ok {
			candidates = append(candidates, v)
		}
	}

	for _, raw := range candidates {
		switch f.kind {
		case kindKeyed:
			if keyed, ok := decodeKeyed(raw); ok {
				f.keyed(plan).Reset(keyed)
				return true
			}
		case kindList:
			if items, ok := decodeStrings(raw); ok {
				f.list(plan).Reset(items...)
				return true
			}
		default:
			if text, ok := decodeText(raw); ok && text != "" {
				*f.text(plan) = text
				return true
			}
		}
	}
	return false
}
