package response

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ppiankov/maarifplan/internal/model"
)

var activityFields = []string{
	"etkinlik_adi", "alan_adi", "yas_grubu", "sure", "uygulama_yeri",
	"amaclar", "materyaller", "uygulama_sureci", "uyarlama",
	"farklilastirma_ve_kapsayicilik", "degerlendirme",
}

var adaptationTitles = map[string]string{
	"gorme_yetersizligi":             "Görme Yetersizliği",
	"isitme_yetersizligi":            "İşitme Yetersizliği",
	"fiziksel_motor_sinirlilik":      "Fiziksel Motor Sınırlılık",
	"dikkat_eksikligi_hiperaktivite": "Dikkat Eksikliği ve Hiperaktivite",
	"otizm_spektrum_bozuklugu":       "Otizm Spektrum Bozukluğu",
	"dil_ve_konusma_guclugu":         "Dil ve Konuşma Güçlüğü",
	"zihinsel_yetersizlik":           "Zihinsel Yetersizlik",
	"ogrenme_guclugu":                "Öğrenme Güçlüğü",
}

var inclusionTitles = map[string]string{
	"ogrenme_hizi_farki":             "Öğrenme Hızı Farkı",
	"ileri_duzey":                    "İleri Düzey",
	"temel_duzey":                    "Temel Düzey",
	"dil_destegi":                    "Dil Desteği",
	"kulturel_kapsayicilik":          "Kültürel Kapsayıcılık",
	"sosyal_duygusal_farklilastirma": "Sosyal Duygusal Farklılaştırma",
	"cekingen_cocuklar":              "Çekingen Çocuklar",
	"dis_donuk_cocuklar":             "Dış Dönük Çocuklar",
	"duygusal_destek":                "Duygusal Destek",
	"coklu_duyusal_yaklasim":         "Çoklu Duyusal Yaklaşım",
}

// ParseActivity recovers an activity from a JSON-mode response and
// flattens its nested sections into the stored text form
func ParseActivity(raw string) (model.Activity, Report) {
	act := DefaultActivity()
	doc := Repair(raw, activityFields...)
	report := &doc.Report

	textField := func(name string, dst *string) {
		if v, ok := doc.Fields[name]; ok {
			if text, ok := decodeText(v); ok && text != "" {
				*dst = text
				return
			}
		}
		report.defaulted(name)
	}

	textField("etkinlik_adi", &act.Name)
	textField("alan_adi", &act.Area)
	textField("yas_grubu", &act.AgeGroup)
	textField("uygulama_yeri", &act.Location)
	textField("amaclar", &act.Goals)

	if v, ok := doc.Fields["sure"]; ok {
		var d interface{}
		if err := json.Unmarshal(v, &d); err == nil {
			act.Duration = NormalizeDuration(d)
		}
	} else {
		report.defaulted("sure")
	}

	if v, ok := doc.Fields["materyaller"]; ok && flattenMaterials(v) != "" {
		act.Materials = flattenMaterials(v)
	} else {
		report.defaulted("materyaller")
	}

	if v, ok := doc.Fields["uygulama_sureci"]; ok && flattenProcess(v) != "" {
		act.Process = flattenProcess(v)
	} else {
		report.defaulted("uygulama_sureci")
	}

	if v, ok := doc.Fields["uyarlama"]; ok && flattenTitled(v, adaptationTitles) != "" {
		act.Adaptation = flattenTitled(v, adaptationTitles)
	} else {
		report.defaulted("uyarlama")
	}

	if v, ok := doc.Fields["farklilastirma_ve_kapsayicilik"]; ok && flattenTitled(v, inclusionTitles) != "" {
		act.Differentiation = flattenTitled(v, inclusionTitles)
	} else {
		report.defaulted("farklilastirma_ve_kapsayicilik")
	}

	flattenEvaluation(doc.Fields["degerlendirme"], &act)

	if report.Stage == StageDefaults {
		if title, ok := plainTitle(raw); ok {
			act.Name = title
		}
	}
	if len(doc.Fields) > 0 {
		if data, err := json.Marshal(doc.Fields); err == nil {
			act.RawJSON = string(data)
		}
	}
	return act, *report
}

func flattenMaterials(raw json.RawMessage) string {
	if text, ok := decodeText(raw); ok {
		return text
	}
	members, ok := orderedMembers(raw)
	if !ok {
		return ""
	}
	var lines []string
	for _, m := range members {
		for _, item := range orderedValues(m.value) {
			lines = append(lines, "• "+item)
		}
	}
	return strings.Join(lines, "\n")
}

type processStage struct {
	Duration  interface{}     `json:"sure"`
	Steps     []interface{}   `json:"adimlar"`
	Actions   json.RawMessage `json:"aktiviteler"`
	Setup     string          `json:"duzenleme"`
	Questions []interface{}   `json:"sorular"`
	Guidance  []interface{}   `json:"ogretmen_yonlendirmeleri"`
	Summaries []interface{}   `json:"ogretmen_ozet_ornekleri"`
	Closing   string          `json:"kapaniş"`
	ClosingQ  string          `json:"kapaniş_sorusu"`
	Closing2  string          `json:"kapanis"`
	Cleanup   string          `json:"temizlik"`
	Final     string          `json:"final"`
}

type process struct {
	Intro      *processStage `json:"giris"`
	Body       *processStage `json:"gelisme"`
	Reflection *processStage `json:"yansima_cemberi"`
	Conclusion *processStage `json:"sonuc"`
}

// flattenProcess renders the four process stages with their durations
func flattenProcess(raw json.RawMessage) string {
	if text, ok := decodeText(raw); ok {
		return text
	}
	var p process
	if err := json.Unmarshal(raw, &p); err != nil {
		return ""
	}

	var lines []string
	bullets := func(items []string) {
		for _, item := range items {
			lines = append(lines, "• "+item)
		}
	}
	heading := func(title string, st *processStage, fallback string, first bool) {
		prefix := "\n"
		if first || len(lines) == 0 {
			prefix = ""
		}
		lines = append(lines, fmt.Sprintf("%s%s (%s):", prefix, title, stageDuration(st.Duration, fallback)))
	}

	if st := p.Intro; st != nil {
		heading("GİRİŞ", st, "5-7 dakika", true)
		bullets(bulletItems(st.Steps))
	}
	if st := p.Body; st != nil {
		heading("GELİŞME", st, "20 dakika", false)
		bullets(orderedValues(st.Actions))
	}
	if st := p.Reflection; st != nil {
		heading("YANSIMA ÇEMBERİ", st, "5-7 dakika", false)
		lines = append(lines, "Düzenleme: "+st.Setup)
		lines = append(lines, "\nYönlendirici Sorular:")
		bullets(bulletItems(st.Questions))
		switch {
		case len(st.Guidance) > 0:
			lines = append(lines, "\nÖğretmen Yönlendirmeleri:")
			bullets(bulletItems(st.Guidance))
		case len(st.Summaries) > 0:
			lines = append(lines, "\nÖğretmen Özet Örnekleri:")
			bullets(bulletItems(st.Summaries))
		}
		switch {
		case st.Closing != "":
			lines = append(lines, "\nKapanış: "+st.Closing)
		case st.Closing2 != "":
			lines = append(lines, "\nKapanış: "+st.Closing2)
		case st.ClosingQ != "":
			lines = append(lines, "\nKapanış Sorusu: "+st.ClosingQ)
		}
		switch {
		case st.Cleanup != "":
			lines = append(lines, "Temizlik: "+st.Cleanup)
		case st.Final != "":
			lines = append(lines, "Final: "+st.Final)
		}
	}
	if st := p.Conclusion; st != nil {
		heading("SONUÇ", st, "3 dakika", false)
		bullets(orderedValues(st.Actions))
	}
	return strings.Join(lines, "\n")
}

func stageDuration(v interface{}, fallback string) string {
	switch d := v.(type) {
	case string:
		if strings.TrimSpace(d) != "" {
			return strings.TrimSpace(d)
		}
	case float64:
		return fmt.Sprintf("%d dakika", int(d))
	}
	return fallback
}

func bulletItems(items []interface{}) []string {
	var out []string
	for _, item := range items {
		if s := scalarText(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// flattenTitled renders an object as "Title: value" lines. Nested
// objects become a "Title:" heading followed by "• Sub: value" lines.
func flattenTitled(raw json.RawMessage, titles map[string]string) string {
	members, ok := orderedMembers(raw)
	if !ok {
		text, _ := decodeText(raw)
		return text
	}

	var lines []string
	for _, m := range members {
		title := fieldTitle(m.key, titles)
		if sub, ok := orderedMembers(m.value); ok {
			lines = append(lines, "\n"+title+":")
			for _, s := range sub {
				if text, ok := decodeText(s.value); ok && text != "" {
					lines = append(lines, fmt.Sprintf("• %s: %s", fieldTitle(s.key, titles), text))
				}
			}
			continue
		}
		if text, ok := decodeText(m.value); ok && text != "" {
			lines = append(lines, title+": "+text)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// fieldTitle maps a snake_case key to its display title. Keys already
// written in Turkish are used as they are.
func fieldTitle(key string, titles map[string]string) string {
	if strings.ContainsAny(key, "ÇĞÖŞÜçğöşüıİ") {
		return key
	}
	if title, ok := titles[key]; ok {
		return title
	}
	return cases.Title(language.Turkish).String(strings.ReplaceAll(key, "_", " "))
}

type evaluationDoc struct {
	Observation  []interface{} `json:"gozlem_formu"`
	Program      []interface{} `json:"program_tarafindan"`
	SelfReview   []interface{} `json:"ogretmen_oz_degerlendirme"`
	Skills       []interface{} `json:"amaclanan_beceriler_tarafindan"`
	ChildReview  []interface{} `json:"cocuk_degerlendirmesi"`
	Students     []interface{} `json:"ogrenciler_tarafindan"`
	FamilyReview []interface{} `json:"aile_geri_bildirimi"`
}

// flattenEvaluation fills the three evaluation texts, preferring the
// current field names over the older ones. Family feedback is appended
// to the children's evaluation.
func flattenEvaluation(raw json.RawMessage, act *model.Activity) {
	var ev evaluationDoc
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &ev)
	}

	pick := func(dst *string, primary []interface{}, primaryTitle string, legacy []interface{}, legacyTitle string) {
		switch {
		case len(bulletItems(primary)) > 0:
			*dst = titledBullets(primaryTitle, primary)
		case len(bulletItems(legacy)) > 0:
			*dst = titledBullets(legacyTitle, legacy)
		}
	}

	pick(&act.EvaluationProgram, ev.Observation, "Gözlem Formu", ev.Program, "Program Değerlendirmesi")
	pick(&act.EvaluationSkills, ev.SelfReview, "Öğretmen Öz Değerlendirme", ev.Skills, "Beceri Değerlendirmesi")
	pick(&act.EvaluationChildren, ev.ChildReview, "Çocuk Değerlendirmesi", ev.Students, "Öğrenci Değerlendirmesi")

	if len(bulletItems(ev.FamilyReview)) > 0 {
		act.EvaluationChildren += "\n\n" + titledBullets("Aile Geri Bildirimi", ev.FamilyReview)
	}
}

func titledBullets(title string, items []interface{}) string {
	lines := []string{title + ":"}
	for _, item := range bulletItems(items) {
		lines = append(lines, "• "+item)
	}
	return strings.Join(lines, "\n")
}

// plainTitle takes the first line of a non-JSON response as the
// activity name when it is short enough to be one
func plainTitle(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if utf8.RuneCountInString(raw) <= 100 || strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "`") {
		return "", false
	}
	first := strings.TrimSpace(strings.SplitN(raw, "\n", 2)[0])
	first = strings.TrimSpace(strings.Trim(first, "#*"))
	if first == "" || utf8.RuneCountInString(first) >= 100 {
		return "", false
	}
	return first, true
}
